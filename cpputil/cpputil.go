package cpputil

import (
	"regexp"
	"strings"

	"idlglue/idl"
)

// TypeUse records a type used by a rendered prototype, and whether that
// usage needs the type's full definition to be visible or only a forward
// declaration.
type TypeUse struct {
	Type            idl.Definition
	NeedsDefinition bool
}

// commonPrefixLen returns the highest n such that a[:n] equals b[:n].
func commonPrefixLen(a, b []string) int {
	l := len(a)
	if len(b) < l {
		l = len(b)
	}

	for i := 0; i < l; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return l
}

func scopeNames(stack []idl.Definition) []string {
	names := make([]string, len(stack))
	for ndx, scope := range stack {
		names[ndx] = scope.Name()
	}

	return names
}

// ScopePrefix returns the concatenation of scope qualifiers needed to
// reference a type from the given scope, eg. the `B::` needed to reference
// `A::B::C` from inside `A::D`.  The common enclosing scopes of the two
// drop out of the prefix, as does the anonymous global namespace.  A nil
// scope means the global scope.
func ScopePrefix(scope, t idl.Definition) string {
	typeStack := idl.ParentScopeStack(t)
	scopeStack := idl.ParentScopeStack(scope)
	if scope != nil {
		scopeStack = append(scopeStack, scope)
	}

	common := commonPrefixLen(scopeNames(scopeStack), scopeNames(typeStack))

	var sb strings.Builder
	for _, s := range typeStack[common:] {
		if s.Name() == "" {
			continue
		}

		sb.WriteString(s.Name())
		sb.WriteString("::")
	}

	return sb.String()
}

// ScopedName returns the qualified name referencing a type from the given
// scope.
func ScopedName(scope, t idl.Definition) string {
	return ScopePrefix(scope, t) + t.Name()
}

// GetterName returns the name of the getter function for a member field: the
// `getter` attribute when set, else the field name normalized to the
// lower-case convention.
func GetterName(field *idl.Variable) string {
	if name, _ := field.Attributes().Get("getter"); name != "" {
		return name
	}

	return Normalize(field.Name(), Lower)
}

// SetterName returns the name of the setter function for a member field: the
// `setter` attribute when set, else `set_` concatenated with the field name
// normalized to the lower-case convention.
func SetterName(field *idl.Variable) string {
	if name, _ := field.Attributes().Get("setter"); name != "" {
		return name
	}

	return "set_" + Normalize(field.Name(), Lower)
}

// ParamPrototype returns the declaration of one parameter in a function
// prototype, along with the type usage it introduces.
func ParamPrototype(scope idl.Definition, param *idl.Param) (string, TypeUse, error) {
	model := param.Type.BindingModel()

	var text string
	var needsDefn bool
	var err error
	if param.Mutable {
		text, needsDefn, err = model.MutableParameterTypeString(scope, param.Type)
	} else {
		text, needsDefn, err = model.ParameterTypeString(scope, param.Type)
	}

	if err != nil {
		return "", TypeUse{}, err
	}

	return text + " " + param.Name, TypeUse{param.Type, needsDefn}, nil
}

// FunctionPrototype returns the C++ prototype declaring a function, plus the
// type usages the prototype introduces.  idPrefix is prepended to the
// function identifier, eg. `Class::` when declaring an out-of-line member
// function.  A function without a return type is rendered as a constructor.
func FunctionPrototype(scope idl.Definition, fn *idl.Function, idPrefix string) (string, []TypeUse, error) {
	var uses []TypeUse
	var paramStrings []string
	for _, param := range fn.Params() {
		paramString, use, err := ParamPrototype(scope, param)
		if err != nil {
			return "", nil, err
		}

		uses = append(uses, use)
		paramStrings = append(paramStrings, paramString)
	}

	paramString := strings.Join(paramStrings, ", ")

	var prefixes, suffixes []string
	for _, attrib := range []string{"static", "virtual", "inline"} {
		if fn.Attributes().Has(attrib) {
			prefixes = append(prefixes, attrib)
		}
	}

	if len(prefixes) > 0 {
		prefixes = append(prefixes, "")
	}

	if fn.Attributes().Has("const") {
		suffixes = append(suffixes, "const")
	}

	if fn.Attributes().Has("pure") {
		suffixes = append(suffixes, "= 0")
	}

	if len(suffixes) > 0 {
		suffixes = append([]string{""}, suffixes...)
	}

	prefix := strings.Join(prefixes, " ")
	suffix := strings.Join(suffixes, " ")

	if retType := fn.ReturnType(); retType != nil {
		text, needsDefn, err := retType.BindingModel().ReturnTypeString(scope, retType)
		if err != nil {
			return "", nil, err
		}

		uses = append(uses, TypeUse{retType, needsDefn})
		return prefix + text + " " + idPrefix + fn.Name() + "(" + paramString + ")" + suffix, uses, nil
	}

	return prefix + idPrefix + fn.Name() + "(" + paramString + ")" + suffix, uses, nil
}

var headerTokenRE = regexp.MustCompile(`[^A-Z0-9_]`)

// HeaderToken generates the header guard token for a header file name.
func HeaderToken(filename string) string {
	return headerTokenRE.ReplaceAllString(strings.ToUpper(filename), "_") + "__"
}
