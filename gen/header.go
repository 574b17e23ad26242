package gen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"idlglue/cpputil"
	"idlglue/idl"
	"idlglue/report"
)

// HeaderGenerator produces, for one IDL source file, the C++ header declaring
// the classes, enums and typedefs defined in it.
//
// While walking the definitions it keeps track of the foreign types each
// declaration depends on: types whose full definition is needed turn into
// includes of their defining header, types where a declaration suffices turn
// into forward declarations at the top of the file.
type HeaderGenerator struct {
	outputDir string

	neededDecl map[idl.Definition]bool
	neededDefn map[idl.Definition]bool
	emitted    map[idl.Definition]bool
}

// NewHeaderGenerator creates a header generator writing into the given
// output directory.
func NewHeaderGenerator(outputDir string) *HeaderGenerator {
	return &HeaderGenerator{outputDir: outputDir}
}

// forwardDecl emits the forward declaration of a type.  Only classes declared
// directly inside a namespace can be forward-declared.
func forwardDecl(section *Section, t idl.Definition) error {
	if t.Parent() == nil || t.Parent().Kind() != idl.KindNamespace || t.Kind() != idl.KindClass {
		return &report.BadForwardDeclarationError{Defn: t.Repr(), Loc: t.Source()}
	}

	stack := idl.ParentScopeStack(t)
	for _, scope := range stack {
		if scope.Name() != "" {
			section.PushNamespace(scope.Name())
		}
	}

	section.EmitCode("class " + t.Name() + ";")
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Name() != "" {
			section.PopNamespace()
		}
	}

	return nil
}

// sectionFromAttributes picks the code section for a definition.  Members of
// a class go into one of its private, protected or public sections, selected
// by the member's attributes; anything else goes into the parent scope's
// main section.
func (g *HeaderGenerator) sectionFromAttributes(parentSection *Section, defn idl.Definition) *Section {
	if defn.Parent() != nil && defn.Parent().Kind() == idl.KindClass {
		name := "public:"
		if defn.Attributes().Has("private") {
			name = "private:"
		} else if defn.Attributes().Has("protected") {
			name = "protected:"
		}

		if section := parentSection.GetSection(name); section != nil {
			return section
		}
	}

	return parentSection
}

// documentation emits the doc comment attached to a definition, if any.
func (g *HeaderGenerator) documentation(section *Section, defn idl.Definition) {
	docs, ok := defn.Attributes().Get("__docs")
	if !ok {
		return
	}

	section.EmitCode("/*! ")
	for _, line := range strings.Split(docs, "\n") {
		section.EmitCode("* " + strings.TrimSpace(line))
	}

	section.EmitCode("*/")
}

// fieldFunctionDocumentation emits the doc comment for a generated getter or
// setter.
func (g *HeaderGenerator) fieldFunctionDocumentation(section *Section, description, typeString, fieldName string) {
	section.EmitCode("/*!")
	section.EmitCode(fmt.Sprintf("* %s for %s %s", description, typeString, fieldName))
	section.EmitCode("*/")
}

func (g *HeaderGenerator) emitVerbatim(parentSection *Section, scope idl.Definition, obj *idl.Verbatim) ([]cpputil.TypeUse, error) {
	target, ok := obj.Attributes().Get("verbatim")
	if !ok {
		report.ReportWarning(obj.Source(), "ignoring verbatim block with no verbatim attribute")
		return nil, nil
	}

	if target == "cpp_header" {
		g.sectionFromAttributes(parentSection, obj).EmitCode(obj.Text)
	}

	return nil, nil
}

func (g *HeaderGenerator) emitTypedef(parentSection *Section, scope idl.Definition, obj *idl.Typedef) ([]cpputil.TypeUse, error) {
	section := g.sectionFromAttributes(parentSection, obj)
	target := obj.Target()
	typeString, _, err := target.BindingModel().TypedefTypeString(scope, target)
	if err != nil {
		return nil, err
	}

	section.EmitCode(fmt.Sprintf("typedef %s %s;", typeString, obj.Name()))
	return []cpputil.TypeUse{{Type: target, NeedsDefinition: true}}, nil
}

// emitVariable emits a member or global variable declaration, plus the
// inline getter and setter functions when the attributes ask for them.  The
// field itself goes into the section named by the `field_access` attribute
// (private by default) while the accessors follow the usual access
// attributes.
func (g *HeaderGenerator) emitVariable(parentSection *Section, scope idl.Definition, obj *idl.Variable) ([]cpputil.TypeUse, error) {
	memberSection := parentSection
	if obj.Parent() != nil && obj.Parent().Kind() == idl.KindClass {
		name := "private:"
		if access, ok := obj.Attributes().Get("field_access"); ok {
			name = access + ":"
		}

		if section := parentSection.GetSection(name); section != nil {
			memberSection = section
		}
	}

	accessorSection := g.sectionFromAttributes(parentSection, obj)

	t := obj.Type()
	model := t.BindingModel()
	typeString, needDefn, err := model.MemberTypeString(scope, t)
	if err != nil {
		return nil, err
	}

	uses := []cpputil.TypeUse{{Type: t, NeedsDefinition: needDefn}}

	static := ""
	if obj.Attributes().Has("static") {
		static = "static "
	}

	fieldName := cpputil.Normalize(obj.Name(), cpputil.Java)
	g.documentation(memberSection, obj)
	memberSection.EmitCode(fmt.Sprintf("%s%s %s;", static, typeString, fieldName))

	if obj.Attributes().Has("getter") {
		returnType, needDefn, err := model.ReturnTypeString(scope, t)
		if err != nil {
			return nil, err
		}

		uses = append(uses, cpputil.TypeUse{Type: t, NeedsDefinition: needDefn})
		g.fieldFunctionDocumentation(accessorSection, "Accessor", typeString, fieldName)
		accessorSection.EmitCode(fmt.Sprintf("%s%s %s() const { return %s; }",
			static, returnType, cpputil.GetterName(obj), fieldName))
	}

	if obj.Attributes().Has("setter") {
		paramType, needDefn, err := model.ParameterTypeString(scope, t)
		if err != nil {
			return nil, err
		}

		uses = append(uses, cpputil.TypeUse{Type: t, NeedsDefinition: needDefn})
		g.fieldFunctionDocumentation(accessorSection, "Mutator", typeString, fieldName)
		accessorSection.EmitCode(fmt.Sprintf("%svoid %s(%s %s) { %s = %s; }",
			static, cpputil.SetterName(obj), paramType, obj.Name(), fieldName, obj.Name()))
	}

	return uses, nil
}

func (g *HeaderGenerator) emitFunction(parentSection *Section, scope idl.Definition, obj *idl.Function) ([]cpputil.TypeUse, error) {
	section := g.sectionFromAttributes(parentSection, obj)
	g.documentation(section, obj)

	// The declared identifier follows the mixed-case method convention.
	// Constructors keep the class name as spelled.
	name := obj.Name()
	if !obj.IsConstructor() {
		name = cpputil.Normalize(name, cpputil.Java)
	}
	declared := idl.NewBoundFunction(obj.Source(), obj.Attributes(), name, obj.ReturnType(), obj.Params())
	prototype, uses, err := cpputil.FunctionPrototype(scope, declared, "")
	if err != nil {
		return nil, err
	}

	section.EmitCode(prototype + ";")
	return uses, nil
}

// emitClass emits a class declaration with its three access sections, filled
// by recursively emitting the class members.  Access sections that end up
// empty are left out entirely.
func (g *HeaderGenerator) emitClass(parentSection *Section, scope idl.Definition, obj *idl.Class) ([]cpputil.TypeUse, error) {
	g.documentation(parentSection, obj)
	section := g.sectionFromAttributes(parentSection, obj).CreateSection(obj.Name())

	var uses []cpputil.TypeUse
	if base := obj.BaseType(); base != nil {
		baseString, err := base.BindingModel().BaseClassExpression(scope, base)
		if err != nil {
			return nil, err
		}

		section.EmitCode(fmt.Sprintf("class %s : public %s {", obj.Name(), baseString))
		uses = append(uses, cpputil.TypeUse{Type: base, NeedsDefinition: true})
	} else {
		section.EmitCode(fmt.Sprintf("class %s {", obj.Name()))
	}

	publicSection := section.CreateSection("public:")
	protectedSection := section.CreateSection("protected:")
	privateSection := section.CreateSection("private:")
	if err := g.definitionList(section, obj, obj.Members()); err != nil {
		return nil, err
	}

	if !publicSection.IsEmpty() {
		publicSection.AddPrefix("public:")
	}

	if !protectedSection.IsEmpty() {
		protectedSection.AddPrefix("protected:")
	}

	if !privateSection.IsEmpty() {
		privateSection.AddPrefix("private:")
	}

	section.EmitCode("};")
	return uses, nil
}

func (g *HeaderGenerator) emitNamespace(parentSection *Section, scope idl.Definition, obj *idl.Namespace) ([]cpputil.TypeUse, error) {
	g.documentation(parentSection, obj)
	parentSection.PushNamespace(obj.Name())
	if err := g.definitionList(parentSection, obj, obj.Members()); err != nil {
		return nil, err
	}

	parentSection.PopNamespace()
	return nil, nil
}

func (g *HeaderGenerator) emitEnum(parentSection *Section, scope idl.Definition, obj *idl.Enum) ([]cpputil.TypeUse, error) {
	section := g.sectionFromAttributes(parentSection, obj)
	g.documentation(parentSection, obj)
	section.EmitCode(fmt.Sprintf("enum %s {", obj.Name()))
	for _, value := range obj.Values() {
		if value.Value == nil {
			section.EmitCode(value.Name + ",")
		} else {
			section.EmitCode(fmt.Sprintf("%s = %d,", value.Name, *value.Value))
		}
	}

	section.EmitCode("};")
	return nil, nil
}

// definitionList emits the code for every definition in a list, recording
// each as emitted and checking the foreign types the emitted code depends on.
func (g *HeaderGenerator) definitionList(parentSection *Section, scope idl.Definition, defns []idl.Definition) error {
	for _, obj := range defns {
		g.emitted[obj] = true

		// Array types are implicitly defined along with their element type.
		for _, array := range idl.ArrayVariants(obj) {
			g.emitted[array] = true
		}

		var uses []cpputil.TypeUse
		var err error
		switch obj := obj.(type) {
		case *idl.Verbatim:
			uses, err = g.emitVerbatim(parentSection, scope, obj)
		case *idl.Typedef:
			uses, err = g.emitTypedef(parentSection, scope, obj)
		case *idl.Variable:
			uses, err = g.emitVariable(parentSection, scope, obj)
		case *idl.Function:
			uses, err = g.emitFunction(parentSection, scope, obj)
		case *idl.Class:
			uses, err = g.emitClass(parentSection, scope, obj)
		case *idl.Namespace:
			uses, err = g.emitNamespace(parentSection, scope, obj)
		case *idl.Enum:
			uses, err = g.emitEnum(parentSection, scope, obj)
		default:
			// Typenames have no C++ rendering, and callbacks only exist in the
			// glue; neither declares anything here.
		}

		if err != nil {
			return err
		}

		for _, use := range uses {
			g.checkType(use.NeedsDefinition, use.Type)
		}
	}

	return nil
}

// checkType records the definition or declaration dependency on a foreign
// type.  Types whose definition is needed and that this header does not
// define turn into includes; types only needing a declaration turn into
// forward declarations when possible.  Inner types need the definition of
// their enclosing class, and only classes can be forward-declared.
func (g *HeaderGenerator) checkType(needDefn bool, t idl.Definition) {
	for t.Kind() == idl.KindArray {
		t = t.(*idl.Array).ElementType()
	}

	if needDefn {
		if !g.emitted[t] {
			g.neededDefn[t] = true
		}

		return
	}

	if g.emitted[t] {
		return
	}

	if t.Parent() != nil && t.Parent().Kind() != idl.KindNamespace {
		g.checkType(true, t.Parent())
	} else if t.Kind() == idl.KindClass {
		g.neededDecl[t] = true
	} else {
		g.neededDefn[t] = true
	}
}

// qualifiedName returns the fully scoped name of a definition, used to order
// forward declarations and includes deterministically.
func qualifiedName(t idl.Definition) string {
	var parts []string
	for _, scope := range idl.ParentScopeStack(t) {
		if scope.Name() != "" {
			parts = append(parts, scope.Name())
		}
	}

	parts = append(parts, t.Name())
	return strings.Join(parts, "::")
}

// Generate produces the header file for one IDL source file, given its
// top-level definitions.
func (g *HeaderGenerator) Generate(file *report.File, global *idl.Namespace, defns []idl.Definition) (*FileWriter, error) {
	g.neededDecl = map[idl.Definition]bool{}
	g.neededDefn = map[idl.Definition]bool{}
	g.emitted = map[idl.Definition]bool{}

	writer := NewFileWriter(filepath.Join(g.outputDir, file.Header), true)
	declSection := writer.CreateSection("decls")
	codeSection := writer.CreateSection("defns")

	if err := g.definitionList(codeSection, global, defns); err != nil {
		return nil, err
	}

	var decls []idl.Definition
	for t := range g.neededDecl {
		if !g.neededDefn[t] {
			decls = append(decls, t)
		}
	}

	if len(decls) > 0 {
		sort.Slice(decls, func(i, j int) bool {
			return qualifiedName(decls[i]) < qualifiedName(decls[j])
		})

		for _, t := range decls {
			if err := forwardDecl(declSection, t); err != nil {
				return nil, err
			}
		}

		declSection.EmitCode("")
	}

	includes := map[string]bool{}
	for t := range g.neededDefn {
		if include := idl.DefinitionInclude(t); include != "" {
			includes[include] = true
		}
	}

	sorted := make([]string, 0, len(includes))
	for include := range includes {
		sorted = append(sorted, include)
	}

	sort.Strings(sorted)
	for _, include := range sorted {
		writer.AddInclude(include, false)
	}

	return writer, nil
}
