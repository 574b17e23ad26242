package binding

import (
	"strings"

	"idlglue/idl"
)

// NullableModel is the binding model for nullable decorations.  Almost every
// operation delegates to the wrapped element type's model; the exceptions
// are marshaling, where the null case short-circuits before delegating, and
// the object-like operations, which a decoration cannot support.
type NullableModel struct{}

func (*NullableModel) Name() string { return "nullable" }

// element returns the wrapped type of a nullable and its binding model.
func (*NullableModel) element(t idl.Definition) (idl.Definition, idl.BindingModel, error) {
	final, err := t.FinalType()
	if err != nil {
		return nil, nil, err
	}

	nullable, ok := final.(*idl.Nullable)
	if !ok {
		return nil, nil, invalidUsage("nullable", "use on a non-nullable type")
	}

	elem := nullable.ElementType()
	return elem, elem.BindingModel(), nil
}

func (m *NullableModel) MemberTypeString(scope, t idl.Definition) (string, bool, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", false, err
	}

	return model.MemberTypeString(scope, elem)
}

func (m *NullableModel) ParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", false, err
	}

	return model.ParameterTypeString(scope, elem)
}

func (m *NullableModel) MutableParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", false, err
	}

	return model.MutableParameterTypeString(scope, elem)
}

func (m *NullableModel) ReturnTypeString(scope, t idl.Definition) (string, bool, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", false, err
	}

	return model.ReturnTypeString(scope, elem)
}

func (m *NullableModel) TypedefTypeString(scope, t idl.Definition) (string, bool, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", false, err
	}

	return model.TypedefTypeString(scope, elem)
}

func (m *NullableModel) MutableToImmutableExpression(scope, t idl.Definition, expr string) (string, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", err
	}

	return model.MutableToImmutableExpression(scope, elem, expr)
}

func (*NullableModel) BaseClassExpression(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("nullable", "base class")
}

func (*NullableModel) MethodCallExpression(scope, t idl.Definition, object, method string, params []string) (string, error) {
	return "", invalidUsage("nullable", "method call")
}

func (*NullableModel) StaticCallExpression(scope, t idl.Definition, method string, params []string) (string, error) {
	return "", invalidUsage("nullable", "static call")
}

func (*NullableModel) ConstructorCallExpression(scope, t idl.Definition, params []string) (string, error) {
	return "", invalidUsage("nullable", "constructor call")
}

func (*NullableModel) FieldGetExpression(scope, t idl.Definition, object, field string) (string, error) {
	return "", invalidUsage("nullable", "field get")
}

func (*NullableModel) FieldSetExpression(scope, t idl.Definition, object, field, param string) (string, error) {
	return "", invalidUsage("nullable", "field set")
}

func (*NullableModel) StaticFieldGetExpression(scope, t idl.Definition, field string) (string, error) {
	return "", invalidUsage("nullable", "static field get")
}

func (*NullableModel) StaticFieldSetExpression(scope, t idl.Definition, field, param string) (string, error) {
	return "", invalidUsage("nullable", "static field set")
}

func (*NullableModel) GlueHeader(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("nullable", "glue header")
}

func (*NullableModel) GlueImpl(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("nullable", "glue implementation")
}

func (*NullableModel) DispatchPrologue(scope, t idl.Definition, variable, hostHandle, successFlag string) (string, string, error) {
	return "", "", invalidUsage("nullable", "dispatch prologue")
}

const nullableFromVariantTemplate = `
${type} ${variable};
if (NPVARIANT_IS_NULL(${input})) {
  ${variable} = NULL;
} else {
  ${text}
  ${variable} = ${value};
}
`

// FromDynamicValue special-cases the null tag first, then delegates the
// non-null path to the element type's model.
func (m *NullableModel) FromDynamicValue(scope, t idl.Definition, inputExpr, variable, successFlag, errorContext, hostHandle string) (string, string, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", "", err
	}

	text, value, err := model.FromDynamicValue(scope, elem, inputExpr, variable+"_nullable", successFlag, errorContext, hostHandle)
	if err != nil {
		return "", "", err
	}

	typeName, _, err := model.MemberTypeString(scope, elem)
	if err != nil {
		return "", "", err
	}

	snippet := subst(nullableFromVariantTemplate,
		"type", typeName,
		"variable", variable,
		"text", text,
		"input", inputExpr,
		"value", value)

	return snippet, variable, nil
}

const nullableToVariantPreTemplate = `
${pre_text}
if (!${variable}) {
  ${success} = true;
}
`

const nullableToVariantPostTemplate = `
if (${variable}) {
  ${post_text}
} else {
  NULL_TO_NPVARIANT(*${output});
}
`

// ToDynamicValue delegates to the element type's write, emitting a null tag
// instead when the native value is null.
func (m *NullableModel) ToDynamicValue(scope, t idl.Definition, variable, expr, outputExpr, successFlag, hostHandle string) (string, string, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", "", err
	}

	preText, postText, err := model.ToDynamicValue(scope, elem, variable, expr, outputExpr, successFlag, hostHandle)
	if err != nil {
		return "", "", err
	}

	pre := subst(nullableToVariantPreTemplate,
		"pre_text", preText,
		"variable", variable,
		"success", successFlag)
	post := subst(nullableToVariantPostTemplate,
		"variable", variable,
		"post_text", postText,
		"output", outputExpr)

	return pre, post, nil
}

// DocTypeString is the element's doc string, with an optional leading
// non-null marker stripped.
func (m *NullableModel) DocTypeString(t idl.Definition) (string, error) {
	elem, model, err := m.element(t)
	if err != nil {
		return "", err
	}

	doc, err := model.DocTypeString(elem)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(doc, "!"), nil
}
