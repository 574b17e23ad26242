package binding

import (
	"fmt"

	"idlglue/cpputil"
	"idlglue/idl"
)

// EnumModel is the binding model for enum types.  Enums behave almost
// exactly like ints, except that values coming in from script are range
// checked against the first and last declared values.
type EnumModel struct{}

func (*EnumModel) Name() string { return "enum" }

func (*EnumModel) MemberTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), true, nil
}

func (*EnumModel) ParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), true, nil
}

func (*EnumModel) MutableParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", true, nil
}

func (*EnumModel) ReturnTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), true, nil
}

func (*EnumModel) TypedefTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), true, nil
}

func (*EnumModel) MutableToImmutableExpression(scope, t idl.Definition, expr string) (string, error) {
	return "*(" + expr + ")", nil
}

func (*EnumModel) BaseClassExpression(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("enum", "base class")
}

func (*EnumModel) MethodCallExpression(scope, t idl.Definition, object, method string, params []string) (string, error) {
	return "", invalidUsage("enum", "method call")
}

func (*EnumModel) StaticCallExpression(scope, t idl.Definition, method string, params []string) (string, error) {
	return "", invalidUsage("enum", "static call")
}

func (*EnumModel) ConstructorCallExpression(scope, t idl.Definition, params []string) (string, error) {
	return "", invalidUsage("enum", "constructor call")
}

func (*EnumModel) FieldGetExpression(scope, t idl.Definition, object, field string) (string, error) {
	return "", invalidUsage("enum", "field get")
}

func (*EnumModel) FieldSetExpression(scope, t idl.Definition, object, field, param string) (string, error) {
	return "", invalidUsage("enum", "field set")
}

func (*EnumModel) StaticFieldGetExpression(scope, t idl.Definition, field string) (string, error) {
	return "", invalidUsage("enum", "static field get")
}

func (*EnumModel) StaticFieldSetExpression(scope, t idl.Definition, field, param string) (string, error) {
	return "", invalidUsage("enum", "static field set")
}

func (*EnumModel) GlueHeader(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("enum", "glue header")
}

func (*EnumModel) GlueImpl(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("enum", "glue implementation")
}

func (*EnumModel) DispatchPrologue(scope, t idl.Definition, variable, hostHandle, successFlag string) (string, string, error) {
	return "", "", invalidUsage("enum", "dispatch prologue")
}

const enumFromVariantTemplate = `
${type} ${variable} = ${first};
if (NPVARIANT_IS_NUMBER(${input})) {
  ${variable} = (${type})(int)NPVARIANT_TO_NUMBER(${input});
  if (${variable} < ${first} || ${variable} > ${last}) {
    *error_handle = "Error in " ${context}
        ": value out of range.";
    ${success} = false;
  }
} else {
  *error_handle = "Error in " ${context}
      ": was expecting a number.";
  ${success} = false;
}
`

// FromDynamicValue converts an incoming number and range checks it against
// the first and last declared enum values, by declaration order.
func (*EnumModel) FromDynamicValue(scope, t idl.Definition, inputExpr, variable, successFlag, errorContext, hostHandle string) (string, string, error) {
	final, err := t.FinalType()
	if err != nil {
		return "", "", err
	}

	enum, ok := final.(*idl.Enum)
	if !ok {
		return "", "", invalidUsage("enum", "marshaling a non-enum type")
	}

	values := enum.Values()
	if len(values) == 0 {
		return "", "", invalidUsage("enum", "marshaling an empty enum")
	}

	prefix := cpputil.ScopePrefix(scope, enum)
	text := subst(enumFromVariantTemplate,
		"type", cpputil.ScopedName(scope, t),
		"variable", variable,
		"first", prefix+values[0].Name,
		"last", prefix+values[len(values)-1].Name,
		"input", inputExpr,
		"success", successFlag,
		"context", errorContext)

	return text, variable, nil
}

// ToDynamicValue stores the enum as a numeric tag, which cannot fail.
func (*EnumModel) ToDynamicValue(scope, t idl.Definition, variable, expr, outputExpr, successFlag, hostHandle string) (string, string, error) {
	return fmt.Sprintf("%s %s = %s;", cpputil.ScopedName(scope, t), variable, expr),
		fmt.Sprintf("INT32_TO_NPVARIANT(%s, *%s);", variable, outputExpr), nil
}

func (*EnumModel) DocTypeString(t idl.Definition) (string, error) {
	final, err := t.FinalType()
	if err != nil {
		return "", err
	}

	return dottedName(final), nil
}
