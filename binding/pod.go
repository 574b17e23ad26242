package binding

import (
	"fmt"

	"idlglue/cpputil"
	"idlglue/idl"
	"idlglue/report"
)

// PODModel is the binding model for plain-old-data types and strings, which
// the scripting runtime treats as plain values.  `void` belongs here too,
// although it is only legal as a return type.  In C++, pod values are passed
// and returned by value (by pointer when mutable), except strings which are
// passed by const reference and returned by copy.
type PODModel struct{}

func (*PODModel) Name() string { return "pod" }

// podType returns the primitive tag of a pod type, read from the `podtype`
// attribute of its final type.
func podType(t idl.Definition) (string, error) {
	final, err := t.FinalType()
	if err != nil {
		return "", err
	}

	tag, ok := final.Attributes().Get("podtype")
	if !ok {
		return "", &report.UnknownPrimitiveTypeError{}
	}

	return tag, nil
}

// checkNotVoid fails with a BadVoidUsageError when the type is the void pod
// type, which is only legal in return position.
func checkNotVoid(t idl.Definition, op string) error {
	tag, err := podType(t)
	if err != nil {
		return err
	}

	if tag == "void" {
		return &report.BadVoidUsageError{Op: op}
	}

	return nil
}

func (*PODModel) MemberTypeString(scope, t idl.Definition) (string, bool, error) {
	if err := checkNotVoid(t, "member"); err != nil {
		return "", false, err
	}

	return cpputil.ScopedName(scope, t), true, nil
}

func (*PODModel) ParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	tag, err := podType(t)
	if err != nil {
		return "", false, err
	}

	switch tag {
	case "void":
		return "", false, &report.BadVoidUsageError{Op: "parameter"}
	case "string", "wstring":
		// Strings are passed by const reference.
		return "const " + cpputil.ScopedName(scope, t) + "&", true, nil
	default:
		return cpputil.ScopedName(scope, t), true, nil
	}
}

func (*PODModel) MutableParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	if err := checkNotVoid(t, "parameter"); err != nil {
		return "", false, err
	}

	return cpputil.ScopedName(scope, t) + "*", true, nil
}

func (*PODModel) ReturnTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), true, nil
}

func (*PODModel) TypedefTypeString(scope, t idl.Definition) (string, bool, error) {
	if err := checkNotVoid(t, "typedef"); err != nil {
		return "", false, err
	}

	return cpputil.ScopedName(scope, t), true, nil
}

func (*PODModel) MutableToImmutableExpression(scope, t idl.Definition, expr string) (string, error) {
	return "*(" + expr + ")", nil
}

func (*PODModel) BaseClassExpression(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("pod", "base class")
}

func (*PODModel) MethodCallExpression(scope, t idl.Definition, object, method string, params []string) (string, error) {
	return "", invalidUsage("pod", "method call")
}

func (*PODModel) StaticCallExpression(scope, t idl.Definition, method string, params []string) (string, error) {
	return "", invalidUsage("pod", "static call")
}

func (*PODModel) ConstructorCallExpression(scope, t idl.Definition, params []string) (string, error) {
	return "", invalidUsage("pod", "constructor call")
}

func (*PODModel) FieldGetExpression(scope, t idl.Definition, object, field string) (string, error) {
	return "", invalidUsage("pod", "field get")
}

func (*PODModel) FieldSetExpression(scope, t idl.Definition, object, field, param string) (string, error) {
	return "", invalidUsage("pod", "field set")
}

func (*PODModel) StaticFieldGetExpression(scope, t idl.Definition, field string) (string, error) {
	return "", invalidUsage("pod", "static field get")
}

func (*PODModel) StaticFieldSetExpression(scope, t idl.Definition, field, param string) (string, error) {
	return "", invalidUsage("pod", "static field set")
}

func (*PODModel) GlueHeader(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("pod", "glue header")
}

func (*PODModel) GlueImpl(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("pod", "glue implementation")
}

func (*PODModel) DispatchPrologue(scope, t idl.Definition, variable, hostHandle, successFlag string) (string, string, error) {
	return "", "", invalidUsage("pod", "dispatch prologue")
}

const intFromVariantTemplate = `
    ${type} ${variable} = 0;
    if (NPVARIANT_IS_NUMBER(${input})) {
      ${variable} = static_cast<${type}>(NPVARIANT_TO_NUMBER(${input}));
    } else {
      *error_handle = "Error in " ${context}
          ": was expecting an int.";
      ${success} = false;
    }
`

const boolFromVariantTemplate = `
    ${type} ${variable} = false;
    if (NPVARIANT_IS_BOOLEAN(${input})) {
      ${variable} = NPVARIANT_TO_BOOLEAN(${input});
    } else {
      *error_handle = "Error in " ${context}
          ": was expecting a boolean.";
      ${success} = false;
    }
`

const floatFromVariantTemplate = `
    ${type} ${variable} = 0.f;
    if (NPVARIANT_IS_NUMBER(${input})) {
      ${variable} = static_cast<${type}>(NPVARIANT_TO_NUMBER(${input}));
    } else {
      *error_handle = "Error in " ${context}
          ": was expecting a number.";
      ${success} = false;
    }
`

const stringFromVariantTemplate = `
${type} ${variable};
if (NPVARIANT_IS_STRING(${input})) {
  ${variable} = ${type}(NPVARIANT_TO_STRING(${input}).UTF8Characters,
                        NPVARIANT_TO_STRING(${input}).UTF8Length);
} else {
  ${success} = false;
  *error_handle = "Error in " ${context}
      ": was expecting a string.";
}
`

const wstringFromVariantTemplate = `
${type} ${variable};
if (!NPVARIANT_IS_STRING(${input})) {
  ${success} = false;
  *error_handle = "Error in " ${context}
      ": was expecting a string.";
} else if (!UTF8ToString16(NPVARIANT_TO_STRING(${input}).UTF8Characters,
                    NPVARIANT_TO_STRING(${input}).UTF8Length,
                    &${variable})) {
  ${success} = false;
  *error_handle = "Error in " ${context}
      ": hit an unexpected unicode conversion problem.";
}
`

func (*PODModel) FromDynamicValue(scope, t idl.Definition, inputExpr, variable, successFlag, errorContext, hostHandle string) (string, string, error) {
	tag, err := podType(t)
	if err != nil {
		return "", "", err
	}

	typeName := cpputil.ScopedName(scope, t)
	fill := func(template string) string {
		return subst(template,
			"type", typeName,
			"input", inputExpr,
			"variable", variable,
			"success", successFlag,
			"context", errorContext)
	}

	switch tag {
	case "void":
		return "", "void(0)", nil
	case "int":
		return fill(intFromVariantTemplate), variable, nil
	case "bool":
		return fill(boolFromVariantTemplate), variable, nil
	case "float":
		return fill(floatFromVariantTemplate), variable, nil
	case "string":
		return fill(stringFromVariantTemplate), variable, nil
	case "wstring":
		return fill(wstringFromVariantTemplate), variable, nil
	case "variant":
		return fmt.Sprintf("%s %s(%s, %s);", typeName, variable, hostHandle, inputExpr), variable, nil
	default:
		return "", "", &report.UnknownPrimitiveTypeError{Name: tag}
	}
}

func (*PODModel) ToDynamicValue(scope, t idl.Definition, variable, expr, outputExpr, successFlag, hostHandle string) (string, string, error) {
	tag, err := podType(t)
	if err != nil {
		return "", "", err
	}

	typeName := cpputil.ScopedName(scope, t)
	switch tag {
	case "void":
		return fmt.Sprintf("%s;", expr),
			fmt.Sprintf("VOID_TO_NPVARIANT(*%s);", outputExpr), nil
	case "int":
		return fmt.Sprintf("%s %s = %s;", typeName, variable, expr),
			fmt.Sprintf("INT32_TO_NPVARIANT(%s, *%s);", variable, outputExpr), nil
	case "bool":
		return fmt.Sprintf("%s %s = %s;", typeName, variable, expr),
			fmt.Sprintf("BOOLEAN_TO_NPVARIANT(%s, *%s);", variable, outputExpr), nil
	case "float":
		return fmt.Sprintf("%s %s = %s;", typeName, variable, expr),
			fmt.Sprintf("DOUBLE_TO_NPVARIANT(static_cast<double>(%s), *%s);", variable, outputExpr), nil
	case "variant":
		return fmt.Sprintf("%s %s = %s;", typeName, variable, expr),
			fmt.Sprintf("*%s = %s.NPVariant(%s);", outputExpr, variable, hostHandle), nil
	case "string":
		// String marshaling needs a fallible host allocation, so the whole
		// conversion happens in the allocation phase.
		return fmt.Sprintf("%s = StringToNPVariant(%s, %s);", successFlag, expr, outputExpr), "", nil
	case "wstring":
		return fmt.Sprintf("%s = String16ToNPVariant(%s, %s);", successFlag, expr, outputExpr), "", nil
	default:
		return "", "", &report.UnknownPrimitiveTypeError{Name: tag}
	}
}

var podDocTypes = map[string]string{
	"int":          "number",
	"std.string":   "string",
	"bool":         "boolean",
	"float":        "number",
	"double":       "number",
	"unsigned int": "number",
	"size_t":       "number",
	// void shows up in callback signatures.
	"void": "void",
}

func (*PODModel) DocTypeString(t idl.Definition) (string, error) {
	final, err := t.FinalType()
	if err != nil {
		return "", err
	}

	if doc, ok := podDocTypes[dottedName(final)]; ok {
		return doc, nil
	}

	return "*", nil
}
