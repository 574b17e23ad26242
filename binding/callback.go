package binding

import (
	"strings"

	"idlglue/cpputil"
	"idlglue/idl"
)

// CallbackModel is the binding model for function-valued types.  Native code
// holds a callback as a pointer to a generated glue class whose Run method
// invokes the script callable.  Callbacks flow only from script into native
// code: reading one from a dynamic value builds a fresh glue object bound to
// the host callable, and the receiving native code owns it.  Writing one
// back out is unsupported, as is returning one by value.
type CallbackModel struct{}

func (*CallbackModel) Name() string { return "callback" }

// callbackType returns the final type as a callback.
func callbackType(t idl.Definition) (*idl.Callback, error) {
	final, err := t.FinalType()
	if err != nil {
		return nil, err
	}

	callback, ok := final.(*idl.Callback)
	if !ok {
		return nil, invalidUsage("callback", "use on a non-callback type")
	}

	return callback, nil
}

func (*CallbackModel) MemberTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (*CallbackModel) ParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (*CallbackModel) MutableParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (*CallbackModel) ReturnTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (*CallbackModel) TypedefTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t), false, nil
}

func (*CallbackModel) MutableToImmutableExpression(scope, t idl.Definition, expr string) (string, error) {
	return expr, nil
}

func (*CallbackModel) BaseClassExpression(scope, t idl.Definition) (string, error) {
	return "", invalidUsage("callback", "base class")
}

func (*CallbackModel) MethodCallExpression(scope, t idl.Definition, object, method string, params []string) (string, error) {
	return "", invalidUsage("callback", "method call")
}

func (*CallbackModel) StaticCallExpression(scope, t idl.Definition, method string, params []string) (string, error) {
	return "", invalidUsage("callback", "static call")
}

func (*CallbackModel) ConstructorCallExpression(scope, t idl.Definition, params []string) (string, error) {
	return "", invalidUsage("callback", "constructor call")
}

func (*CallbackModel) FieldGetExpression(scope, t idl.Definition, object, field string) (string, error) {
	return "", invalidUsage("callback", "field get")
}

func (*CallbackModel) FieldSetExpression(scope, t idl.Definition, object, field, param string) (string, error) {
	return "", invalidUsage("callback", "field set")
}

func (*CallbackModel) StaticFieldGetExpression(scope, t idl.Definition, field string) (string, error) {
	return "", invalidUsage("callback", "static field get")
}

func (*CallbackModel) StaticFieldSetExpression(scope, t idl.Definition, field, param string) (string, error) {
	return "", invalidUsage("callback", "static field set")
}

// makeRunFunction synthesizes the Run method of a callback's glue class: the
// callback's own signature under the name Run.
func makeRunFunction(callback *idl.Callback) *idl.Function {
	return idl.NewBoundFunction(callback.Source(), nil, "Run", callback.ReturnType(), callback.Params())
}

// glueNamespace returns the nested glue namespace holding a callback's glue
// class, relative to the glue root.
func glueNamespace(callback *idl.Callback) string {
	parts := []string{"glue"}
	for _, scope := range idl.ParentScopeStack(callback) {
		if scope.Name() != "" {
			parts = append(parts, "namespace_"+scope.Name())
		}
	}

	parts = append(parts, "callback_"+callback.Name())
	return strings.Join(parts, "::")
}

const callbackGlueHeaderTemplate = `
class ${GlueClass} : public ${BaseClass} {
 public:
  ${GlueClass}(NPP npp, NPObject *npobject);
  virtual ~${GlueClass}();
  virtual ${RunFunction};
 private:
  NPP npp_;
  NPObject *npobject_;
};
${GlueClass} *CreateObject(NPP npp, NPObject *npobject);
`

func (*CallbackModel) GlueHeader(scope, t idl.Definition) (string, error) {
	callback, err := callbackType(t)
	if err != nil {
		return "", err
	}

	runFunction, _, err := cpputil.FunctionPrototype(scope, makeRunFunction(callback), "")
	if err != nil {
		return "", err
	}

	return subst(callbackGlueHeaderTemplate,
		"GlueClass", callback.Name()+"_glue",
		"BaseClass", cpputil.ScopedName(scope, t),
		"RunFunction", runFunction), nil
}

const callbackGlueImplTemplate = `
${GlueClass}::${GlueClass}(NPP npp, NPObject *npobject)
    : npp_(npp),
      npobject_(npobject) {
  NPN_RetainObject(npobject);
}

${GlueClass}::~${GlueClass}() {
}

${RunFunction} {
  ${CallbackGlue};
}

${GlueClass} *CreateObject(NPP npp, NPObject *npobject) {
  return npobject ? new ${GlueClass}(npp, npobject) : NULL;
}
`

func (*CallbackModel) GlueImpl(scope, t idl.Definition) (string, error) {
	callback, err := callbackType(t)
	if err != nil {
		return "", err
	}

	glueClass := callback.Name() + "_glue"
	runFunction, _, err := cpputil.FunctionPrototype(scope, makeRunFunction(callback), glueClass+"::")
	if err != nil {
		return "", err
	}

	asyncParam := "false"
	if callback.Attributes().Has("async") {
		asyncParam = "true"
	}

	callbackGlue := "return RunCallback(npp_, npobject_, " + asyncParam
	for _, param := range callback.Params() {
		callbackGlue += ", " + param.Name
	}

	callbackGlue += ")"

	return subst(callbackGlueImplTemplate,
		"GlueClass", glueClass,
		"RunFunction", runFunction,
		"CallbackGlue", callbackGlue), nil
}

func (*CallbackModel) DispatchPrologue(scope, t idl.Definition, variable, hostHandle, successFlag string) (string, string, error) {
	return "", "", invalidUsage("callback", "dispatch prologue")
}

const callbackFromVariantTemplate = `
  ${success} = NPVARIANT_IS_OBJECT(${input_expr});
  ${type_name} *${variable} = NULL;
  if (${success}) {
    ${variable} = ${namespace}::CreateObject(
       ${npp}, NPVARIANT_TO_OBJECT(${input_expr}));
  } else {
    *error_handle = "Error in " ${context}
        ": a callback must be a Javascript function.";
  }
`

// FromDynamicValue builds a fresh glue object bound to the incoming script
// callable.  The receiving native code is responsible for disposing it.
func (*CallbackModel) FromDynamicValue(scope, t idl.Definition, inputExpr, variable, successFlag, errorContext, hostHandle string) (string, string, error) {
	callback, err := callbackType(t)
	if err != nil {
		return "", "", err
	}

	text := subst(callbackFromVariantTemplate,
		"success", successFlag,
		"context", errorContext,
		"input_expr", inputExpr,
		"type_name", cpputil.ScopedName(scope, t),
		"variable", variable,
		"namespace", glueNamespace(callback),
		"npp", hostHandle)

	return text, variable, nil
}

// ToDynamicValue is unsupported: callbacks never flow back out to script.
func (*CallbackModel) ToDynamicValue(scope, t idl.Definition, variable, expr, outputExpr, successFlag, hostHandle string) (string, string, error) {
	return "", "", invalidUsage("callback", "writing to a dynamic value")
}

// DocTypeString renders the callback's arity-aware signature.
func (*CallbackModel) DocTypeString(t idl.Definition) (string, error) {
	callback, err := callbackType(t)
	if err != nil {
		return "", err
	}

	var paramDocs []string
	for _, param := range callback.Params() {
		doc, err := param.Type.BindingModel().DocTypeString(param.Type)
		if err != nil {
			return "", err
		}

		paramDocs = append(paramDocs, doc)
	}

	retDoc := "void"
	if retType := callback.ReturnType(); retType != nil {
		retDoc, err = retType.BindingModel().DocTypeString(retType)
		if err != nil {
			return "", err
		}
	}

	return "function(" + strings.Join(paramDocs, ", ") + "): " + retDoc, nil
}
