package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlglue/idl"
	"idlglue/report"
)

var noloc = report.Location{}

func pod(tag string) *idl.Typename {
	return idl.NewTypename(noloc, idl.Attributes{"binding_model": "pod", "podtype": tag}, tag)
}

// finalized builds and finalizes a global namespace around the given
// definitions, so every type carries its binding model.
func finalized(t *testing.T, defns ...idl.Definition) *idl.Namespace {
	t.Helper()
	global := idl.NewNamespace(noloc, nil, "", defns)
	require.NoError(t, idl.Finalize(global, DefaultModels()))
	return global
}

func TestPodVoidOnlyInReturnPosition(t *testing.T) {
	void := pod("void")
	global := finalized(t, void)
	model := void.BindingModel()

	var badVoid *report.BadVoidUsageError
	_, _, err := model.MemberTypeString(global, void)
	assert.ErrorAs(t, err, &badVoid)
	_, _, err = model.ParameterTypeString(global, void)
	assert.ErrorAs(t, err, &badVoid)
	_, _, err = model.MutableParameterTypeString(global, void)
	assert.ErrorAs(t, err, &badVoid)
	_, _, err = model.TypedefTypeString(global, void)
	assert.ErrorAs(t, err, &badVoid)

	text, _, err := model.ReturnTypeString(global, void)
	require.NoError(t, err)
	assert.Equal(t, "void", text)
}

func TestPodTypeStrings(t *testing.T) {
	str := pod("string")
	num := pod("int")
	global := finalized(t, str, num)

	text, needDefn, err := str.BindingModel().ParameterTypeString(global, str)
	require.NoError(t, err)
	assert.Equal(t, "const string&", text)
	assert.True(t, needDefn)

	text, _, err = str.BindingModel().MutableParameterTypeString(global, str)
	require.NoError(t, err)
	assert.Equal(t, "string*", text)

	text, _, err = num.BindingModel().ParameterTypeString(global, num)
	require.NoError(t, err)
	assert.Equal(t, "int", text)

	expr, err := num.BindingModel().MutableToImmutableExpression(global, num, "param_a")
	require.NoError(t, err)
	assert.Equal(t, "*(param_a)", expr)
}

func TestPodFromDynamicValue(t *testing.T) {
	num := pod("int")
	global := finalized(t, num)

	text, value, err := num.BindingModel().FromDynamicValue(global, num, "args[0]", "param_a", "success", "\"method\"", "npp")
	require.NoError(t, err)
	assert.Equal(t, "param_a", value)
	assert.Contains(t, text, "NPVARIANT_IS_NUMBER(args[0])")
	assert.Contains(t, text, "int param_a = 0;")
	assert.Contains(t, text, "success = false;")
}

func TestPodFromDynamicValueVoid(t *testing.T) {
	void := pod("void")
	global := finalized(t, void)

	text, value, err := void.BindingModel().FromDynamicValue(global, void, "args[0]", "v", "success", "\"m\"", "npp")
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Equal(t, "void(0)", value)
}

func TestPodUnknownPrimitive(t *testing.T) {
	blob := pod("blob")
	global := finalized(t, blob)

	_, _, err := blob.BindingModel().FromDynamicValue(global, blob, "args[0]", "v", "success", "\"m\"", "npp")
	var unknown *report.UnknownPrimitiveTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "blob", unknown.Name)
}

func TestPodToDynamicValueString(t *testing.T) {
	str := pod("string")
	global := finalized(t, str)

	pre, post, err := str.BindingModel().ToDynamicValue(global, str, "v", "self->name()", "output", "success", "npp")
	require.NoError(t, err)
	assert.Equal(t, "success = StringToNPVariant(self->name(), output);", pre)
	assert.Equal(t, "", post)
}

func TestPodToDynamicValueInt(t *testing.T) {
	num := pod("int")
	global := finalized(t, num)

	pre, post, err := num.BindingModel().ToDynamicValue(global, num, "v", "self->count()", "output", "success", "npp")
	require.NoError(t, err)
	assert.Equal(t, "int v = self->count();", pre)
	assert.Equal(t, "INT32_TO_NPVARIANT(v, *output);", post)
}

func TestPodObjectOperationsRejected(t *testing.T) {
	num := pod("int")
	global := finalized(t, num)
	model := num.BindingModel()

	var invalid *report.InvalidUsageError
	_, err := model.MethodCallExpression(global, num, "obj", "m", nil)
	assert.ErrorAs(t, err, &invalid)
	_, err = model.BaseClassExpression(global, num)
	assert.ErrorAs(t, err, &invalid)
	_, err = model.GlueHeader(global, num)
	assert.ErrorAs(t, err, &invalid)
	_, _, err = model.DispatchPrologue(global, num, "v", "npp", "success")
	assert.ErrorAs(t, err, &invalid)
}

func TestEnumRangeCheck(t *testing.T) {
	enum := idl.NewEnum(noloc, nil, "Mode", []idl.EnumValue{
		{Name: "MODE_OFF"},
		{Name: "MODE_IDLE"},
		{Name: "MODE_ON"},
	})
	ns := idl.NewNamespace(noloc, nil, "app", []idl.Definition{enum})
	global := finalized(t, ns)

	text, value, err := enum.BindingModel().FromDynamicValue(global, enum, "args[0]", "param_m", "success", "\"setMode\"", "npp")
	require.NoError(t, err)
	assert.Equal(t, "param_m", value)
	assert.Contains(t, text, "app::Mode param_m = app::MODE_OFF;")
	assert.Contains(t, text, "param_m < app::MODE_OFF || param_m > app::MODE_ON")
	assert.Contains(t, text, "value out of range")

	// Non-numeric inputs take the type-error branch.
	assert.Contains(t, text, "NPVARIANT_IS_NUMBER(args[0])")
	assert.Contains(t, text, "was expecting a number")
}

func TestEnumEmptyRejected(t *testing.T) {
	enum := idl.NewEnum(noloc, nil, "E", nil)
	global := finalized(t, enum)

	_, _, err := enum.BindingModel().FromDynamicValue(global, enum, "args[0]", "v", "success", "\"m\"", "npp")
	var invalid *report.InvalidUsageError
	assert.ErrorAs(t, err, &invalid)
}

func TestEnumToDynamicValue(t *testing.T) {
	enum := idl.NewEnum(noloc, nil, "Mode", []idl.EnumValue{{Name: "MODE_OFF"}})
	global := finalized(t, enum)

	pre, post, err := enum.BindingModel().ToDynamicValue(global, enum, "v", "self->mode()", "output", "success", "npp")
	require.NoError(t, err)
	assert.Equal(t, "Mode v = self->mode();", pre)
	assert.Equal(t, "INT32_TO_NPVARIANT(v, *output);", post)
}

func TestNullableDelegatesTypeStrings(t *testing.T) {
	num := pod("int")
	field := idl.NewVariable(noloc, nil, "x", idl.NewQualifiedRef(noloc, "nullable", idl.NewNameRef(noloc, "int")))
	global := finalized(t, num, field)

	nt := field.Type()
	require.Equal(t, idl.KindNullable, nt.Kind())

	text, _, err := nt.BindingModel().MemberTypeString(global, nt)
	require.NoError(t, err)
	assert.Equal(t, "int", text)
}

func TestNullableFromDynamicValue(t *testing.T) {
	num := pod("int")
	field := idl.NewVariable(noloc, nil, "x", idl.NewQualifiedRef(noloc, "nullable", idl.NewNameRef(noloc, "int")))
	global := finalized(t, num, field)
	nt := field.Type()

	text, value, err := nt.BindingModel().FromDynamicValue(global, nt, "args[0]", "param_x", "success", "\"m\"", "npp")
	require.NoError(t, err)
	assert.Equal(t, "param_x", value)
	assert.Contains(t, text, "NPVARIANT_IS_NULL(args[0])")
	assert.Contains(t, text, "param_x = NULL;")
	// The non-null path is the element's own conversion, on a derived
	// variable name.
	assert.Contains(t, text, "int param_x_nullable = 0;")
	assert.Contains(t, text, "param_x = param_x_nullable;")
}

func TestNullableToDynamicValue(t *testing.T) {
	num := pod("int")
	field := idl.NewVariable(noloc, nil, "x", idl.NewQualifiedRef(noloc, "nullable", idl.NewNameRef(noloc, "int")))
	global := finalized(t, num, field)
	nt := field.Type()

	pre, post, err := nt.BindingModel().ToDynamicValue(global, nt, "v", "self->x()", "output", "success", "npp")
	require.NoError(t, err)
	assert.Contains(t, pre, "int v = self->x();")
	assert.Contains(t, pre, "if (!v) {")
	assert.Contains(t, pre, "success = true;")
	assert.Contains(t, post, "NULL_TO_NPVARIANT(*output);")
	assert.Contains(t, post, "INT32_TO_NPVARIANT(v, *output);")
}

func TestNullableOnNonNullableRejected(t *testing.T) {
	num := pod("int")
	finalized(t, num)

	model := &NullableModel{}
	_, _, err := model.MemberTypeString(nil, num)
	var invalid *report.InvalidUsageError
	assert.ErrorAs(t, err, &invalid)
}

func TestCallbackDocString(t *testing.T) {
	num := pod("int")
	callback := idl.NewCallback(noloc, nil, "Cb", nil, []*idl.Param{
		{Ref: idl.NewNameRef(noloc, "int"), Name: "a"},
		{Ref: idl.NewNameRef(noloc, "int"), Name: "b"},
	})
	finalized(t, num, callback)

	doc, err := callback.BindingModel().DocTypeString(callback)
	require.NoError(t, err)
	assert.Equal(t, "function(number, number): void", doc)
}

func TestCallbackGlue(t *testing.T) {
	num := pod("int")
	callback := idl.NewCallback(noloc, nil, "Cb", idl.NewNameRef(noloc, "int"), []*idl.Param{
		{Ref: idl.NewNameRef(noloc, "int"), Name: "a"},
	})
	global := finalized(t, num, callback)
	model := callback.BindingModel()

	header, err := model.GlueHeader(global, callback)
	require.NoError(t, err)
	assert.Contains(t, header, "class Cb_glue : public Cb {")
	assert.Contains(t, header, "virtual int Run(int a);")
	assert.Contains(t, header, "Cb_glue *CreateObject(NPP npp, NPObject *npobject);")

	impl, err := model.GlueImpl(global, callback)
	require.NoError(t, err)
	assert.Contains(t, impl, "int Cb_glue::Run(int a) {")
	assert.Contains(t, impl, "return RunCallback(npp_, npobject_, false, a);")
	assert.Contains(t, impl, "NPN_RetainObject(npobject);")
}

func TestCallbackFromDynamicValue(t *testing.T) {
	num := pod("int")
	callback := idl.NewCallback(noloc, nil, "Cb", nil, []*idl.Param{
		{Ref: idl.NewNameRef(noloc, "int"), Name: "a"},
	})
	global := finalized(t, num, callback)

	text, value, err := callback.BindingModel().FromDynamicValue(global, callback, "args[0]", "param_cb", "success", "\"m\"", "npp")
	require.NoError(t, err)
	assert.Equal(t, "param_cb", value)
	assert.Contains(t, text, "NPVARIANT_IS_OBJECT(args[0])")
	assert.Contains(t, text, "glue::callback_Cb::CreateObject(")
	assert.Contains(t, text, "a callback must be a Javascript function")
}

func TestCallbackOutboundRejected(t *testing.T) {
	num := pod("int")
	callback := idl.NewCallback(noloc, nil, "Cb", nil, nil)
	global := finalized(t, num, callback)
	model := callback.BindingModel()

	var invalid *report.InvalidUsageError
	_, _, err := model.ToDynamicValue(global, callback, "v", "expr", "output", "success", "npp")
	assert.ErrorAs(t, err, &invalid)
	_, _, err = model.DispatchPrologue(global, callback, "v", "npp", "success")
	assert.ErrorAs(t, err, &invalid)
}
