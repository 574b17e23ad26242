package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlglue/report"
)

// stubModel is a registry entry for tests that only exercise model
// assignment, never the code generation operations.
type stubModel struct {
	BindingModel

	name string
}

func (m *stubModel) Name() string { return m.name }

func stubRegistry(names ...string) Registry {
	models := Registry{}
	for _, name := range names {
		models[name] = &stubModel{name: name}
	}

	return models
}

func newPod(name string) *Typename {
	return NewTypename(report.Location{}, Attributes{"binding_model": "pod", "podtype": name}, name)
}

func TestLookUpShadowing(t *testing.T) {
	outerT := newPod("T")
	innerT := newPod("T")
	class := NewClass(report.Location{}, nil, "C", nil, nil)
	inner := NewNamespace(report.Location{}, nil, "A", []Definition{innerT, class})
	NewNamespace(report.Location{}, nil, "", []Definition{outerT, inner})

	found, err := LookUpTypeRecursive(class, "T")
	require.NoError(t, err)
	assert.Same(t, innerT, found)
}

func TestScopedRefResolution(t *testing.T) {
	class := NewClass(report.Location{}, nil, "C", nil, nil)
	inner := NewNamespace(report.Location{}, nil, "A", []Definition{class})
	global := NewNamespace(report.Location{}, nil, "", []Definition{inner})

	ref := NewScopedRef(report.Location{}, "A", NewNameRef(report.Location{}, "C"))
	found, err := ref.Resolve(global)
	require.NoError(t, err)
	assert.Same(t, class, found)

	// Qualification never falls back to enclosing scopes: a type declared
	// next to A is not visible through it.
	emptyA := NewNamespace(report.Location{}, nil, "A", nil)
	other := NewNamespace(report.Location{}, nil, "", []Definition{newPod("C"), emptyA})
	missRef := NewScopedRef(report.Location{}, "A", NewNameRef(report.Location{}, "C"))
	_, err = missRef.Resolve(other)
	var notFound *report.TypeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "A::C", notFound.Ref)
}

func TestTypeNotFound(t *testing.T) {
	global := NewNamespace(report.Location{}, nil, "", nil)
	ref := NewNameRef(report.Location{File: report.NewFile("x.idl"), Line: 3}, "Missing")

	_, err := ref.Resolve(global)
	var notFound *report.TypeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Ref)
	assert.Equal(t, 3, notFound.Loc.Line)
}

func TestArrayCanonical(t *testing.T) {
	pod := newPod("int")

	a1, err := ArrayOf(pod, 4)
	require.NoError(t, err)
	a2, err := ArrayOf(pod, 4)
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	unsized, err := ArrayOf(pod, Unsized)
	require.NoError(t, err)
	assert.NotSame(t, a1, unsized)
	assert.Equal(t, Unsized, unsized.Size())
	assert.Same(t, pod, a1.ElementType())

	variants := ArrayVariants(pod)
	require.Len(t, variants, 2)
	assert.Same(t, unsized, variants[0])
	assert.Same(t, a1, variants[1])

	_, err = ArrayOf(NewVerbatim(report.Location{}, nil, "text"), 2)
	var nonType *report.ArrayOfNonTypeError
	assert.ErrorAs(t, err, &nonType)
}

func TestNullableCanonical(t *testing.T) {
	pod := newPod("int")

	n1 := NullableOf(pod)
	n2 := NullableOf(pod)
	assert.Same(t, n1, n2)
	assert.Same(t, pod, n1.ElementType())

	// A nullable is its own nullable form.
	assert.Same(t, n1, NullableOf(n1))
}

func TestNamespaceMerge(t *testing.T) {
	t1 := newPod("T1")
	t2 := newPod("T2")
	frag1 := NewNamespace(report.Location{}, nil, "A", []Definition{t1})
	frag2 := NewNamespace(report.Location{}, nil, "A", []Definition{t2})
	global := NewNamespace(report.Location{}, nil, "", []Definition{frag1, frag2})

	require.NoError(t, Finalize(global, stubRegistry("pod")))

	// Members of one fragment are visible through the other.
	found, err := frag1.LookUpType("T2")
	require.NoError(t, err)
	assert.Same(t, t2, found)
	found, err = frag2.LookUpType("T1")
	require.NoError(t, err)
	assert.Same(t, t1, found)

	// Each fragment keeps its own declared member list.
	assert.Equal(t, []Definition{t1}, frag1.Members())
	assert.Equal(t, []Definition{t2}, frag2.Members())
}

func TestNamespaceMergeRecursesIntoChildren(t *testing.T) {
	t1 := newPod("T1")
	t2 := newPod("T2")
	inner1 := NewNamespace(report.Location{}, nil, "B", []Definition{t1})
	inner2 := NewNamespace(report.Location{}, nil, "B", []Definition{t2})
	frag1 := NewNamespace(report.Location{}, nil, "A", []Definition{inner1})
	frag2 := NewNamespace(report.Location{}, nil, "A", []Definition{inner2})
	global := NewNamespace(report.Location{}, nil, "", []Definition{frag1, frag2})

	require.NoError(t, Finalize(global, stubRegistry("pod")))

	found, err := inner1.LookUpType("T2")
	require.NoError(t, err)
	assert.Same(t, t2, found)
}

func TestTypedefCycle(t *testing.T) {
	a := NewTypedef(report.Location{}, nil, "A", NewNameRef(report.Location{}, "B"))
	b := NewTypedef(report.Location{}, nil, "B", NewNameRef(report.Location{}, "A"))
	global := NewNamespace(report.Location{}, nil, "", []Definition{a, b})

	err := Finalize(global, stubRegistry())
	var circular *report.CircularTypeError
	require.ErrorAs(t, err, &circular)
}

func TestClassBaseCycle(t *testing.T) {
	a := NewClass(report.Location{}, nil, "A", NewNameRef(report.Location{}, "B"), nil)
	b := NewClass(report.Location{}, nil, "B", NewNameRef(report.Location{}, "A"), nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{a, b})

	err := Finalize(global, stubRegistry())
	var circular *report.CircularTypeError
	require.ErrorAs(t, err, &circular)
}

func TestMixedTypedefClassCycle(t *testing.T) {
	alias := NewTypedef(report.Location{}, nil, "T", NewNameRef(report.Location{}, "C"))
	class := NewClass(report.Location{}, nil, "C", NewNameRef(report.Location{}, "T"), nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{alias, class})

	err := Finalize(global, stubRegistry())
	var circular *report.CircularTypeError
	require.ErrorAs(t, err, &circular)
}

func TestSelfReferenceThroughMembersIsFine(t *testing.T) {
	// A class containing a member of its own type is not a chain cycle.
	field := NewVariable(report.Location{}, nil, "next", NewNameRef(report.Location{}, "Node"))
	class := NewClass(report.Location{}, Attributes{"binding_model": "pod"}, "Node", nil, []Definition{field})
	global := NewNamespace(report.Location{}, nil, "", []Definition{class})

	require.NoError(t, Finalize(global, stubRegistry("pod")))
	assert.Same(t, class, field.Type())
}

func TestDerivingFromNonClass(t *testing.T) {
	enum := NewEnum(report.Location{}, nil, "E", []EnumValue{{Name: "ONE"}})
	class := NewClass(report.Location{}, nil, "C", NewNameRef(report.Location{}, "E"), nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{enum, class})

	err := Finalize(global, stubRegistry("enum"))
	var nonClass *report.DerivingFromNonClassError
	require.ErrorAs(t, err, &nonClass)
}

func TestFinalizeAssignsInheritedModel(t *testing.T) {
	base := NewClass(report.Location{}, Attributes{"binding_model": "pod"}, "Base", nil, nil)
	derived := NewClass(report.Location{}, nil, "Derived", NewNameRef(report.Location{}, "Base"), nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{base, derived})

	require.NoError(t, Finalize(global, stubRegistry("pod")))
	require.NotNil(t, base.BindingModel())
	assert.Same(t, base.BindingModel(), derived.BindingModel())
}

func TestFinalizeAssignsThroughTypedef(t *testing.T) {
	pod := newPod("int")
	alias := NewTypedef(report.Location{}, nil, "Number", NewNameRef(report.Location{}, "int"))
	global := NewNamespace(report.Location{}, nil, "", []Definition{pod, alias})

	require.NoError(t, Finalize(global, stubRegistry("pod")))
	assert.Same(t, pod.BindingModel(), alias.BindingModel())

	final, err := alias.FinalType()
	require.NoError(t, err)
	assert.Same(t, pod, final)
}

func TestFinalizeAssignsVariantModels(t *testing.T) {
	pod := newPod("int")
	sized := NewVariable(report.Location{}, nil, "a", NewArrayRef(report.Location{}, NewNameRef(report.Location{}, "int"), 4))
	unsized := NewVariable(report.Location{}, nil, "b", NewArrayRef(report.Location{}, NewNameRef(report.Location{}, "int"), Unsized))
	opt := NewVariable(report.Location{}, nil, "c", NewQualifiedRef(report.Location{}, "nullable", NewNameRef(report.Location{}, "int")))
	global := NewNamespace(report.Location{}, nil, "", []Definition{pod, sized, unsized, opt})

	models := stubRegistry("pod", "sized_array", "unsized_array", "nullable")
	require.NoError(t, Finalize(global, models))

	assert.Equal(t, "sized_array", sized.Type().BindingModel().Name())
	assert.Equal(t, "unsized_array", unsized.Type().BindingModel().Name())
	assert.Equal(t, "nullable", opt.Type().BindingModel().Name())
}

func TestUnknownBindingModel(t *testing.T) {
	widget := NewTypename(report.Location{}, Attributes{"binding_model": "widget"}, "W")
	global := NewNamespace(report.Location{}, nil, "", []Definition{widget})

	err := Finalize(global, stubRegistry("pod"))
	var unknown *report.UnknownBindingModelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "widget", unknown.Name)
}

func TestClassWithoutModelFails(t *testing.T) {
	class := NewClass(report.Location{}, nil, "C", nil, nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{class})

	err := Finalize(global, stubRegistry("pod"))
	var unknown *report.UnknownBindingModelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "", unknown.Name)
}

func TestClassLookUpThroughBaseChain(t *testing.T) {
	inner := newPod("Inner")
	base := NewClass(report.Location{}, Attributes{"binding_model": "pod"}, "Base", nil, []Definition{inner})
	derived := NewClass(report.Location{}, nil, "Derived", NewNameRef(report.Location{}, "Base"), nil)
	global := NewNamespace(report.Location{}, nil, "", []Definition{base, derived})

	require.NoError(t, Finalize(global, stubRegistry("pod")))

	found, err := derived.LookUpType("Inner")
	require.NoError(t, err)
	assert.Same(t, inner, found)
}

func TestEnumNumericValues(t *testing.T) {
	five := 5
	enum := NewEnum(report.Location{}, nil, "E", []EnumValue{
		{Name: "A"},
		{Name: "B"},
		{Name: "C", Value: &five},
		{Name: "D"},
	})

	assert.Equal(t, []int{0, 1, 5, 6}, enum.NumericValues())
}

func TestIsConstructor(t *testing.T) {
	ctor := NewFunction(report.Location{}, nil, "C", nil, nil)
	method := NewFunction(report.Location{}, nil, "other", nil, nil)
	NewClass(report.Location{}, nil, "C", nil, []Definition{ctor, method})

	assert.True(t, ctor.IsConstructor())
	assert.False(t, method.IsConstructor())
}
