package idl

import "fmt"

// Unsized is the array size of an unsized array type, eg. `int[]`.
const Unsized = -1

// Array is the implicit type representing an array of another type.  Arrays
// are never declared directly: they are materialized on demand through
// ArrayOf, which canonicalizes them per (element type, size) pair.
type Array struct {
	defnBase

	elem Definition
	size int
}

func newArray(elem Definition, size int) *Array {
	a := &Array{
		defnBase: newDefnBase(KindArray, elem.Source(), nil, ""),
		elem:     elem,
		size:     size,
	}

	// Arrays live in the same scope as their element type so that scope
	// prefix rendering treats them alike.
	a.parent = elem.Parent()
	a.isType = true
	return a
}

// ElementType returns the array's element type.
func (a *Array) ElementType() Definition { return a.elem }

// Size returns the array size, or Unsized.
func (a *Array) Size() int { return a.size }

func (a *Array) Repr() string {
	if a.size == Unsized {
		return fmt.Sprintf("Array(%s)", a.elem.Repr())
	}

	return fmt.Sprintf("Array(%s, %d)", a.elem.Repr(), a.size)
}

func (a *Array) FinalType() (Definition, error) {
	return a, nil
}

func (a *Array) modelName() (string, error) {
	if a.size == Unsized {
		return "unsized_array", nil
	}

	return "sized_array", nil
}

func (a *Array) objects() []Definition {
	return []Definition{a}
}

// -----------------------------------------------------------------------------

// Nullable is the implicit type representing the nullable form of another
// type.  There is exactly one Nullable per base type, materialized on demand
// through NullableOf.  A Nullable is its own nullable variant: requesting the
// nullable of a nullable returns it unchanged.
type Nullable struct {
	defnBase

	elem Definition
}

func newNullable(elem Definition) *Nullable {
	n := &Nullable{
		defnBase: newDefnBase(KindNullable, elem.Source(), nil, ""),
		elem:     elem,
	}

	n.parent = elem.Parent()
	n.isType = true
	n.nullable = n
	return n
}

// ElementType returns the type this nullable wraps.
func (n *Nullable) ElementType() Definition { return n.elem }

func (n *Nullable) Repr() string {
	return fmt.Sprintf("Nullable(%s)", n.elem.Repr())
}

func (n *Nullable) FinalType() (Definition, error) {
	return n, nil
}

func (n *Nullable) modelName() (string, error) {
	return "nullable", nil
}

func (n *Nullable) objects() []Definition {
	return []Definition{n}
}
