package idl

import (
	"fmt"

	"idlglue/report"
)

// TypeRef is a deferred, unresolved reference to a type by name.  References
// are created during parsing and resolved lazily against a lookup context
// during finalization.  A reference is immutable once constructed; the
// resolved definition is memoized by the owning definition, not by the
// reference.
type TypeRef interface {
	// Source returns the source location of the reference.
	Source() report.Location

	// Resolve resolves the reference against the given lexical context,
	// failing with a TypeNotFoundError if nothing matches.
	Resolve(context Definition) (Definition, error)

	// resolve is the internal resolution step.  When scoped is set, only the
	// context's own declared members are searched; otherwise the lookup
	// walks up the enclosing scopes.  A (nil, nil) return means no match:
	// only Resolve converts that into an error, so that scoped-lookup
	// candidates can be tried in order.
	resolve(context Definition, scoped bool) (Definition, error)

	fmt.Stringer
}

// refBase holds the source location shared by all reference variants and
// implements the common Resolve wrapper.
type refBase struct {
	loc report.Location
}

func (r *refBase) Source() report.Location { return r.loc }

// resolveRef runs a reference's unscoped lookup and converts a miss into a
// TypeNotFoundError carrying the reference's text and location.
func resolveRef(r TypeRef, context Definition) (Definition, error) {
	defn, err := r.resolve(context, false)
	if err != nil {
		return nil, err
	}

	if defn == nil {
		return nil, &report.TypeNotFoundError{Ref: r.String(), Loc: r.Source()}
	}

	return defn, nil
}

// -----------------------------------------------------------------------------

// NameRef is a reference to a type by a bare name, eg. `Frobber`.
type NameRef struct {
	refBase

	// The referenced type name.
	Name string
}

// NewNameRef creates a new by-name type reference.
func NewNameRef(loc report.Location, name string) *NameRef {
	return &NameRef{refBase: refBase{loc}, Name: name}
}

func (r *NameRef) Resolve(context Definition) (Definition, error) {
	return resolveRef(r, context)
}

func (r *NameRef) resolve(context Definition, scoped bool) (Definition, error) {
	if scoped {
		return context.LookUpType(r.Name)
	}

	return LookUpTypeRecursive(context, r.Name)
}

func (r *NameRef) String() string {
	return r.Name
}

// -----------------------------------------------------------------------------

// ScopedRef is a qualified reference through a named scope, eg. the
// `Outer::` in `Outer::Inner`.  Nested qualifications chain through Inner.
type ScopedRef struct {
	refBase

	// The name of the scope through which Inner is looked up.
	ScopeName string

	// The reference resolved inside the scope.
	Inner TypeRef
}

// NewScopedRef creates a new scope-qualified type reference.
func NewScopedRef(loc report.Location, scopeName string, inner TypeRef) *ScopedRef {
	return &ScopedRef{refBase: refBase{loc}, ScopeName: scopeName, Inner: inner}
}

func (r *ScopedRef) Resolve(context Definition) (Definition, error) {
	return resolveRef(r, context)
}

// resolve finds all candidate scopes matching ScopeName and resolves Inner
// against each in discovery order, committing to the first success.  Later
// candidates are never consulted once one succeeds, even if ambiguous in
// principle.  The inner lookup is always scoped: qualification never falls
// back to enclosing scopes of the qualifier.
func (r *ScopedRef) resolve(context Definition, scoped bool) (Definition, error) {
	var scopes []Definition
	var err error
	if scoped {
		scopes, err = context.FindScopes(r.ScopeName)
	} else {
		scopes, err = FindScopesRecursive(context, r.ScopeName)
	}

	if err != nil {
		return nil, err
	}

	for _, scope := range scopes {
		defn, err := r.Inner.resolve(scope, true)
		if err != nil {
			return nil, err
		}

		if defn != nil {
			return defn, nil
		}
	}

	return nil, nil
}

func (r *ScopedRef) String() string {
	return r.ScopeName + "::" + r.Inner.String()
}

// -----------------------------------------------------------------------------

// ArrayRef is a reference to an array of a referenced element type, sized or
// unsized.
type ArrayRef struct {
	refBase

	// The reference to the element type.
	Inner TypeRef

	// The array size, or Unsized.
	Size int
}

// NewArrayRef creates a new array type reference.
func NewArrayRef(loc report.Location, inner TypeRef, size int) *ArrayRef {
	return &ArrayRef{refBase: refBase{loc}, Inner: inner, Size: size}
}

func (r *ArrayRef) Resolve(context Definition) (Definition, error) {
	return resolveRef(r, context)
}

func (r *ArrayRef) resolve(context Definition, scoped bool) (Definition, error) {
	elem, err := r.Inner.resolve(context, scoped)
	if err != nil || elem == nil {
		return nil, err
	}

	return ArrayOf(elem, r.Size)
}

func (r *ArrayRef) String() string {
	if r.Size == Unsized {
		return r.Inner.String() + "[]"
	}

	return fmt.Sprintf("%s[%d]", r.Inner.String(), r.Size)
}

// -----------------------------------------------------------------------------

// QualifiedRef is a qualifier applied to a referenced type, eg. `nullable T`
// or `const T`.  Only the nullable qualifier produces a distinct type; the
// others are transparent and resolve to the underlying type unchanged.
type QualifiedRef struct {
	refBase

	// The qualifier keyword.
	Qualifier string

	// The qualified reference.
	Inner TypeRef
}

// NewQualifiedRef creates a new qualified type reference.
func NewQualifiedRef(loc report.Location, qualifier string, inner TypeRef) *QualifiedRef {
	return &QualifiedRef{refBase: refBase{loc}, Qualifier: qualifier, Inner: inner}
}

func (r *QualifiedRef) Resolve(context Definition) (Definition, error) {
	return resolveRef(r, context)
}

func (r *QualifiedRef) resolve(context Definition, scoped bool) (Definition, error) {
	defn, err := r.Inner.resolve(context, scoped)
	if err != nil || defn == nil {
		return nil, err
	}

	if r.Qualifier == "nullable" {
		return NullableOf(defn), nil
	}

	return defn, nil
}

func (r *QualifiedRef) String() string {
	return r.Qualifier + " " + r.Inner.String()
}
