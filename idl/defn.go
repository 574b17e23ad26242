// Package idl contains the definition graph describing a parsed IDL source:
// the node types for classes, namespaces, enums, functions, callbacks,
// variables, typedefs and the implicit array/nullable types, together with
// the scope lookup machinery and the finalization driver that turns the raw
// parsed forest into a resolved, binding-model-annotated graph.
package idl

import (
	"sort"

	"idlglue/report"
)

// Kind identifies the kind of a definition.
type Kind int

// Enumeration of definition kinds.
const (
	KindClass Kind = iota
	KindNamespace
	KindEnum
	KindFunction
	KindCallback
	KindVariable
	KindTypedef
	KindTypename
	KindVerbatim
	KindArray
	KindNullable
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindNamespace:
		return "Namespace"
	case KindEnum:
		return "Enum"
	case KindFunction:
		return "Function"
	case KindCallback:
		return "Callback"
	case KindVariable:
		return "Variable"
	case KindTypedef:
		return "Typedef"
	case KindTypename:
		return "Typename"
	case KindVerbatim:
		return "Verbatim"
	case KindArray:
		return "Array"
	default:
		// KindNullable
		return "Nullable"
	}
}

// Attributes is the string-keyed attribute mapping attached to every
// definition: the configuration surface for per-definition options such as
// the binding model override, field access, or getter/setter names.  A key
// present with an empty value is a flag attribute (eg. `[static]`).
type Attributes map[string]string

// Has returns whether the attribute is present, with or without a value.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the attribute's value and whether it is present.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// -----------------------------------------------------------------------------

// Definition is the parent interface for all the items that are defined in
// the IDL, such as classes or functions.  Lookup methods may trigger deferred
// type resolution (eg. looking a name up through a class's base chain) and
// can therefore fail with the same structural errors as ResolveTypeReferences.
type Definition interface {
	// Kind returns the kind of this definition.
	Kind() Kind

	// Name returns the name of the definition, or "" for unnamed definitions
	// (verbatim blocks, implicit array/nullable types, the global namespace).
	Name() string

	// Source returns the source location of the definition.
	Source() report.Location

	// Attributes returns the attribute mapping of the definition.
	Attributes() Attributes

	// Parent returns the enclosing scope of the definition, or nil for the
	// root.  Parent links form a strict tree: they are set exactly once, at
	// construction time of the parent.
	Parent() Definition

	// IsType returns whether this definition is a type, findable by
	// LookUpType.
	IsType() bool

	// IsScope returns whether this definition is a scope, findable by
	// FindScopes.
	IsScope() bool

	// BindingModel returns the binding model assigned to this type during
	// finalization, or nil before finalization or for non-types.
	BindingModel() BindingModel

	// LookUpType looks up a type by name in this definition only.
	LookUpType(name string) (Definition, error)

	// FindScopes finds all scopes matching a name in this definition, in
	// traversal order.
	FindScopes(name string) ([]Definition, error)

	// FinalType returns the final type of this definition, following typedef
	// links to the first non-typedef node.
	FinalType() (Definition, error)

	// ResolveTypeReferences resolves all the type references this node owns.
	// Implementations are memoized: resolving one node can, through lookups,
	// re-enter another node reachable via a different traversal path.
	ResolveTypeReferences() error

	// Repr returns a representative string of the definition for error
	// reporting.
	Repr() string

	// modelName returns the name of the binding model for this type, or ""
	// if the definition has no way to determine one.
	modelName() (string, error)

	// objects returns this definition and, for scopes, everything declared
	// inside it, in preorder.
	objects() []Definition

	base() *defnBase
}

// defnBase is the common base for all definitions.  It carries the data every
// definition shares and the default implementations of the lookup methods,
// which are correct for non-scopes.
type defnBase struct {
	kind       Kind
	source     report.Location
	attributes Attributes
	name       string
	parent     Definition
	isType     bool
	isScope    bool

	// arrays memoizes the array types of this type by size, so that arrays
	// of the same data type and size share one Definition.  Empty for
	// non-types.
	arrays map[int]*Array

	// nullable memoizes the nullable form of this type.
	nullable *Nullable

	// model is the binding model, assigned once during finalization.
	model BindingModel
}

func newDefnBase(kind Kind, source report.Location, attributes Attributes, name string) defnBase {
	if attributes == nil {
		attributes = Attributes{}
	}

	return defnBase{
		kind:       kind,
		source:     source,
		attributes: attributes,
		name:       name,
	}
}

func (b *defnBase) Kind() Kind                 { return b.kind }
func (b *defnBase) Name() string               { return b.name }
func (b *defnBase) Source() report.Location    { return b.source }
func (b *defnBase) Attributes() Attributes     { return b.attributes }
func (b *defnBase) Parent() Definition         { return b.parent }
func (b *defnBase) IsType() bool               { return b.isType }
func (b *defnBase) IsScope() bool              { return b.isScope }
func (b *defnBase) BindingModel() BindingModel { return b.model }
func (b *defnBase) base() *defnBase            { return b }

func (b *defnBase) Repr() string {
	return b.kind.String() + "(" + b.name + ")"
}

func (b *defnBase) LookUpType(name string) (Definition, error) {
	return nil, nil
}

func (b *defnBase) FindScopes(name string) ([]Definition, error) {
	return nil, nil
}

func (b *defnBase) ResolveTypeReferences() error {
	return nil
}

// modelName's default implementation reads the `binding_model` attribute.
// This is the full rule for typenames; other kinds layer their own fallbacks
// on top of it.
func (b *defnBase) modelName() (string, error) {
	name, _ := b.attributes.Get("binding_model")
	return name, nil
}

// -----------------------------------------------------------------------------

// ParentScopeStack returns the stack of scopes enclosing a definition,
// outermost first.  The definition itself is not included.
func ParentScopeStack(d Definition) []Definition {
	if d == nil {
		return nil
	}

	var stack []Definition
	for cursor := d.Parent(); cursor != nil; cursor = cursor.Parent() {
		stack = append([]Definition{cursor}, stack...)
	}

	return stack
}

// LookUpTypeRecursive looks up a type by name in the given definition and all
// its parent scopes.  The innermost match wins: declarations in inner scopes
// shadow same-named declarations in enclosing scopes.
func LookUpTypeRecursive(context Definition, name string) (Definition, error) {
	for lookup := context; lookup != nil; lookup = lookup.Parent() {
		typeDefn, err := lookup.LookUpType(name)
		if err != nil {
			return nil, err
		}

		if typeDefn != nil {
			return typeDefn, nil
		}
	}

	return nil, nil
}

// FindScopesRecursive finds all scopes matching a name in the given
// definition and all its parent scopes, in traversal order, nearest enclosing
// first.
func FindScopesRecursive(context Definition, name string) ([]Definition, error) {
	var scopes []Definition
	for lookup := context; lookup != nil; lookup = lookup.Parent() {
		found, err := lookup.FindScopes(name)
		if err != nil {
			return nil, err
		}

		scopes = append(scopes, found...)
	}

	return scopes, nil
}

// ArrayOf returns the definition representing an array of the given type.
// Arrays of the same data type and same size are shared: requesting the same
// pair twice returns the identical object, so downstream type identity
// comparisons work by reference.
func ArrayOf(d Definition, size int) (*Array, error) {
	b := d.base()
	if !b.isType {
		return nil, &report.ArrayOfNonTypeError{Defn: d.Repr(), Loc: d.Source()}
	}

	if b.arrays == nil {
		b.arrays = map[int]*Array{}
	}

	if array, ok := b.arrays[size]; ok {
		return array, nil
	}

	array := newArray(d, size)
	b.arrays[size] = array
	return array, nil
}

// ArrayVariants returns the array types that have been materialized on a
// type, ordered by size.
func ArrayVariants(d Definition) []*Array {
	b := d.base()
	sizes := make([]int, 0, len(b.arrays))
	for size := range b.arrays {
		sizes = append(sizes, size)
	}

	sort.Ints(sizes)
	arrays := make([]*Array, len(sizes))
	for ndx, size := range sizes {
		arrays[ndx] = b.arrays[size]
	}

	return arrays
}

// NullableOf returns the definition representing the nullable form of the
// given type.  There is exactly one nullable per base type.
func NullableOf(d Definition) *Nullable {
	b := d.base()
	if b.nullable == nil {
		b.nullable = newNullable(d)
	}

	return b.nullable
}

// DefinitionInclude returns the include file that has the C++ definition of
// this type: the `include` attribute if present, else the header derived from
// the type's source IDL file.
func DefinitionInclude(d Definition) string {
	if include, ok := d.Attributes().Get("include"); ok {
		return include
	}

	if d.Source().File == nil {
		return ""
	}

	return d.Source().File.Header
}
