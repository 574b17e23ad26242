package report

import "fmt"

// TypeNotFoundError indicates that a type reference did not resolve to any
// definition.  It carries the textual form of the reference and its source
// location for diagnostics.
type TypeNotFoundError struct {
	// The textual form of the unresolved reference, eg. `Scope::Name[]`.
	Ref string

	// The location of the reference in the IDL source.
	Loc Location
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("type not found: %s at %s", e.Ref, e.Loc)
}

// CircularTypeError indicates that a typedef, base-class or array chain
// revisits its own origin.
type CircularTypeError struct {
	// The definition at which the cycle was detected.
	Type string

	// The definition through which the chain closed back on Type.
	Through string

	// The location of the definition closing the cycle.
	Loc Location
}

func (e *CircularTypeError) Error() string {
	return fmt.Sprintf("circular type reference between %s and %s at %s", e.Type, e.Through, e.Loc)
}

// DerivingFromNonClassError indicates that a class derives from a definition
// that is not (transitively) a class.
type DerivingFromNonClassError struct {
	Class string
	Base  string
	Loc   Location
}

func (e *DerivingFromNonClassError) Error() string {
	return fmt.Sprintf("class %s derives from non-class %s at %s", e.Class, e.Base, e.Loc)
}

// ArrayOfNonTypeError indicates an array reference to a definition that is
// not a type.
type ArrayOfNonTypeError struct {
	Defn string
	Loc  Location
}

func (e *ArrayOfNonTypeError) Error() string {
	return fmt.Sprintf("array of non-type %s at %s", e.Defn, e.Loc)
}

// UnknownBindingModelError indicates that a type's binding model name has no
// entry in the binding model registry.  An empty name means the type had no
// way to determine a binding model at all (eg. a class with neither a
// `binding_model` attribute nor a base class).
type UnknownBindingModelError struct {
	Name string
	Defn string
	Loc  Location
}

func (e *UnknownBindingModelError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no binding model for %s at %s", e.Defn, e.Loc)
	}

	return fmt.Sprintf("unknown binding model %q for %s at %s", e.Name, e.Defn, e.Loc)
}

// InvalidUsageError indicates that a binding model operation was invoked on a
// kind of type that structurally cannot support it: eg. a method call on a
// primitive, or a nullable used as a base class.  It is always an IDL-author
// error and is never recovered from mid-run.
type InvalidUsageError struct {
	// The binding model kind that rejected the operation: "pod", "enum",
	// "nullable" or "callback".
	Kind string

	// The operation that was rejected.
	Op string
}

func (e *InvalidUsageError) Error() string {
	return fmt.Sprintf("invalid %s usage: %s is not supported for %s types", e.Kind, e.Op, e.Kind)
}

// BadVoidUsageError indicates that `void` was used outside of a return value
// position.
type BadVoidUsageError struct {
	Op string
}

func (e *BadVoidUsageError) Error() string {
	return fmt.Sprintf("void can only be used as a return type, not in %s", e.Op)
}

// UnknownPrimitiveTypeError indicates that a pod type has a primitive tag
// outside the closed set the pod binding model can marshal.
type UnknownPrimitiveTypeError struct {
	Name string
}

func (e *UnknownPrimitiveTypeError) Error() string {
	if e.Name == "" {
		return "pod type has no podtype attribute"
	}

	return fmt.Sprintf("unknown pod type: %s", e.Name)
}

// BadForwardDeclarationError indicates that a type needed a forward
// declaration but cannot be forward-declared: only classes declared directly
// inside a namespace can be.
type BadForwardDeclarationError struct {
	Defn string
	Loc  Location
}

func (e *BadForwardDeclarationError) Error() string {
	return fmt.Sprintf("cannot forward-declare %s at %s", e.Defn, e.Loc)
}

// SyntaxError indicates a lexical or grammatical error in an IDL source file.
type SyntaxError struct {
	Message string
	Loc     Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Loc, e.Message)
}

// Raise creates a new syntax error at the given location.
func Raise(loc Location, msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(msg, args...), Loc: loc}
}
