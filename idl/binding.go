package idl

// BindingModel is the polymorphic code-generation contract implemented once
// per kind of type (pod, enum, nullable, callback).  All operations are
// deterministic text producers with no I/O.  Operations that a kind cannot
// structurally support fail with the kind's InvalidUsageError instead of
// silently producing nothing: callers rely on the failure to detect IDL
// misuse, such as a getter attribute on a callback-typed field.
//
// The scope argument of every operation is the definition from whose lexical
// position the text is being emitted; it controls how much scope
// qualification the rendered names need.
type BindingModel interface {
	// Name returns the registry name of the binding model.
	Name() string

	// MemberTypeString renders the type of a class member field.  The boolean
	// result of this and the other type-string renderers indicates whether
	// the usage requires the full definition of the type to be visible, as
	// opposed to only a forward declaration.
	MemberTypeString(scope, t Definition) (string, bool, error)

	// ParameterTypeString renders the type of a read-only function parameter.
	ParameterTypeString(scope, t Definition) (string, bool, error)

	// MutableParameterTypeString renders the type of a mutable function
	// parameter.
	MutableParameterTypeString(scope, t Definition) (string, bool, error)

	// ReturnTypeString renders the type of a function return value.
	ReturnTypeString(scope, t Definition) (string, bool, error)

	// TypedefTypeString renders the type as the target of a typedef.
	TypedefTypeString(scope, t Definition) (string, bool, error)

	// MutableToImmutableExpression converts an expression in the mutable
	// parameter form into the corresponding read-only form.  For most kinds
	// this is the identity transform.
	MutableToImmutableExpression(scope, t Definition, expr string) (string, error)

	// BaseClassExpression renders the type as a base-class specifier.
	BaseClassExpression(scope, t Definition) (string, error)

	// MethodCallExpression renders a call of a method on an object
	// expression of this type.
	MethodCallExpression(scope, t Definition, object, method string, params []string) (string, error)

	// StaticCallExpression renders a call of a static method of this type.
	StaticCallExpression(scope, t Definition, method string, params []string) (string, error)

	// ConstructorCallExpression renders a construction of this type.
	ConstructorCallExpression(scope, t Definition, params []string) (string, error)

	// FieldGetExpression renders a read of a field on an object expression
	// of this type.
	FieldGetExpression(scope, t Definition, object, field string) (string, error)

	// FieldSetExpression renders a write of a field on an object expression
	// of this type.
	FieldSetExpression(scope, t Definition, object, field, param string) (string, error)

	// StaticFieldGetExpression renders a read of a static field of this type.
	StaticFieldGetExpression(scope, t Definition, field string) (string, error)

	// StaticFieldSetExpression renders a write of a static field of this
	// type.
	StaticFieldSetExpression(scope, t Definition, field, param string) (string, error)

	// GlueHeader renders the glue class declaration this type contributes to
	// the generated header, if its kind needs one.
	GlueHeader(scope, t Definition) (string, error)

	// GlueImpl renders the glue class implementation this type contributes
	// to the generated source, if its kind needs one.
	GlueImpl(scope, t Definition) (string, error)

	// DispatchPrologue renders the code retrieving the dynamically
	// dispatchable object for a value of this type, returning the code
	// snippet and the expression through which the object is accessed.  Only
	// kinds directly addressable as dispatchable objects support it.
	DispatchPrologue(scope, t Definition, variable, hostHandle, successFlag string) (string, string, error)

	// FromDynamicValue renders the code marshaling a dynamic value into a
	// native value of this type.  It returns the code snippet declaring and
	// filling the named variable, and the expression by which the resulting
	// native value is read.  The snippet stores false into the success flag
	// and raises on errorContext when the dynamic value cannot represent the
	// type.
	FromDynamicValue(scope, t Definition, inputExpr, variable, successFlag, errorContext, hostHandle string) (string, string, error)

	// ToDynamicValue renders the code marshaling a native value of this type
	// into the dynamic value stored in outputExpr.  The write is split into
	// two phases: the returned allocation snippet may fail (storing false
	// into the success flag and leaving the output slot untouched) while the
	// returned commit snippet cannot fail and performs the actual tagged
	// store.  The allocation phase evaluates the source expression and
	// acquires any host resources the representation needs; only once it has
	// succeeded does the commit phase stamp the value into the output slot.
	ToDynamicValue(scope, t Definition, variable, expr, outputExpr, successFlag, hostHandle string) (string, string, error)

	// DocTypeString renders the human-facing documentation string for this
	// type.
	DocTypeString(t Definition) (string, error)
}

// Registry maps binding model names to their implementations.  It is
// supplied wholesale by the driver and never mutated during finalization.
type Registry map[string]BindingModel
