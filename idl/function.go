package idl

import "idlglue/report"

// Param is one parameter of a function or callback: a deferred type
// reference resolved during finalization, a name, and a mutability flag.
type Param struct {
	// The unresolved reference to the parameter type.
	Ref TypeRef

	// The resolved parameter type, set during finalization.
	Type Definition

	// The parameter name.
	Name string

	// Whether the parameter is passed mutably.
	Mutable bool
}

// Function is a function or method definition.  A function is neither a
// type nor a scope.  A nil return reference means void, or a constructor
// when the function's name matches its enclosing class.
type Function struct {
	defnBase

	retRef  TypeRef
	retType Definition
	params  []*Param

	state resolveState
}

// NewFunction creates a new function with an optional return-type reference
// and the given parameters.
func NewFunction(source report.Location, attributes Attributes, name string, retRef TypeRef, params []*Param) *Function {
	return &Function{
		defnBase: newDefnBase(KindFunction, source, attributes, name),
		retRef:   retRef,
		params:   params,
	}
}

// NewBoundFunction creates a function whose types are already resolved,
// bypassing reference resolution.  Binding models use it to synthesize glue
// functions, like the Run method of a callback's glue class.
func NewBoundFunction(source report.Location, attributes Attributes, name string, retType Definition, params []*Param) *Function {
	f := &Function{
		defnBase: newDefnBase(KindFunction, source, attributes, name),
		retType:  retType,
		params:   params,
	}

	f.state = resolved
	return f
}

// Params returns the function's parameters in order.
func (f *Function) Params() []*Param { return f.params }

// ReturnType returns the resolved return type, or nil for void and
// constructors.  It is available once the function's references have
// resolved.
func (f *Function) ReturnType() Definition { return f.retType }

// IsConstructor returns whether the function is a constructor of its
// enclosing class.
func (f *Function) IsConstructor() bool {
	return f.retRef == nil && f.parent != nil && f.parent.Kind() == KindClass && f.parent.Name() == f.name
}

// ResolveTypeReferences resolves the return type and every parameter type
// against the function's enclosing scope.
func (f *Function) ResolveTypeReferences() error {
	if f.state != unresolved {
		return nil
	}

	f.state = resolving
	defer func() { f.state = resolved }()

	if f.retRef != nil {
		retType, err := f.retRef.Resolve(f.parent)
		if err != nil {
			return err
		}

		f.retType = retType
	}

	for _, param := range f.params {
		paramType, err := param.Ref.Resolve(f.parent)
		if err != nil {
			return err
		}

		param.Type = paramType
	}

	return nil
}

func (f *Function) FinalType() (Definition, error) {
	return f, nil
}

func (f *Function) objects() []Definition {
	return []Definition{f}
}

// -----------------------------------------------------------------------------

// Callback is a function-valued type definition: the signature of a script
// callable that native code can hold and invoke.  Unlike a plain function, a
// callback is a type.
type Callback struct {
	Function
}

// NewCallback creates a new callback type with an optional return-type
// reference and the given parameters.
func NewCallback(source report.Location, attributes Attributes, name string, retRef TypeRef, params []*Param) *Callback {
	c := &Callback{
		Function: Function{
			defnBase: newDefnBase(KindCallback, source, attributes, name),
			retRef:   retRef,
			params:   params,
		},
	}

	c.isType = true
	return c
}

func (c *Callback) FinalType() (Definition, error) {
	return c, nil
}

// modelName returns the explicit `binding_model` attribute if there is one,
// else "callback".
func (c *Callback) modelName() (string, error) {
	if name, ok := c.attributes.Get("binding_model"); ok {
		return name, nil
	}

	return "callback", nil
}

func (c *Callback) objects() []Definition {
	return []Definition{c}
}
