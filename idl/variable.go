package idl

import "idlglue/report"

// Variable is a typed field or global variable definition.  A variable is
// neither a type nor a scope.
type Variable struct {
	defnBase

	ref TypeRef
	typ Definition

	state resolveState
}

// NewVariable creates a new variable of the referenced type.
func NewVariable(source report.Location, attributes Attributes, name string, ref TypeRef) *Variable {
	return &Variable{
		defnBase: newDefnBase(KindVariable, source, attributes, name),
		ref:      ref,
	}
}

// Type returns the variable's resolved type, available once the variable's
// references have resolved.
func (v *Variable) Type() Definition { return v.typ }

func (v *Variable) ResolveTypeReferences() error {
	if v.state != unresolved {
		return nil
	}

	v.state = resolving
	defer func() { v.state = resolved }()

	typ, err := v.ref.Resolve(v.parent)
	if err != nil {
		return err
	}

	v.typ = typ
	return nil
}

func (v *Variable) FinalType() (Definition, error) {
	return v, nil
}

func (v *Variable) objects() []Definition {
	return []Definition{v}
}
