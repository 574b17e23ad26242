package idl

import "idlglue/report"

// Typedef is a transparent type alias.  A typedef is both a type and a
// scope: type and scope queries are forwarded to the aliased target, and
// FinalType follows the alias chain to the first non-typedef node.
type Typedef struct {
	defnBase

	ref    TypeRef
	target Definition

	state resolveState
}

// NewTypedef creates a new typedef aliasing the referenced type.
func NewTypedef(source report.Location, attributes Attributes, name string, ref TypeRef) *Typedef {
	t := &Typedef{
		defnBase: newDefnBase(KindTypedef, source, attributes, name),
		ref:      ref,
	}

	t.isType = true
	t.isScope = true
	return t
}

// Target returns the resolved aliased type, available once the typedef's
// references have resolved.
func (t *Typedef) Target() Definition { return t.target }

// ResolveTypeReferences resolves the aliased type against the typedef's
// enclosing scope, checking the candidate for chain cycles before committing
// it.
func (t *Typedef) ResolveTypeReferences() error {
	if t.state != unresolved {
		return nil
	}

	t.state = resolving
	defer func() { t.state = resolved }()

	target, err := t.ref.Resolve(t.parent)
	if err != nil {
		return err
	}

	if checkTypeInChain(target, t) {
		return &report.CircularTypeError{Type: t.Repr(), Through: target.Repr(), Loc: t.source}
	}

	t.target = target
	return nil
}

func (t *Typedef) LookUpType(name string) (Definition, error) {
	if err := t.ResolveTypeReferences(); err != nil {
		return nil, err
	}

	if t.target == nil {
		return nil, nil
	}

	return t.target.LookUpType(name)
}

func (t *Typedef) FindScopes(name string) ([]Definition, error) {
	if err := t.ResolveTypeReferences(); err != nil {
		return nil, err
	}

	if t.target == nil {
		return nil, nil
	}

	return t.target.FindScopes(name)
}

func (t *Typedef) FinalType() (Definition, error) {
	if err := t.ResolveTypeReferences(); err != nil {
		return nil, err
	}

	if t.target == nil {
		return t, nil
	}

	return t.target.FinalType()
}

// modelName returns the explicit `binding_model` attribute if there is one,
// else the target's binding model name.  Delegation is by name, not by the
// target's assigned model, so the registry indirection stays uniform.
func (t *Typedef) modelName() (string, error) {
	if name, ok := t.attributes.Get("binding_model"); ok {
		return name, nil
	}

	if err := t.ResolveTypeReferences(); err != nil {
		return "", err
	}

	if t.target == nil {
		return "", nil
	}

	return t.target.modelName()
}

func (t *Typedef) objects() []Definition {
	return []Definition{t}
}
