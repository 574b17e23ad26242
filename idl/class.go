package idl

import "idlglue/report"

// Class is a class definition: a type and a scope, with an ordered member
// list and at most one base class (single inheritance).  The base starts out
// as an unresolved reference and is committed during finalization, after the
// cycle and non-class checks pass.
type Class struct {
	defnBase

	baseRef  TypeRef
	baseType Definition

	members []Definition
	scope   *lookUpScope

	state resolveState
}

// NewClass creates a new class with an optional base-class reference and the
// given declared members, setting itself as their parent.
func NewClass(source report.Location, attributes Attributes, name string, baseRef TypeRef, members []Definition) *Class {
	c := &Class{
		defnBase: newDefnBase(KindClass, source, attributes, name),
		baseRef:  baseRef,
		members:  members,
		scope:    &lookUpScope{},
	}

	c.isType = true
	c.isScope = true
	c.scope.addMembers(members)
	for _, member := range members {
		member.base().parent = c
	}

	return c
}

// Members returns the class's declared members in order.
func (c *Class) Members() []Definition { return c.members }

// BaseType returns the resolved base class, or nil if the class has no base.
// The base is only available once the class's references have resolved.
func (c *Class) BaseType() Definition { return c.baseType }

// ResolveTypeReferences resolves the base-class reference against the
// class's enclosing scope.  The candidate base is checked for chain cycles
// before being committed, since a committed cycle would make every later
// traversal loop forever, and its final type must be a class.
func (c *Class) ResolveTypeReferences() error {
	if c.state != unresolved {
		return nil
	}

	c.state = resolving
	defer func() { c.state = resolved }()

	if c.baseRef == nil {
		return nil
	}

	base, err := c.baseRef.Resolve(c.parent)
	if err != nil {
		return err
	}

	if checkTypeInChain(base, c) {
		return &report.CircularTypeError{Type: c.Repr(), Through: base.Repr(), Loc: c.source}
	}

	final, err := base.FinalType()
	if err != nil {
		return err
	}

	if final.Kind() != KindClass {
		return &report.DerivingFromNonClassError{Class: c.name, Base: base.Repr(), Loc: c.source}
	}

	c.baseType = base
	return nil
}

// LookUpType looks a type up among the class's own members first, then
// through its base-class chain.  The lookup resolves the class if needed, so
// the base chain is available.
func (c *Class) LookUpType(name string) (Definition, error) {
	if err := c.ResolveTypeReferences(); err != nil {
		return nil, err
	}

	if typeDefn := c.scope.lookUpType(name); typeDefn != nil {
		return typeDefn, nil
	}

	if c.baseType != nil {
		return c.baseType.LookUpType(name)
	}

	return nil, nil
}

func (c *Class) FindScopes(name string) ([]Definition, error) {
	if err := c.ResolveTypeReferences(); err != nil {
		return nil, err
	}

	scopes := c.scope.findScopes(name)
	if c.baseType != nil {
		baseScopes, err := c.baseType.FindScopes(name)
		if err != nil {
			return nil, err
		}

		scopes = append(scopes, baseScopes...)
	}

	return scopes, nil
}

func (c *Class) FinalType() (Definition, error) {
	return c, nil
}

// modelName returns the explicit `binding_model` attribute if there is one,
// else the base class's binding model name, else "".
func (c *Class) modelName() (string, error) {
	if name, ok := c.attributes.Get("binding_model"); ok {
		return name, nil
	}

	if err := c.ResolveTypeReferences(); err != nil {
		return "", err
	}

	if c.baseType != nil {
		return c.baseType.modelName()
	}

	return "", nil
}

func (c *Class) objects() []Definition {
	objs := []Definition{c}
	for _, member := range c.members {
		objs = append(objs, member.objects()...)
	}

	return objs
}
