package idl

import "idlglue/report"

// Namespace is a named scope definition.  A namespace is a scope but not a
// type.  The same namespace name may be declared several times inside one
// enclosing scope: each declaration is a separate Namespace definition
// keeping its own declared member list, but after namespace merging all
// fragments share one lookup scope.
type Namespace struct {
	defnBase

	members []Definition
	scope   *lookUpScope
}

// NewNamespace creates a new namespace with the given declared members,
// setting itself as their parent.  The global namespace is a Namespace with
// an empty name and no parent.
func NewNamespace(source report.Location, attributes Attributes, name string, members []Definition) *Namespace {
	ns := &Namespace{
		defnBase: newDefnBase(KindNamespace, source, attributes, name),
		scope:    &lookUpScope{},
	}

	ns.isScope = true
	ns.AddMembers(members)
	return ns
}

// AddMembers appends declarations to the namespace, adopting them as
// children.  If the namespace has been merged with other fragments, the new
// members become visible through all of them.
func (ns *Namespace) AddMembers(members []Definition) {
	for _, member := range members {
		member.base().parent = ns
	}

	ns.members = append(ns.members, members...)
	ns.scope.addMembers(members)
}

// Members returns the namespace's own declared members, not including those
// of merged sibling fragments.
func (ns *Namespace) Members() []Definition { return ns.members }

func (ns *Namespace) LookUpType(name string) (Definition, error) {
	return ns.scope.lookUpType(name), nil
}

func (ns *Namespace) FindScopes(name string) ([]Definition, error) {
	return ns.scope.findScopes(name), nil
}

func (ns *Namespace) FinalType() (Definition, error) {
	return ns, nil
}

func (ns *Namespace) objects() []Definition {
	objs := []Definition{ns}
	for _, member := range ns.members {
		objs = append(objs, member.objects()...)
	}

	return objs
}
