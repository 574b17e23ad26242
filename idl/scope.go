package idl

// lookUpScope is the shared lookup state of a scope definition: the list of
// definitions visible for name lookup, with a memoized name-to-type cache.
// Namespace merging repoints several Namespace definitions at one shared
// lookUpScope, so a mutation through any alias is visible through all of
// them.  Every mutation of the member list invalidates the cache.
type lookUpScope struct {
	members    []Definition
	typesCache map[string]Definition
}

func (s *lookUpScope) addMembers(members []Definition) {
	s.members = append(s.members, members...)
	s.resetCache()
}

func (s *lookUpScope) resetCache() {
	s.typesCache = nil
}

// lookUpType looks up a type by name among the scope's visible members.
func (s *lookUpScope) lookUpType(name string) Definition {
	if s.typesCache == nil {
		s.typesCache = make(map[string]Definition)
		for _, member := range s.members {
			if member.IsType() {
				s.typesCache[member.Name()] = member
			}
		}
	}

	return s.typesCache[name]
}

// findScopes finds all visible scope members matching a name, in declaration
// order.
func (s *lookUpScope) findScopes(name string) []Definition {
	var scopes []Definition
	for _, member := range s.members {
		if member.IsScope() && member.Name() == name {
			scopes = append(scopes, member)
		}
	}

	return scopes
}

// -----------------------------------------------------------------------------

// mergeNamespaces makes all same-named namespace fragments declared directly
// inside one enclosing namespace behave as one logical scope.  For each group
// of fragments sharing a name, the first fragment's lookup scope becomes the
// shared scope: its member list is copied before being extended with the
// other fragments' declared members, and every fragment is repointed at it.
// Each fragment keeps its own declared member list intact for emission.
//
// The merge then recurses through the merged scopes, so that nested
// same-named namespaces split across different fragments of their parent are
// merged as well.
func mergeNamespaces(ns *Namespace) {
	var names []string
	groups := make(map[string][]*Namespace)
	for _, member := range ns.scope.members {
		if child, ok := member.(*Namespace); ok {
			if _, seen := groups[child.name]; !seen {
				names = append(names, child.name)
			}

			groups[child.name] = append(groups[child.name], child)
		}
	}

	for _, name := range names {
		group := groups[name]

		if len(group) > 1 {
			shared := group[0].scope
			shared.members = append([]Definition{}, shared.members...)
			for _, fragment := range group[1:] {
				shared.addMembers(fragment.members)
				fragment.scope = shared
			}

			shared.resetCache()
		}

		// The fragments now share one scope, so one recursion per group
		// covers the nested namespaces of all of them.
		mergeNamespaces(group[0])
	}
}
