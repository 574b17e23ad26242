package idl

// resolveState tracks the deferred resolution of a definition's type
// references.  The resolving state exists so that a re-entrant call, which
// can happen when a lookup reaches the same node through a different
// traversal path, is distinguishable from a completed resolution.
type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// checkTypeInChain reports whether origin already occurs in the chain of
// committed type links starting at candidate: typedef to target, class to
// base, array to element.  An uncommitted link terminates the walk, so a
// cycle is always caught at the link that would close it, right before that
// link commits.
func checkTypeInChain(candidate, origin Definition) bool {
	for cursor := candidate; cursor != nil; {
		if cursor == origin {
			return true
		}

		switch d := cursor.(type) {
		case *Typedef:
			cursor = d.target
		case *Class:
			cursor = d.baseType
		case *Array:
			cursor = d.elem
		default:
			return false
		}
	}

	return false
}
