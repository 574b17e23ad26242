// Package binding implements the binding models: the per-kind code
// generation tables behind the idl.BindingModel contract.  Four kinds are
// provided: pod for primitives and strings, enum for enumerated types,
// nullable for nullable decorations, and callback for function-valued types.
// The generated snippets target the NPAPI variant runtime.
package binding

import (
	"strings"

	"idlglue/idl"
	"idlglue/report"
)

// DefaultModels returns the registry of the built-in binding models, keyed
// by the names IDL authors use in `binding_model` attributes.
func DefaultModels() idl.Registry {
	return idl.Registry{
		"pod":      &PODModel{},
		"enum":     &EnumModel{},
		"nullable": &NullableModel{},
		"callback": &CallbackModel{},
	}
}

// invalidUsage builds the error for a binding model operation invoked on a
// kind that structurally cannot support it.
func invalidUsage(kind, op string) error {
	return &report.InvalidUsageError{Kind: kind, Op: op}
}

// subst expands a code template, replacing each `${key}` with its value.
// Arguments are key/value pairs, keys without the `${}` decoration.
func subst(template string, pairs ...string) string {
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i < len(pairs); i += 2 {
		oldnew = append(oldnew, "${"+pairs[i]+"}", pairs[i+1])
	}

	return strings.NewReplacer(oldnew...).Replace(template)
}

// dottedName returns a type's scoped name in dotted notation, relative to
// the global namespace, for documentation output.
func dottedName(t idl.Definition) string {
	var parts []string
	for _, scope := range idl.ParentScopeStack(t) {
		if scope.Name() != "" {
			parts = append(parts, scope.Name())
		}
	}

	return strings.Join(append(parts, t.Name()), ".")
}
