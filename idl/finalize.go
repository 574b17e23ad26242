package idl

import "idlglue/report"

// Finalize turns the raw parsed forest rooted at the global namespace into a
// resolved, binding-model-annotated graph.  The steps are strictly ordered:
// namespaces merge first since every later step queries scopes, then every
// reachable definition resolves its type references, then every type is
// assigned its binding model from the registry.  After Finalize returns nil
// the graph is immutable and read-only for all consumers.
func Finalize(global *Namespace, models Registry) error {
	mergeNamespaces(global)

	// Preorder: containers before their contents.  Array and nullable
	// variants materialized as a side effect of resolution are not in this
	// list; they are assigned recursively along with their owner.
	objs := global.objects()

	for _, obj := range objs {
		if err := obj.ResolveTypeReferences(); err != nil {
			return err
		}
	}

	for _, obj := range objs {
		if obj.IsType() {
			if err := assignBindingModel(obj, models); err != nil {
				return err
			}
		}
	}

	return nil
}

// assignBindingModel assigns a type its binding model by registry name, then
// recurses into the array and nullable variants materialized on it during
// resolution.  Assignment is idempotent: a variant reached through several
// owners is only assigned once.
func assignBindingModel(d Definition, models Registry) error {
	b := d.base()
	if b.model != nil {
		return nil
	}

	name, err := d.modelName()
	if err != nil {
		return err
	}

	model, ok := models[name]
	if !ok {
		return &report.UnknownBindingModelError{Name: name, Defn: d.Repr(), Loc: d.Source()}
	}

	b.model = model

	for _, array := range ArrayVariants(d) {
		if err := assignBindingModel(array, models); err != nil {
			return err
		}
	}

	if b.nullable != nil && Definition(b.nullable) != d {
		if err := assignBindingModel(b.nullable, models); err != nil {
			return err
		}
	}

	return nil
}
