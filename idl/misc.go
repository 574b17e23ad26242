package idl

import "idlglue/report"

// Typename declares a name to be a type without describing it: the escape
// hatch binding an externally defined C++ type into the IDL type system.
// Builtin primitives are typenames carrying a `podtype` attribute.
type Typename struct {
	defnBase
}

// NewTypename creates a new typename declaration.
func NewTypename(source report.Location, attributes Attributes, name string) *Typename {
	t := &Typename{
		defnBase: newDefnBase(KindTypename, source, attributes, name),
	}

	t.isType = true
	return t
}

func (t *Typename) FinalType() (Definition, error) {
	return t, nil
}

func (t *Typename) objects() []Definition {
	return []Definition{t}
}

// -----------------------------------------------------------------------------

// Verbatim is a raw text block passed through to the output unmodified.  The
// `verbatim` attribute selects which output section receives the text.
type Verbatim struct {
	defnBase

	// The raw text of the block.
	Text string
}

// NewVerbatim creates a new verbatim block.
func NewVerbatim(source report.Location, attributes Attributes, text string) *Verbatim {
	return &Verbatim{
		defnBase: newDefnBase(KindVerbatim, source, attributes, ""),
		Text:     text,
	}
}

func (v *Verbatim) FinalType() (Definition, error) {
	return v, nil
}

func (v *Verbatim) objects() []Definition {
	return []Definition{v}
}
