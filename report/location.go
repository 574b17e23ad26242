package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// File stores the filenames associated with one IDL source file.  Generation
// back ends derive their output names from it: the glue header for an IDL
// file `foo.idl` is `foo.h`.
type File struct {
	// The path of the source IDL file.
	Source string

	// The base name of the source file, without directory or extension.
	Basename string

	// The name of the C++ header file containing the definitions of the types
	// declared in this IDL file.
	Header string
}

// NewFile creates the file record for the given IDL source path.
func NewFile(path string) *File {
	base := filepath.Base(path)
	if ndx := strings.IndexByte(base, '.'); ndx >= 0 {
		base = base[:ndx]
	}

	return &File{
		Source:   path,
		Basename: base,
		Header:   base + ".h",
	}
}

func (f *File) String() string {
	return f.Source
}

// Location identifies the source position of an IDL definition or type
// reference.  Only the line is tracked: the IDL grammar never needs
// sub-line precision for diagnostics.
type Location struct {
	// The source IDL file containing the definition.
	File *File

	// The source line of the definition.
	Line int
}

func (loc Location) String() string {
	if loc.File == nil {
		return "<builtin>"
	}

	return fmt.Sprintf("%s:%d", loc.File.Source, loc.Line)
}
