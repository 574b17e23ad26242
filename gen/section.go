// Package gen contains the C++ header emitter: a sectioned file writer that
// lets code be assembled out of order, and the generator walking a file's
// definitions to produce its glue header.
package gen

import (
	"regexp"
	"strings"

	"idlglue/cpputil"
)

// sectionItem is one entry of a section's body: either a literal code line or
// a nested section rendered in place.
type sectionItem struct {
	line    string
	section *Section
}

// Section is a buffer of code that can be filled out of order.  A section
// holds literal lines and nested sections interleaved at the positions they
// were created, so code for one can be added after later siblings have
// already been emitted.  It also tracks indentation and opens and closes
// namespaces lazily, so pushing, popping and re-pushing the same namespace
// produces no extra code.
type Section struct {
	indentString string
	indent       int

	items    []sectionItem
	sections map[string]*Section

	// The namespaces requested (front end) and the ones actually opened in
	// the emitted code (back end).  They are reconciled right before any code
	// is appended.
	feNamespaces []string
	beNamespaces []string
	needValidate bool
}

// NewSection creates a section indenting its code by the given number of
// levels.
func NewSection(indentString string, indent int) *Section {
	return &Section{
		indentString: indentString,
		indent:       indent,
		sections:     map[string]*Section{},
	}
}

// EmitSection emits an already-created section at the current position.
func (s *Section) EmitSection(child *Section) {
	s.validateNamespace()
	s.items = append(s.items, sectionItem{section: child})
}

// CreateUnlinkedSection creates a named section without emitting it.  Its
// code will not appear in the output unless EmitSection is called.
func (s *Section) CreateUnlinkedSection(name string) *Section {
	child := NewSection(s.indentString, s.indent)
	s.sections[name] = child
	return child
}

// CreateSection creates a named section and emits it at the current position.
func (s *Section) CreateSection(name string) *Section {
	s.validateNamespace()
	child := s.CreateUnlinkedSection(name)
	s.EmitSection(child)
	return child
}

// GetSection returns the named section, or nil if it does not exist.
func (s *Section) GetSection(name string) *Section {
	return s.sections[name]
}

// PushNamespace opens a namespace at the current position.
func (s *Section) PushNamespace(name string) {
	s.needValidate = true
	s.feNamespaces = append(s.feNamespaces, name)
}

// PopNamespace closes the innermost open namespace, returning its name.
func (s *Section) PopNamespace() string {
	s.needValidate = true
	name := s.feNamespaces[len(s.feNamespaces)-1]
	s.feNamespaces = s.feNamespaces[:len(s.feNamespaces)-1]
	return name
}

func commonPrefixLen(a, b []string) int {
	l := len(a)
	if len(b) < l {
		l = len(b)
	}

	for i := 0; i < l; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return l
}

// validateNamespace reconciles the requested namespace stack with the opened
// one, emitting the necessary opening and closing lines.
func (s *Section) validateNamespace() {
	if !s.needValidate {
		return
	}

	s.needValidate = false
	common := commonPrefixLen(s.feNamespaces, s.beNamespaces)
	for len(s.beNamespaces) > common {
		name := s.beNamespaces[len(s.beNamespaces)-1]
		s.beNamespaces = s.beNamespaces[:len(s.beNamespaces)-1]
		s.items = append(s.items, sectionItem{line: "}  // namespace " + name})
	}

	for _, name := range s.feNamespaces[common:] {
		s.beNamespaces = append(s.beNamespaces, name)
		s.items = append(s.items, sectionItem{line: "namespace " + name + " {"})
	}
}

var namespaceLineRE = regexp.MustCompile(`\bnamespace\b`)

// EmitCode emits code at the current position.  The code is split into lines
// and re-indented to the section's indentation, tracking braces so nested
// blocks in multi-line snippets indent naturally.  Lines ending in `:` (access
// specifiers, labels) outdent by one level less a space.
func (s *Section) EmitCode(code string) {
	s.validateNamespace()
	for _, line := range strings.Split(code, "\n") {
		line = strings.Trim(line, "\t\r ")
		if line == "" {
			s.items = append(s.items, sectionItem{line: ""})
		} else {
			adjust := 0
			chars := ""
			if line[0] == '}' {
				adjust--
			}

			if line[len(line)-1] == ':' {
				adjust--
				chars = " "
			}

			levels := s.indent + adjust
			if levels < 0 {
				levels = 0
			}

			indented := strings.Repeat(s.indentString, levels) + chars + line
			s.items = append(s.items, sectionItem{line: indented})
		}

		if !namespaceLineRE.MatchString(line) {
			s.indent += strings.Count(line, "{") - strings.Count(line, "}")
		}
	}
}

// IsEmpty returns whether the section has no contents.
func (s *Section) IsEmpty() bool {
	return len(s.items) == 0
}

// AddPrefix adds one raw line at the beginning of the section.
func (s *Section) AddPrefix(code string) {
	s.items = append([]sectionItem{{line: code}}, s.items...)
}

// Lines renders the section's full contents, including nested sections, as a
// list of code lines.  Any namespaces still open are closed first.
func (s *Section) Lines() []string {
	s.feNamespaces = nil
	s.needValidate = true
	s.validateNamespace()

	var lines []string
	for _, item := range s.items {
		if item.section != nil {
			lines = append(lines, item.section.Lines()...)
		} else {
			lines = append(lines, item.line)
		}
	}

	return lines
}

// -----------------------------------------------------------------------------

// FileWriter assembles one C++ output file: a main section for the code, an
// include list, and for header files the surrounding header guard.
type FileWriter struct {
	filename    string
	isHeader    bool
	headerToken string

	includeSection *Section
	mainSection    *Section
}

// NewFileWriter creates a writer for the given output path.  Header files get
// a guard token derived from the file name.
func NewFileWriter(filename string, isHeader bool) *FileWriter {
	return &FileWriter{
		filename:       filename,
		isHeader:       isHeader,
		headerToken:    cpputil.HeaderToken(filename),
		includeSection: NewSection("  ", 0),
		mainSection:    NewSection("  ", 0),
	}
}

// Filename returns the output path the writer renders to.
func (w *FileWriter) Filename() string { return w.filename }

// AddInclude adds an include line to the file.  System includes use the
// `<file.h>` syntax.
func (w *FileWriter) AddInclude(name string, system bool) {
	if system {
		w.includeSection.EmitCode("#include <" + name + ">")
	} else {
		w.includeSection.EmitCode("#include \"" + name + "\"")
	}
}

// CreateSection creates a named section within the main section.
func (w *FileWriter) CreateSection(name string) *Section {
	return w.mainSection.CreateSection(name)
}

// GetSection returns the named section of the main section, or nil.
func (w *FileWriter) GetSection(name string) *Section {
	return w.mainSection.GetSection(name)
}

// PushNamespace opens a namespace in the main section.
func (w *FileWriter) PushNamespace(name string) {
	w.mainSection.PushNamespace(name)
}

// PopNamespace closes the innermost namespace of the main section.
func (w *FileWriter) PopNamespace() string {
	return w.mainSection.PopNamespace()
}

// EmitCode emits code at the current position of the main section.
func (w *FileWriter) EmitCode(code string) {
	w.mainSection.EmitCode(code)
}

// Lines renders the complete file: header guard, includes, then the main
// section.
func (w *FileWriter) Lines() []string {
	var lines []string
	if w.isHeader {
		lines = append(lines, "#ifndef "+w.headerToken, "#define "+w.headerToken)
	}

	if includeLines := w.includeSection.Lines(); len(includeLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, includeLines...)
	}

	if mainLines := w.mainSection.Lines(); len(mainLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, mainLines...)
	}

	if w.isHeader {
		lines = append(lines, "", "#endif  // "+w.headerToken)
	}

	return lines
}

// String renders the complete file contents.
func (w *FileWriter) String() string {
	return strings.Join(w.Lines(), "\n") + "\n"
}

// Write writes the rendered contents to the writer's file, leaving the file
// untouched if the contents have not changed.
func (w *FileWriter) Write() error {
	return WriteIfChanged(w.filename, w.String())
}
