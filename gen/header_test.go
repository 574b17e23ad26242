package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlglue/binding"
	"idlglue/cpputil"
	"idlglue/idl"
	"idlglue/report"
	"idlglue/syntax"
)

func TestMain(m *testing.M) {
	report.InitReporter(report.LogLevelSilent)
	os.Exit(m.Run())
}

// objectModel is a registry entry rendering class-typed values as pointers,
// so generation tests can exercise the forward-declaration path.
type objectModel struct {
	idl.BindingModel
}

func (objectModel) Name() string { return "object" }

func (objectModel) MemberTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (objectModel) ParameterTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (objectModel) ReturnTypeString(scope, t idl.Definition) (string, bool, error) {
	return cpputil.ScopedName(scope, t) + "*", false, nil
}

func (objectModel) BaseClassExpression(scope, t idl.Definition) (string, error) {
	return cpputil.ScopedName(scope, t), nil
}

func testModels() idl.Registry {
	models := binding.DefaultModels()
	models["object"] = objectModel{}
	return models
}

// parseAndFinalize parses each source into its own file record, merges them
// into one global namespace and finalizes the graph.
func parseAndFinalize(t *testing.T, sources map[string]string) (*idl.Namespace, map[string]*report.File, map[string][]idl.Definition) {
	t.Helper()

	global := idl.NewNamespace(report.Location{}, nil, "", nil)
	files := map[string]*report.File{}
	defns := map[string][]idl.Definition{}
	for name, src := range sources {
		file := report.NewFile(name)
		defs, err := syntax.NewParser(file, src).Parse()
		require.NoError(t, err)

		global.AddMembers(defs)
		files[name] = file
		defns[name] = defs
	}

	require.NoError(t, idl.Finalize(global, testModels()))
	return global, files, defns
}

const mathSource = `
namespace math {
  enum Axis {
    AXIS_X,
    AXIS_Y,
    AXIS_Z
  };

  typedef int Handle;

  %[ A 2d point. %]
  [binding_model=pod, podtype=int] class Point {
    Point(int x, int y);
    [getter, setter] int x_coord;
    [const] int length(int scale);
  };
}
`

const typesSource = `
[binding_model=pod, include="base/types.h", podtype=int] typename int;
`

func TestGenerateHeader(t *testing.T) {
	global, files, defns := parseAndFinalize(t, map[string]string{
		"math.idl":  mathSource,
		"types.idl": typesSource,
	})

	writer, err := NewHeaderGenerator("").Generate(files["math.idl"], global, defns["math.idl"])
	require.NoError(t, err)
	header := writer.String()

	assert.Contains(t, header, "#ifndef MATH_H__")
	assert.Contains(t, header, "#define MATH_H__")
	assert.Contains(t, header, "#endif  // MATH_H__")

	// The int typename is defined by the other file, so its include is
	// pulled in.
	assert.Contains(t, header, `#include "base/types.h"`)

	assert.Contains(t, header, "namespace math {")
	assert.Contains(t, header, "}  // namespace math")

	assert.Contains(t, header, "enum Axis {")
	assert.Contains(t, header, "  AXIS_X,")
	assert.Contains(t, header, "typedef int Handle;")

	assert.Contains(t, header, "/*!\n* A 2d point.\n*/")
	assert.Contains(t, header, "class Point {")
	assert.Contains(t, header, "public:")
	assert.Contains(t, header, "Point(int x, int y);")
	assert.Contains(t, header, "int length(int scale) const;")

	// The field keeps the mixed-case member name; the accessors use the
	// lower-case convention.
	assert.Contains(t, header, "int xCoord;")
	assert.Contains(t, header, "int x_coord() const { return xCoord; }")
	assert.Contains(t, header, "void set_x_coord(int x_coord) { xCoord = x_coord; }")
}

func TestGenerateForwardDeclarations(t *testing.T) {
	global, files, defns := parseAndFinalize(t, map[string]string{
		"ref.idl": `
namespace app {
  [binding_model=object] class Ref {
  };
}
`,
		"user.idl": `
namespace app {
  [binding_model=object] class User {
    Ref target;
  };
}
`,
	})

	writer, err := NewHeaderGenerator("").Generate(files["user.idl"], global, defns["user.idl"])
	require.NoError(t, err)
	header := writer.String()

	// Ref is only used through a pointer, so a forward declaration
	// suffices and no include is emitted.
	assert.Contains(t, header, "class Ref;")
	assert.NotContains(t, header, "#include")
	assert.Contains(t, header, "Ref* target;")
}

func TestGenerateOmitsEmittedTypes(t *testing.T) {
	global, files, defns := parseAndFinalize(t, map[string]string{
		"all.idl": typesSource + `
[binding_model=pod, podtype=int] class Holder {
  int value;
};
`,
	})

	writer, err := NewHeaderGenerator("").Generate(files["all.idl"], global, defns["all.idl"])
	require.NoError(t, err)

	// The int typename is defined in this same file, so no include for it.
	assert.NotContains(t, writer.String(), "#include")
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.h")

	require.NoError(t, WriteIfChanged(path, "alpha\n"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", string(content))

	// Unchanged content leaves the file alone; changed content rewrites it.
	require.NoError(t, WriteIfChanged(path, "alpha\n"))
	require.NoError(t, WriteIfChanged(path, "beta\n"))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "beta\n", string(content))
}
