package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlglue/idl"
	"idlglue/report"
)

func parseSource(t *testing.T, src string) []idl.Definition {
	t.Helper()
	defs, err := NewParser(report.NewFile("test.idl"), src).Parse()
	require.NoError(t, err)
	return defs
}

const sceneSource = `
namespace scene {
  %{
#include "core/types.h"
%}

  [binding_model=pod, include="core/types.h", podtype=int] typename int;

  enum Mode {
    MODE_OFF,
    MODE_ON = 0x10,
    MODE_AUTO
  };

  typedef int Handle;

  callback void OnChange(Mode mode);

  [binding_model=pod] class Shape {
    void render();
  };

  %[ A node in the scene graph. %]
  class Node : scene::Shape {
    Node(int id);
    [getter, setter] int node_id;
    [const] int depth(int max_depth);
    void visit(OnChange handler, int[4] flags, int? parent);
  };
}
`

func TestParseRepresentativeSource(t *testing.T) {
	defs := parseSource(t, sceneSource)
	require.Len(t, defs, 1)

	ns, ok := defs[0].(*idl.Namespace)
	require.True(t, ok)
	assert.Equal(t, "scene", ns.Name())
	require.Len(t, ns.Members(), 7)

	verbatim, ok := ns.Members()[0].(*idl.Verbatim)
	require.True(t, ok)
	assert.Contains(t, verbatim.Text, `#include "core/types.h"`)

	typename, ok := ns.Members()[1].(*idl.Typename)
	require.True(t, ok)
	assert.Equal(t, "int", typename.Name())
	assert.Equal(t, idl.Attributes{
		"binding_model": "pod",
		"include":       "core/types.h",
		"podtype":       "int",
	}, typename.Attributes())

	enum, ok := ns.Members()[2].(*idl.Enum)
	require.True(t, ok)
	require.Len(t, enum.Values(), 3)
	assert.Equal(t, "MODE_OFF", enum.Values()[0].Name)
	assert.Nil(t, enum.Values()[0].Value)
	require.NotNil(t, enum.Values()[1].Value)
	assert.Equal(t, 16, *enum.Values()[1].Value)
	assert.Equal(t, []int{0, 16, 17}, enum.NumericValues())

	typedef, ok := ns.Members()[3].(*idl.Typedef)
	require.True(t, ok)
	assert.Equal(t, "Handle", typedef.Name())

	callback, ok := ns.Members()[4].(*idl.Callback)
	require.True(t, ok)
	assert.Equal(t, "OnChange", callback.Name())
	require.Len(t, callback.Params(), 1)
	assert.Equal(t, "mode", callback.Params()[0].Name)

	shape, ok := ns.Members()[5].(*idl.Class)
	require.True(t, ok)
	assert.Equal(t, "Shape", shape.Name())

	class, ok := ns.Members()[6].(*idl.Class)
	require.True(t, ok)
	assert.Equal(t, "Node", class.Name())
	docs, hasDocs := class.Attributes().Get("__docs")
	require.True(t, hasDocs)
	assert.Contains(t, docs, "A node in the scene graph.")
	require.Len(t, class.Members(), 4)

	ctor, ok := class.Members()[0].(*idl.Function)
	require.True(t, ok)
	assert.Equal(t, "Node", ctor.Name())
	assert.True(t, ctor.IsConstructor())

	field, ok := class.Members()[1].(*idl.Variable)
	require.True(t, ok)
	assert.Equal(t, "node_id", field.Name())
	assert.True(t, field.Attributes().Has("getter"))
	assert.True(t, field.Attributes().Has("setter"))

	method, ok := class.Members()[2].(*idl.Function)
	require.True(t, ok)
	assert.Equal(t, "depth", method.Name())
	assert.True(t, method.Attributes().Has("const"))
	assert.False(t, method.IsConstructor())

	visit, ok := class.Members()[3].(*idl.Function)
	require.True(t, ok)
	require.Len(t, visit.Params(), 3)
	assert.Equal(t, "handler", visit.Params()[0].Name)
	assert.Equal(t, "flags", visit.Params()[1].Name)
	assert.Equal(t, "parent", visit.Params()[2].Name)
}

func TestParsedSourceFinalizes(t *testing.T) {
	defs := parseSource(t, sceneSource)
	global := idl.NewNamespace(report.Location{}, nil, "", defs)
	void := idl.NewTypename(report.Location{}, idl.Attributes{"binding_model": "pod", "podtype": "void"}, "void")
	global.AddMembers([]idl.Definition{void})

	models := idl.Registry{}
	for _, name := range []string{"pod", "enum", "callback", "nullable", "sized_array", "unsized_array"} {
		models[name] = &recordingModel{name: name}
	}

	require.NoError(t, idl.Finalize(global, models))

	ns := defs[0].(*idl.Namespace)
	class := ns.Members()[6].(*idl.Class)
	base := class.BaseType()
	require.NotNil(t, base)
	assert.Equal(t, "Shape", base.Name())

	visit := class.Members()[3].(*idl.Function)
	assert.Equal(t, idl.KindCallback, visit.Params()[0].Type.Kind())
	assert.Equal(t, idl.KindArray, visit.Params()[1].Type.Kind())
	assert.Equal(t, idl.KindNullable, visit.Params()[2].Type.Kind())
}

// recordingModel satisfies the registry for finalization-only tests.
type recordingModel struct {
	idl.BindingModel

	name string
}

func (m *recordingModel) Name() string { return m.name }

func TestParseScopedAndQualifiedTypes(t *testing.T) {
	defs := parseSource(t, `
typename Thing;
const scene::Thing item;
unsigned int count;
`)

	require.Len(t, defs, 3)
	item, ok := defs[1].(*idl.Variable)
	require.True(t, ok)
	assert.Equal(t, "item", item.Name())

	count, ok := defs[2].(*idl.Variable)
	require.True(t, ok)
	assert.Equal(t, "count", count.Name())
}

func TestParseParamArraySpelling(t *testing.T) {
	// Array brackets are a type postfix, so they come before the parameter
	// name.  The C-style suffix after the name is not part of the grammar.
	defs := parseSource(t, `callback void F(int[4] flags, int? parent);`)
	require.Len(t, defs, 1)

	callback, ok := defs[0].(*idl.Callback)
	require.True(t, ok)
	require.Len(t, callback.Params(), 2)
	assert.Equal(t, "flags", callback.Params()[0].Name)
	assert.Equal(t, "parent", callback.Params()[1].Name)

	var synErr *report.SyntaxError
	_, err := NewParser(report.NewFile("bad.idl"), `callback void G(int flags[4]);`).Parse()
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Message, "unexpected token")
}

func TestParseErrors(t *testing.T) {
	var synErr *report.SyntaxError

	_, err := NewParser(report.NewFile("bad.idl"), "class ;").Parse()
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Message, "unexpected token")

	_, err = NewParser(report.NewFile("bad.idl"), "class C {").Parse()
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Message, "unexpected end of file")

	_, err = NewParser(report.NewFile("bad.idl"), "%{ never closed").Parse()
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Message, "unterminated block")
}

func TestLexerScopesAndStrings(t *testing.T) {
	lexer := NewLexer(report.NewFile("lex.idl"), `a::b : "x\ty"`)

	kinds := []int{TOK_ID, TOK_SCOPE, TOK_ID, TOK_COLON, TOK_STRING, TOK_EOF}
	values := []string{"a", "::", "b", ":", "x\ty", ""}
	for i, kind := range kinds {
		tok, err := lexer.NextToken()
		require.NoError(t, err)
		assert.Equal(t, kind, tok.Kind)
		assert.Equal(t, values[i], tok.Value)
	}
}
