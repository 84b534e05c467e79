package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/keymap"
)

const tinyYAML = `format_version: "1.2.0"
layout:
  name: tiny
  keys:
    AE01:
      events:
        "": "1"
        Shift: "!"
keymap:
  bindings:
    - keys: "C-!"
      command: control-bang
labels:
  control-bang: bang
`

const tinyJSON = `{
  "keymap": {"name": "json", "bindings": [{"keys": "C-x C-c", "command": "quit"}]},
  "labels": {"quit": "bye"}
}`

func mapLoader(files map[string]string) *Loader {
	mfs := fstest.MapFS{}
	for name, data := range files {
		mfs[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return NewLoader(WithFS(FS{mfs}))
}

func TestLoadTOMLFile(t *testing.T) {
	doc, err := NewLoader().LoadFile("testdata/mini.toml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/mini.toml", doc.Source)
	assert.Equal(t, "1.0", doc.FormatVersion)

	in, err := doc.Inputs()
	require.NoError(t, err)
	require.NoError(t, in.Validate())

	assert.Equal(t, "mini", in.Geometry.Name)
	require.Len(t, in.Geometry.Rows, 2)
	assert.InDelta(t, 5.0, in.Geometry.Rows[0].MarginBottom, 1e-9)
	assert.InDelta(t, 10.0, in.Geometry.Rows[0].Keys[1].MarginLeft, 1e-9)

	kc, ok := in.Layout.Get("AE01")
	require.True(t, ok)
	var order []key.Modifiers
	for mods := range kc.Events.Keys() {
		order = append(order, mods)
	}
	assert.Equal(t, []key.Modifiers{
		key.None,
		key.NewModifiers(key.Control),
		key.NewModifiers(key.Shift),
	}, order)

	assert.Equal(t, "The letter q", in.EventLabels.Label("q"))
	assert.Equal(t, "one!", in.Labels.Label("one"))
	assert.Equal(t, "SIC", in.Labels.Label("self-insert-command"), "default labels kept")

	be, err := keymap.NewByEvent(in.KeyMap)
	require.NoError(t, err)
	kb := keyboard.Assemble(in.Geometry, in.Layout, be, in.Options())
	conflicts := kb.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, key.Code("AE01"), conflicts[0].Code)
}

func TestLoadYAML(t *testing.T) {
	doc, err := mapLoader(map[string]string{"tiny.yaml": tinyYAML}).LoadFile("tiny.yaml")
	require.NoError(t, err)

	in, err := doc.Inputs()
	require.NoError(t, err)

	assert.Equal(t, "ansi-compact", in.Geometry.Name, "geometry falls back to default")
	assert.Equal(t, "tiny", in.Layout.Name)
	assert.Equal(t, 1, in.Layout.Len())
	assert.Equal(t, "bang", in.Labels.Label("control-bang"))

	b, ok := in.KeyMap.Lookup(key.NewModdedEvent("!", key.Control))
	require.True(t, ok)
	cmd, _ := b.Command()
	assert.Equal(t, "control-bang", cmd)
}

func TestLoadJSON(t *testing.T) {
	doc, err := mapLoader(map[string]string{"keys.json": tinyJSON}).LoadFile("keys.json")
	require.NoError(t, err)

	in, err := doc.Inputs()
	require.NoError(t, err)
	assert.Equal(t, "json", in.KeyMap.Name)
	_, ok := in.KeyMap.LookupSequence(key.MustParseSequence("C-x C-c"))
	assert.True(t, ok)
}

func TestLoadErrors(t *testing.T) {
	l := mapLoader(map[string]string{
		"bad.json":     "{\n  \"labels\": {\"a\": }\n}",
		"unknown.toml": "colour = \"red\"\n",
		"unknown.yaml": "colour: red\n",
		"v2.toml":      "format_version = \"2.0.0\"\n",
		"vbad.yaml":    "format_version: banana\n",
		"keys.ini":     "",
	})

	_, err := l.LoadFile("bad.json")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.json", pe.Path)
	assert.Equal(t, 2, pe.Line)

	_, err = l.LoadFile("unknown.toml")
	assert.ErrorAs(t, err, &pe)

	_, err = l.LoadFile("unknown.yaml")
	assert.ErrorAs(t, err, &pe)

	_, err = l.LoadFile("v2.toml")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = l.LoadFile("vbad.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = l.LoadFile("keys.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = l.LoadFile("missing.toml")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestEmptyDocumentUsesDefaults(t *testing.T) {
	doc, err := mapLoader(map[string]string{"empty.yaml": ""}).LoadFile("empty.yaml")
	require.NoError(t, err)

	in, err := doc.Inputs()
	require.NoError(t, err)
	def := keyboard.DefaultInputs()
	assert.Equal(t, def.Geometry, in.Geometry)
	assert.Equal(t, def.Layout.Len(), in.Layout.Len())
	assert.Equal(t, def.KeyMap.Len(), in.KeyMap.Len())

	var nilDoc *Document
	in, err = nilDoc.Inputs()
	require.NoError(t, err)
	assert.Equal(t, def.Geometry, in.Geometry)
}

func TestInvalidDocument(t *testing.T) {
	doc := &Document{
		Source: "broken.toml",
		Layout: &LayoutDoc{Keys: map[string]KeyCapDoc{
			"AE01": {Events: map[string]string{"Bogus": "1"}},
		}},
		KeyMap: &KeyMapDoc{Bindings: []BindingDoc{
			{Keys: "C-x", Command: "exchange"},
			{Keys: "C-x C-f", Command: "find-file"},
		}},
	}

	_, err := doc.Inputs()
	require.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, key.ErrInvalidSpec)
	assert.ErrorIs(t, err, keymap.ErrPrefixConflict)
	assert.Contains(t, err.Error(), "broken.toml")
}

func TestDuplicateModifierSpecs(t *testing.T) {
	doc := &Document{
		Source: "dup.toml",
		Layout: &LayoutDoc{Keys: map[string]KeyCapDoc{
			"AB01": {Events: map[string]string{"": "z", "C": "x", "ctrl": "y"}},
		}},
	}

	for range 5 {
		_, err := doc.Inputs()
		require.ErrorIs(t, err, ErrInvalidDocument)
		require.ErrorIs(t, err, ErrDuplicateModifiers)
		assert.Contains(t, err.Error(), `"C" and "ctrl"`)
	}
}

func TestLoadFilesMerge(t *testing.T) {
	l := mapLoader(map[string]string{
		"base.yaml": tinyYAML,
		"user.json": tinyJSON,
		"over.toml": "[labels]\nquit = \"exit\"\n\n[[keymap.bindings]]\nkeys = \"C-!\"\ncommand = \"other\"\n",
	})

	doc, err := l.LoadFiles("base.yaml", "user.json", "over.toml")
	require.NoError(t, err)
	assert.Equal(t, "base.yaml,user.json,over.toml", doc.Source)
	assert.Equal(t, "1.2.0", doc.FormatVersion)
	assert.Equal(t, "json", doc.KeyMap.Name)
	require.Len(t, doc.KeyMap.Bindings, 3)
	assert.Equal(t, "exit", doc.Labels["quit"])
	assert.Equal(t, "bang", doc.Labels["control-bang"])

	in, err := doc.Inputs()
	require.NoError(t, err)
	b, ok := in.KeyMap.Lookup(key.NewModdedEvent("!", key.Control))
	require.True(t, ok)
	cmd, _ := b.Command()
	assert.Equal(t, "other", cmd, "later binding wins")
	assert.Equal(t, "tiny", in.Layout.Name)

	_, err = l.LoadFiles("base.yaml", "missing.yaml")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestMergeLayoutKeys(t *testing.T) {
	a := &Document{Layout: &LayoutDoc{
		Name:        "a",
		Keys:        map[string]KeyCapDoc{"AE01": {Label: "one"}, "AE02": {Label: "two"}},
		EventLabels: map[string]string{"1": "one"},
	}}
	b := &Document{Layout: &LayoutDoc{
		Keys:        map[string]KeyCapDoc{"AE02": {Label: "TWO"}},
		EventLabels: map[string]string{"2": "two"},
	}}

	m := Merge(a, nil, b)
	assert.Equal(t, "a", m.Layout.Name)
	assert.Equal(t, "one", m.Layout.Keys["AE01"].Label)
	assert.Equal(t, "TWO", m.Layout.Keys["AE02"].Label)
	assert.Len(t, m.Layout.EventLabels, 2)

	assert.Equal(t, "two", a.Layout.Keys["AE02"].Label, "inputs are not modified")
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	s := string(data)
	for _, want := range []string{`"format_version"`, `"geometry"`, `"keymap"`, `"margin_bottom"`, `"event_labels"`} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, `"Source"`)
	assert.Nil(t, Schema().Required)
}
