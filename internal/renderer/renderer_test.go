package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/layout"
	"github.com/dshills/keybind/internal/input/resolve"
)

func testKeyboard(t *testing.T) *keyboard.Keyboard {
	t.Helper()

	g := layout.Geometry{
		Name: "test",
		Rows: []layout.Row{
			{
				Keys: []layout.VirtualKey{
					{Code: "AE01", Width: 20},
					{Code: "AE02", Width: 20, MarginLeft: 10},
				},
				MarginBottom: 5,
			},
			{Keys: []layout.VirtualKey{{Code: "AD01", Width: 15}}},
		},
	}

	l := layout.New("test")
	l.Cap("AE01").
		Bind(key.None, "1").
		Bind(key.NewModifiers(key.Shift), "!").
		Bind(key.NewModifiers(key.Control), "@")
	l.Cap("AE02").Bind(key.None, "2")
	l.Set("AD01", layout.NewKeyCap("Q").Bind(key.None, "q"))

	km := keymap.New("test")
	km.Bind(key.NewModdedEvent("1"), keymap.Command("one"))
	km.Bind(key.NewModdedEvent("!", key.Control), keymap.Command("control-!"))
	km.Bind(key.NewModdedEvent("@", key.Shift), keymap.Command("shift-@"))
	km.Bind(key.NewModdedEvent("q"), keymap.Command("self-insert-command"))

	be, err := keymap.NewByEvent(km)
	require.NoError(t, err)

	return keyboard.Assemble(g, l, be, resolve.Options{
		Labels: keymap.Labels{"self-insert-command": "SIC"},
	})
}

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestKeyboardProportionalWidths(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Width: 50})

	out := r.Keyboard(testKeyboard(t))

	assert.Equal(t, 50, maxLineWidth(out))
	assert.True(t, strings.HasPrefix(out, "test"))
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "SIC")
	assert.Contains(t, out, "Q")
}

func TestKeyboardModifiersAndConflicts(t *testing.T) {
	kb := testKeyboard(t)
	kb.Prefix = key.MustParseSequence("C-x")

	r := New(&bytes.Buffer{}, Options{
		Width:     50,
		Modifiers: key.NewModifiers(key.Control, key.Shift),
	})
	out := r.Keyboard(kb)

	assert.True(t, strings.HasPrefix(out, "test after C-x with Control+Shift"))
	assert.Contains(t, out, "!control-!")
	assert.NotContains(t, out, "one")
}

func TestKeyboardDefaultWidth(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{})
	assert.Equal(t, DefaultWidth, r.opts.Width)

	out := r.Keyboard(testKeyboard(t))
	assert.Equal(t, DefaultWidth, maxLineWidth(out))
}

func TestBindingsTable(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{})
	out := r.Bindings(testKeyboard(t))

	for _, want := range []string{
		"KEY", "MODIFIERS", "EVENT", "BINDING",
		"AE01", "AD01",
		"C-! | S-@",
		"!control-! | shift-@",
		"SIC",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "AE02")
}

func TestBindingText(t *testing.T) {
	kb := testKeyboard(t)
	k, ok := kb.Key("AE01")
	require.True(t, ok)

	b, ok := k.Binding(key.None)
	require.True(t, ok)
	assert.Equal(t, "one", BindingText(b))

	b, ok = k.Binding(key.NewModifiers(key.Control, key.Shift))
	require.True(t, ok)
	assert.Equal(t, "!control-! | shift-@", BindingText(b))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 5, "hello"},
		{"hello", 10, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"⏎ enter", 3, "⏎ …"},
		{"", 3, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), "truncate(%q, %d)", tt.in, tt.n)
	}
}
