package keymap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/input/key"
)

func TestNewByEventNested(t *testing.T) {
	inner := New("inner")
	inner.Bind(key.NewModdedEvent("a", key.Control), Command("control-a-binding"))

	km := New("outer")
	km.Bind(key.NewModdedEvent("PageUp", key.Shift), Command("shift-pageup-binding"))
	km.Bind(key.NewModdedEvent("PageUp", key.Control), Prefix(inner))

	be, err := NewByEvent(km)
	require.NoError(t, err)
	require.Equal(t, 1, be.Len())

	mods, ok := be.Lookup("PageUp")
	require.True(t, ok)
	require.Equal(t, 2, mods.Len())

	shiftBinding, ok := mods.Get(key.NewModifiers(key.Shift))
	require.True(t, ok)
	cmd, isCmd := shiftBinding.Command()
	assert.True(t, isCmd)
	assert.Equal(t, "shift-pageup-binding", cmd)

	ctrlBinding, ok := mods.Get(key.NewModifiers(key.Control))
	require.True(t, ok)
	assert.Equal(t, KindPrefix, ctrlBinding.Kind())
	sub, ok := ctrlBinding.Sub()
	require.True(t, ok)
	assert.Equal(t, "inner", sub.Name())

	got, ok := sub.Get(key.NewModdedEvent("a", key.Control))
	require.True(t, ok)
	cmd, _ = got.Command()
	assert.Equal(t, "control-a-binding", cmd)
}

func TestNewByEventEmpty(t *testing.T) {
	be, err := NewByEvent(New("empty"))
	require.NoError(t, err)
	assert.Equal(t, 0, be.Len())
	assert.Empty(t, be.Flatten())

	_, ok := be.Lookup("a")
	assert.False(t, ok)
}

func TestNewByEventCycle(t *testing.T) {
	a := New("a")
	b := New("b")
	a.Bind(key.MustParse("C-x"), Prefix(b))
	b.Bind(key.MustParse("C-y"), Prefix(a))

	_, err := NewByEvent(a)
	require.ErrorIs(t, err, ErrCycle)

	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "C-x C-y", ce.Path.String())
}

func TestNewByEventSharedMapIndexedOnce(t *testing.T) {
	shared := New("shared")
	shared.Bind(key.MustParse("a"), Command("cmd-a"))

	km := New("global")
	km.Bind(key.MustParse("C-x"), Prefix(shared))
	km.Bind(key.MustParse("C-c"), Prefix(shared))

	be, err := NewByEvent(km)
	require.NoError(t, err)

	x, _ := be.Descend(key.MustParseSequence("C-x"))
	c, _ := be.Descend(key.MustParseSequence("C-c"))
	assert.Same(t, x, c)
	assert.Len(t, be.Flatten(), 2)
}

func sortLeaves(leaves []Leaf) []string {
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.String()
	}
	sort.Strings(out)
	return out
}

func TestFlattenRoundTrip(t *testing.T) {
	km := Default()
	require.NoError(t, km.BindCommand("C-S-a", "select-line"))
	require.NoError(t, km.BindCommand("S-a", "upcase-a"))

	want, err := km.Flatten()
	require.NoError(t, err)

	be, err := NewByEvent(km)
	require.NoError(t, err)

	assert.Equal(t, sortLeaves(want), sortLeaves(be.Flatten()))
}

func TestByEventGroupsModifiersUnderOneEvent(t *testing.T) {
	km := New("global")
	require.NoError(t, km.BindCommand("a", "plain"))
	require.NoError(t, km.BindCommand("b", "other"))
	require.NoError(t, km.BindCommand("C-a", "control"))
	require.NoError(t, km.BindCommand("C-S-a", "control-shift"))

	be, err := NewByEvent(km)
	require.NoError(t, err)
	assert.Equal(t, 2, be.Len())

	var events []key.Event
	for ev := range be.All() {
		events = append(events, ev)
	}
	assert.Equal(t, []key.Event{"a", "b"}, events)

	mods, _ := be.Lookup("a")
	assert.Equal(t, 3, mods.Len())
}

func TestDescend(t *testing.T) {
	be, err := NewByEvent(Default())
	require.NoError(t, err)

	self, err := be.Descend(nil)
	require.NoError(t, err)
	assert.Same(t, be, self)

	cx, err := be.Descend(key.MustParseSequence("C-x"))
	require.NoError(t, err)
	_, ok := cx.Get(key.MustParse("C-f"))
	assert.True(t, ok)

	cx4, err := be.Descend(key.MustParseSequence("C-x 4"))
	require.NoError(t, err)
	assert.Equal(t, 2, cx4.Len())

	_, err = be.Descend(key.MustParseSequence("C-x C-f"))
	assert.ErrorIs(t, err, ErrNotPrefix)

	_, err = be.Descend(key.MustParseSequence("C-z"))
	assert.ErrorIs(t, err, ErrUnbound)
}
