package keyboard

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/config/notify"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/logging"
)

func testInputs() Inputs {
	return Inputs{
		Geometry: testGeometry(),
		Layout:   testLayout(),
		KeyMap:   testKeyMap(),
	}
}

func TestEngineNotLoaded(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	assert.Nil(t, e.Snapshot())
	_, err := e.Keyboard()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestEngineLoadNotifies(t *testing.T) {
	e := NewEngine(WithLogger(logging.Discard()))
	defer e.Close()

	var changes []notify.Change
	e.Subscribe(func(c notify.Change) { changes = append(changes, c) })

	first, err := e.Load(testInputs(), "first")
	require.NoError(t, err)
	second, err := e.Reload(DefaultInputs(), "second")
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, notify.ChangeLoad, changes[0].Type)
	assert.Equal(t, first.ID, changes[0].Snapshot)
	assert.Empty(t, changes[0].Previous)
	assert.Equal(t, notify.ChangeReload, changes[1].Type)
	assert.Equal(t, second.ID, changes[1].Snapshot)
	assert.Equal(t, first.ID, changes[1].Previous)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, e.Snapshot())
}

func TestEngineRejectsInvalidInputs(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	var changes []notify.Change
	e.Subscribe(func(c notify.Change) { changes = append(changes, c) })

	good, err := e.Load(testInputs(), "good")
	require.NoError(t, err)

	cyclic := keymap.New("loop")
	cyclic.Bind(key.MustParse("C-x"), keymap.Prefix(cyclic))
	bad := testInputs()
	bad.KeyMap = cyclic

	_, err = e.Reload(bad, "bad")
	require.ErrorIs(t, err, keymap.ErrCycle)

	assert.Same(t, good, e.Snapshot())
	require.Len(t, changes, 2)
	assert.Equal(t, notify.ChangeFailed, changes[1].Type)
	assert.Equal(t, good.ID, changes[1].Snapshot)
	assert.ErrorIs(t, changes[1].Err, keymap.ErrCycle)

	_, err = e.Load(Inputs{Geometry: testGeometry()}, "empty")
	assert.ErrorIs(t, err, ErrNoLayout)
	assert.ErrorIs(t, err, ErrNoKeyMap)
}

func TestEngineFail(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	var changes []notify.Change
	e.Subscribe(func(c notify.Change) { changes = append(changes, c) })

	boom := errors.New("boom")
	e.Fail("keys.toml", boom)
	require.Len(t, changes, 1)
	assert.Equal(t, notify.ChangeFailed, changes[0].Type)
	assert.Empty(t, changes[0].Snapshot)
	assert.Nil(t, e.Snapshot())

	good, err := e.Load(testInputs(), "good")
	require.NoError(t, err)

	e.Fail("keys.toml", boom)
	require.Len(t, changes, 3)
	assert.Equal(t, notify.Change{Type: notify.ChangeFailed, Snapshot: good.ID, Source: "keys.toml", Err: boom}, changes[2])
	assert.Same(t, good, e.Snapshot())
}

func TestEngineSnapshotIsIsolated(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	in := testInputs()
	_, err := e.Load(in, "test")
	require.NoError(t, err)

	in.KeyMap.Bind(key.NewModdedEvent("2"), keymap.Command("two"))
	in.Layout.Cap("AE02").Bind(key.None, "x")

	kb, err := e.Keyboard()
	require.NoError(t, err)
	ae02, _ := kb.Key("AE02")
	assert.Equal(t, "2", ae02.Label)
	assert.Equal(t, 0, ae02.Bindings.Len())
}

func TestEngineKeyboardPrefix(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	_, err := e.Load(DefaultInputs(), "defaults")
	require.NoError(t, err)

	kb, err := e.Keyboard(key.MustParse("C-x"))
	require.NoError(t, err)
	assert.Equal(t, "C-x", kb.Prefix.String())

	f, ok := kb.Key("AC04")
	require.True(t, ok)
	b, ok := f.Binding(key.NewModifiers(key.Control))
	require.True(t, ok)
	c, _ := b.Single()
	assert.Equal(t, "open", c.BindingLabel)

	_, err = e.Keyboard(key.MustParse("C-f"))
	assert.ErrorIs(t, err, keymap.ErrNotPrefix)
}

func TestEngineConcurrentReaders(t *testing.T) {
	n := notify.New(notify.WithAsync(16))
	defer n.Close()
	e := NewEngine(WithNotifier(n))
	defer e.Close()

	_, err := e.Load(DefaultInputs(), "defaults")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			kb, err := e.Keyboard()
			assert.NoError(t, err)
			assert.NotNil(t, kb)
		}()
		go func() {
			defer wg.Done()
			_, err := e.Reload(DefaultInputs(), "defaults")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
