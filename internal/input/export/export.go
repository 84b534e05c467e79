// Package export turns a key map into bubbles key bindings so that
// terminal applications built on bubbletea can match key presses and show
// help with the configured bindings.
//
// Only the top level of a key map is exported. A prefix binding is exported
// as a single key whose help names the prefix map; sequences behind it are
// left to the application. Terminals cannot report every modifier, so
// bindings that use Win, Super, Hyper or NumLock, or combinations a
// terminal has no name for, are reported as skipped.
package export

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	bkey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/resolve"
)

// ErrNotRepresentable is returned for events a terminal cannot report.
var ErrNotRepresentable = errors.New("not representable as a terminal key")

// DefaultRows is the number of bindings per help column.
const DefaultRows = 8

// Entry is one exported binding.
type Entry struct {
	Event   key.ModdedEvent
	Kind    keymap.Kind
	Command string
	Label   string
	Binding bkey.Binding
}

// Skip is a binding that could not be exported.
type Skip struct {
	Event key.ModdedEvent
	Err   error
}

// KeyMap is an exported key map. It implements help.KeyMap.
type KeyMap struct {
	Name    string
	Entries []Entry
	Skipped []Skip

	// Rows is the number of bindings per FullHelp column.
	Rows int
}

var _ help.KeyMap = KeyMap{}

// Options supplies labels for the help text.
type Options struct {
	Labels      keymap.Labels
	SubMapLabel string
}

// FromKeyMap exports the top level bindings of km in their binding order.
func FromKeyMap(km *keymap.KeyMap, opts Options) KeyMap {
	subMap := opts.SubMapLabel
	if subMap == "" {
		subMap = resolve.DefaultSubMapLabel
	}

	out := KeyMap{Rows: DefaultRows}
	if km == nil {
		return out
	}
	out.Name = km.Name

	for ev, b := range km.All() {
		term, err := Terminal(ev)
		if err != nil {
			out.Skipped = append(out.Skipped, Skip{Event: ev, Err: err})
			continue
		}

		e := Entry{Event: ev, Kind: b.Kind()}
		if cmd, ok := b.Command(); ok {
			e.Command = cmd
			e.Label = opts.Labels.Label(cmd)
		} else {
			e.Label = subMap
		}
		e.Binding = bkey.NewBinding(
			bkey.WithKeys(term),
			bkey.WithHelp(ev.String(), e.Label),
		)
		out.Entries = append(out.Entries, e)
	}
	return out
}

// Bindings returns the bubbles bindings in entry order.
func (k KeyMap) Bindings() []bkey.Binding {
	out := make([]bkey.Binding, len(k.Entries))
	for i, e := range k.Entries {
		out[i] = e.Binding
	}
	return out
}

// ShortHelp implements help.KeyMap with the first column of bindings.
func (k KeyMap) ShortHelp() []bkey.Binding {
	all := k.Bindings()
	return all[:min(len(all), k.rows())]
}

// FullHelp implements help.KeyMap, splitting the bindings into columns.
func (k KeyMap) FullHelp() [][]bkey.Binding {
	all := k.Bindings()
	n := k.rows()

	var cols [][]bkey.Binding
	for len(all) > 0 {
		c := min(len(all), n)
		cols = append(cols, all[:c])
		all = all[c:]
	}
	return cols
}

func (k KeyMap) rows() int {
	if k.Rows <= 0 {
		return DefaultRows
	}
	return k.Rows
}

// Match returns the entry bound to msg.
func (k KeyMap) Match(msg tea.KeyMsg) (Entry, bool) {
	for _, e := range k.Entries {
		if bkey.Matches(msg, e.Binding) {
			return e, true
		}
	}
	return Entry{}, false
}

// Help renders the help view, all columns when full is set.
func (k KeyMap) Help(width int, full bool) string {
	h := help.New()
	h.Width = width
	h.ShowAll = full
	return h.View(k)
}

// terminalNames are bubbletea names of named events.
var terminalNames = map[key.Event]string{
	"Enter":     "enter",
	"Escape":    "esc",
	"Tab":       "tab",
	"Backspace": "backspace",
	"Delete":    "delete",
	"Insert":    "insert",
	"PageUp":    "pgup",
	"PageDown":  "pgdown",
	"Home":      "home",
	"End":       "end",
	"Up":        "up",
	"Down":      "down",
	"Left":      "left",
	"Right":     "right",
	" ":         " ",
}

// ctrlNamed lists named keys terminals report with Control.
var ctrlNamed = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
}

// shiftNamed lists named keys terminals report with Shift.
var shiftNamed = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "tab": true,
}

// ctrlSymbols are the control characters with a bubbletea name.
var ctrlSymbols = map[key.Event]string{
	" ":  "ctrl+@",
	"@":  "ctrl+@",
	"[":  "ctrl+[",
	"\\": "ctrl+\\",
	"]":  "ctrl+]",
	"^":  "ctrl+^",
	"_":  "ctrl+_",
}

// Terminal returns the bubbletea key name of ev, e.g. "ctrl+x" for C-x or
// "alt+%" for M-%. Meta and Alt both map to alt.
func Terminal(ev key.ModdedEvent) (string, error) {
	mods := ev.Modifiers
	unsupported := key.NewModifiers(key.Win, key.Super, key.Hyper, key.NumLock)
	if mods.Intersects(unsupported) {
		return "", fmt.Errorf("%s: %w: modifiers %s", ev, ErrNotRepresentable, mods.Intersect(unsupported))
	}

	prefix := ""
	if mods.Has(key.Alt) || mods.Has(key.Meta) {
		prefix = "alt+"
	}
	ctrl, shift := mods.Has(key.Control), mods.Has(key.Shift)

	name, named := terminalNames[ev.Event]
	if !named {
		name = fkey(ev.Event)
		named = name != ""
	}

	switch {
	case ctrl && shift:
		if named && ctrlNamed[name] && shiftNamed[name] {
			return prefix + "ctrl+shift+" + name, nil
		}
	case ctrl:
		if sym, ok := ctrlSymbols[ev.Event]; ok {
			return prefix + sym, nil
		}
		if named && ctrlNamed[name] {
			return prefix + "ctrl+" + name, nil
		}
		if isLetter(ev.Event) {
			return prefix + "ctrl+" + strings.ToLower(string(ev.Event)), nil
		}
	case shift:
		if named && shiftNamed[name] {
			return prefix + "shift+" + name, nil
		}
	case named:
		return prefix + name, nil
	case utf8.RuneCountInString(string(ev.Event)) == 1:
		return prefix + string(ev.Event), nil
	}
	return "", fmt.Errorf("%s: %w", ev, ErrNotRepresentable)
}

func isLetter(ev key.Event) bool {
	if len(ev) != 1 {
		return false
	}
	c := ev[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// fkey returns "f1" to "f20" for function key events.
func fkey(ev key.Event) string {
	var n int
	if _, err := fmt.Sscanf(string(ev), "F%d", &n); err != nil || n < 1 || n > 20 {
		return ""
	}
	if fmt.Sprintf("F%d", n) != string(ev) {
		return ""
	}
	return fmt.Sprintf("f%d", n)
}
