package keyboard

import (
	"iter"
	"sort"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/layout"
	"github.com/dshills/keybind/internal/input/resolve"
	"github.com/dshills/keybind/internal/structmap"
)

// Key is a physical key with everything needed to draw it.
type Key struct {
	layout.RenderKey

	// Label is the key cap's display label.
	Label string

	// Events are the events the key produces, with their labels.
	Events *structmap.Map[key.Modifiers, layout.LabeledEvent]

	// Bindings maps each reachable full modifier set to its binding.
	Bindings *structmap.Map[key.Modifiers, resolve.Binding]
}

// Binding returns the binding reached when the key is pressed with mods.
func (k Key) Binding(mods key.Modifiers) (resolve.Binding, bool) {
	return k.Bindings.Get(mods)
}

// Row is a row of assembled keys.
type Row struct {
	Keys                 []Key
	RelativeMarginBottom float64
}

// Keyboard is a geometry whose keys carry their resolved bindings.
type Keyboard struct {
	Name string
	Rows []Row

	// Prefix is the key sequence already pressed, empty for the top level.
	Prefix key.Sequence
}

// Assemble resolves every key of g that has a key cap in l. Keys without a
// key cap are left out; rows are kept even when they end up empty.
func Assemble(g layout.Geometry, l *layout.Layout, byEvent *keymap.ByEvent, opts resolve.Options) *Keyboard {
	kb := &Keyboard{Name: g.Name}
	for _, rr := range g.Normalize() {
		row := Row{RelativeMarginBottom: rr.RelativeMarginBottom}
		for _, rk := range rr.Keys {
			kc, ok := l.Get(rk.Code)
			if !ok || kc == nil {
				continue
			}
			row.Keys = append(row.Keys, Key{
				RenderKey: rk,
				Label:     kc.DisplayLabel(),
				Events:    kc.Labeled(opts.EventLabels),
				Bindings:  resolve.KeyCap(kc, byEvent, opts),
			})
		}
		kb.Rows = append(kb.Rows, row)
	}
	return kb
}

// Key returns the first key with the given code.
func (kb *Keyboard) Key(code key.Code) (Key, bool) {
	for k := range kb.Keys() {
		if k.Code == code {
			return k, true
		}
	}
	return Key{}, false
}

// Keys iterates over all keys in row order.
func (kb *Keyboard) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		if kb == nil {
			return
		}
		for _, r := range kb.Rows {
			for _, k := range r.Keys {
				if !yield(k) {
					return
				}
			}
		}
	}
}

// Len returns the number of keys.
func (kb *Keyboard) Len() int {
	n := 0
	for range kb.Keys() {
		n++
	}
	return n
}

// Conflict is a key and modifier set reached by several equally direct
// bindings.
type Conflict struct {
	Code       key.Code
	Modifiers  key.Modifiers
	Candidates []resolve.Candidate
}

// Conflicts lists every conflicting binding, in key order and then by
// modifier set.
func (kb *Keyboard) Conflicts() []Conflict {
	var out []Conflict
	for k := range kb.Keys() {
		var local []Conflict
		for mods, b := range k.Bindings.All() {
			if b.Conflicting() {
				local = append(local, Conflict{Code: k.Code, Modifiers: mods, Candidates: b.Candidates()})
			}
		}
		sort.Slice(local, func(i, j int) bool {
			return local[i].Modifiers.Compare(local[j].Modifiers) < 0
		})
		out = append(out, local...)
	}
	return out
}
