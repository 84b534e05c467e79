package keymap

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/structmap"
)

// Keymap errors
var (
	ErrPrefixConflict = errors.New("key is bound to a command, not a prefix")
	ErrEmptyCommand   = errors.New("empty command name")
	ErrCycle          = errors.New("keymap cycle")
)

// CycleError reports a prefix map that is reachable from itself.
type CycleError struct {
	// Path is the key sequence leading back to an enclosing map.
	Path key.Sequence
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("keymap cycle at %q", e.Path.String())
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// KeyMap maps modded events to bindings.
type KeyMap struct {
	// Name identifies the map in messages.
	Name string

	bindings *structmap.Map[key.ModdedEvent, Binding]
}

// New creates an empty key map.
func New(name string) *KeyMap {
	return &KeyMap{
		Name:     name,
		bindings: structmap.New[key.ModdedEvent, Binding](),
	}
}

// Bind binds ev to b. Binding an already bound event replaces the
// previous binding.
func (m *KeyMap) Bind(ev key.ModdedEvent, b Binding) *KeyMap {
	if m.bindings == nil {
		m.bindings = structmap.New[key.ModdedEvent, Binding]()
	}
	m.bindings.Set(ev, b)
	return m
}

// BindCommand parses a key sequence like "C-x C-s" and binds it to command.
func (m *KeyMap) BindCommand(keys, command string) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	return m.BindSequence(seq, Command(command))
}

// BindSequence binds the last event of seq to b, creating prefix maps for
// the earlier events as needed. It fails with ErrPrefixConflict if an
// earlier event is already bound to a command.
func (m *KeyMap) BindSequence(seq key.Sequence, b Binding) error {
	if len(seq) == 0 {
		return key.ErrEmptySpec
	}

	cur := m
	for i, ev := range seq[:len(seq)-1] {
		existing, ok := cur.Lookup(ev)
		if !ok {
			sub := New(seq[:i+1].String())
			cur.Bind(ev, Prefix(sub))
			cur = sub
			continue
		}
		sub, isPrefix := existing.Prefix()
		if !isPrefix {
			return fmt.Errorf("binding %q: %q: %w", seq.String(), seq[:i+1].String(), ErrPrefixConflict)
		}
		cur = sub
	}

	cur.Bind(seq[len(seq)-1], b)
	return nil
}

// Lookup returns the binding for ev.
func (m *KeyMap) Lookup(ev key.ModdedEvent) (Binding, bool) {
	if m == nil {
		return Binding{}, false
	}
	return m.bindings.Get(ev)
}

// LookupSequence follows seq through nested prefix maps.
func (m *KeyMap) LookupSequence(seq key.Sequence) (Binding, bool) {
	cur := m
	for i, ev := range seq {
		b, ok := cur.Lookup(ev)
		if !ok {
			return Binding{}, false
		}
		if i == len(seq)-1 {
			return b, true
		}
		if cur, ok = b.Prefix(); !ok {
			return Binding{}, false
		}
	}
	return Binding{}, false
}

// Unbind removes the binding for ev.
func (m *KeyMap) Unbind(ev key.ModdedEvent) bool {
	if m == nil {
		return false
	}
	return m.bindings.Delete(ev)
}

// Len returns the number of direct bindings.
func (m *KeyMap) Len() int {
	if m == nil {
		return 0
	}
	return m.bindings.Len()
}

// All iterates over the direct bindings in insertion order.
func (m *KeyMap) All() iter.Seq2[key.ModdedEvent, Binding] {
	if m == nil {
		return func(func(key.ModdedEvent, Binding) bool) {}
	}
	return m.bindings.All()
}

// Clone returns a deep copy. Nested maps shared by several prefixes stay
// shared in the copy, and cycles are copied as cycles.
func (m *KeyMap) Clone() *KeyMap {
	return m.clone(make(map[*KeyMap]*KeyMap))
}

func (m *KeyMap) clone(seen map[*KeyMap]*KeyMap) *KeyMap {
	if m == nil {
		return nil
	}
	if c, ok := seen[m]; ok {
		return c
	}
	c := New(m.Name)
	seen[m] = c
	for ev, b := range m.All() {
		if sub, ok := b.Prefix(); ok {
			b = Prefix(sub.clone(seen))
		}
		c.Bind(ev, b)
	}
	return c
}

// Validate reports empty command names and cycles.
func (m *KeyMap) Validate() error {
	var errs []error
	m.validate(nil, make(map[*KeyMap]bool), make(map[*KeyMap]bool), &errs)
	return errors.Join(errs...)
}

func (m *KeyMap) validate(path key.Sequence, onPath, done map[*KeyMap]bool, errs *[]error) {
	if done[m] {
		return
	}
	onPath[m] = true
	for ev, b := range m.All() {
		p := path.Append(ev)
		sub, ok := b.Prefix()
		if !ok {
			if cmd, _ := b.Command(); cmd == "" {
				*errs = append(*errs, fmt.Errorf("%q: %w", p.String(), ErrEmptyCommand))
			}
			continue
		}
		if onPath[sub] {
			*errs = append(*errs, &CycleError{Path: p})
			continue
		}
		sub.validate(p, onPath, done, errs)
	}
	onPath[m] = false
	done[m] = true
}

// Leaf is a command together with the full key sequence reaching it.
type Leaf struct {
	Sequence key.Sequence
	Command  string
}

// String returns "<sequence> <command>".
func (l Leaf) String() string {
	return l.Sequence.String() + " " + l.Command
}

// Flatten lists every command reachable from m with its key sequence, in
// depth-first binding order. It fails with ErrCycle on cyclic maps.
func (m *KeyMap) Flatten() ([]Leaf, error) {
	var leaves []Leaf
	err := m.flatten(nil, make(map[*KeyMap]bool), &leaves)
	return leaves, err
}

func (m *KeyMap) flatten(path key.Sequence, onPath map[*KeyMap]bool, leaves *[]Leaf) error {
	onPath[m] = true
	defer delete(onPath, m)

	for ev, b := range m.All() {
		p := path.Append(ev)
		sub, ok := b.Prefix()
		if !ok {
			cmd, _ := b.Command()
			*leaves = append(*leaves, Leaf{Sequence: p, Command: cmd})
			continue
		}
		if onPath[sub] {
			return &CycleError{Path: p}
		}
		if err := sub.flatten(p, onPath, leaves); err != nil {
			return err
		}
	}
	return nil
}
