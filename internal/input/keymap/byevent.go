package keymap

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/structmap"
)

// Descend errors
var (
	ErrUnbound   = errors.New("key sequence is not bound")
	ErrNotPrefix = errors.New("key sequence is bound to a command")
)

// EventBinding is the target of an event-indexed binding: a command or a
// nested ByEvent.
type EventBinding struct {
	command string
	sub     *ByEvent
}

// Kind returns the variant of the binding.
func (b EventBinding) Kind() Kind {
	if b.sub != nil {
		return KindPrefix
	}
	return KindCommand
}

// Command returns the command name if b is a command binding.
func (b EventBinding) Command() (string, bool) {
	return b.command, b.sub == nil
}

// Sub returns the nested map if b is a prefix binding.
func (b EventBinding) Sub() (*ByEvent, bool) {
	return b.sub, b.sub != nil
}

// ModifierBindings maps the modifier sets bound for one event to their
// bindings.
type ModifierBindings = structmap.Map[key.Modifiers, EventBinding]

// ByEvent is a key map indexed by event, then by modifier set.
// It is immutable after construction.
type ByEvent struct {
	name   string
	events *structmap.Map[key.Event, *ModifierBindings]
}

// NewByEvent indexes km by event. Every (event, modifiers) pair of km
// appears exactly once, nested maps are indexed recursively and a nested map
// shared by several prefixes is indexed once. Cyclic maps fail with an
// error wrapping ErrCycle.
func NewByEvent(km *KeyMap) (*ByEvent, error) {
	b := &builder{
		done:   make(map[*KeyMap]*ByEvent),
		onPath: make(map[*KeyMap]bool),
	}
	return b.build(km, nil)
}

type builder struct {
	done   map[*KeyMap]*ByEvent
	onPath map[*KeyMap]bool
}

func (b *builder) build(km *KeyMap, path key.Sequence) (*ByEvent, error) {
	if be, ok := b.done[km]; ok {
		return be, nil
	}
	b.onPath[km] = true
	defer delete(b.onPath, km)

	out := &ByEvent{events: structmap.New[key.Event, *ModifierBindings]()}
	if km != nil {
		out.name = km.Name
	}

	for ev, binding := range km.All() {
		var eb EventBinding
		if sub, ok := binding.Prefix(); ok {
			p := path.Append(ev)
			if b.onPath[sub] {
				return nil, &CycleError{Path: p}
			}
			subEvents, err := b.build(sub, p)
			if err != nil {
				return nil, err
			}
			eb = EventBinding{sub: subEvents}
		} else {
			cmd, _ := binding.Command()
			eb = EventBinding{command: cmd}
		}

		mods, ok := out.events.Get(ev.Event)
		if !ok {
			mods = structmap.New[key.Modifiers, EventBinding]()
			out.events.Set(ev.Event, mods)
		}
		mods.Set(ev.Modifiers, eb)
	}

	b.done[km] = out
	return out, nil
}

// Name returns the name of the key map this index was built from.
func (b *ByEvent) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Lookup returns the modifier sets bound for ev.
func (b *ByEvent) Lookup(ev key.Event) (*ModifierBindings, bool) {
	if b == nil {
		return nil, false
	}
	return b.events.Get(ev)
}

// Get returns the binding for a single modded event.
func (b *ByEvent) Get(ev key.ModdedEvent) (EventBinding, bool) {
	mods, ok := b.Lookup(ev.Event)
	if !ok {
		return EventBinding{}, false
	}
	return mods.Get(ev.Modifiers)
}

// Len returns the number of distinct events.
func (b *ByEvent) Len() int {
	if b == nil {
		return 0
	}
	return b.events.Len()
}

// All iterates over events in first-bound order.
func (b *ByEvent) All() iter.Seq2[key.Event, *ModifierBindings] {
	if b == nil {
		return func(func(key.Event, *ModifierBindings) bool) {}
	}
	return b.events.All()
}

// Flatten lists every command with the key sequence reaching it.
func (b *ByEvent) Flatten() []Leaf {
	var leaves []Leaf
	b.flatten(nil, &leaves)
	return leaves
}

func (b *ByEvent) flatten(path key.Sequence, leaves *[]Leaf) {
	for ev, mods := range b.All() {
		for m, eb := range mods.All() {
			p := path.Append(key.ModdedEvent{Event: ev, Modifiers: m})
			if sub, ok := eb.Sub(); ok {
				sub.flatten(p, leaves)
				continue
			}
			*leaves = append(*leaves, Leaf{Sequence: p, Command: eb.command})
		}
	}
}

// Descend follows a prefix sequence and returns the nested map reached,
// i.e. the bindings available once seq has been pressed. An empty seq
// returns b itself.
func (b *ByEvent) Descend(seq key.Sequence) (*ByEvent, error) {
	cur := b
	for i, ev := range seq {
		eb, ok := cur.Get(ev)
		if !ok {
			return nil, fmt.Errorf("%q: %w", seq[:i+1].String(), ErrUnbound)
		}
		sub, ok := eb.Sub()
		if !ok {
			return nil, fmt.Errorf("%q: %w", seq[:i+1].String(), ErrNotPrefix)
		}
		cur = sub
	}
	return cur, nil
}
