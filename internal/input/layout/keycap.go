package layout

import (
	"maps"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/structmap"
)

// EventLabels maps key events to display labels.
type EventLabels map[key.Event]string

// Label returns the label for ev, or the event itself when none is set.
func (l EventLabels) Label(ev key.Event) string {
	if s, ok := l[ev]; ok {
		return s
	}
	return string(ev)
}

// Clone returns a copy of the labels.
func (l EventLabels) Clone() EventLabels {
	return maps.Clone(l)
}

// LabeledEvent is a key event together with its display label.
type LabeledEvent struct {
	Event key.Event
	Label string
}

// KeyCap describes what a physical key produces.
type KeyCap struct {
	// Label is printed on the key. Empty means use the unmodified event.
	Label string

	// Events maps the physical modifier set to the event it produces.
	// At most one event exists per modifier set.
	Events *structmap.Map[key.Modifiers, key.Event]
}

// NewKeyCap creates an empty key cap.
func NewKeyCap(label string) *KeyCap {
	return &KeyCap{
		Label:  label,
		Events: structmap.New[key.Modifiers, key.Event](),
	}
}

// Bind sets the event produced under mods, replacing any previous one.
func (c *KeyCap) Bind(mods key.Modifiers, ev key.Event) *KeyCap {
	if c.Events == nil {
		c.Events = structmap.New[key.Modifiers, key.Event]()
	}
	c.Events.Set(mods, ev)
	return c
}

// Event returns the event produced under mods.
func (c *KeyCap) Event(mods key.Modifiers) (key.Event, bool) {
	if c == nil {
		return "", false
	}
	return c.Events.Get(mods)
}

// DisplayLabel returns the label, falling back to the unmodified event.
func (c *KeyCap) DisplayLabel() string {
	if c == nil {
		return ""
	}
	if c.Label != "" {
		return c.Label
	}
	ev, _ := c.Events.Get(key.None)
	return string(ev)
}

// Labeled returns the produced events with their display labels.
func (c *KeyCap) Labeled(labels EventLabels) *structmap.Map[key.Modifiers, LabeledEvent] {
	out := structmap.New[key.Modifiers, LabeledEvent]()
	if c == nil {
		return out
	}
	for mods, ev := range c.Events.All() {
		out.Set(mods, LabeledEvent{Event: ev, Label: labels.Label(ev)})
	}
	return out
}

// Clone returns an independent copy of the key cap.
func (c *KeyCap) Clone() *KeyCap {
	if c == nil {
		return nil
	}
	return &KeyCap{Label: c.Label, Events: c.Events.Clone()}
}
