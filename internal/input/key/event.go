package key

import (
	"fmt"
	"strings"
)

// Event is the logical symbol a key press produces after layout
// translation. Printable keys use their character ("a", "@"); other keys use
// their name ("PageUp", "Enter").
type Event string

// Code identifies the location of a physical key independent of what it
// produces, e.g. "AE01" for the key left of "2" on a 105-key board.
type Code string

// ModdedEvent is an event together with the modifiers applied to it.
// It is comparable and used directly as a map key.
type ModdedEvent struct {
	Event     Event
	Modifiers Modifiers
}

// NewModdedEvent creates a modded event.
func NewModdedEvent(ev Event, mods ...Modifier) ModdedEvent {
	return ModdedEvent{Event: ev, Modifiers: NewModifiers(mods...)}
}

// String returns the canonical specification, e.g. "C-x" or "C-S-PageUp".
// The result parses back to an equal value.
func (e ModdedEvent) String() string {
	return e.Modifiers.Spec() + e.Event.Spec()
}

// GoString implements fmt.GoStringer for debugging.
func (e ModdedEvent) GoString() string {
	return fmt.Sprintf("ModdedEvent{Event: %q, Modifiers: %s}", string(e.Event), e.Modifiers.String())
}

// Sequence is a series of modded events pressed one after another.
type Sequence []ModdedEvent

// String returns a space separated specification, e.g. "C-x C-s".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if both sequences contain the same events in order.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if the sequence starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Append returns a new sequence with e added at the end.
func (s Sequence) Append(e ModdedEvent) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, e)
}
