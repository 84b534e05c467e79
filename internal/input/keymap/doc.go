// Package keymap holds key bindings and their event-indexed form.
//
// A KeyMap maps a modded event (a key event plus the modifiers that must
// accompany it) to a Binding. A binding is either a command name or a
// nested KeyMap reached after the key is pressed, so multi-key sequences
// such as "C-x C-f" are expressed as a prefix map bound to C-x:
//
//	km := keymap.New("global")
//	_ = km.BindCommand("C-x C-f", "find-file")
//	_ = km.BindCommand("q", "self-insert-command")
//
// # Indexing by Event
//
// Resolution starts from the event a physical key produces, so a KeyMap is
// re-indexed into a ByEvent: event first, then the modifier sets bound for
// that event. Nested maps are indexed recursively.
//
//	byEvent, err := keymap.NewByEvent(km)
//
// A ByEvent is immutable once built and may be shared between goroutines.
// Bindings that form a cycle (a map reachable from itself) are rejected
// with ErrCycle. A map shared by several prefixes is indexed once.
//
// # Round Trip
//
// Flatten lists every (sequence, command) leaf. Flattening a KeyMap and its
// ByEvent yields the same set of leaves.
package keymap
