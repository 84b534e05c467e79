// Package resolve computes what a physical key does under every modifier
// combination.
//
// A key cap produces a key event for each physical modifier set it knows.
// Each event may be bound, in the key map, under several binding modifier
// sets. Pressing the key with physical modifiers P to produce event E and
// additionally holding binding modifiers B reaches the binding for (E, B)
// with the full modifier set P ∪ B. Modifiers already consumed to produce
// the event cannot also select the binding, so candidates with P ∩ B ≠ ∅
// are discarded.
//
// Several paths can reach the same full modifier set. Among them, the
// candidates whose binding modifier set is smallest win, since they are
// the most direct way to type the combination. When more than one
// candidate remains the result is Conflicting and all survivors are kept
// in emission order.
//
// Resolution is a pure function of its inputs and may run concurrently
// over a shared ByEvent.
package resolve
