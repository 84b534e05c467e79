// Package keyboard assembles resolved keyboards for display.
//
// Assemble combines a geometry, a layout and an event-indexed key map into
// a Keyboard: rows of keys in geometry order, each carrying its relative
// size, its label and the binding reached under every modifier set.
//
// Engine holds the active configuration as an immutable snapshot. Load
// swaps the snapshot atomically and notifies subscribers; Keyboard resolves
// against whichever snapshot was active when it was called, so readers
// never observe a half-applied change.
package keyboard
