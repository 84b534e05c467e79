// Package key provides the basic vocabulary of keyboard binding resolution.
//
// This package defines:
//
//   - Modifier: a single modifier key (Control, Alt, Shift, Win, Super, Meta,
//     Hyper, NumLock)
//   - Modifiers: an unordered set of modifiers, stored as a bitmask so that
//     sets compare by value no matter how they were built
//   - Event: the logical symbol a key press produces ("a", "@", "PageUp")
//   - Code: the location of a physical key, independent of layout ("AE01")
//   - ModdedEvent: an event together with the modifiers applied to it
//   - Sequence: a series of modded events, e.g. "C-x C-s"
//
// # Key Specifications
//
// Modded events can be written in several notations:
//
//   - Emacs/Vim style: "C-x", "C-S-a", "M-%", "C--"
//   - Angle brackets: "<C-x>", "<A-PageUp>"
//   - Readable: "Ctrl+X", "Control+Alt+Delete", "Ctrl++"
//
// Single-letter prefixes are case sensitive in the Emacs tradition: "S" is
// Shift and "s" is Super. Full names are case insensitive.
package key
