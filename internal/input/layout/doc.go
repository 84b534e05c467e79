// Package layout describes the physical side of a keyboard.
//
// A Geometry places physical keys, identified by their key code, in rows
// with widths and margins. A Layout maps key codes to key caps, and a key
// cap tells which key event a key produces under each modifier set:
//
//	AE01: {} -> "1", {Shift} -> "!", {Control} -> "@"
//
// A layout may cover only part of a geometry. Keys without a key cap are
// inert and are left out of assembled keyboards.
//
// Geometry.Normalize converts absolute widths to fractions of the widest
// row so that renderers can scale the board to any size.
package layout
