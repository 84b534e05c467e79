// Package renderer draws assembled keyboards as text.
//
// Keys are drawn as bordered boxes whose widths follow the relative widths
// computed by geometry normalization, with the key label on the first line
// and the binding reached under one modifier set on the second. A table
// view lists every reachable binding of every key.
package renderer
