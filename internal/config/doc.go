// Package config reads key binding configuration documents.
//
// A document may define any of four sections: the physical geometry, the
// layout mapping key codes to produced events, the key map, and command
// labels. Documents are TOML, YAML or JSON, chosen by file extension:
//
//	format_version = "1.0"
//
//	[geometry]
//	name = "mini"
//
//	[[geometry.rows]]
//	margin_bottom = 5.0
//	keys = [
//	  { code = "AE01", width = 10.0 },
//	  { code = "AE02", width = 10.0, margin_left = 2.0 },
//	]
//
//	[layout.keys.AE01]
//	events = { "" = "1", "Shift" = "!" }
//
//	[[keymap.bindings]]
//	keys = "C-x C-s"
//	command = "save-buffer"
//
//	[labels]
//	save-buffer = "save"
//
// Several documents merge in order, later documents winning. Sections a
// document set leaves out fall back to the built-in defaults when the
// result is turned into keyboard inputs with Document.Inputs.
package config
