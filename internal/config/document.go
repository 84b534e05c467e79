package config

// Document is one configuration file.
type Document struct {
	// FormatVersion is a semantic version; major version 1 is supported.
	// Empty means the current version.
	FormatVersion string `toml:"format_version,omitempty" yaml:"format_version,omitempty" json:"format_version,omitempty" jsonschema:"description=Document format version (semver with major version 1),example=1.0"`

	Geometry *GeometryDoc `toml:"geometry,omitempty" yaml:"geometry,omitempty" json:"geometry,omitempty" jsonschema:"description=Physical arrangement of keys"`
	Layout   *LayoutDoc   `toml:"layout,omitempty" yaml:"layout,omitempty" json:"layout,omitempty" jsonschema:"description=Events produced by each key code"`
	KeyMap   *KeyMapDoc   `toml:"keymap,omitempty" yaml:"keymap,omitempty" json:"keymap,omitempty" jsonschema:"description=Key bindings"`

	// Labels maps command names to display labels.
	Labels map[string]string `toml:"labels,omitempty" yaml:"labels,omitempty" json:"labels,omitempty" jsonschema:"description=Display labels keyed by command name"`

	// Source is the path the document was read from.
	Source string `toml:"-" yaml:"-" json:"-"`
}

// GeometryDoc describes a layout.Geometry.
type GeometryDoc struct {
	Name string   `toml:"name" yaml:"name" json:"name"`
	Rows []RowDoc `toml:"rows" yaml:"rows" json:"rows"`
}

// RowDoc describes a layout.Row.
type RowDoc struct {
	MarginBottom float64  `toml:"margin_bottom,omitempty" yaml:"margin_bottom,omitempty" json:"margin_bottom,omitempty"`
	Keys         []KeyDoc `toml:"keys" yaml:"keys" json:"keys"`
}

// KeyDoc describes a layout.VirtualKey.
type KeyDoc struct {
	Code       string  `toml:"code" yaml:"code" json:"code" jsonschema:"required"`
	Width      float64 `toml:"width" yaml:"width" json:"width" jsonschema:"required,exclusiveMinimum=0"`
	MarginLeft float64 `toml:"margin_left,omitempty" yaml:"margin_left,omitempty" json:"margin_left,omitempty" jsonschema:"minimum=0"`
}

// LayoutDoc describes a layout.Layout.
type LayoutDoc struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`

	// Keys maps key codes to key caps.
	Keys map[string]KeyCapDoc `toml:"keys,omitempty" yaml:"keys,omitempty" json:"keys,omitempty"`

	// EventLabels maps key events to display labels.
	EventLabels map[string]string `toml:"event_labels,omitempty" yaml:"event_labels,omitempty" json:"event_labels,omitempty"`
}

// KeyCapDoc describes a layout.KeyCap.
type KeyCapDoc struct {
	Label string `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`

	// Events maps a modifier set such as "", "Shift" or "Control+Alt" to
	// the event produced.
	Events map[string]string `toml:"events" yaml:"events" json:"events"`
}

// KeyMapDoc describes a keymap.KeyMap.
type KeyMapDoc struct {
	Name     string       `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Bindings []BindingDoc `toml:"bindings" yaml:"bindings" json:"bindings"`
}

// BindingDoc binds a key sequence to a command.
type BindingDoc struct {
	Keys    string `toml:"keys" yaml:"keys" json:"keys" jsonschema:"required,example=C-x C-s"`
	Command string `toml:"command" yaml:"command" json:"command" jsonschema:"required,example=save-buffer"`
}
