package layout

import (
	"github.com/dshills/keybind/internal/input/key"
)

// DefaultGeometry returns a compact ANSI board in units of 10 per
// standard key.
func DefaultGeometry() Geometry {
	return Geometry{
		Name: "ansi-compact",
		Rows: []Row{
			{
				Keys: []VirtualKey{
					{Code: "ESC", Width: 10},
					{Code: "PGUP", Width: 10, MarginLeft: 110},
					{Code: "PGDN", Width: 10},
				},
				MarginBottom: 5,
			},
			{Keys: append(units("TLDE", "AE01", "AE02", "AE03", "AE04", "AE05", "AE06",
				"AE07", "AE08", "AE09", "AE10", "AE11", "AE12"), VirtualKey{Code: "BKSP", Width: 20})},
			{Keys: append([]VirtualKey{{Code: "TAB", Width: 15}}, append(units("AD01", "AD02",
				"AD03", "AD04", "AD05", "AD06", "AD07", "AD08", "AD09", "AD10", "AD11", "AD12"),
				VirtualKey{Code: "BKSL", Width: 15})...)},
			{Keys: append([]VirtualKey{{Code: "CAPS", Width: 18}}, append(units("AC01", "AC02",
				"AC03", "AC04", "AC05", "AC06", "AC07", "AC08", "AC09", "AC10", "AC11"),
				VirtualKey{Code: "RTRN", Width: 22})...)},
			{Keys: append([]VirtualKey{{Code: "LFSH", Width: 23}}, append(units("AB01", "AB02",
				"AB03", "AB04", "AB05", "AB06", "AB07", "AB08", "AB09", "AB10"),
				VirtualKey{Code: "RTSH", Width: 27})...)},
			{Keys: []VirtualKey{
				{Code: "LCTL", Width: 15},
				{Code: "LALT", Width: 15},
				{Code: "SPCE", Width: 70},
				{Code: "RALT", Width: 15},
				{Code: "RCTL", Width: 15},
			}},
		},
	}
}

func units(codes ...key.Code) []VirtualKey {
	keys := make([]VirtualKey, len(codes))
	for i, c := range codes {
		keys[i] = VirtualKey{Code: c, Width: 10}
	}
	return keys
}

// usKeys lists code, unshifted event and shifted event for the printable
// keys of a US QWERTY layout.
var usKeys = [][3]string{
	{"TLDE", "`", "~"},
	{"AE01", "1", "!"}, {"AE02", "2", "@"}, {"AE03", "3", "#"}, {"AE04", "4", "$"},
	{"AE05", "5", "%"}, {"AE06", "6", "^"}, {"AE07", "7", "&"}, {"AE08", "8", "*"},
	{"AE09", "9", "("}, {"AE10", "0", ")"}, {"AE11", "-", "_"}, {"AE12", "=", "+"},
	{"AD01", "q", "Q"}, {"AD02", "w", "W"}, {"AD03", "e", "E"}, {"AD04", "r", "R"},
	{"AD05", "t", "T"}, {"AD06", "y", "Y"}, {"AD07", "u", "U"}, {"AD08", "i", "I"},
	{"AD09", "o", "O"}, {"AD10", "p", "P"}, {"AD11", "[", "{"}, {"AD12", "]", "}"},
	{"BKSL", "\\", "|"},
	{"AC01", "a", "A"}, {"AC02", "s", "S"}, {"AC03", "d", "D"}, {"AC04", "f", "F"},
	{"AC05", "g", "G"}, {"AC06", "h", "H"}, {"AC07", "j", "J"}, {"AC08", "k", "K"},
	{"AC09", "l", "L"}, {"AC10", ";", ":"}, {"AC11", "'", "\""},
	{"AB01", "z", "Z"}, {"AB02", "x", "X"}, {"AB03", "c", "C"}, {"AB04", "v", "V"},
	{"AB05", "b", "B"}, {"AB06", "n", "N"}, {"AB07", "m", "M"}, {"AB08", ",", "<"},
	{"AB09", ".", ">"}, {"AB10", "/", "?"},
}

// usNamed lists keys that produce a named event. They only define the
// unmodified event, so modified bindings such as S-PageUp stay reachable.
var usNamed = []struct {
	code  key.Code
	event key.Event
	label string
}{
	{"ESC", "Escape", "Esc"},
	{"PGUP", "PageUp", "PgUp"},
	{"PGDN", "PageDown", "PgDn"},
	{"BKSP", "Backspace", "⌫"},
	{"TAB", "Tab", "⇥"},
	{"RTRN", "Enter", "⏎"},
	{"SPCE", " ", "Space"},
}

// DefaultUS returns a US QWERTY layout for DefaultGeometry. Modifier keys
// themselves have no key cap and are inert.
func DefaultUS() *Layout {
	l := New("us")
	for _, k := range usKeys {
		l.Cap(key.Code(k[0])).
			Bind(key.None, key.Event(k[1])).
			Bind(key.NewModifiers(key.Shift), key.Event(k[2]))
	}
	for _, k := range usNamed {
		l.Set(k.code, NewKeyCap(k.label).Bind(key.None, k.event))
	}
	return l
}
