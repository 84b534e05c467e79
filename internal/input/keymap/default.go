package keymap

// defaultBindings is an Emacs flavoured global map.
var defaultBindings = []struct {
	Keys    string
	Command string
}{
	// Movement
	{"C-f", "forward-char"},
	{"C-b", "backward-char"},
	{"C-n", "next-line"},
	{"C-p", "previous-line"},
	{"C-a", "move-beginning-of-line"},
	{"C-e", "move-end-of-line"},
	{"M-f", "forward-word"},
	{"M-b", "backward-word"},
	{"M-<", "beginning-of-buffer"},
	{"M->", "end-of-buffer"},
	{"PageUp", "scroll-down-command"},
	{"PageDown", "scroll-up-command"},
	{"S-PageUp", "scroll-other-window-down"},
	{"S-PageDown", "scroll-other-window"},

	// Editing
	{"q", "self-insert-command"},
	{"w", "self-insert-command"},
	{"e", "self-insert-command"},
	{"a", "self-insert-command"},
	{"s", "self-insert-command"},
	{"d", "self-insert-command"},
	{"Enter", "newline"},
	{"Backspace", "delete-backward-char"},
	{"C-d", "delete-char"},
	{"C-k", "kill-line"},
	{"C-y", "yank"},
	{"C-/", "undo"},
	{"M-%", "query-replace"},
	{"Tab", "indent-for-tab-command"},

	// Search
	{"C-s", "isearch-forward"},
	{"C-r", "isearch-backward"},
	{"C-g", "keyboard-quit"},
	{"Escape", "keyboard-escape-quit"},

	// Files and buffers
	{"C-x C-f", "find-file"},
	{"C-x C-s", "save-buffer"},
	{"C-x C-w", "write-file"},
	{"C-x C-c", "save-buffers-kill-terminal"},
	{"C-x b", "switch-to-buffer"},
	{"C-x k", "kill-buffer"},
	{"C-x 4 C-f", "find-file-other-window"},
	{"C-x 4 b", "switch-to-buffer-other-window"},
}

// Default returns the built-in global key map.
func Default() *KeyMap {
	km := New("global")
	for _, b := range defaultBindings {
		if err := km.BindCommand(b.Keys, b.Command); err != nil {
			panic("keymap: invalid default binding " + b.Keys + ": " + err.Error())
		}
	}
	return km
}

// DefaultLabels returns short labels for some of the default commands.
func DefaultLabels() Labels {
	return Labels{
		"self-insert-command": "SIC",
		"newline":             "⏎",
		"forward-char":        "→",
		"backward-char":       "←",
		"next-line":           "↓",
		"previous-line":       "↑",
		"find-file":           "open",
		"save-buffer":         "save",
		"keyboard-quit":       "quit",
	}
}
