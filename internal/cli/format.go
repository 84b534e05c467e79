package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// Format selects how command output is written.
type Format string

const (
	// FormatAuto writes text to terminals and JSON otherwise.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var _ pflag.Value = (*Format)(nil)

func (f *Format) String() string {
	return string(*f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	switch v := Format(strings.ToLower(strings.TrimSpace(s))); v {
	case FormatAuto, FormatText, FormatJSON:
		*f = v
		return nil
	}
	return fmt.Errorf("unknown format %q (want auto, text or json)", s)
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// Resolve replaces FormatAuto with the concrete format for w.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	if isTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

func isTerminal(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
