package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/export"
)

type cheatsheetView struct {
	Name    string      `json:"name"`
	Entries []entryView `json:"entries"`
	Skipped []skipView  `json:"skipped"`
}

type entryView struct {
	Keys     string `json:"keys"`
	Terminal string `json:"terminal"`
	Kind     string `json:"kind"`
	Command  string `json:"command,omitempty"`
	Label    string `json:"label"`
}

type skipView struct {
	Keys   string `json:"keys"`
	Reason string `json:"reason"`
}

func newCheatsheetView(km export.KeyMap) cheatsheetView {
	v := cheatsheetView{
		Name:    km.Name,
		Entries: make([]entryView, 0, len(km.Entries)),
		Skipped: make([]skipView, 0, len(km.Skipped)),
	}
	for _, e := range km.Entries {
		var term string
		if keys := e.Binding.Keys(); len(keys) > 0 {
			term = keys[0]
		}
		v.Entries = append(v.Entries, entryView{
			Keys:     e.Event.String(),
			Terminal: term,
			Kind:     e.Kind.String(),
			Command:  e.Command,
			Label:    e.Label,
		})
	}
	for _, s := range km.Skipped {
		v.Skipped = append(v.Skipped, skipView{Keys: s.Event.String(), Reason: s.Err.Error()})
	}
	return v
}

func newCheatsheetCmd(opts *rootOptions) *cobra.Command {
	var (
		width int
		full  bool
		rows  int
	)

	cmd := &cobra.Command{
		Use:   "cheatsheet",
		Short: "Print terminal help for the top level bindings",
		Long: `Export the top level of the key map as terminal key bindings and print
them as a help view.

Bindings a terminal cannot report, such as those using Super or Hyper, are
listed as skipped in JSON output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.engine()
			if err != nil {
				return err
			}
			defer e.Close()

			snap := e.Snapshot()
			km := export.FromKeyMap(snap.KeyMap, export.Options{
				Labels:      snap.Options.Labels,
				SubMapLabel: snap.Options.SubMapLabel,
			})
			km.Rows = rows
			for _, s := range km.Skipped {
				opts.logger.WithField("keys", s.Event.String()).Debug("binding not exported")
			}

			out := cmd.OutOrStdout()
			if opts.outputFormat(out) == FormatJSON {
				return writeJSON(out, newCheatsheetView(km))
			}
			fmt.Fprintln(out, km.Help(width, full))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "maximum help width, 0 for unlimited")
	cmd.Flags().BoolVar(&full, "full", true, "show every binding in columns")
	cmd.Flags().IntVar(&rows, "rows", export.DefaultRows, "bindings per column")
	return cmd
}
