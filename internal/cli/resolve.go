package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/renderer"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var (
		modifiers string
		width     int
		table     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [prefix keys...]",
		Short: "Show the binding of every key and modifier combination",
		Long: `Resolve the key map onto the keyboard and print the result.

Prefix keys descend into a prefix map first, so "resolve C-x" shows what
every key does after C-x has been pressed.`,
		Example: `  keybind resolve
  keybind resolve --modifiers ctrl
  keybind resolve C-x 4 --table
  keybind -c keys.toml resolve --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := key.ParseModifiers(modifiers)
			if err != nil {
				return fmt.Errorf("--modifiers: %w", err)
			}

			var prefix key.Sequence
			if len(args) > 0 {
				prefix, err = key.ParseSequence(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("prefix: %w", err)
				}
			}

			e, err := opts.engine()
			if err != nil {
				return err
			}
			defer e.Close()

			kb, err := e.Keyboard(prefix...)
			if err != nil {
				return fmt.Errorf("prefix %s: %w", prefix, err)
			}

			out := cmd.OutOrStdout()
			if opts.outputFormat(out) == FormatJSON {
				return writeJSON(out, newKeyboardView(kb, e.Snapshot()))
			}

			r := renderer.New(out, renderer.Options{Width: width, Modifiers: mods})
			fmt.Fprintln(out, r.Keyboard(kb))
			if table {
				fmt.Fprintln(out, r.Bindings(kb))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modifiers, "modifiers", "m", "", "modifier set drawn on the keys, e.g. ctrl+shift")
	cmd.Flags().IntVarP(&width, "width", "w", renderer.DefaultWidth, "columns spanned by the widest row")
	cmd.Flags().BoolVarP(&table, "table", "t", false, "also list every binding as a table")
	return cmd
}
