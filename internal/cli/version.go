package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if f := cmd.Flag("format"); f != nil && f.Value.String() == string(FormatJSON) {
				return writeJSON(out, info)
			}
			_, err := fmt.Fprintf(out, "keybind %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			return err
		},
	}
}
