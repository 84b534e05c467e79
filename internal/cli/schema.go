package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/config"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of configuration documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.SchemaJSON()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			_, err = out.Write([]byte("\n"))
			return err
		},
	}
}
