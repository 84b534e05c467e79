// Package cli implements the keybind command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/logging"
)

// BuildInfo is set from ldflags by main.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// builtinSource names the snapshot built from the compiled in defaults.
const builtinSource = "builtin"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configs  []string
	logLevel string
	format   Format

	logger *logrus.Logger
}

// NewRootCmd creates the keybind command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &rootOptions{format: FormatAuto}

	cmd := &cobra.Command{
		Use:   "keybind",
		Short: "Show which command every key of a keyboard triggers",
		Long: `keybind resolves a key map onto a physical keyboard.

For every key and modifier combination it reports the binding that the
combination triggers, or the bindings that conflict there. Without --config
the built in ANSI geometry, US layout and default key map are used.`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{
				Level:  opts.logLevel,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.configs, "config", "c", nil, "configuration file, repeatable; later files win")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (default $"+logging.EnvLevel+" or warn)")
	flags.Var(&opts.format, "format", "output format: auto, text or json")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(FormatAuto), string(FormatText), string(FormatJSON)}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(
		newResolveCmd(opts),
		newLintCmd(opts),
		newCheatsheetCmd(opts),
		newSchemaCmd(),
		newWatchCmd(opts),
		newVersionCmd(info),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(info BuildInfo) int {
	if err := NewRootCmd(info).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// inputs loads the configured files, or the built in defaults when none
// are given.
func (o *rootOptions) inputs() (keyboard.Inputs, string, error) {
	if len(o.configs) == 0 {
		return keyboard.DefaultInputs(), builtinSource, nil
	}

	doc, err := config.NewLoader(config.WithLogger(o.logger)).LoadFiles(o.configs...)
	if err != nil {
		return keyboard.Inputs{}, "", err
	}
	in, err := doc.Inputs()
	if err != nil {
		return keyboard.Inputs{}, "", err
	}
	return in, doc.Source, nil
}

// engine creates an engine loaded from the configured inputs.
func (o *rootOptions) engine() (*keyboard.Engine, error) {
	in, source, err := o.inputs()
	if err != nil {
		return nil, err
	}
	e := keyboard.NewEngine(keyboard.WithLogger(o.logger))
	if _, err := e.Load(in, source); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// outputFormat resolves --format for w.
func (o *rootOptions) outputFormat(w io.Writer) Format {
	return o.format.Resolve(w)
}
