package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/lint"
)

// ErrLintFindings is returned by lint --strict when any binding is not
// reachable or any key conflicts.
var ErrLintFindings = errors.New("lint found problems")

func newLintCmd(opts *rootOptions) *cobra.Command {
	var (
		filter string
		all    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report shadowed, unreachable and conflicting bindings",
		Example: `  keybind lint
  keybind -c keys.toml lint --filter '*-buffer' --all
  keybind -c keys.toml lint --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, source, err := opts.inputs()
			if err != nil {
				return err
			}

			report, err := lint.Run(in, lint.Options{Filter: filter})
			if err != nil {
				return err
			}
			opts.logger.WithField("source", source).Debugf("linted %d bindings", len(report.Findings))

			out := cmd.OutOrStdout()
			if opts.outputFormat(out) == FormatJSON {
				err = writeJSON(out, newReportView(report))
			} else {
				err = writeReport(out, report, all)
			}
			if err != nil {
				return err
			}

			if strict && problems(report) > 0 {
				return fmt.Errorf("%w: %d", ErrLintFindings, problems(report))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only report commands matching this glob")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list reachable bindings too")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when problems are found")
	return cmd
}

func problems(r *lint.Report) int {
	return r.Count(lint.Shadowed) + r.Count(lint.Unreachable) + len(r.Conflicts)
}

func writeReport(w io.Writer, r *lint.Report, all bool) error {
	re := lipgloss.NewRenderer(w)
	header := re.NewStyle().Bold(true).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, f := range r.Findings {
		if f.Status == lint.Reachable && !all {
			continue
		}
		rows = append(rows, []string{f.Sequence.String(), f.Status.String(), findingTarget(f), findingDetail(f)})
	}

	if len(rows) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("KEYS", "STATUS", "BINDING", "DETAIL").
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}

	for _, c := range r.Conflicts {
		where := c.Location.String()
		if len(c.Prefix) > 0 {
			where = c.Prefix.String() + " " + where
		}
		if _, err := fmt.Fprintf(w, "conflict at %s: %s\n", where, strings.Join(c.Bindings, ", ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d reachable, %d shadowed, %d unreachable, %d conflicts\n",
		r.Count(lint.Reachable), r.Count(lint.Shadowed), r.Count(lint.Unreachable), len(r.Conflicts))
	return err
}

func findingTarget(f lint.Finding) string {
	if f.Command != "" {
		return f.Command
	}
	return f.Kind.String()
}

func findingDetail(f lint.Finding) string {
	switch f.Status {
	case lint.Shadowed:
		return "beaten by " + strings.Join(f.ShadowedBy, ", ")
	case lint.Reachable:
		locs := make([]string, len(f.Keys))
		for i, l := range f.Keys {
			locs[i] = l.String()
		}
		return strings.Join(locs, " ")
	}
	return ""
}
