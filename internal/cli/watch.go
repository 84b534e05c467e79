package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/config/notify"
	"github.com/dshills/keybind/internal/config/watcher"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/renderer"
)

// ErrNoConfig is returned by watch when no configuration file is given.
var ErrNoConfig = errors.New("watch needs at least one --config file")

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		modifiers string
		width     int
		debounce  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve the keyboard whenever a configuration file changes",
		Long: `Watch the configuration files and print the resolved keyboard after
every change. An invalid change is reported and the previous keyboard is kept.`,
		Example: `  keybind -c keys.toml watch
  keybind -c base.toml -c local.yaml watch --modifiers ctrl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(opts.configs) == 0 {
				return ErrNoConfig
			}
			mods, err := key.ParseModifiers(modifiers)
			if err != nil {
				return fmt.Errorf("--modifiers: %w", err)
			}

			e, err := opts.engine()
			if err != nil {
				return err
			}
			defer e.Close()

			w, err := watcher.New(watcher.WithDebounce(debounce), watcher.WithLogger(opts.logger))
			if err != nil {
				return err
			}
			loader := config.NewLoader(config.WithLogger(opts.logger))
			reloader := watcher.NewReloader(e, loader, w, opts.configs, opts.logger)
			defer func() { _ = reloader.Stop() }()

			out := cmd.OutOrStdout()
			p := &printer{
				out:    out,
				format: opts.outputFormat(out),
				render: renderer.New(out, renderer.Options{Width: width, Modifiers: mods}),
			}
			if err := p.print(e); err != nil {
				return err
			}

			sub := e.Subscribe(func(c notify.Change) {
				switch c.Type {
				case notify.ChangeReload:
					if err := p.print(e); err != nil {
						opts.logger.WithError(err).Error("printing keyboard")
					}
				case notify.ChangeFailed:
					opts.logger.WithError(c.Err).WithField("source", c.Source).
						Error("configuration rejected, keeping the previous one")
				}
			})
			defer sub.Unsubscribe()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := reloader.Start(ctx); err != nil {
				return err
			}
			opts.logger.WithField("files", w.WatchedFiles()).Info("watching configuration")

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&modifiers, "modifiers", "m", "", "modifier set drawn on the keys, e.g. ctrl+shift")
	cmd.Flags().IntVarP(&width, "width", "w", renderer.DefaultWidth, "columns spanned by the widest row")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "quiet period before a change is applied")
	return cmd
}

// printer writes the engine's keyboard after every change.
type printer struct {
	mu     sync.Mutex
	out    io.Writer
	format Format
	render *renderer.Renderer
}

func (p *printer) print(e *keyboard.Engine) error {
	kb, err := e.Keyboard()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == FormatJSON {
		return writeJSON(p.out, newKeyboardView(kb, e.Snapshot()))
	}
	_, err = fmt.Fprintln(p.out, p.render.Keyboard(kb))
	return err
}
