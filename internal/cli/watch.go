package cli

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Joe-Costa/qumulo-usage-report/internal/config"
	"github.com/Joe-Costa/qumulo-usage-report/internal/logger"
	"github.com/Joe-Costa/qumulo-usage-report/internal/qumulo"
	"github.com/Joe-Costa/qumulo-usage-report/internal/ui/watch"
)

func newWatchCmd(cfg *config.Config) *cobra.Command {
	var (
		window   time.Duration
		interval time.Duration
		alert    float64
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of recent capacity usage",
		Long: `watch polls the cluster's capacity history for a trailing window and
renders it as a live chart with the current usage level. With --alert, a
desktop notification fires when percent used crosses the threshold.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateConnection(); err != nil {
				return err
			}
			if interval < 10*time.Second {
				return fmt.Errorf("poll interval %s is below the 10s minimum", interval)
			}

			token, err := cfg.ResolveToken()
			if err != nil {
				return err
			}

			var opts []qumulo.Option
			if cfg.InsecureTLS {
				opts = append(opts, qumulo.WithInsecureTLS())
			}
			client := qumulo.New(cfg.Host, cfg.Port, token, opts...)

			model := watch.New(watch.Config{
				Client:       client,
				Window:       window,
				Interval:     interval,
				AlertPercent: alert,
			})

			p := tea.NewProgram(model, tea.WithAltScreen())

			// A rotated token file takes effect without restarting.
			if cfg.TokenFile != "" {
				stop, err := watchTokenFile(cfg, p)
				if err != nil {
					return err
				}
				defer stop()
			}

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running watch view: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.DurationVar(&window, "window", 7*24*time.Hour, "trailing history window to display")
	f.DurationVar(&interval, "interval", 5*time.Minute, "poll interval")
	f.Float64Var(&alert, "alert", 0, "notify when percent used reaches this threshold (0 disables)")

	return cmd
}

// watchTokenFile sends a TokenChangedMsg into the program whenever the
// token file is rewritten. The parent directory is watched so the common
// write-temp-then-rename rotation is seen as a Create.
func watchTokenFile(cfg *config.Config, p *tea.Program) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create token file watcher: %w", err)
	}

	dir := filepath.Dir(cfg.TokenFile)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(cfg.TokenFile)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				token, err := cfg.ResolveToken()
				if err != nil {
					logger.Warn("token file changed but could not be read", "error", err)
					continue
				}
				p.Send(watch.TokenChangedMsg{Token: token})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("token file watcher error", "error", err)
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}
