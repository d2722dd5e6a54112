package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/cmd/config"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/watch"
)

var watchUlog = grovelogging.NewUnifiedLogger("action-layout.cmd.watch")

// NewWatchCmd creates the `watch` command.
func NewWatchCmd(ed **editor.Editor) *cobra.Command {
	var (
		save  bool
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes to installed actions and the layout file",
		Long: `Watch the action directories and the layout file, and reload the
layout whenever they change. Stop with Ctrl+C. Changes another program
makes to the disabled list are picked up as well.

With --save the layout file is rewritten after each reload, so newly
installed actions are recorded and removed ones are dropped.

Examples:
  action-layout watch
  action-layout watch --save --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed
			out := cmd.OutOrStdout()
			log := contextLogger(cmd).WithField("component", "watch")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := e.Config()
			actionsCh, err := watch.New(cfg.ActionDirs, cfg.Extension, config.WatchDebounce(), log).Run(ctx)
			if err != nil {
				return err
			}
			layoutCh, err := watch.New([]string{filepath.Dir(cfg.LayoutFile)}, filepath.Base(cfg.LayoutFile), config.WatchDebounce(), log).Run(ctx)
			if err != nil {
				return err
			}
			disabledCh, err := watchStore(ctx, e, log)
			if err != nil {
				return err
			}

			report := func(reason string) {
				if quiet {
					watchUlog.Info(reason).
						Field("nodes", e.Model().Len()).
						Field("unsaved", e.NeedsSaved()).
						Pretty(fmt.Sprintf("%s: %d nodes", reason, e.Model().Len())).
						PrettyOnly().
						Log(ctx)
					return
				}
				fmt.Fprintf(out, "%s:\n", reason)
				printRowsTable(out, e.Rows())
			}
			report("Current layout")

			for {
				var (
					reason  string
					changed bool
				)
				select {
				case _, ok := <-actionsCh:
					if !ok {
						return nil
					}
					reason = "Installed actions changed"
					changed = true
				case _, ok := <-layoutCh:
					if !ok {
						return nil
					}
					reason = "Layout file changed"
				case _, ok := <-disabledCh:
					if !ok {
						return nil
					}
					if err := e.RefreshDisabled(); err != nil {
						log.WithError(err).Warn("cannot read disabled actions")
						continue
					}
					report("Disabled actions changed")
					continue
				}

				if err := e.Reload(); err != nil {
					log.WithError(err).Warn("reload incomplete")
				}
				// saving rewrites the layout file; only do it for action changes
				// so the write does not feed back into the layout watcher
				if save && changed {
					if err := e.Save(); err != nil {
						log.WithError(err).Error("failed to save layout")
					}
				}
				report(reason)
			}
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Rewrite the layout file after each reload")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print a one line summary instead of the layout")

	return cmd
}

// watchStore signals changes to the file holding the disabled list. The
// channel is nil when the list is not kept in a file.
func watchStore(ctx context.Context, e *editor.Editor, log *logrus.Entry) (<-chan struct{}, error) {
	path := e.StorePath()
	if path == "" {
		return nil, nil
	}
	return watch.New([]string{filepath.Dir(path)}, filepath.Base(path), config.WatchDebounce(), log).Run(ctx)
}

// loggerKey carries the process logger in a command context.
type loggerKey struct{}

// WithLogger stores log in ctx for commands that start their own workers.
func WithLogger(ctx context.Context, log *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func contextLogger(cmd *cobra.Command) *logrus.Entry {
	if cmd.Context() != nil {
		if l, ok := cmd.Context().Value(loggerKey{}).(*logrus.Entry); ok {
			return l
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
