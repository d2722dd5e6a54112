package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/cmd/config"
	"github.com/mattsolo1/grove-action-layout/internal/tui/menu"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/watch"
)

// NewTuiCmd creates the `tui` command.
func NewTuiCmd(ed **editor.Editor) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the menu layout interactively",
		Long: `Launch an interactive Terminal User Interface for arranging actions.
Changes are kept in memory until saved with 'w'; enabling and disabling
actions takes effect immediately.

Installed action files are watched while the editor runs; the layout is
reloaded when they change unless there are unsaved edits. Actions enabled
or disabled by another program are updated in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			e := *ed

			var changes, disabled <-chan struct{}
			if !noWatch {
				log := contextLogger(cmd).WithField("component", "watch")
				cfg := e.Config()
				ch, err := watch.New(cfg.ActionDirs, cfg.Extension, config.WatchDebounce(), log).Run(cmd.Context())
				if err != nil {
					log.WithError(err).Warn("not watching action directories")
				} else {
					changes = ch
				}
				if disabled, err = watchStore(cmd.Context(), e, log); err != nil {
					log.WithError(err).Warn("not watching the disabled list")
				}
			}

			model := menu.New(e, changes, disabled)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not watch action directories for changes")

	return cmd
}
