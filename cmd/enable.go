package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

func NewEnableCmd(ed **editor.Editor) *cobra.Command {
	return newEnabledCmd(ed, "enable", "Show actions in the menu again",
		func(e *editor.Editor, h tree.Handle) error { return e.SetEnabled(h, true) })
}

func NewDisableCmd(ed **editor.Editor) *cobra.Command {
	return newEnabledCmd(ed, "disable", "Hide actions from the menu",
		func(e *editor.Editor, h tree.Handle) error { return e.SetEnabled(h, false) })
}

func NewToggleCmd(ed **editor.Editor) *cobra.Command {
	return newEnabledCmd(ed, "toggle", "Flip whether actions show in the menu",
		func(e *editor.Editor, h tree.Handle) error { return e.ToggleEnabled(h) })
}

// newEnabledCmd builds enable, disable and toggle. The disabled list is
// written by the editor as each action changes, so there is nothing to save
// afterwards.
func newEnabledCmd(ed **editor.Editor, name, short string, fn func(*editor.Editor, tree.Handle) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <action>...",
		Short: short,
		Long: short + `. The change takes effect immediately; the layout file
is not touched.

Examples:
  action-layout ` + name + ` mount.nemo_action
  action-layout ` + name + ` 0 1/2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			hs, err := resolveAll(e, args)
			if err != nil {
				return err
			}
			for i, h := range hs {
				if err := fn(e, h); err != nil {
					return fmt.Errorf("%s %s: %w", name, args[i], err)
				}
				n, _ := e.Model().Get(h)
				state := "disabled"
				if n.Enabled {
					state = "enabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", n.ID, state)
			}
			return nil
		},
	}
	return cmd
}

// NewResetCmd creates the `reset` command.
func NewResetCmd(ed **editor.Editor) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the layout with a flat list of all actions",
		Long: `Replace the layout with every installed action at the top level.
Submenus, separators and custom labels, icons and shortcuts are dropped.
Disabled actions stay disabled.

Examples:
  action-layout reset --dry-run
  action-layout reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed
			if err := e.DefaultLayout(); err != nil {
				return err
			}
			return commit(cmd, e, dryRun)
		},
	}

	addDryRunFlag(cmd, &dryRun)

	return cmd
}
