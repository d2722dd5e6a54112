package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

func NewMoveCmd(ed **editor.Editor) *cobra.Command {
	var (
		position string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "move <node> <target>",
		Short: "Move a node next to or into another node",
		Long: `Move a node, with everything below it, relative to a target node.

Nodes are given as identifiers or index paths as shown by 'list'.

Positions:
  before           Place the node above the target
  after            Place the node below the target
  into             Append to the target submenu
  into-or-before   Prepend to the target submenu
  into-or-after    Same as into

Examples:
  action-layout move 3 0                                  # Move the fourth row above the first
  action-layout move mount.nemo_action Tools --position into
  action-layout move 1/0 2 --position after --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			pos, err := tree.ParseDropPosition(position)
			if err != nil {
				return err
			}
			src, err := e.Lookup(args[0])
			if err != nil {
				return fmt.Errorf("source: %w", err)
			}
			target, err := e.Lookup(args[1])
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}

			if err := e.Drop(src, target, pos); err != nil {
				return fmt.Errorf("move %s: %w", args[0], err)
			}
			return commit(cmd, e, dryRun)
		},
	}

	cmd.Flags().StringVarP(&position, "position", "p", "before", "Where to place the node: before, after, into, into-or-before, into-or-after")
	addDryRunFlag(cmd, &dryRun)

	return cmd
}

func NewUpCmd(ed **editor.Editor) *cobra.Command {
	return newStepCmd(ed, "up", "Move a node one row up", (*editor.Editor).MoveUp)
}

func NewDownCmd(ed **editor.Editor) *cobra.Command {
	return newStepCmd(ed, "down", "Move a node one row down", (*editor.Editor).MoveDown)
}

func newStepCmd(ed **editor.Editor, name, short string, step func(*editor.Editor, tree.Handle) bool) *cobra.Command {
	var (
		count  int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   name + " <node>",
		Short: short,
		Long: short + `, entering and leaving submenus on the way.

Examples:
  action-layout ` + name + ` mount.nemo_action
  action-layout ` + name + ` 2/1 --count 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			h, err := e.Lookup(args[0])
			if err != nil {
				return err
			}
			moved := 0
			for ; moved < count; moved++ {
				if !step(e, h) {
					break
				}
				h, _ = e.Selected()
			}
			if moved == 0 {
				edge := "first"
				if name == "down" {
					edge = "last"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s\n", args[0], edge)
				return nil
			}
			return commit(cmd, e, dryRun)
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of rows to move")
	addDryRunFlag(cmd, &dryRun)

	return cmd
}
