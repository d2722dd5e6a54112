package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// NewNewCmd creates the `new` command.
func NewNewCmd(ed **editor.Editor) *cobra.Command {
	var (
		at     string
		label  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "new <submenu|separator>",
		Short: "Add a submenu or a separator",
		Long: `Add a submenu or a separator to the layout.

Without --at the new node goes to the end of the top level. With --at it
goes below the given node, or first inside it when that node is a submenu.

Examples:
  action-layout new submenu --label Archive
  action-layout new separator --at mount.nemo_action
  action-layout new separator --at Archive`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"submenu", "separator"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			if at != "" {
				h, err := e.Lookup(at)
				if err != nil {
					return err
				}
				e.Select(h)
			} else {
				e.Deselect()
			}

			var (
				h   tree.Handle
				err error
			)
			switch args[0] {
			case "submenu":
				h, err = e.InsertSubmenu()
				if err == nil && label != "" {
					err = e.SetLabel(h, label)
				}
			case "separator":
				if label != "" {
					return fmt.Errorf("separators have no label")
				}
				h, err = e.InsertSeparator()
			default:
				return fmt.Errorf("unknown node type %q, expected submenu or separator", args[0])
			}
			if err != nil {
				return err
			}

			if n, ok := e.Model().Get(h); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s at %s\n", n.Type, tree.FormatPath(e.Model().PathOf(h)))
			}
			return commit(cmd, e, dryRun)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Node to insert after, or submenu to insert into")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Label of the new submenu")
	addDryRunFlag(cmd, &dryRun)

	return cmd
}

// NewRemoveCmd creates the `remove` command.
func NewRemoveCmd(ed **editor.Editor) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "remove <node>...",
		Short:   "Remove submenus or separators",
		Aliases: []string{"rm"},
		Long: `Remove submenus or separators. The contents of a removed submenu take
its place. Actions cannot be removed; use 'disable' instead.

Nodes are looked up one after another, each against the layout left by
the previous removal.

Examples:
  action-layout remove Archive
  action-layout remove 3 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			for _, ref := range args {
				h, err := e.Lookup(ref)
				if err != nil {
					return err
				}
				if err := e.Remove(h); err != nil {
					return fmt.Errorf("remove %s: %w", ref, err)
				}
			}
			return commit(cmd, e, dryRun)
		},
	}

	addDryRunFlag(cmd, &dryRun)

	return cmd
}
