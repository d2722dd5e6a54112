package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

// ErrInvalidLayout is returned by validate when the file would be discarded.
var ErrInvalidLayout = errors.New("layout file is invalid")

// NewValidateCmd creates the `validate` command.
func NewValidateCmd(ed **editor.Editor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a layout file",
		Long: `Check a layout file without changing anything. An invalid file is
ignored by the file manager and replaced by a flat menu the next time the
layout is saved.

Actions named in the file that are not installed are reported too; they
are dropped when the layout is next saved.

Examples:
  action-layout validate
  action-layout validate ~/backup/actions-tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed
			out := cmd.OutOrStdout()

			path := e.Config().LayoutFile
			if len(args) == 1 {
				path = args[0]
			}

			doc, report := layout.Load(path)
			for _, d := range report.Diagnostics {
				fmt.Fprintf(out, "note: %s\n", d)
			}
			switch {
			case report.Missing:
				fmt.Fprintf(out, "%s does not exist, all actions are shown flat\n", path)
				return nil
			case report.Discarded:
				fmt.Fprintf(out, "%s: %v\n", path, report.Reason)
				return ErrInvalidLayout
			}

			pool := e.Installed()

			missing := 0
			work := append([]layout.Node(nil), doc.Toplevel...)
			for len(work) > 0 {
				n := work[0]
				work = append(work[1:], n.Children...)
				if n.Type != layout.TypeAction {
					continue
				}
				if _, ok := pool.Get(n.UUID); !ok {
					fmt.Fprintf(out, "warning: %s is not installed\n", n.UUID)
					missing++
				}
			}

			fmt.Fprintf(out, "%s is valid: %d nodes", path, doc.Count())
			if missing > 0 {
				fmt.Fprintf(out, ", %d not installed", missing)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	return cmd
}
