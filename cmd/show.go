package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// NewShowCmd creates the `show` command.
func NewShowCmd(ed **editor.Editor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <node>",
		Short: "Show the details of one node",
		Long: `Show everything known about one node: its place in the layout, the
overrides set on it and, for actions, the installed action file.

Examples:
  action-layout show mount.nemo_action
  action-layout show 2/1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			h, err := e.Lookup(args[0])
			if err != nil {
				return err
			}
			n, _ := e.Model().Get(h)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", n.ID)
			fmt.Fprintf(w, "Type:\t%s\n", n.Type)
			fmt.Fprintf(w, "Path:\t%s\n", tree.FormatPath(e.Model().PathOf(h)))
			if n.Type != layout.TypeSeparator {
				fmt.Fprintf(w, "Label:\t%s%s\n", n.Label(), marker(n.UserLabel))
				fmt.Fprintf(w, "Icon:\t%s%s\n", orNone(n.Icon()), marker(n.UserIcon))
				fmt.Fprintf(w, "Shortcut:\t%s\n", orNone(accelLabel(n.Accel())))
			}
			if n.IsSubmenu() {
				fmt.Fprintf(w, "Children:\t%d\n", len(e.Model().Children(h)))
			}
			if rec := n.Record; rec != nil {
				fmt.Fprintf(w, "Enabled:\t%t\n", n.Enabled)
				fmt.Fprintf(w, "File:\t%s\n", rec.Path)
				if rec.Comment != "" {
					fmt.Fprintf(w, "Comment:\t%s\n", rec.Comment)
				}
				if rec.Exec != "" {
					fmt.Fprintf(w, "Exec:\t%s\n", rec.Exec)
				}
			}
			return w.Flush()
		},
	}
	return cmd
}

func marker(override *string) string {
	if override != nil {
		return " (custom)"
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
