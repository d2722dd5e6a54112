package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

// listEntry is the JSON form of one row.
type listEntry struct {
	Path        string          `json:"path"`
	Depth       int             `json:"depth"`
	ID          string          `json:"id"`
	Type        layout.NodeType `json:"type"`
	Label       string          `json:"label"`
	Icon        string          `json:"icon,omitempty"`
	Accelerator string          `json:"accelerator,omitempty"`
	Enabled     bool            `json:"enabled"`
}

func NewListCmd(ed **editor.Editor) *cobra.Command {
	var (
		listJSON     bool
		listDisabled bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Show the menu layout",
		Aliases: []string{"ls"},
		Long: `Show every node of the menu layout in menu order.

Each row starts with its index path, which other commands accept in place
of an action identifier.

Examples:
  action-layout list              # Show the layout as a table
  action-layout list --disabled   # Only disabled actions
  action-layout list --json       # Machine readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			rows := e.Rows()
			if listDisabled {
				var filtered []editor.Row
				for _, r := range rows {
					if r.Type == layout.TypeAction && !r.Enabled {
						filtered = append(filtered, r)
					}
				}
				rows = filtered
			}

			if listJSON {
				return outputJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No actions installed")
				return nil
			}
			printRowsTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&listDisabled, "disabled", false, "Only list disabled actions")

	return cmd
}

func printRowsTable(out io.Writer, rows []editor.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(w, "PATH\tTYPE\tLABEL\tSHORTCUT\tID")
	fmt.Fprintln(w, "----\t---------\t------------------------------\t----------\t--")

	for _, r := range rows {
		label := strings.Repeat("  ", r.Depth) + rowLabel(r)
		if r.Type == layout.TypeAction && !r.Enabled {
			label += " (disabled)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Path, r.Type, truncateString(label, 40), accelLabel(r.Accel), r.ID)
	}

	w.Flush()
}

func rowLabel(r editor.Row) string {
	switch {
	case r.Type == layout.TypeSeparator:
		return "──────"
	case r.Type == layout.TypeSubmenu:
		return r.Label + " ▸"
	}
	return r.Label
}

// accelLabel renders a stored accelerator for people; invalid values are
// shown as they are.
func accelLabel(s string) string {
	if s == "" {
		return ""
	}
	a, err := accel.Parse(s)
	if err != nil {
		return s
	}
	return a.Label()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func outputJSON(out io.Writer, rows []editor.Row) error {
	entries := make([]listEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, listEntry{
			Path:        r.Path,
			Depth:       r.Depth,
			ID:          r.ID,
			Type:        r.Type,
			Label:       r.Label,
			Icon:        r.Icon,
			Accelerator: r.Accel,
			Enabled:     r.Enabled,
		})
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
