package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

func addDryRunFlag(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVarP(dryRun, "dry-run", "n", false, "Print the resulting layout instead of saving it")
}

// commit saves the edited layout, or prints it when dryRun is set.
func commit(cmd *cobra.Command, e *editor.Editor, dryRun bool) error {
	out := cmd.OutOrStdout()
	if dryRun {
		printRowsTable(out, e.Rows())
		return nil
	}
	if !e.NeedsSaved() {
		fmt.Fprintln(out, "Layout unchanged")
		return nil
	}
	if err := e.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", e.Config().LayoutFile)
	return nil
}

func resolveAll(e *editor.Editor, refs []string) ([]tree.Handle, error) {
	hs := make([]tree.Handle, 0, len(refs))
	for _, ref := range refs {
		h, err := e.Lookup(ref)
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	return hs, nil
}
