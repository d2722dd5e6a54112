package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

// NewExportCmd creates the `export` command.
func NewExportCmd(ed **editor.Editor) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the layout as the file manager will read it",
		Long: `Print the current layout, with uninstalled actions dropped and new ones
appended, in the layout file format or as YAML.

Examples:
  action-layout export
  action-layout export --format yaml
  action-layout export -o ~/backup/actions-tree.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed
			doc := e.Document()

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = layout.Marshal(doc)
			case "yaml":
				data, err = yaml.Marshal(doc)
			default:
				return fmt.Errorf("unknown format %q, expected json or yaml", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode layout: %w", err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if format == "json" {
				return layout.Save(output, doc)
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
