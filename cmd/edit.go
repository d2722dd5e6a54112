package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// stdin answers confirmation prompts.
var stdin = os.Stdin

// NewLabelCmd creates the `label` command group.
func NewLabelCmd(ed **editor.Editor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Change the label shown for a node",
	}
	cmd.AddCommand(newEditCmd(ed, "set <node> <label>", "Set a custom label", 2,
		func(e *editor.Editor, h tree.Handle, args []string) error { return e.SetLabel(h, args[0]) }))
	cmd.AddCommand(newEditCmd(ed, "clear <node>", "Show the action's own label again", 1,
		func(e *editor.Editor, h tree.Handle, _ []string) error { return e.ClearLabel(h) }))
	return cmd
}

// NewIconCmd creates the `icon` command group.
func NewIconCmd(ed **editor.Editor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Change the icon shown for a node",
		Long: `Change the icon shown for a node. Icons are theme icon names or
absolute paths to image files.

Examples:
  action-layout icon set Archive folder-symbolic
  action-layout icon clear mount.nemo_action      # No icon
  action-layout icon original mount.nemo_action   # The action's own icon`,
	}
	cmd.AddCommand(newEditCmd(ed, "set <node> <icon>", "Set a custom icon", 2,
		func(e *editor.Editor, h tree.Handle, args []string) error { return e.SetIcon(h, args[0]) }))
	cmd.AddCommand(newEditCmd(ed, "clear <node>", "Show the node without an icon", 1,
		func(e *editor.Editor, h tree.Handle, _ []string) error { return e.ClearIcon(h) }))
	cmd.AddCommand(newEditCmd(ed, "original <node>", "Use the icon from the action file", 1,
		func(e *editor.Editor, h tree.Handle, _ []string) error { return e.OriginalIcon(h) }))
	return cmd
}

// NewAccelCmd creates the `accel` command group.
func NewAccelCmd(ed **editor.Editor) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:     "accel",
		Aliases: []string{"shortcut"},
		Short:   "Assign keyboard shortcuts",
		Long: `Assign keyboard shortcuts to menu nodes.

Shortcuts are written as <Primary><Shift>k or Ctrl+Shift+K. Shortcuts
built into the file manager cannot be assigned. When another node already
uses the shortcut you are asked whether to move it; --replace moves it
without asking.

Examples:
  action-layout accel set mount.nemo_action '<Primary><Alt>m'
  action-layout accel set 2/0 Ctrl+Shift+U --replace
  action-layout accel clear mount.nemo_action`,
	}

	set := newEditCmd(ed, "set <node> <shortcut>", "Assign a shortcut", 2,
		func(e *editor.Editor, h tree.Handle, args []string) error {
			confirm := func(owner string) bool {
				if replace {
					return true
				}
				return askYesNo(stdin, cmd.ErrOrStderr(), fmt.Sprintf("%s is used by %q. Move it?", args[0], owner))
			}
			return e.SetAccelerator(h, args[0], confirm)
		})
	set.Flags().BoolVar(&replace, "replace", false, "Take the shortcut from the node currently using it")
	cmd.AddCommand(set)

	cmd.AddCommand(newEditCmd(ed, "clear <node>", "Remove the shortcut", 1,
		func(e *editor.Editor, h tree.Handle, _ []string) error { return e.ClearAccelerator(h) }))
	return cmd
}

// newEditCmd builds a command that changes one property of one node. fn gets
// the arguments after the node reference.
func newEditCmd(ed **editor.Editor, use, short string, nargs int, fn func(*editor.Editor, tree.Handle, []string) error) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *ed

			h, err := e.Lookup(args[0])
			if err != nil {
				return err
			}
			if err := fn(e, h, args[1:]); err != nil {
				return err
			}
			return commit(cmd, e, dryRun)
		},
	}
	addDryRunFlag(cmd, &dryRun)
	return cmd
}

// askYesNo prompts on out and reads the answer from in. Without a terminal
// the answer is no.
func askYesNo(in *os.File, out io.Writer, question string) bool {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return false
	}
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
