package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-action-layout/cmd"
	"github.com/mattsolo1/grove-action-layout/cmd/config"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/store"
)

var (
	ed *editor.Editor
	st store.DisabledStore
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"action-layout",
		"Arrange file manager actions into menus",
	)
	rootCmd.Long = "Edit the layout of installed file manager actions: order, submenus, separators, labels, icons and shortcuts."
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		st = nil
		config.InitConfig()
		if c.Name() == "version" {
			return nil
		}
		logger := config.NewLogger()

		cfg, err := config.EditorConfig()
		if err != nil {
			return err
		}

		st, err = config.OpenStore()
		if err != nil {
			// Non-fatal, disabled flags are kept in memory for this run.
			logger.WithError(err).Warn("cannot open disabled actions store, changes to it will not persist")
			st = store.NewMemoryStore()
		}

		entry := logrus.NewEntry(logger)
		c.SetContext(cmd.WithLogger(c.Context(), entry))
		ed = editor.New(cfg, st, entry)
		if err := ed.Reload(); err != nil {
			logger.WithError(err).Debug("reload finished with errors")
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		return store.Close(st)
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewListCmd(&ed))
	rootCmd.AddCommand(cmd.NewShowCmd(&ed))
	rootCmd.AddCommand(cmd.NewMoveCmd(&ed))
	rootCmd.AddCommand(cmd.NewUpCmd(&ed))
	rootCmd.AddCommand(cmd.NewDownCmd(&ed))
	rootCmd.AddCommand(cmd.NewNewCmd(&ed))
	rootCmd.AddCommand(cmd.NewRemoveCmd(&ed))
	rootCmd.AddCommand(cmd.NewLabelCmd(&ed))
	rootCmd.AddCommand(cmd.NewIconCmd(&ed))
	rootCmd.AddCommand(cmd.NewAccelCmd(&ed))
	rootCmd.AddCommand(cmd.NewEnableCmd(&ed))
	rootCmd.AddCommand(cmd.NewDisableCmd(&ed))
	rootCmd.AddCommand(cmd.NewToggleCmd(&ed))
	rootCmd.AddCommand(cmd.NewResetCmd(&ed))
	rootCmd.AddCommand(cmd.NewValidateCmd(&ed))
	rootCmd.AddCommand(cmd.NewExportCmd(&ed))
	rootCmd.AddCommand(cmd.NewWatchCmd(&ed))
	rootCmd.AddCommand(cmd.NewTuiCmd(&ed))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	return rootCmd
}
