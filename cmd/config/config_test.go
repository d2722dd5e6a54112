package config

import (
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueDirsKeepsLastMention(t *testing.T) {
	sys := t.TempDir()
	user := t.TempDir()

	got := uniqueDirs([]string{sys, user, sys + string(filepath.Separator), ""})
	assert.Equal(t, []string{user, sys + string(filepath.Separator)}, got)
}

func TestGlobalFlagsOnStandardCommand(t *testing.T) {
	t.Cleanup(viper.Reset)

	root := cli.NewStandardCommand("action-layout", "test")
	require.NotPanics(t, func() { AddGlobalFlags(root) })

	layoutFile := filepath.Join(t.TempDir(), "actions-tree.json")
	require.NoError(t, root.PersistentFlags().Set("layout", layoutFile))
	require.NoError(t, root.PersistentFlags().Set("store", "memory"))
	assert.Equal(t, layoutFile, viper.GetString("layout_file"))
	assert.Equal(t, "memory", viper.GetString("store"))
}
