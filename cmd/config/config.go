package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattsolo1/grove-core/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/actions"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/store"
	"github.com/mattsolo1/grove-action-layout/pkg/watch"
)

func InitConfig() {
	cfgFile := viper.GetString("config_file")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Join(configHome(), "action-layout"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ACTION_LAYOUT")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("layout_file", layout.DefaultPath(configHome()))
	viper.SetDefault("data_dirs", systemDataDirs())
	viper.SetDefault("user_data_dir", dataHome())
	viper.SetDefault("extension", actions.DefaultExtension)
	viper.SetDefault("store", store.BackendSQLite)
	viper.SetDefault("state_dir", filepath.Join(stateHome(), "action-layout"))
	viper.SetDefault("locale", locale())
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("watch_debounce", watch.DefaultDebounce)
	viper.SetDefault("reserved_shortcuts", map[string]string{})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", cfgFile, err)
		}
	}
}

// AddGlobalFlags adds the persistent flags and binds them to config keys.
// Flags the standard root command already carries are bound as they are.
func AddGlobalFlags(cmd *cobra.Command) {
	bindFlag(cmd, "config_file", "config", "config file (default is $XDG_CONFIG_HOME/action-layout/config.yaml)")
	bindFlag(cmd, "layout_file", "layout", "layout file to edit (default is $XDG_CONFIG_HOME/nemo/actions-tree.json)")
	bindFlag(cmd, "store", "store", "disabled list backend: sqlite, file or memory")
	bindFlag(cmd, "log_level", "log-level", "log level: debug, info, warn, error")
}

func bindFlag(cmd *cobra.Command, key, name, usage string) {
	flags := cmd.PersistentFlags()
	if flags.Lookup(name) == nil {
		flags.String(name, "", usage)
	}
	_ = viper.BindPFlag(key, flags.Lookup(name))
}

// NewLogger builds the process logger. Logs go to stderr so command output
// stays clean.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		logger.SetLevel(logrus.WarnLevel)
		logger.Warnf("unknown log level %q, using warn", viper.GetString("log_level"))
		return logger
	}
	logger.SetLevel(level)
	return logger
}

// ActionDirs lists the directories holding action files: system data dirs
// first, the user data dir last so user files win.
func ActionDirs() []string {
	dataDirs := viper.GetStringSlice("data_dirs")
	if len(dataDirs) == 1 && strings.Contains(dataDirs[0], ":") {
		dataDirs = filepath.SplitList(dataDirs[0])
	}
	if user := viper.GetString("user_data_dir"); user != "" {
		dataDirs = append(dataDirs, user)
	}
	return actions.ActionDirs(uniqueDirs(dataDirs))
}

// uniqueDirs drops repeated directories, keeping the last mention so the
// override order holds.
func uniqueDirs(dirs []string) []string {
	keys := make([]string, len(dirs))
	last := make(map[string]int, len(dirs))
	for i, d := range dirs {
		key, err := pathutil.NormalizeForLookup(d)
		if err != nil {
			key = filepath.Clean(d)
		}
		keys[i] = key
		last[key] = i
	}
	out := make([]string, 0, len(dirs))
	for i, d := range dirs {
		if d != "" && last[keys[i]] == i {
			out = append(out, d)
		}
	}
	return out
}

// WatchDebounce is the quiet period before a change burst triggers a reload.
func WatchDebounce() time.Duration {
	return viper.GetDuration("watch_debounce")
}

// EditorConfig assembles the editor configuration.
func EditorConfig() (editor.Config, error) {
	table := make(map[string]string, len(accel.DefaultReserved))
	for label, s := range accel.DefaultReserved {
		table[label] = s
	}
	for label, s := range viper.GetStringMapString("reserved_shortcuts") {
		if s == "" {
			delete(table, label)
			continue
		}
		table[label] = s
	}
	reserved, err := accel.NewReserved(table)
	if err != nil {
		return editor.Config{}, fmt.Errorf("invalid reserved_shortcuts: %w", err)
	}

	return editor.Config{
		LayoutFile: viper.GetString("layout_file"),
		ActionDirs: ActionDirs(),
		Extension:  viper.GetString("extension"),
		Locale:     viper.GetString("locale"),
		Reserved:   reserved,
	}, nil
}

// OpenStore opens the configured disabled list backend.
func OpenStore() (store.DisabledStore, error) {
	return store.Open(viper.GetString("store"), viper.GetString("state_dir"))
}

func home() string {
	h, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return h
}

func configHome() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	return filepath.Join(home(), ".config")
}

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(home(), ".local", "share")
}

func stateHome() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d
	}
	return filepath.Join(home(), ".local", "state")
}

func systemDataDirs() []string {
	if d := os.Getenv("XDG_DATA_DIRS"); d != "" {
		return filepath.SplitList(d)
	}
	return []string{"/usr/local/share", "/usr/share"}
}

func locale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
