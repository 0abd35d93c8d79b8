// Package config resolves the data directory, the optional config file and
// per-invocation settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name, used under both the
	// platform data dir and the user config dir.
	AppName = "todo-cli"

	// ConfigFile is the config filename inside the user config dir.
	ConfigFile = "config.toml"

	// JSONFile is the store filename for the json backend.
	JSONFile = "todos.json"

	// SQLiteFile is the store filename for the sqlite backend.
	SQLiteFile = "todos.db"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds paths and settings for one invocation.
type Config struct {
	// Dir is the data directory holding the store file.
	Dir string

	// Backend selects the store implementation.
	Backend string

	// Location is used to render task creation times.
	Location *time.Location

	// LogLevel is the configured log level name. Debug overrides it.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Options are the command-line overrides applied on top of the config file.
type Options struct {
	// DataDir overrides data_dir.
	DataDir string

	// ConfigFile is an explicit config file path. It must exist when set.
	ConfigFile string

	// Backend overrides backend.
	Backend string
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	DataDir  string `toml:"data_dir"`
	Backend  string `toml:"backend"`
	Timezone string `toml:"timezone"`
	LogLevel string `toml:"log_level"`
}

// New builds a Config from defaults, the config file and opts, in that order.
func New(opts Options) (*Config, error) {
	var fc fileConfig

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &fc)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("config %s: unknown key: %s", path, undecoded[0])
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No config file is fine.
		default:
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Dir:      DefaultDataDir(),
		Backend:  BackendJSON,
		Location: time.Local,
		LogLevel: "warn",
	}

	if fc.DataDir != "" {
		cfg.Dir = expandHome(fc.DataDir)
	}
	if fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Timezone != "" && fc.Timezone != "Local" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return nil, fmt.Errorf("config %s: invalid timezone: %s", path, fc.Timezone)
		}
		cfg.Location = loc
	}

	if opts.DataDir != "" {
		cfg.Dir = opts.DataDir
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}

	switch cfg.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}

	return cfg, nil
}

// DefaultConfigFile returns <user config dir>/todo-cli/config.toml, or ""
// if the user config dir cannot be determined.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, ConfigFile)
}

// DefaultDataDir returns the platform data directory for the application.
// Uses XDG_DATA_HOME or $HOME/.local/share on Unix, and the roaming
// application data dir on macOS and Windows.
func DefaultDataDir() string {
	switch runtime.GOOS {
	case "windows", "darwin", "ios":
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, AppName)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return filepath.Join(xdg, AppName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", AppName)
		}
	}
	// Fallback to current directory if home can't be determined
	return AppName
}

// DataPath returns the store file path for the configured backend.
func (c *Config) DataPath() string {
	if c.Backend == BackendSQLite {
		return filepath.Join(c.Dir, SQLiteFile)
	}
	return filepath.Join(c.Dir, JSONFile)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
