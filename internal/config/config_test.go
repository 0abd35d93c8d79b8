package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// isolate points the user config and data dirs at temp dirs.
func isolate(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	configHome = t.TempDir()
	dataHome = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return configHome, dataHome
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNew_Defaults(t *testing.T) {
	_, dataHome := isolate(t)

	cfg, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDir := filepath.Join(dataHome, AppName)
	if cfg.Dir != wantDir {
		t.Errorf("expected dir %q, got %q", wantDir, cfg.Dir)
	}
	if cfg.Backend != BackendJSON {
		t.Errorf("expected json backend, got %q", cfg.Backend)
	}
	if cfg.Location != time.Local {
		t.Errorf("expected local location, got %v", cfg.Location)
	}
	if cfg.DataPath() != filepath.Join(wantDir, JSONFile) {
		t.Errorf("unexpected data path %q", cfg.DataPath())
	}
}

func TestNew_ConfigFile(t *testing.T) {
	configHome, _ := isolate(t)
	dataDir := t.TempDir()
	writeConfig(t, filepath.Join(configHome, AppName, ConfigFile), `
data_dir = "`+filepath.ToSlash(dataDir)+`"
backend = "sqlite"
timezone = "UTC"
log_level = "info"
`)

	cfg, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dataDir {
		t.Errorf("expected dir %q, got %q", dataDir, cfg.Dir)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.Location)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
	if cfg.DataPath() != filepath.Join(dataDir, SQLiteFile) {
		t.Errorf("unexpected data path %q", cfg.DataPath())
	}
}

func TestNew_OptionsOverrideFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, path, "backend = \"sqlite\"\ndata_dir = \"/nowhere\"\n")

	dir := t.TempDir()
	cfg, err := New(Options{ConfigFile: path, DataDir: dir, Backend: BackendJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Backend != BackendJSON {
		t.Errorf("expected json backend, got %q", cfg.Backend)
	}
}

func TestNew_ExplicitConfigMissing(t *testing.T) {
	isolate(t)
	_, err := New(Options{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestNew_UnknownKey(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeConfig(t, path, "colour = true\n")

	_, err := New(Options{ConfigFile: path})
	if err == nil || !strings.Contains(err.Error(), "unknown key: colour") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestNew_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeConfig(t, path, "backend = \n")

	if _, err := New(Options{ConfigFile: path}); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	isolate(t)
	_, err := New(Options{Backend: "postgres"})
	if err == nil || err.Error() != "unknown backend: postgres" {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestNew_InvalidTimezone(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tz.toml")
	writeConfig(t, path, "timezone = \"Mars/Olympus\"\n")

	_, err := New(Options{ConfigFile: path})
	if err == nil || !strings.Contains(err.Error(), "invalid timezone") {
		t.Fatalf("expected invalid timezone error, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/tasks"); got != filepath.Join(home, "tasks") {
		t.Errorf("expected %q, got %q", filepath.Join(home, "tasks"), got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expected path unchanged, got %q", got)
	}
}
