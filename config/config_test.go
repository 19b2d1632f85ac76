package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `plugin:
  file: "/srv/plugins/fields/main.go"
  plugins_root: "/srv/plugins"
  base_url: "https://example.com/plugins"
db:
  driver: "mysql"
  dsn: "root:123@tcp(localhost:3306)/jobs"
  conn_max_lifetime: "30m"
redis:
  url: "redis://localhost:6379/0"
  ttl: "5m"
log:
  level: "debug"
`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir())

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.DSN != "root:123@tcp(localhost:3306)/jobs" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", cfg.DB.ConnMaxLifetime)
	}
	if cfg.DB.MaxOpenConns != defaultMaxOpen {
		t.Errorf("MaxOpenConns default = %d, want %d", cfg.DB.MaxOpenConns, defaultMaxOpen)
	}
	if cfg.Redis.TTL != 5*time.Minute {
		t.Errorf("Redis.TTL = %v, want 5m", cfg.Redis.TTL)
	}
	if cfg.Plugin.PluginsRoot != "/srv/plugins" {
		t.Errorf("Plugin.PluginsRoot = %q", cfg.Plugin.PluginsRoot)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile(missing) expected error, got nil")
	}
}

func TestInitConfigFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	t.Setenv("JMF_DB_DSN", "override-dsn")

	cfg, err := InitConfigFrom(dir)
	if err != nil {
		t.Fatalf("InitConfigFrom() error: %v", err)
	}
	if cfg.DB.DSN != "override-dsn" {
		t.Errorf("DB.DSN = %q, want env override", cfg.DB.DSN)
	}
	if cfg.DB.Driver != "mysql" {
		t.Errorf("DB.Driver = %q, want mysql", cfg.DB.Driver)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
}

func TestInitConfigFrom_Defaults(t *testing.T) {
	cfg, err := InitConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("InitConfigFrom(empty dir) error: %v", err)
	}
	if cfg.DB.Driver != DefaultDriver || cfg.DB.DSN != DefaultDSN {
		t.Errorf("DB defaults = %+v", cfg.DB)
	}
	if cfg.Redis.URL != "" || cfg.Redis.TTL != DefaultCacheTTL {
		t.Errorf("Redis defaults = %+v", cfg.Redis)
	}
	if cfg.Plugin.BaseURL != DefaultBaseURL || cfg.Log.Level != DefaultLogLevel {
		t.Errorf("defaults = %+v / %+v", cfg.Plugin, cfg.Log)
	}
}
