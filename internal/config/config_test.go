package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
  timeout: "15s"
database:
  driver: "postgres"
  sqlite:
    path: "data/test.db"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "identi"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "info"
  format: "json"
listing:
  default_per_page: 25
export:
  max_rows: 5000
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// validConfig returns a config that passes Validate.
func validConfig() Config {
	return Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: "debug"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "data/identi.db"},
			Postgres: PostgresConfig{
				Host: "localhost", Port: 5432, User: "identi", DBName: "identi", SSLMode: "disable",
			},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_FullYAML(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 3000 || cfg.Server.Mode != "release" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.TimeoutDuration() != 15*time.Second {
		t.Errorf("TimeoutDuration = %v, want 15s", cfg.Server.TimeoutDuration())
	}
	pg := cfg.Database.Postgres
	if cfg.Database.Driver != "postgres" || pg.Host != "db.example.com" || pg.Port != 5433 || pg.DBName != "identi" || pg.SSLMode != "require" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Database.Pool.MaxIdleConns != 5 || cfg.Database.Pool.MaxOpenConns != 50 || cfg.Database.Pool.ConnMaxLifetime != "30m" {
		t.Errorf("Pool = %+v", cfg.Database.Pool)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Listing.DefaultPerPage != 25 {
		t.Errorf("Listing.DefaultPerPage = %d, want 25", cfg.Listing.DefaultPerPage)
	}
	if cfg.Export.MaxRows != 5000 {
		t.Errorf("Export.MaxRows = %d, want 5000", cfg.Export.MaxRows)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__LOG__LEVEL", "ERROR")
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")
	t.Setenv("APP__LISTING__DEFAULT_PER_PAGE", "50")
	t.Setenv("APP__EXPORT__MAX_ROWS", "100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite (env override)", cfg.Database.Driver)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want normalized %q", cfg.Log.Level, "error")
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d, want 20 (single underscore preserved)", cfg.Database.Pool.MaxIdleConns)
	}
	if cfg.Listing.DefaultPerPage != 50 || cfg.Export.MaxRows != 100 {
		t.Errorf("Listing/Export = %+v / %+v", cfg.Listing, cfg.Export)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want unchanged", cfg.Server.Host)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("Load(default config) error: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Listing.DefaultPerPage != DefaultPerPage || cfg.Export.MaxRows != DefaultMaxRows {
		t.Errorf("defaults = %+v / %+v", cfg.Listing, cfg.Export)
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = "  localhost  "
	cfg.Server.Timeout = "   "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Server.Host = %q, want trimmed", cfg.Server.Host)
	}
	if cfg.Server.Timeout != "" || cfg.Server.TimeoutDuration() != 0 {
		t.Errorf("whitespace timeout should be unset, got %q", cfg.Server.Timeout)
	}
	if cfg.Listing.DefaultPerPage != DefaultPerPage {
		t.Errorf("Listing.DefaultPerPage = %d, want %d", cfg.Listing.DefaultPerPage, DefaultPerPage)
	}
	if cfg.Export.MaxRows != DefaultMaxRows {
		t.Errorf("Export.MaxRows = %d, want %d", cfg.Export.MaxRows, DefaultMaxRows)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"invalid mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"blank host", func(c *Config) { c.Server.Host = "  " }, "server.host"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"sqlite without path", func(c *Config) { c.Database.SQLite.Path = " " }, "database.sqlite.path"},
		{"postgres without host", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Postgres.Host = "" }, "database.postgres.host"},
		{"postgres bad port", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Postgres.Port = 0 }, "database.postgres.port"},
		{"postgres without user", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Postgres.User = "" }, "database.postgres.user"},
		{"postgres without dbname", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Postgres.DBName = "" }, "database.postgres.dbname"},
		{"postgres bad sslmode", func(c *Config) { c.Database.Driver = "postgres"; c.Database.Postgres.SSLMode = "on" }, "sslmode"},
		{"release requires tls", func(c *Config) {
			c.Server.Mode = "release"
			c.Database.Driver = "postgres"
			c.Database.Postgres.SSLMode = "prefer"
		}, "sslmode"},
		{"bad timeout", func(c *Config) { c.Server.Timeout = "soon" }, "server.timeout"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = "-1s" }, "server.timeout"},
		{"bad cors max age", func(c *Config) { c.Server.CORS.MaxAge = "0s" }, "server.cors.max_age"},
		{"bad conn lifetime", func(c *Config) { c.Database.Pool.ConnMaxLifetime = "forever" }, "conn_max_lifetime"},
		{"per page too large", func(c *Config) { c.Listing.DefaultPerPage = MaxPerPage + 1 }, "listing.default_per_page"},
		{"negative per page", func(c *Config) { c.Listing.DefaultPerPage = -1 }, "listing.default_per_page"},
		{"negative max rows", func(c *Config) { c.Export.MaxRows = -5 }, "export.max_rows"},
		{"max rows beyond sheet", func(c *Config) { c.Export.MaxRows = MaxExportRows + 1 }, "export.max_rows"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReleaseWithVerifiedTLS(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = "release"
	cfg.Database.Driver = "postgres"
	cfg.Database.Postgres.SSLMode = " verify-full "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Database.Postgres.SSLMode != "verify-full" {
		t.Errorf("SSLMode = %q, want trimmed", cfg.Database.Postgres.SSLMode)
	}
}
