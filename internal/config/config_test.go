package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "leavex" {
		t.Errorf("default dbname = %q, want leavex", cfg.Database.DBName)
	}
	if cfg.JWT.Issuer != "leavex.app" {
		t.Errorf("default issuer = %q, want leavex.app", cfg.JWT.Issuer)
	}
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: "9090"
database:
  dbname: fromfile
jwt:
  secret: file-secret
`)
	t.Setenv("DB_NAME", "fromenv")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want file value 9090", cfg.Server.Port)
	}
	// Environment wins over file
	if cfg.Database.DBName != "fromenv" {
		t.Errorf("dbname = %q, want env value fromenv", cfg.Database.DBName)
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig succeeded without JWT secret, want error")
	}
}

func TestLoadConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig accepted invalid duration, want error")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "leave"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "leavex"

	want := "postgres://leave:pw@db:5433/leavex?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("connection string = %q, want %q", got, want)
	}
}
