package config

import (
	"os"
	"strings"
	"testing"
)

const testCSRFKey = "abcdefghijklmnopqrstuvwxyz012345"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CSRF_KEY", testCSRFKey)
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Web.CSRFKey != testCSRFKey || cfg.Port != "8080" || cfg.Database.Driver != DriverMemory {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigRequiresCSRFKey(t *testing.T) {
	setBaseEnv(t)
	if err := os.Unsetenv("CSRF_KEY"); err != nil {
		t.Fatalf("unset CSRF_KEY: %v", err)
	}

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "CSRF_KEY") {
		t.Fatalf("expected missing CSRF_KEY error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short csrf key", mutate: func(c *Config) { c.Web.CSRFKey = "short" }, wantErr: "CSRF_KEY"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: "POSTGRES_DSN"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: "unsupported DB_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Driver: DriverMemory},
				Web:      WebConfig{CSRFKey: testCSRFKey},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
