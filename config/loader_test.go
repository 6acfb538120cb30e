package config

import (
	"os"
	"testing"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", Config.Server.Port)
	}
	if Config.Router.WindowHours != 24 {
		t.Errorf("default window = %d, want 24", Config.Router.WindowHours)
	}
}

func TestLoadAppConfigFromFile(t *testing.T) {
	t.Chdir(t.TempDir())
	yml := "server:\n  port: 9090\ndatabase:\n  path: /data/harail.db\nrouter:\n  windowHours: 48\n"
	if err := os.WriteFile("config.yml", []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", Config.Server.Port)
	}
	if Config.Database.Path != "/data/harail.db" {
		t.Errorf("database path = %q", Config.Database.Path)
	}
	if Config.Router.WindowHours != 48 {
		t.Errorf("window = %d, want 48", Config.Router.WindowHours)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	yml := "server:\n  port: 9090\n"
	if err := os.WriteFile("config.yml", []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("HARAIL_DB", "/tmp/other.db")

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", Config.Server.Port)
	}
	if Config.Database.Path != "/tmp/other.db" {
		t.Errorf("database path = %q, want env override", Config.Database.Path)
	}
}

func TestInvalidPortRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "not-a-number")

	if err := LoadAppConfig(); err == nil {
		t.Fatal("expected an error for a non-numeric PORT")
	}
}
