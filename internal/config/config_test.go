package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GistHost != defaultGistHost {
		t.Fatalf("GistHost = %q, want %q", cfg.GistHost, defaultGistHost)
	}
	if cfg.AuthHost != defaultAuthHost {
		t.Fatalf("AuthHost = %q, want %q", cfg.AuthHost, defaultAuthHost)
	}
	if cfg.Timeout != defaultTimeoutSeconds*time.Second {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeoutSeconds*time.Second)
	}
}

func TestLoad_ReadsExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	body := "gist_host = \"http://gist.local\"\nauth_host = \"http://auth.local\"\ntimeout_seconds = 3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GistHost != "http://gist.local" {
		t.Fatalf("GistHost = %q, want http://gist.local", cfg.GistHost)
	}
	if cfg.AuthHost != "http://auth.local" {
		t.Fatalf("AuthHost = %q, want http://auth.local", cfg.AuthHost)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestLoad_EmptyFieldsFallBackToDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("gist_host = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GistHost != defaultGistHost {
		t.Fatalf("GistHost = %q, want %q", cfg.GistHost, defaultGistHost)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load returned nil error, want parse error")
	}
}
