package credstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet_MissingFileReportsAbsent(t *testing.T) {
	tmp := t.TempDir()
	s := New(filepath.Join(tmp, "credentials.toml"))

	value, ok, err := s.Get("token")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("Get = (%q, %v), want absent", value, ok)
	}
}

func TestSetThenGet_RoundTrips(t *testing.T) {
	tmp := t.TempDir()
	s := New(filepath.Join(tmp, "subdir", "credentials.toml"))

	if err := s.Set("token", "abc123"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, ok, err := s.Get("token")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || value != "abc123" {
		t.Fatalf("Get = (%q, %v), want (abc123, true)", value, ok)
	}
}

func TestSet_PreservesOtherKeys(t *testing.T) {
	tmp := t.TempDir()
	s := New(filepath.Join(tmp, "credentials.toml"))

	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set("other", "xyz"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, ok, err := s.Get("token")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || value != "abc" {
		t.Fatalf("Get = (%q, %v), want (abc, true)", value, ok)
	}
}

func TestGet_CorruptFileReturnsError(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "credentials.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(path)
	if _, _, err := s.Get("token"); err == nil {
		t.Fatal("Get returned nil error, want parse error")
	}
}

func TestSet_RewritesCorruptFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "credentials.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(path)
	if err := s.Set("token", "fresh"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, ok, err := s.Get("token")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || value != "fresh" {
		t.Fatalf("Get = (%q, %v), want (fresh, true)", value, ok)
	}
}

func TestDefaultPath_UnderConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := New("")
	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	want := filepath.Join(home, ".config", "parasvg", "credentials.toml")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("credentials file not at default path: %v", err)
	}
}
