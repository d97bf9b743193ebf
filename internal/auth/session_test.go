package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sfairchild/parasvg/internal/credstore"
)

func storeAt(t *testing.T) *credstore.Store {
	t.Helper()
	return credstore.New(filepath.Join(t.TempDir(), "credentials.toml"))
}

func TestInit_RestoresCachedToken(t *testing.T) {
	store := storeAt(t)
	if err := store.Set(tokenKey, "cached"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	s := NewSession(store)
	s.Init()

	if got := s.CurrentToken(); got != "cached" {
		t.Fatalf("CurrentToken = %q, want cached", got)
	}
	if !s.Authenticated() {
		t.Fatal("Authenticated = false, want true")
	}
}

func TestInit_MissingTokenStaysSilent(t *testing.T) {
	s := NewSession(storeAt(t))
	s.Init()

	if s.Authenticated() {
		t.Fatal("Authenticated = true, want false")
	}
	if failures := s.TakeFailures(); len(failures) != 0 {
		t.Fatalf("failures = %v, want none", failures)
	}
}

func TestInit_CorruptStoreStaysSilent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "credentials.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewSession(credstore.New(path))
	s.Init()

	if s.Authenticated() {
		t.Fatal("Authenticated = true, want false")
	}
	if failures := s.TakeFailures(); len(failures) != 0 {
		t.Fatalf("failures = %v, want none", failures)
	}
}

func TestBeginExchange_EmptyCodeRecordsFailure(t *testing.T) {
	s := NewSession(storeAt(t))

	_, ok := s.BeginExchange("")
	if ok {
		t.Fatal("BeginExchange accepted empty code")
	}
	failures := s.TakeFailures()
	if len(failures) != 1 || !strings.Contains(failures[0], "No login code") {
		t.Fatalf("failures = %v, want no-code message", failures)
	}
	if s.SigningIn() {
		t.Fatal("SigningIn = true, want false")
	}
}

func TestApplyExchangeResult_SuccessCachesToken(t *testing.T) {
	store := storeAt(t)
	s := NewSession(store)

	seq, ok := s.BeginExchange("code-1")
	if !ok {
		t.Fatal("BeginExchange rejected code")
	}
	if !s.SigningIn() {
		t.Fatal("SigningIn = false, want true while pending")
	}

	s.ApplyExchangeResult(seq, "tok-1", nil)

	if got := s.CurrentToken(); got != "tok-1" {
		t.Fatalf("CurrentToken = %q, want tok-1", got)
	}
	if s.SigningIn() {
		t.Fatal("SigningIn = true, want false after completion")
	}
	value, okGet, err := store.Get(tokenKey)
	if err != nil || !okGet || value != "tok-1" {
		t.Fatalf("cached token = (%q, %v, %v), want (tok-1, true, nil)", value, okGet, err)
	}
	if failures := s.TakeFailures(); len(failures) != 0 {
		t.Fatalf("failures = %v, want none", failures)
	}
}

func TestApplyExchangeResult_FailureLeavesTokenUnset(t *testing.T) {
	s := NewSession(storeAt(t))

	seq, _ := s.BeginExchange("code-1")
	s.ApplyExchangeResult(seq, "", errors.New("boom"))

	if s.Authenticated() {
		t.Fatal("Authenticated = true, want false after failed exchange")
	}
	failures := s.TakeFailures()
	if len(failures) != 1 || !strings.Contains(failures[0], "boom") {
		t.Fatalf("failures = %v, want exchange failure", failures)
	}
}

func TestApplyExchangeResult_StaleSequenceDiscarded(t *testing.T) {
	s := NewSession(storeAt(t))

	first, _ := s.BeginExchange("code-1")
	second, _ := s.BeginExchange("code-2")

	// The newer request resolves first; the older response must not win.
	s.ApplyExchangeResult(second, "tok-2", nil)
	s.ApplyExchangeResult(first, "tok-1", nil)

	if got := s.CurrentToken(); got != "tok-2" {
		t.Fatalf("CurrentToken = %q, want tok-2 (stale response applied)", got)
	}
}

func TestApplyExchangeResult_CacheFailureKeepsToken(t *testing.T) {
	tmp := t.TempDir()
	// A directory at the credentials path makes every write fail.
	blocked := filepath.Join(tmp, "credentials.toml")
	if err := os.MkdirAll(blocked, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	s := NewSession(credstore.New(blocked))
	seq, _ := s.BeginExchange("code-1")
	s.ApplyExchangeResult(seq, "tok-1", nil)

	if got := s.CurrentToken(); got != "tok-1" {
		t.Fatalf("CurrentToken = %q, want tok-1 despite cache failure", got)
	}
	failures := s.TakeFailures()
	if len(failures) != 1 || !strings.Contains(failures[0], "could not be saved") {
		t.Fatalf("failures = %v, want non-fatal cache warning", failures)
	}
}

func TestExchangeClient_SwapsCodeForToken(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-9"})
	}))
	t.Cleanup(server.Close)

	c, err := NewExchangeClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewExchangeClient returned error: %v", err)
	}

	token, err := c.Exchange(context.Background(), "my-code")
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if token != "tok-9" {
		t.Fatalf("token = %q, want tok-9", token)
	}
	if gotPath != "/authenticate/my-code" {
		t.Fatalf("path = %q, want /authenticate/my-code", gotPath)
	}
}

func TestExchangeClient_Failures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/authenticate/empty":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		default:
			http.Error(w, "nope", http.StatusUnauthorized)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewExchangeClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewExchangeClient returned error: %v", err)
	}

	if _, err := c.Exchange(context.Background(), "bad"); err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("error = %v, want status 401 error", err)
	}
	if _, err := c.Exchange(context.Background(), "empty"); err == nil || !strings.Contains(err.Error(), "missing token") {
		t.Fatalf("error = %v, want missing token error", err)
	}
	if _, err := c.Exchange(context.Background(), ""); err == nil {
		t.Fatal("Exchange accepted empty code, want error")
	}
}
