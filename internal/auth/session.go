// Package auth owns the login session: the code-to-token exchange, the
// cached access token, and the failure messages surfaced to the user.
package auth

import (
	"sync"

	"github.com/sfairchild/parasvg/internal/credstore"
)

// tokenKey is the credstore slot holding the cached access token.
const tokenKey = "github-access-token"

// Session tracks authentication state. All methods are safe for concurrent
// use; completions for stale exchange requests are discarded by sequence
// number so only the latest issued exchange can change the token.
type Session struct {
	mu       sync.Mutex
	store    *credstore.Store
	token    string
	pending  bool
	seq      uint64
	failures []string
}

// NewSession builds a Session backed by the given credential store.
func NewSession(store *credstore.Store) *Session {
	return &Session{store: store}
}

// Init attempts to restore a cached token. Absence and store failures are
// silent; the user simply has to sign in again.
func (s *Session) Init() {
	if s.store == nil {
		return
	}
	value, ok, err := s.store.Get(tokenKey)
	if err != nil || !ok {
		return
	}
	s.mu.Lock()
	s.token = value
	s.mu.Unlock()
}

// BeginExchange registers an exchange attempt for the given login code and
// returns its sequence number. An empty code is the cancellation path: it
// records a failure and returns ok=false without issuing a sequence.
func (s *Session) BeginExchange(code string) (seq uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		s.failures = append(s.failures, "No login code received from the provider. Please try signing in again.")
		return 0, false
	}
	s.seq++
	s.pending = true
	return s.seq, true
}

// ApplyExchangeResult records the outcome of the exchange issued with seq.
// Results for superseded requests are dropped. On success the token is
// cached through the credential store; a cache-write failure is reported
// but leaves the session authenticated for the current run.
func (s *Session) ApplyExchangeResult(seq uint64, token string, err error) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.pending = false

	if err != nil {
		s.failures = append(s.failures, "Signing in failed: "+err.Error())
		s.mu.Unlock()
		return
	}
	s.token = token
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return
	}
	if cacheErr := store.Set(tokenKey, token); cacheErr != nil {
		s.mu.Lock()
		s.failures = append(s.failures, "Signed in, but the token could not be saved for next time: "+cacheErr.Error())
		s.mu.Unlock()
	}
}

// CurrentToken returns the access token, or "" when not authenticated.
func (s *Session) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.CurrentToken() != ""
}

// SigningIn reports whether an exchange is outstanding.
func (s *Session) SigningIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// TakeFailures drains and returns the accumulated failure messages in the
// order they occurred.
func (s *Session) TakeFailures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.failures
	s.failures = nil
	return out
}
