package session

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"
)

// User is the identity the backend associates with a bearer token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validator checks a persisted token against the backend. It reports
// valid=false for every rejection; err is reserved for transport problems,
// and the manager treats both outcomes the same way.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (*User, bool, error)
}

// Manager owns the authenticated-user identity for the process lifetime.
// It is the sole writer of the token and user keys in the store, and it
// never exposes a token without its matching user.
type Manager struct {
	store     Store
	validator Validator

	mu      sync.RWMutex
	token   string
	user    *User
	loading bool
}

// NewManager creates a manager in the loading state. Callers must run
// Initialize before trusting IsAuthenticated.
func NewManager(store Store, validator Validator) *Manager {
	return &Manager{
		store:     store,
		validator: validator,
		loading:   true,
	}
}

// Initialize restores a persisted session, revalidating the stored token
// against the backend. Every failure mode resolves to a clean logged-out
// state without surfacing an error: this runs in the background at startup,
// not in response to a user action. Always ends with Loading reporting
// false.
func (m *Manager) Initialize(ctx context.Context) {
	defer m.setLoading(false)

	token, ok, err := m.store.Get(tokenKey)
	if err != nil {
		log.Debug().Err(err).Msg("session store unreadable, starting logged out")
		m.clear()
		return
	}
	if !ok || token == "" {
		return
	}

	rawUser, ok, err := m.store.Get(userKey)
	if err != nil || !ok {
		// A token without its user record is a partial write, discard it
		m.clear()
		return
	}

	var cached User
	if err := json.Unmarshal([]byte(rawUser), &cached); err != nil {
		log.Debug().Err(err).Msg("persisted user record is corrupt, clearing session")
		m.clear()
		return
	}

	user, valid, err := m.validator.ValidateToken(ctx, token)
	if err != nil || !valid || user == nil {
		log.Debug().
			Err(err).
			Str("fingerprint", Fingerprint(token)).
			Msg("stored token failed validation, clearing session")
		m.clear()
		return
	}

	// Trust the server's view of the user over the cached copy
	m.adopt(token, user)

	log.Debug().
		Str("username", user.Username).
		Str("fingerprint", Fingerprint(token)).
		Msg("session restored")
}

// Login unconditionally adopts the credential pair as the current session
// and persists it. The caller obtained both from a trusted login response,
// so no validation happens here.
func (m *Manager) Login(token string, user User) error {
	m.mu.Lock()
	m.token = token
	u := user
	m.user = &u
	m.mu.Unlock()

	return m.persist(token, &user)
}

// Logout clears the in-memory and persisted session. Idempotent.
func (m *Manager) Logout() {
	m.clear()
}

// IsAuthenticated reports whether a validated credential pair is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.user != nil
}

// Loading reports whether the initial validation round-trip is still in
// flight. Callers must treat true as "unknown" rather than logged out.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Current returns a copy of the authenticated user, or nil.
func (m *Manager) Current() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the bearer credential for tagging outgoing requests, empty
// when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// adopt sets token and user in the same lock hold so no reader ever
// observes a partial session.
func (m *Manager) adopt(token string, user *User) {
	m.mu.Lock()
	m.token = token
	u := *user
	m.user = &u
	m.mu.Unlock()

	m.persistSilent(token, user)
}

func (m *Manager) persist(token string, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.store.Set(tokenKey, token); err != nil {
		return err
	}
	return m.store.Set(userKey, string(data))
}

func (m *Manager) persistSilent(token string, user *User) {
	if err := m.persist(token, user); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Remove(tokenKey); err != nil {
		log.Debug().Err(err).Msg("failed to remove persisted token")
	}
	if err := m.store.Remove(userKey); err != nil {
		log.Debug().Err(err).Msg("failed to remove persisted user")
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Fingerprint returns a short identifier for a token that is safe to log:
// the Base58-encoded SHA256 of the credential, truncated.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	fp := base58.Encode(hash[:])
	if len(fp) > 12 {
		fp = fp[:12]
	}
	return fp
}
