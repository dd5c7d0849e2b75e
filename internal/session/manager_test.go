package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for exercising the manager without
// touching the filesystem.
type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (s *fakeStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *fakeStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

// fakeValidator scripts the backend's answer to a validation call.
type fakeValidator struct {
	user   *User
	valid  bool
	err    error
	calls  int
	gotTok string
}

func (v *fakeValidator) ValidateToken(_ context.Context, token string) (*User, bool, error) {
	v.calls++
	v.gotTok = token
	return v.user, v.valid, v.err
}

func TestManager_Login(t *testing.T) {
	t.Run("adopts and persists the credential pair", func(t *testing.T) {
		store := newFakeStore()
		m := NewManager(store, &fakeValidator{})

		user := User{ID: "u1", Username: "ada", Email: "ada@example.com"}
		require.NoError(t, m.Login("tok-123", user))

		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, &user, m.Current())
		assert.Equal(t, "tok-123", m.Token())

		assert.Equal(t, "tok-123", store.values[tokenKey])
		assert.JSONEq(t, `{"id":"u1","username":"ada","email":"ada@example.com"}`, store.values[userKey])
	})

	t.Run("does not call the validator", func(t *testing.T) {
		validator := &fakeValidator{}
		m := NewManager(newFakeStore(), validator)

		require.NoError(t, m.Login("tok-123", User{ID: "u1"}))

		assert.Zero(t, validator.calls)
	})
}

func TestManager_Logout(t *testing.T) {
	t.Run("clears memory and store", func(t *testing.T) {
		store := newFakeStore()
		m := NewManager(store, &fakeValidator{})
		require.NoError(t, m.Login("tok-123", User{ID: "u1"}))

		m.Logout()

		assert.False(t, m.IsAuthenticated())
		assert.Nil(t, m.Current())
		assert.Empty(t, store.values)

		// A fresh initialize finds nothing
		m2 := NewManager(store, &fakeValidator{})
		m2.Initialize(context.Background())
		assert.False(t, m2.IsAuthenticated())
		assert.False(t, m2.Loading())
	})

	t.Run("idempotent", func(t *testing.T) {
		m := NewManager(newFakeStore(), &fakeValidator{})

		m.Logout()
		m.Logout()

		assert.False(t, m.IsAuthenticated())
	})
}

func TestManager_Initialize(t *testing.T) {
	t.Run("empty store resolves logged out", func(t *testing.T) {
		validator := &fakeValidator{}
		m := NewManager(newFakeStore(), validator)
		assert.True(t, m.Loading())

		m.Initialize(context.Background())

		assert.False(t, m.Loading())
		assert.False(t, m.IsAuthenticated())
		assert.Zero(t, validator.calls)
	})

	t.Run("valid token adopts the server's user", func(t *testing.T) {
		store := newFakeStore()
		store.values[tokenKey] = "tok-123"
		store.values[userKey] = `{"id":"u1","username":"stale-name","email":"ada@example.com"}`

		validator := &fakeValidator{
			user:  &User{ID: "u1", Username: "ada", Email: "ada@example.com"},
			valid: true,
		}
		m := NewManager(store, validator)

		m.Initialize(context.Background())

		require.True(t, m.IsAuthenticated())
		assert.Equal(t, "tok-123", validator.gotTok)
		assert.Equal(t, "ada", m.Current().Username)
		assert.Equal(t, "tok-123", m.Token())

		// The refreshed user is persisted over the stale copy
		assert.Contains(t, store.values[userKey], `"ada"`)
	})

	t.Run("malformed persisted user clears the store", func(t *testing.T) {
		store := newFakeStore()
		store.values[tokenKey] = "tok-123"
		store.values[userKey] = "{definitely not json"

		validator := &fakeValidator{valid: true, user: &User{ID: "u1"}}
		m := NewManager(store, validator)

		m.Initialize(context.Background())

		assert.False(t, m.Loading())
		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, store.values)
		assert.Zero(t, validator.calls)

		// Second initialize behaves identically
		m2 := NewManager(store, validator)
		m2.Initialize(context.Background())
		assert.False(t, m2.Loading())
		assert.False(t, m2.IsAuthenticated())
	})

	t.Run("rejected token clears persisted credentials", func(t *testing.T) {
		store := newFakeStore()
		store.values[tokenKey] = "tok-123"
		store.values[userKey] = `{"id":"u1","username":"ada","email":"ada@example.com"}`

		m := NewManager(store, &fakeValidator{valid: false})

		m.Initialize(context.Background())

		assert.False(t, m.Loading())
		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, store.values)
	})

	t.Run("network failure resolves logged out without error", func(t *testing.T) {
		store := newFakeStore()
		store.values[tokenKey] = "tok-123"
		store.values[userKey] = `{"id":"u1","username":"ada","email":"ada@example.com"}`

		m := NewManager(store, &fakeValidator{err: errors.New("connection refused")})

		m.Initialize(context.Background())

		assert.False(t, m.Loading())
		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, store.values)
	})

	t.Run("token without a user record is discarded", func(t *testing.T) {
		store := newFakeStore()
		store.values[tokenKey] = "tok-123"

		validator := &fakeValidator{valid: true, user: &User{ID: "u1"}}
		m := NewManager(store, validator)

		m.Initialize(context.Background())

		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, store.values)
		assert.Zero(t, validator.calls)
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("stable and short", func(t *testing.T) {
		fp := Fingerprint("tok-123")
		assert.Equal(t, fp, Fingerprint("tok-123"))
		assert.LessOrEqual(t, len(fp), 12)
		assert.NotContains(t, fp, "tok-123")
	})

	t.Run("empty token has no fingerprint", func(t *testing.T) {
		assert.Empty(t, Fingerprint(""))
	})
}
