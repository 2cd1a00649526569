// Package storage is the per-client key-value store that holds the login token.
package storage

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/blake2b"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Exists(ctx context.Context, key string) bool
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// SessionStore keeps values in the request's scs session, so each client
// sees only its own keys. The request must pass through LoadAndSave.
type SessionStore struct {
	Manager *scs.SessionManager
}

func NewSessionStore(sm *scs.SessionManager) *SessionStore {
	return &SessionStore{Manager: sm}
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool) {
	if !s.Manager.Exists(ctx, key) {
		return "", false
	}
	return s.Manager.GetString(ctx, key), true
}

func (s *SessionStore) Exists(ctx context.Context, key string) bool {
	return s.Manager.Exists(ctx, key)
}

func (s *SessionStore) Set(ctx context.Context, key, value string) {
	s.Manager.Put(ctx, key, value)
}

func (s *SessionStore) Remove(ctx context.Context, key string) {
	s.Manager.Remove(ctx, key)
}

// MemoryStore is a single-client store; the context is ignored.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Exists(ctx context.Context, key string) bool {
	_, ok := m.Get(ctx, key)
	return ok
}

func (m *MemoryStore) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
}

func (m *MemoryStore) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
}

// Fingerprint returns a short digest of a token for log lines.
func Fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
