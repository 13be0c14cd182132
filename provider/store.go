package provider

import (
	"sync"

	"github.com/google/uuid"

	"github.com/proxycast/claude-provider/credential"
)

// Store is the in-memory credential store. A single RWMutex guards the whole
// map: readers run concurrently, writers exclude everything, and the lock is
// never held across a network call. Entries are never removed; identifiers
// are never reused.
type Store struct {
	mu    sync.RWMutex
	creds map[string]*credential.Credential
	// order preserves insertion order so acquisition is deterministic.
	order []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{creds: make(map[string]*credential.Credential)}
}

// Insert stores a credential under a fresh UUID and returns the identifier.
func (s *Store) Insert(cred *credential.Credential) string {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[id] = cred
	s.order = append(s.order, id)
	return id
}

// Get returns a copy of the credential, or nil if the id is unknown.
func (s *Store) Get(id string) *credential.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[id]
	if !ok {
		return nil
	}
	return cred.Clone()
}

// Len returns the number of stored credentials.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.creds)
}

// FirstHealthy returns the id and a copy of the first healthy credential in
// insertion order, or ("", nil) when none is eligible.
func (s *Store) FirstHealthy() (string, *credential.Credential) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if cred := s.creds[id]; cred.IsHealthy {
			return id, cred.Clone()
		}
	}
	return "", nil
}

// Update applies fn to the stored credential under the write lock. Returns
// false if the id is unknown. fn must not block.
func (s *Store) Update(id string, fn func(*credential.Credential)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[id]
	if !ok {
		return false
	}
	fn(cred)
	return true
}
