package provider

import (
	"sync"
	"testing"

	"github.com/proxycast/claude-provider/credential"
)

func TestStoreInsertGet(t *testing.T) {
	s := NewStore()
	id := s.Insert(&credential.Credential{
		AuthType: credential.AuthCCR,
		APIKey:   "k1",
		BaseURL:  "https://relay.example.com",
	})
	if id == "" {
		t.Fatalf("Insert returned empty id")
	}

	got := s.Get(id)
	if got == nil {
		t.Fatalf("Get(%q) = nil", id)
	}
	if got.APIKey != "k1" {
		t.Errorf("APIKey = %q", got.APIKey)
	}

	// Get returns a copy, not a handle.
	got.APIKey = "mutated"
	if s.Get(id).APIKey != "k1" {
		t.Errorf("mutation through copy reached the store")
	}

	if s.Get("missing") != nil {
		t.Errorf("Get of unknown id should be nil")
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Insert(&credential.Credential{AuthType: credential.AuthCCR})
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if s.Len() != 100 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestStoreFirstHealthyInsertionOrder(t *testing.T) {
	s := NewStore()
	first := s.Insert(&credential.Credential{AuthType: credential.AuthCCR, Name: "a", IsHealthy: true})
	s.Insert(&credential.Credential{AuthType: credential.AuthCCR, Name: "b", IsHealthy: true})

	for i := 0; i < 20; i++ {
		id, cred := s.FirstHealthy()
		if id != first || cred.Name != "a" {
			t.Fatalf("FirstHealthy() = %q (%s), want first-inserted", id, cred.Name)
		}
	}

	// Unhealthy first entry falls through to the next.
	s.Update(first, func(c *credential.Credential) { c.IsHealthy = false })
	_, cred := s.FirstHealthy()
	if cred == nil || cred.Name != "b" {
		t.Errorf("FirstHealthy() after unhealthy = %v", cred)
	}
}

func TestStoreFirstHealthyEmpty(t *testing.T) {
	s := NewStore()
	if id, cred := s.FirstHealthy(); id != "" || cred != nil {
		t.Errorf("FirstHealthy() on empty store = %q, %v", id, cred)
	}
}

func TestStoreUpdateUnknown(t *testing.T) {
	s := NewStore()
	if s.Update("missing", func(c *credential.Credential) {}) {
		t.Errorf("Update of unknown id should report false")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	id := s.Insert(&credential.Credential{AuthType: credential.AuthCCR, IsHealthy: true})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update(id, func(c *credential.Credential) { c.UsageCount++ })
		}()
		go func() {
			defer wg.Done()
			s.FirstHealthy()
		}()
	}
	wg.Wait()

	if got := s.Get(id).UsageCount; got != 50 {
		t.Errorf("UsageCount = %d, want 50", got)
	}
}
