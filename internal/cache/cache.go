// Package cache maps request fingerprints to previously obtained responses
// so repeated runs over the same manuscript and agent set skip the endpoint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Fingerprint hashes the full request-determining payload: agent name,
// resolved model, system instructions and user content. Attempt counts and
// timestamps stay out so the same logical request always maps to the same
// entry; the model is included so a tier change between runs is a miss, never
// a silently served answer from a different capability tier.
func Fingerprint(agentName, model, instructions, content string) string {
	h := sha256.New()
	for _, part := range []string{agentName, model, instructions, content} {
		// Length-prefixed framing keeps field boundaries unambiguous.
		fmt.Fprintf(h, "%d:", len(part))
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Store is the result cache contract. Implementations must be safe under
// concurrent access from in-flight agent executions.
type Store interface {
	Get(fingerprint string) (string, bool, error)
	Put(fingerprint, response string) error
	Close() error
}

// MemoryStore is the run-lifetime in-memory cache. Contention is low and
// calls are long relative to lock hold time, so a mutex-guarded map is
// sufficient.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get returns the cached response for a fingerprint, if any.
func (s *MemoryStore) Get(fingerprint string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	response, ok := s.entries[fingerprint]
	return response, ok, nil
}

// Put stores a response under its fingerprint.
func (s *MemoryStore) Put(fingerprint, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[fingerprint] = response
	return nil
}

// Len returns the number of cached entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Disabled is a Store that never hits and never writes, used when caching is
// switched off so the executor keeps a single code path.
type Disabled struct{}

func (Disabled) Get(string) (string, bool, error) { return "", false, nil }
func (Disabled) Put(string, string) error         { return nil }
func (Disabled) Close() error                     { return nil }
