package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// tokenEntry is one stored result archive awaiting download.
type tokenEntry struct {
	filename string
	data     []byte
	expires  time.Time
}

// TokenStore hands out time-limited download tokens for result archives.
// Entries are purged lazily on access; a token stays valid, and may be
// downloaded more than once, until its TTL elapses.
type TokenStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]tokenEntry
	now     func() time.Time
}

// NewTokenStore creates a store whose tokens expire after ttl.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		ttl:     ttl,
		entries: make(map[string]tokenEntry),
		now:     time.Now,
	}
}

// Put stores a result archive and returns its download token and expiry.
func (s *TokenStore) Put(filename string, data []byte) (token string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	token = uuid.NewString()
	expires = s.now().Add(s.ttl)
	s.entries[token] = tokenEntry{filename: filename, data: data, expires: expires}
	return token, expires
}

// Get returns the archive for a token, or ok=false when the token is
// unknown or expired.
func (s *TokenStore) Get(token string) (filename string, data []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[token]
	if !found {
		return "", nil, false
	}
	if s.now().After(e.expires) {
		delete(s.entries, token)
		return "", nil, false
	}
	return e.filename, e.data, true
}

// Len reports how many unexpired entries the store holds.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.entries)
}

func (s *TokenStore) purgeLocked() {
	now := s.now()
	for t, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, t)
		}
	}
}
