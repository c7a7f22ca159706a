// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package auth

import (
	"sync"
	"time"
)

// validityMargin is subtracted from a token's lifetime before it is handed
// out. The margin absorbs clock skew and in-flight latency so a token is
// never used moments before the service would reject it.
const validityMargin = 30 * time.Second

// Entry is a cached token with its decoded expiry.
type Entry struct {
	// Token is the bearer token string
	Token string

	// ExpiresAt is the expiry as unix milliseconds; zero means the token
	// never expires (static or unparsable-expiry tokens)
	ExpiresAt int64
}

// Valid reports whether the entry can still be handed out at the given time.
func (e Entry) Valid(now time.Time) bool {
	if e.ExpiresAt == 0 {
		return true
	}
	return now.Add(validityMargin).Before(time.UnixMilli(e.ExpiresAt))
}

// Store is the token cache contract. Keys are namespaced strings derived
// from (mode, normalized base URL); implementations never own the whole
// backing store, only the keys this package writes.
//
// Concurrent use: Get and Put may race across goroutines. Last write wins;
// two concurrent logins for the same key both produce valid tokens, so a
// lost update is harmless and no mutual exclusion around login is required.
type Store interface {
	// Get returns the cached entry for key, if any.
	Get(key string) (Entry, bool)

	// Put records an entry for key, superseding any previous one.
	Put(key string, e Entry)
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get returns the cached entry for key, if any.
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Put records an entry for key, superseding any previous one.
func (s *MemoryStore) Put(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
}
