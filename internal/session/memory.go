package session

import (
	"context"
	"sync"
	"time"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// MemoryStore keeps sessions in process memory. Expired entries are hidden
// from Get immediately and reclaimed by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryConfig holds configuration for the in-memory store
type MemoryConfig struct {
	TTL time.Duration // How long an untouched session lives (default 60s)
	Now func() time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     cfg.TTL,
		now:     cfg.Now,
	}
}

// Save stores a copy of the session
func (m *MemoryStore) Save(ctx context.Context, s *model.MatchSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = &memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Get returns a copy of a live session
func (m *MemoryStore) Get(ctx context.Context, id string) (*model.MatchSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || !entry.expiresAt.After(m.now()) {
		return nil, ErrNotFound
	}
	return decode(entry.data)
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (m *MemoryStore) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, entry := range m.entries {
		if !entry.expiresAt.After(now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired or not
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
