package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memorySession struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemorySessionRepository - process-local sessions with the same ttl rules as the Redis one.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

func (that *memorySession) Save(_ context.Context, id string, snapshot tictactoe.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()
	that.entries[id] = memoryEntry{data: data, expiresAt: that.expiry()}

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (tictactoe.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	entry, ok := that.entries[id]
	if !ok {
		return tictactoe.Snapshot{}, apperror.ErrSessionNotFound
	}

	entry.expiresAt = that.expiry()
	that.entries[id] = entry

	var snapshot tictactoe.Snapshot
	if err := json.Unmarshal(entry.data, &snapshot); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	if _, ok := that.entries[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}

// zero ttl keeps entries forever, as with Redis
func (that *memorySession) expiry() time.Time {
	if that.ttl <= 0 {
		return time.Time{}
	}
	return that.now().Add(that.ttl)
}

func (that *memorySession) evictExpired() {
	now := that.now()
	for id, entry := range that.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(that.entries, id)
		}
	}
}
