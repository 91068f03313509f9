package game

import (
	"slices"
	"sync"
)

// Persistence stores per-mode high scores and aggregate stats. One store
// may back several concurrent engines.
type Persistence interface {
	LoadHighScore(mode Mode) (int, error)
	// SaveHighScore never lowers the stored score.
	SaveHighScore(mode Mode, score int) error
	LoadStats() (Stats, error)
	SaveStats(stats Stats) error
	// UpdateStats loads the stats, applies fn and saves the result as one
	// atomic step. fn is not called when the stats cannot be loaded.
	UpdateStats(fn func(*Stats)) error
}

// MemoryStore is an in-process Persistence, safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[Mode]int
	stats  Stats
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[Mode]int)}
}

// LoadHighScore returns the stored high score, zero if none.
func (m *MemoryStore) LoadHighScore(mode Mode) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[mode], nil
}

// SaveHighScore raises the high score for a mode.
func (m *MemoryStore) SaveHighScore(mode Mode, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[mode] = max(m.scores[mode], score)
	return nil
}

// LoadStats returns a copy of the stored stats.
func (m *MemoryStore) LoadStats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Unlocked = slices.Clone(m.stats.Unlocked)
	return s, nil
}

// SaveStats stores a copy of the stats.
func (m *MemoryStore) SaveStats(stats Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
	m.stats.Unlocked = slices.Clone(stats.Unlocked)
	return nil
}

// UpdateStats applies fn to the stored stats under the store's lock.
func (m *MemoryStore) UpdateStats(fn func(*Stats)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.stats)
	return nil
}
