package storage

import (
	"context"
	"sync"

	"github.com/avoronov/flashdeck/internal/model"
)

// MemStore keeps the collection in memory only. It backs the degraded
// mode used when durable storage is unavailable, and tests.
type MemStore struct {
	mu    sync.Mutex
	cards []model.Card
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// Load returns a copy of the stored collection.
func (m *MemStore) Load(_ context.Context) ([]model.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Card(nil), m.cards...), nil
}

// Save replaces the stored collection with a copy of cards.
func (m *MemStore) Save(_ context.Context, cards []model.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append([]model.Card(nil), cards...)
	return nil
}
