package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink-demo/internal/shortener"
)

// MemoryStore is the in-memory implementation of shortener.Repository.
// It is the default backend: all records live for the process lifetime and
// are never deleted, expired or not.
type MemoryStore struct {
	mu    sync.RWMutex
	urls  map[shortener.Code]*shortener.ShortURL
	order []shortener.Code // newest first
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls: make(map[shortener.Code]*shortener.ShortURL),
	}
}

func (m *MemoryStore) Save(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.urls[shortURL.Code]; exists {
		return shortener.ErrCodeExists
	}

	record := *shortURL
	m.urls[shortURL.Code] = &record
	m.order = append([]shortener.Code{shortURL.Code}, m.order...)

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.urls[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	found := *record

	return &found, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*shortener.ShortURL, 0, len(m.order))

	for _, code := range m.order {
		record := *m.urls[code]
		records = append(records, &record)
	}

	return records, nil
}

func (m *MemoryStore) IncrementClicks(_ context.Context, code shortener.Code) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.urls[code]
	if !ok {
		return 0, shortener.ErrNotFound
	}

	record.Clicks++

	return record.Clicks, nil
}

func (m *MemoryStore) Contains(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.urls[code]

	return ok, nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
