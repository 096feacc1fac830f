package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pagebuilder/internal/domain"
)

// MemoryStore is an in-process domain.DocumentStore for tests and ephemeral
// sessions. Documents are copied on the way in and out so callers never share
// state with the store.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]string

	// FailInsert and FailAll, when set, are returned instead of touching the store.
	FailInsert error
	FailAll    error

	inserts int
	lists   int
}

var _ domain.DocumentStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]string)}
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.FailInsert != nil {
		return m.FailInsert
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	m.collections[collection] = append(m.collections[collection], string(raw))
	return nil
}

func (m *MemoryStore) All(ctx context.Context, collection string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	docs := make([]domain.Document, 0, len(m.collections[collection]))
	for _, raw := range m.collections[collection] {
		var doc domain.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Calls reports how many Insert and All calls reached the store.
func (m *MemoryStore) Calls() (inserts, lists int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts, m.lists
}

// Len returns the number of documents in collection.
func (m *MemoryStore) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[collection])
}
