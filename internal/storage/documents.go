package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pagebuilder/internal/domain"
)

// DocumentStore implements domain.DocumentStore on the local SQLite file.
// Documents are stored as JSON and enumerated in insertion order.
type DocumentStore struct {
	db *DB
}

var _ domain.DocumentStore = (*DocumentStore)(nil)

func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), collection, string(body), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *DocumentStore) All(ctx context.Context, collection string) ([]domain.Document, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT body FROM documents WHERE collection = ? ORDER BY seq ASC`, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var doc domain.Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
