package dbclient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pagebuilder/internal/domain"
)

// dialect captures the per-engine SQL differences of the document table.
type dialect struct {
	driverName string
	createDDL  string
	insertSQL  string
	selectSQL  string
}

var postgresDialect = dialect{
	driverName: "postgres",
	createDDL: `CREATE TABLE IF NOT EXISTS documents (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		collection TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	insertSQL: `INSERT INTO documents (id, collection, body, created_at) VALUES ($1, $2, $3, $4)`,
	selectSQL: `SELECT body FROM documents WHERE collection = $1 ORDER BY seq ASC`,
}

var mysqlDialect = dialect{
	driverName: "mysql",
	createDDL: `CREATE TABLE IF NOT EXISTS documents (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(36) NOT NULL UNIQUE,
		collection VARCHAR(255) NOT NULL,
		body LONGTEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_documents_collection (collection, seq)
	)`,
	insertSQL: `INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)`,
	selectSQL: `SELECT body FROM documents WHERE collection = ? ORDER BY seq ASC`,
}

// sqlDocStore stores JSON documents in a single table on a server database.
type sqlDocStore struct {
	dialect dialect
	db      *sql.DB
}

func newSQLDocStore(ctx context.Context, d dialect, dsn string) (*sqlDocStore, error) {
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driverName, err)
	}
	// Sensible pool settings for a desktop app
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	s := &sqlDocStore{dialect: d, db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Default().Info("document store ready", "component", "dbclient", "driver", d.driverName)
	return s, nil
}

func (s *sqlDocStore) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.dialect.createDDL); err != nil {
		return fmt.Errorf("migrate %s documents: %w", s.dialect.driverName, err)
	}
	return nil
}

func (s *sqlDocStore) Insert(ctx context.Context, collection string, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.insertSQL,
		uuid.New().String(), collection, string(body), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("%s insert: %w", s.dialect.driverName, err)
	}
	return nil
}

func (s *sqlDocStore) All(ctx context.Context, collection string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.selectSQL, collection)
	if err != nil {
		return nil, fmt.Errorf("%s select: %w", s.dialect.driverName, err)
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

func (s *sqlDocStore) Close() error {
	return s.db.Close()
}
