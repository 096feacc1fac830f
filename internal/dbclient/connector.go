package dbclient

import (
	"context"
	"fmt"

	"pagebuilder/internal/config"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/storage"
)

// Store is a document store owning a connection that must be released.
type Store interface {
	domain.DocumentStore
	Close() error
}

// NewDocumentStore opens the document store selected by cfg.StoreDriver.
func NewDocumentStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := storage.New(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return &localStore{DocumentStore: storage.NewDocumentStore(db), db: db}, nil
	case config.DriverMemory:
		return memoryStore{storage.NewMemoryStore()}, nil
	case config.DriverPostgres:
		dsn, err := buildPostgresDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return openStore(newSQLDocStore(ctx, postgresDialect, dsn))
	case config.DriverMySQL:
		dsn, err := buildMySQLDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return openStore(newSQLDocStore(ctx, mysqlDialect, dsn))
	case config.DriverMongoDB:
		return openStore(newMongoDocStore(ctx, cfg.MongoURI, cfg.MongoDatabase))
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.StoreDriver)
	}
}

// openStore keeps a failed constructor from yielding a non-nil Store holding a nil pointer.
func openStore(s Store, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

type localStore struct {
	*storage.DocumentStore
	db *storage.DB
}

func (s *localStore) Close() error { return s.db.Close() }

// Path returns the SQLite file backing the store.
func (s *localStore) Path() string { return s.db.Path() }

type memoryStore struct {
	*storage.MemoryStore
}

func (memoryStore) Close() error { return nil }
