package dbclient

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pagebuilder/internal/domain"
)

// mongoDocStore implements domain.DocumentStore on a MongoDB database.
// Each domain collection maps to the MongoDB collection of the same name.
type mongoDocStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func newMongoDocStore(ctx context.Context, uri, dbName string) (*mongoDocStore, error) {
	if dbName == "" {
		dbName = databaseFromURI(uri)
	}

	slog.Default().Info("connecting to mongo", "component", "dbclient", "uri", maskURI(uri), "database", dbName)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &mongoDocStore{client: client, db: client.Database(dbName)}, nil
}

func (m *mongoDocStore) Insert(ctx context.Context, collection string, doc domain.Document) error {
	if _, err := m.db.Collection(collection).InsertOne(ctx, toBSON(doc)); err != nil {
		return fmt.Errorf("insertOne: %w", err)
	}
	return nil
}

func (m *mongoDocStore) All(ctx context.Context, collection string) ([]domain.Document, error) {
	cursor, err := m.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []domain.Document{}
	for cursor.Next(ctx) {
		var raw bson.D
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

func (m *mongoDocStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// toBSON orders the record keys so stored documents read layout, name,
// formData, and the nested form data reads name, age, isWorking. Unknown keys
// follow in sorted order.
func toBSON(doc domain.Document) bson.D {
	out := ordered(doc, domain.DocKeyLayout, domain.DocKeyName, domain.DocKeyFormData)
	for i, e := range out {
		if e.Key != domain.DocKeyFormData {
			continue
		}
		if fd, ok := e.Value.(map[string]any); ok {
			out[i].Value = ordered(fd, domain.FieldName, domain.FieldAge, domain.FieldIsWorking)
		}
	}
	return out
}

func ordered(m map[string]any, first ...string) bson.D {
	out := make(bson.D, 0, len(m))
	for _, key := range first {
		if v, ok := m[key]; ok {
			out = append(out, bson.E{Key: key, Value: v})
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !slices.Contains(first, k) {
			out = append(out, bson.E{Key: k, Value: m[k]})
		}
	}
	return out
}

// fromBSON converts a decoded document into plain Go values, dropping the
// store-assigned _id so the record keeps its three fields.
func fromBSON(raw bson.D) domain.Document {
	doc := make(domain.Document, len(raw))
	for _, elem := range raw {
		if elem.Key == "_id" {
			continue
		}
		doc[elem.Key] = plainValue(elem.Value)
	}
	return doc
}

func plainValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = plainValue(e)
		}
		return m
	case bson.A:
		list := make([]any, len(val))
		for i, e := range val {
			list[i] = plainValue(e)
		}
		return list
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}

// databaseFromURI extracts the database path segment of a mongodb:// URI.
func databaseFromURI(uri string) string {
	rest := uri
	for _, prefix := range []string{"mongodb+srv://", "mongodb://"} {
		if strings.HasPrefix(rest, prefix) {
			rest = rest[len(prefix):]
			break
		}
	}
	if at := strings.Index(rest, "@"); at != -1 {
		rest = rest[at+1:]
	}
	if slash := strings.Index(rest, "/"); slash != -1 {
		path := rest[slash+1:]
		if q := strings.Index(path, "?"); q != -1 {
			path = path[:q]
		}
		if path != "" {
			return path
		}
	}
	return "pagebuilder"
}

// maskURI hides the password of a userinfo section for logging.
func maskURI(uri string) string {
	scheme := ""
	rest := uri
	if i := strings.Index(rest, "://"); i != -1 {
		scheme, rest = rest[:i+3], rest[i+3:]
	}
	at := strings.Index(rest, "@")
	if at == -1 {
		return uri
	}
	userinfo := rest[:at]
	if colon := strings.Index(userinfo, ":"); colon != -1 {
		userinfo = userinfo[:colon] + ":***"
	}
	return scheme + userinfo + rest[at:]
}
