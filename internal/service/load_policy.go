package service

import (
	"fmt"

	"pagebuilder/internal/config"
	"pagebuilder/internal/domain"
)

// LoadPolicy picks the document Load returns from everything in the
// collection. ok is false when no document qualifies.
type LoadPolicy interface {
	Select(docs []domain.Document) (doc domain.Document, ok bool)
	String() string
}

// FirstInStoreOrder returns the first document of the store's default
// enumeration order. That order is store-defined and need not reflect recency.
type FirstInStoreOrder struct{}

func (FirstInStoreOrder) Select(docs []domain.Document) (domain.Document, bool) {
	if len(docs) == 0 {
		return nil, false
	}
	return docs[0], true
}

func (FirstInStoreOrder) String() string { return "first" }

// LastInStoreOrder returns the last enumerated document, i.e. the most recent
// insert for stores that enumerate in insertion order.
type LastInStoreOrder struct{}

func (LastInStoreOrder) Select(docs []domain.Document) (domain.Document, bool) {
	if len(docs) == 0 {
		return nil, false
	}
	return docs[len(docs)-1], true
}

func (LastInStoreOrder) String() string { return "last" }

// ByName returns the first document whose name matches exactly.
type ByName string

func (n ByName) Select(docs []domain.Document) (domain.Document, bool) {
	for _, doc := range docs {
		if name, _ := doc[domain.DocKeyName].(string); name == string(n) {
			return doc, true
		}
	}
	return nil, false
}

func (n ByName) String() string { return fmt.Sprintf("name=%q", string(n)) }

// PolicyFromConfig maps LAYOUTS_LOAD_POLICY values to a LoadPolicy.
func PolicyFromConfig(name string) (LoadPolicy, error) {
	switch name {
	case "", config.LoadPolicyFirst:
		return FirstInStoreOrder{}, nil
	case config.LoadPolicyLast:
		return LastInStoreOrder{}, nil
	default:
		return nil, fmt.Errorf("unsupported load policy %q", name)
	}
}
