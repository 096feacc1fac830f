package domain

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// LayoutsCollection is the document-store collection holding saved layouts.
const LayoutsCollection = "layouts"

// Persisted record keys. Every stored layout has exactly these three
// top-level fields.
const (
	DocKeyLayout   = "layout"
	DocKeyName     = "name"
	DocKeyFormData = "formData"
)

// Document is a stored record as a field mapping.
type Document = map[string]any

// DocumentStore is the minimal collection-oriented store contract the engine
// depends on. All returns documents in the store's default enumeration order.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc Document) error
	All(ctx context.Context, collection string) ([]Document, error)
}

// LayoutDocument is the typed form of a persisted layout record.
type LayoutDocument struct {
	Layout   []string `json:"layout" bson:"layout"`
	Name     string   `json:"name" bson:"name"`
	FormData FormData `json:"formData" bson:"formData"`
}

// ToDocument converts c into the persisted record mapping.
func (c Composition) ToDocument() Document {
	layout := make([]any, len(c.Elements))
	for i, e := range c.Elements {
		layout[i] = e
	}
	return Document{
		DocKeyLayout: layout,
		DocKeyName:   c.Name,
		DocKeyFormData: map[string]any{
			FieldName:      c.FormData.Name,
			FieldAge:       c.FormData.Age,
			FieldIsWorking: c.FormData.IsWorking,
		},
	}
}

// FromDocument maps a stored record back into a Composition. Missing layout
// and name default to empty; missing form fields default to their zero values.
func FromDocument(doc Document) Composition {
	c := NewComposition()
	if doc == nil {
		return c
	}
	c.Elements = stringList(doc[DocKeyLayout])
	c.Name = text(doc[DocKeyName])
	if fd := fieldMap(doc[DocKeyFormData]); fd != nil {
		c.FormData = FormData{
			Name:      text(fd[FieldName]),
			Age:       text(fd[FieldAge]),
			IsWorking: truthy(fd[FieldIsWorking]),
		}
	}
	return c
}

// ToLayoutDocument is the typed record for c.
func (c Composition) ToLayoutDocument() LayoutDocument {
	return LayoutDocument{Layout: c.Clone().Elements, Name: c.Name, FormData: c.FormData}
}

func stringList(v any) []string {
	switch list := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			out[i] = text(item)
		}
		return out
	}
	// Driver-specific named slice types (e.g. BSON arrays).
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []string{}
	}
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = text(rv.Index(i).Interface())
	}
	return out
}

func fieldMap(v any) map[string]any {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return m
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	default:
		return false
	}
}
