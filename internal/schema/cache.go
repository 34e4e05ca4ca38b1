package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hyperline-api/hyperline/internal/resource"
)

// Marshal serializes a document to indented JSON. Object keys serialize
// sorted, so the bytes for a given document are always identical.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema document: %w", err)
	}
	return data, nil
}

// Cache memoizes compiled documents by model fingerprint. Compilation is
// pure, so a document only ever needs recomputing when the resource set
// itself changes. Safe for concurrent use.
type Cache struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewCache returns an empty document cache.
func NewCache() *Cache {
	return &Cache{docs: make(map[string][]byte)}
}

// Document returns the serialized schema document for a model, compiling
// and caching it on first use. The returned slice is shared; callers
// must not modify it.
func (c *Cache) Document(model *resource.Model) ([]byte, error) {
	key, err := model.Fingerprint()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.docs[key]; ok {
		return data, nil
	}

	doc, err := Compile(model)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	c.docs[key] = data
	return data, nil
}

// Len reports how many distinct models the cache holds documents for.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
