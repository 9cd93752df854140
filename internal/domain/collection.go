package domain

import (
	"bytes"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
)

// Collection is a JSON object whose key order is significant.
// The persisted document keys notebooks by id, and the first remaining key is
// what gets selected when the active notebook is deleted, so order must survive
// a load/save cycle.
type Collection[T any] struct {
	keys  []string
	items map[string]T
}

// NewCollection returns an empty collection
func NewCollection[T any]() Collection[T] {
	return Collection[T]{items: make(map[string]T)}
}

// Len returns the number of entries
func (c *Collection[T]) Len() int {
	return len(c.keys)
}

// Keys returns the ids in insertion order
func (c *Collection[T]) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the entry for id
func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// Has reports whether id exists
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Set inserts or replaces the entry for id. New ids are appended.
func (c *Collection[T]) Set(id string, v T) {
	if c.items == nil {
		c.items = make(map[string]T)
	}
	if _, ok := c.items[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.items[id] = v
}

// Delete removes id and reports whether it existed
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, k := range c.keys {
		if k == id {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// First returns the first id, or "" when empty
func (c *Collection[T]) First() string {
	if len(c.keys) == 0 {
		return ""
	}
	return c.keys[0]
}

// MarshalJSON writes the entries in insertion order
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.items[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	*c = NewCollection[T]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		id, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		raw := value
		if dataType == jsonparser.String {
			// ObjectEach strips the quotes from string values but leaves escapes intact.
			raw = make([]byte, 0, len(value)+2)
			raw = append(raw, '"')
			raw = append(raw, value...)
			raw = append(raw, '"')
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid entry %q: %w", id, err)
		}
		c.Set(id, v)
		return nil
	})
}
