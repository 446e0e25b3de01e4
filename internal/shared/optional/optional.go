// Package optional distinguishes an absent JSON field from an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Nullable records whether a field was present in the request and, if so,
// its value. A present null has Set true and Value nil.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Uint is the nullable form used for foreign keys such as technician_id.
type Uint = Nullable[uint]

// Of returns a present, non-null value.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a present null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}

// UnmarshalJSON is only invoked when the key exists in the document,
// including for a literal null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
