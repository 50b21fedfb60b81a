// Package optional provides a tri-state JSON field: absent, explicit null, or a value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a field that was not sent from one sent as null.
// The zero value is absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports a non-null value was supplied.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// IsNull reports the field was explicitly sent as null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Null
}
