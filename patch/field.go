// Package patch provides an optional value for partial updates that keeps
// "leave alone" (absent) apart from "clear" (explicit null).
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is unset when the key was absent from the payload.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a Field that asks for the value to be cleared.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

func (f Field[T]) IsSet() bool  { return f.set }
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether it carries one (set and not null).
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// UnmarshalJSON is only invoked for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.value = zero
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
