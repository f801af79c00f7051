package service

import "encoding/json"

// Optional records whether a JSON key was present and whether it was null,
// which a plain pointer field cannot distinguish.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// ptr returns nil for a null value and a pointer to a copy otherwise.
func (o Optional[T]) ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
