package entities

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Optional is a tri-state JSON field for partial updates: a key that is
// absent from the request body leaves Set false, an explicit null sets
// Set without Valid, and a value sets both.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// LooseInt accepts a JSON number or a numeric string. Anything
// non-numeric normalizes to null instead of failing the bind, so
// birthYear="abc" clears the field rather than erroring.
type LooseInt struct {
	Set   bool
	Valid bool
	Value int
}

func (l *LooseInt) UnmarshalJSON(data []byte) error {
	l.Set = true
	if string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		l.Valid = true
		l.Value = n
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, convErr := strconv.Atoi(strings.TrimSpace(s)); convErr == nil {
			l.Valid = true
			l.Value = v
		}
		return nil
	}

	// Other JSON shapes (bool, object, array) also normalize to null.
	return nil
}

// Ptr returns the field as a nullable value for gorm update maps.
func (l LooseInt) Ptr() *int {
	if !l.Valid {
		return nil
	}
	v := l.Value
	return &v
}
