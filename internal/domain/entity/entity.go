// Package entity holds the aggregate model of the dive community. Aggregates
// are created through factories, mutated through named methods that validate
// before committing any field, and expose owned collections as copies only.
package entity

import "strings"

// trimOptional trims an optional string, mapping blank to unset.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func copyOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyOptionalFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyOptionalInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
