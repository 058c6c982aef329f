package domain

import (
	"strings"
	"unique"
)

// InternedString wraps a unique.Handle[string].
// Node paths repeat across every edge, set and index of the graph, so they are interned once.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never assigned.
func (is InternedString) IsZero() bool {
	return is.h == unique.Handle[string]{}
}

// Compare orders two interned strings lexically.
func (is InternedString) Compare(other InternedString) int {
	return strings.Compare(is.String(), other.String())
}
