// Package id provides UUIDv7 identifiers for all entities.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a new time-ordered UUIDv7.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil checks if ID is zero-value.
func IsNil(v ID) bool {
	return v == uuid.Nil
}

// ParseOptional returns nil for empty or malformed input.
// Report and list filters ignore values they cannot parse.
func ParseOptional(s string) *ID {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseList parses every well-formed value and silently drops the rest.
// Comma separated values inside one entry are split as well.
func ParseList(values []string) []ID {
	var out []ID
	seen := make(map[ID]struct{}, len(values))
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			v := ParseOptional(part)
			if v == nil {
				continue
			}
			if _, dup := seen[*v]; dup {
				continue
			}
			seen[*v] = struct{}{}
			out = append(out, *v)
		}
	}
	return out
}

// Strings renders ids for log fields and cache keys.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
