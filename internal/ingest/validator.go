// Package ingest holds the payload acceptance rules for the /process endpoint.
package ingest

import (
	"errors"
	"strings"
)

// ErrInvalidPayload marks a payload that failed the structural check.
// The HTTP layer maps it to a client error.
var ErrInvalidPayload = errors.New("invalid payload")

// Validate reports whether a deserialized JSON value is acceptable for
// ingestion: it must be a JSON object carrying a "url" field whose value is a
// string with non-whitespace content. Nulls, arrays, primitives, and objects
// missing the field are rejected. Pure; never panics on any input shape.
func Validate(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok {
		return false
	}

	url, ok := obj["url"].(string)
	if !ok {
		return false
	}

	return strings.TrimSpace(url) != ""
}
