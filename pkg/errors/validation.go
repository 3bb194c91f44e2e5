package errors

import (
	"sort"
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from an imported graph.
// It rejects identifiers that could not round-trip through the JSON and DOT
// exporters or that look like injection attempts.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateFilePath validates a user-supplied file path for safety.
// Relative and absolute paths are both allowed; the checks only reject
// values that cannot name a real file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateChoice checks that value is one of the allowed options for the
// named parameter. The error message lists the valid options sorted, so it
// is stable across runs.
func ValidateChoice(name, value string, valid map[string]bool) error {
	if valid[value] {
		return nil
	}

	options := make([]string, 0, len(valid))
	for k := range valid {
		options = append(options, k)
	}
	sort.Strings(options)

	return New(ErrCodeInvalidParameter, "invalid %s: %q (valid: %s)", name, value, strings.Join(options, ", "))
}
