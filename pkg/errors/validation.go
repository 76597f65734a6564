package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds vertex labels read from graph files and API requests.
const maxLabelLength = 256

// ValidateLabel validates a vertex label for safety and correctness.
//
// Labels end up in DOT output and in cache keys, so the rules are
// conservative:
//   - No empty labels
//   - No control characters or null bytes
//   - No double quotes (they would terminate DOT string literals)
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "vertex label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "vertex label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "vertex label contains invalid control characters")
		}
	}

	if strings.ContainsRune(label, '"') {
		return New(ErrCodeInvalidLabel, "vertex label cannot contain double quotes")
	}

	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal when output names come from untrusted input.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
