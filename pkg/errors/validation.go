package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIDLength is the longest accepted node ID.
const MaxIDLength = 256

// ValidateNodeID validates a node ID received from outside the process,
// such as a layout root named on the command line or in a request.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "node ID too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateGraphPath validates the path of a graph file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .json or .toml
func ValidateGraphPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return nil
	}
	return New(ErrCodeInvalidFormat, "graph file must end in .json or .toml: %s", path)
}

// ValidateFraction validates a value that must lie in [0, 1], such as the
// jitter fraction.
func ValidateFraction(name string, v float64) error {
	if v < 0 || v > 1 || v != v {
		return New(ErrCodeInvalidInput, "%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}

// ValidateRange validates an integer option against inclusive bounds.
func ValidateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return nil
}
