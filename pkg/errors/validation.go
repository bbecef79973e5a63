package errors

import (
	"strings"
	"unicode"
)

// maxImageRefLength bounds image references read from a dataset file.
const maxImageRefLength = 2048

// ValidateImageRef validates an image reference from a dataset.
// A reference is either an http(s) URL or a relative file path.
//
// The validation rules are intentionally conservative:
//   - No empty references
//   - No control characters or null bytes
//   - Maximum length of 2048 characters
//   - URLs must use http or https
//   - Paths must pass [ValidatePath]
func ValidateImageRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidDataset, "image reference cannot be empty")
	}

	if len(ref) > maxImageRefLength {
		return New(ErrCodeInvalidDataset, "image reference too long (max %d characters)", maxImageRefLength)
	}

	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "image reference contains invalid control characters")
		}
	}

	if strings.Contains(ref, "://") {
		return ValidateURL(ref)
	}
	return ValidatePath(ref)
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// validFormats is the set of supported export formats.
var validFormats = map[string]bool{"json": true, "svg": true, "png": true}

// ValidateFormats checks that all requested export formats are supported.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one format is required")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'json', 'svg', or 'png')", f)
		}
	}
	return nil
}
