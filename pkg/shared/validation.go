package shared

import (
	"path"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateFilename rejects names that could escape the recordings directory
// or collide with directory entries the store does not own.
func ValidateFilename(name string) error {
	if name == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}

	if strings.ContainsAny(name, "/\\") {
		return &ValidationError{Field: "filename", Message: "filename must not contain path separators"}
	}

	if name == "." || name == ".." {
		return &ValidationError{Field: "filename", Message: "filename must not be a relative path"}
	}

	if path.Clean(name) != name {
		return &ValidationError{Field: "filename", Message: "filename must be a plain name"}
	}

	return nil
}

// SanitizeFilename trims whitespace and falls back to a .webm extension when
// the caller supplied a bare name.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && path.Ext(name) == "" {
		name += ".webm"
	}
	return name
}
