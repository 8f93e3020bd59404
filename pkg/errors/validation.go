package errors

import (
	"strings"
	"unicode"
)

// ValidateKeyStem validates a member-name stem from the key pool.
//
// Stems end up as JSON object keys, possibly with a "_suffix" appended, so
// the rules are conservative:
//   - No empty stems
//   - No control characters
//   - No quotes or backslashes
//   - Maximum length of 128 characters
func ValidateKeyStem(stem string) error {
	if stem == "" {
		return New(ErrCodeInvalidConfig, "key stem cannot be empty")
	}

	if len(stem) > 128 {
		return New(ErrCodeInvalidConfig, "key stem too long (max 128 characters): %.16q...", stem)
	}

	for _, r := range stem {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "key stem %q contains control characters", stem)
		}
	}

	if strings.ContainsAny(stem, "\"\\") {
		return New(ErrCodeInvalidConfig, "key stem %q contains quotes or backslashes", stem)
	}

	return nil
}

// ValidateOutputDir validates a directory path given for document output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "output directory too long (max 500 characters)")
	}

	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	return nil
}
