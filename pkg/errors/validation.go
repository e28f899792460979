package errors

import (
	"strings"
	"unicode"
)

// ValidateArgument checks that a protocol argument can be written on a
// single space-separated line. The protocol performs no escaping, so any
// whitespace or control character would split or corrupt the line.
func ValidateArgument(arg string) error {
	if arg == "" {
		return New(ErrCodeMalformedInvocation, "argument cannot be empty")
	}

	for _, r := range arg {
		if unicode.IsSpace(r) {
			return New(ErrCodeMalformedInvocation, "argument %q contains whitespace", arg)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedInvocation, "argument %q contains control characters", arg)
		}
	}

	return nil
}

// ValidateText checks free text (comments). Spaces are allowed, line
// breaks and other control characters are not.
func ValidateText(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return New(ErrCodeMalformedInvocation, "text cannot contain line breaks")
	}

	for _, r := range text {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeMalformedInvocation, "text contains control characters")
		}
	}

	return nil
}

// ValidatePath validates a resource path before it is placed on the wire.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No whitespace, null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path %q contains whitespace or control characters", path)
		}
	}

	return nil
}
