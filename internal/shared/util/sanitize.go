package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLength = 200

// ErrInvalidFileName is returned for names that are empty or try to traverse paths.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and control characters and
// rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	if runes := []rune(s); len(runes) > maxFileNameLength {
		s = string(runes[len(runes)-maxFileNameLength:])
	}
	return s, nil
}
