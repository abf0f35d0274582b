package distribution

import "errors"

// Kind classifies a distribution failure.
type Kind string

const (
	KindUnsupportedFileType Kind = "unsupported_file_type"
	KindFormat              Kind = "format_error"
	KindConfig              Kind = "config_error"
)

// Error is the single failure outcome of a distribution run.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches the kind sentinels below regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	// ErrUnsupportedFileType matches validator rejections.
	ErrUnsupportedFileType = &Error{Kind: KindUnsupportedFileType}

	// ErrFormat matches missing header columns and inputs without usable rows.
	ErrFormat = &Error{Kind: KindFormat}

	// ErrConfig matches an empty agent roster.
	ErrConfig = &Error{Kind: KindConfig}
)

func formatError(msg string) error {
	return &Error{Kind: KindFormat, Message: msg}
}

// KindOf returns the kind of err, or "" when err is not a distribution error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
