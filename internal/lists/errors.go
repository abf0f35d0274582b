package lists

import "errors"

var (
	// ErrNotFound indicates no list with the requested id exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed request, such as a duplicate agent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooLarge indicates the uploaded file exceeds the configured cap.
	ErrTooLarge = errors.New("file too large")
)
