package lists

import "listdist/internal/distribution"

// List is a distribution result as kept in the upload history, with the
// provenance of the file that produced it.
type List struct {
	distribution.Result
	MimeType   string
	SizeBytes  int64
	Checksum   string
	StorageKey string
}
