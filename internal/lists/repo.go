package lists

import "context"

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Repo stores the upload history. Entries are append-only.
//
// ListRecent returns entries newest first. A limit of zero or less means
// defaultListLimit and limits above maxListLimit are capped; a negative
// offset is treated as zero.
type Repo interface {
	Create(ctx context.Context, list List) error
	GetByID(ctx context.Context, id string) (List, error)
	ListRecent(ctx context.Context, limit, offset int) ([]List, error)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
