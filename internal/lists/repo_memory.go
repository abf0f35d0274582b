package lists

import (
	"context"
	"sync"

	"listdist/internal/distribution"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	lists []List
	byID  map[string]int
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]int)}
}

// Create appends list to the history.
func (r *MemoryRepo) Create(ctx context.Context, list List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[list.ID]; exists {
		return ErrInvalidInput
	}
	r.byID[list.ID] = len(r.lists)
	r.lists = append(r.lists, cloneList(list))
	return nil
}

// GetByID returns the list with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (List, error) {
	if err := ctx.Err(); err != nil {
		return List{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return List{}, ErrNotFound
	}
	return cloneList(r.lists[idx]), nil
}

// ListRecent returns lists newest first, paged like PGRepo.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit, offset int) ([]List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.lists)
	if offset >= total {
		return []List{}, nil
	}
	n := total - offset
	if limit < n {
		n = limit
	}

	// Insertion order is upload order, so walk backwards.
	out := make([]List, 0, n)
	for i := total - 1 - offset; i >= 0 && len(out) < n; i-- {
		out = append(out, cloneList(r.lists[i]))
	}
	return out, nil
}

// cloneList copies the group and record slices so callers never share
// backing arrays with the stored history.
func cloneList(list List) List {
	if list.Groups == nil {
		return list
	}
	groups := make([]distribution.Group, len(list.Groups))
	for i, g := range list.Groups {
		groups[i] = distribution.Group{
			AgentID: g.AgentID,
			Records: append([]distribution.Record(nil), g.Records...),
		}
		if g.Records != nil && groups[i].Records == nil {
			groups[i].Records = []distribution.Record{}
		}
	}
	list.Groups = groups
	return list
}

var _ Repo = (*MemoryRepo)(nil)
