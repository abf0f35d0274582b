package lists

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"listdist/internal/distribution"
)

// PGRepo implements Repo using Postgres. Groups are stored as one JSONB
// document per list.
type PGRepo struct {
	DB *sql.DB
}

const listColumns = `id, source_name, mime_type, size_bytes, checksum, storage_key, total_record_count, groups, created_at`

// Create inserts a new list.
func (r *PGRepo) Create(ctx context.Context, list List) error {
	const query = `
INSERT INTO distribution_lists (
    id,
    source_name,
    mime_type,
    size_bytes,
    checksum,
    storage_key,
    total_record_count,
    agent_count,
    groups,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	groups, err := json.Marshal(list.Groups)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}

	var storageKey sql.NullString
	if list.StorageKey != "" {
		storageKey = sql.NullString{String: list.StorageKey, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		list.ID,
		list.SourceName,
		list.MimeType,
		list.SizeBytes,
		list.Checksum,
		storageKey,
		list.TotalRecordCount,
		len(list.Groups),
		groups,
		list.CreatedAt,
	)
	return err
}

// GetByID fetches a list by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (List, error) {
	query := `
SELECT ` + listColumns + `
FROM distribution_lists
WHERE id = $1
LIMIT 1`

	list, err := scanList(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return List{}, ErrNotFound
		}
		return List{}, err
	}
	return list, nil
}

// ListRecent lists uploads ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, limit, offset int) ([]List, error) {
	limit, offset = clampPage(limit, offset)
	query := `
SELECT ` + listColumns + `
FROM distribution_lists
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, list)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (List, error) {
	var list List
	var storageKey sql.NullString
	var groups []byte
	if err := row.Scan(
		&list.ID,
		&list.SourceName,
		&list.MimeType,
		&list.SizeBytes,
		&list.Checksum,
		&storageKey,
		&list.TotalRecordCount,
		&groups,
		&list.CreatedAt,
	); err != nil {
		return List{}, err
	}
	if storageKey.Valid {
		list.StorageKey = storageKey.String
	}
	list.Groups = []distribution.Group{}
	if len(groups) > 0 {
		if err := json.Unmarshal(groups, &list.Groups); err != nil {
			return List{}, fmt.Errorf("decode groups for list %s: %w", list.ID, err)
		}
	}
	return list, nil
}

var _ Repo = (*PGRepo)(nil)
