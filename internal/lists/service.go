package lists

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"listdist/internal/distribution"
	"listdist/internal/shared/metrics"
	"listdist/internal/shared/storage/object"
	"listdist/internal/shared/telemetry"
	"listdist/internal/shared/util"
)

const defaultMaxUploadBytes = 5 << 20

// Service accepts uploads, distributes them across agents and keeps the
// resulting history.
type Service struct {
	Repo           Repo
	Store          object.ObjectStore // optional archive of raw uploads
	Roster         []string
	MimeTypes      []string
	ParserMode     string
	MaxUploadBytes int64
}

// UploadInput is one file as received from a client. Agents, when non-empty,
// replaces the configured roster for this upload.
type UploadInput struct {
	FileName string
	MimeType string
	Body     io.Reader
	Agents   []string
}

// Upload distributes the file's records across the roster and appends the
// result to the history. Nothing is stored when distribution fails.
func (s *Service) Upload(ctx context.Context, in UploadInput) (List, error) {
	start := time.Now()
	metrics.IncUploadStarted()

	list, err := s.upload(ctx, in)
	if err != nil {
		kind := rejectionKind(err)
		metrics.IncUploadRejected(kind)
		telemetry.Warn("lists.upload.rejected", map[string]any{
			"file_name": in.FileName,
			"mime_type": in.MimeType,
			"kind":      kind,
			"err":       err.Error(),
		})
		return List{}, err
	}

	metrics.IncUploadCompleted(list.TotalRecordCount)
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("lists.upload.distributed", map[string]any{
		"list_id":      list.ID,
		"file_name":    list.SourceName,
		"record_count": list.TotalRecordCount,
		"agent_count":  len(list.Groups),
		"summary":      Summary(list.Result),
	})
	return list, nil
}

func (s *Service) upload(ctx context.Context, in UploadInput) (List, error) {
	if strings.TrimSpace(in.FileName) == "" || in.Body == nil {
		return List{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	data, err := readLimited(in.Body, s.maxUploadBytes())
	if err != nil {
		return List{}, err
	}

	session := distribution.NewSession(
		distribution.NewValidator(s.MimeTypes...),
		distribution.NewParser(s.ParserMode),
	)
	file := distribution.File{
		Name:             in.FileName,
		DeclaredMimeType: in.MimeType,
		Content:          string(data),
	}
	// File type is reported ahead of request roster problems.
	if err := session.CheckFile(file); err != nil {
		return List{}, err
	}
	roster, err := ResolveRoster(in.Agents, s.Roster)
	if err != nil {
		return List{}, err
	}

	result, err := session.Run(file, roster)
	if err != nil {
		return List{}, err
	}

	list := List{
		Result:    result,
		MimeType:  in.MimeType,
		SizeBytes: int64(len(data)),
		Checksum:  util.Checksum(data),
	}

	if s.Store != nil {
		key := archiveKey(result.ID, in.FileName)
		if _, err := s.Store.Put(ctx, key, in.MimeType, bytes.NewReader(data)); err != nil {
			return List{}, fmt.Errorf("archive upload: %w", err)
		}
		list.StorageKey = key
	}

	if err := s.Repo.Create(ctx, list); err != nil {
		return List{}, fmt.Errorf("save list: %w", err)
	}
	return list, nil
}

// Get returns one list from the history.
func (s *Service) Get(ctx context.Context, id string) (List, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return List{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns the history newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]List, error) {
	return s.Repo.ListRecent(ctx, limit, offset)
}

// Agents returns a copy of the configured roster.
func (s *Service) Agents() []string {
	return append([]string{}, s.Roster...)
}

// ResolveRoster picks the request roster when it names at least one agent and
// the configured one otherwise. Entries may be comma lists; blanks are
// dropped and duplicates rejected.
func ResolveRoster(requested, configured []string) ([]string, error) {
	roster, err := normalizeRoster(requested)
	if err != nil {
		return nil, err
	}
	if len(roster) > 0 {
		return roster, nil
	}
	return normalizeRoster(configured)
}

func normalizeRoster(entries []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		for _, agent := range strings.Split(entry, ",") {
			agent = strings.TrimSpace(agent)
			if agent == "" {
				continue
			}
			if _, dup := seen[agent]; dup {
				return nil, fmt.Errorf("%w: duplicate agent %q", ErrInvalidInput, agent)
			}
			seen[agent] = struct{}{}
			out = append(out, agent)
		}
	}
	return out, nil
}

// Summary renders the one-line outcome shown to the uploader.
func Summary(r distribution.Result) string {
	return fmt.Sprintf("%d items distributed among %d agents", r.TotalRecordCount, len(r.Groups))
}

func rejectionKind(err error) string {
	switch {
	case distribution.KindOf(err) != "":
		return string(distribution.KindOf(err))
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, max)
	}
	return data, nil
}

// archiveKey places the raw upload under its list id. Names that cannot be
// sanitized are stored as "upload".
func archiveKey(listID, fileName string) string {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		name = "upload"
	}
	return path.Join("lists", listID, name)
}
