package lists

import (
	"time"

	"listdist/internal/distribution"
)

const previewSize = 3

// ListResponse is the full outward-facing representation of a list.
type ListResponse struct {
	ListID           string               `json:"listId"`
	SourceName       string               `json:"sourceName"`
	MimeType         string               `json:"mimeType"`
	SizeBytes        int64                `json:"sizeBytes"`
	Checksum         string               `json:"checksum"`
	TotalRecordCount int                  `json:"totalRecordCount"`
	Message          string               `json:"message"`
	Groups           []distribution.Group `json:"groups"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// GroupSummary is one agent's share as shown in the history view.
type GroupSummary struct {
	AgentID     string                `json:"agentId"`
	RecordCount int                   `json:"recordCount"`
	Preview     []distribution.Record `json:"preview"`
}

// ListSummary is a history entry without the full record payload.
type ListSummary struct {
	ListID           string         `json:"listId"`
	SourceName       string         `json:"sourceName"`
	TotalRecordCount int            `json:"totalRecordCount"`
	Message          string         `json:"message"`
	Groups           []GroupSummary `json:"groups"`
	CreatedAt        time.Time      `json:"createdAt"`
}

func toResponse(list List) ListResponse {
	groups := list.Groups
	if groups == nil {
		groups = []distribution.Group{}
	}
	return ListResponse{
		ListID:           list.ID,
		SourceName:       list.SourceName,
		MimeType:         list.MimeType,
		SizeBytes:        list.SizeBytes,
		Checksum:         list.Checksum,
		TotalRecordCount: list.TotalRecordCount,
		Message:          Summary(list.Result),
		Groups:           groups,
		CreatedAt:        list.CreatedAt,
	}
}

func toSummary(list List) ListSummary {
	groups := make([]GroupSummary, 0, len(list.Groups))
	for _, g := range list.Groups {
		n := len(g.Records)
		if n > previewSize {
			n = previewSize
		}
		preview := make([]distribution.Record, n)
		copy(preview, g.Records[:n])
		groups = append(groups, GroupSummary{
			AgentID:     g.AgentID,
			RecordCount: len(g.Records),
			Preview:     preview,
		})
	}
	return ListSummary{
		ListID:           list.ID,
		SourceName:       list.SourceName,
		TotalRecordCount: list.TotalRecordCount,
		Message:          Summary(list.Result),
		Groups:           groups,
		CreatedAt:        list.CreatedAt,
	}
}
