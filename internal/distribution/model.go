package distribution

import "time"

// Record is one parsed contact row.
type Record struct {
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// Group is the contiguous slice of records assigned to one roster entry.
type Group struct {
	AgentID string   `json:"agentId"`
	Records []Record `json:"records"`
}

// Result bundles the per-agent groups of one upload with its provenance.
type Result struct {
	ID               string    `json:"id"`
	SourceName       string    `json:"sourceName"`
	CreatedAt        time.Time `json:"createdAt"`
	TotalRecordCount int       `json:"totalRecordCount"`
	Groups           []Group   `json:"groups"`
}

// File is an upload as handed over by the host.
type File struct {
	Name             string
	DeclaredMimeType string
	Content          string
}

// GroupSizes returns the number of records per group in roster order.
func (r Result) GroupSizes() []int {
	sizes := make([]int, len(r.Groups))
	for i, g := range r.Groups {
		sizes[i] = len(g.Records)
	}
	return sizes
}
