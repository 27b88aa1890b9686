package httptransport

type ExecutiveDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

type ListExecutivesResponse struct {
	Items []ExecutiveDTO `json:"items"`
}

type CreateExecutiveRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type CreateExecutiveResponse struct {
	Item ExecutiveDTO `json:"item"`
}

type DeleteExecutiveResponse struct {
	ExecutiveID    int64 `json:"executive_id"`
	RemovedClients int   `json:"removed_clients"`
}

type NextExecutiveResponse struct {
	Item ExecutiveDTO `json:"item"`
}

type SkipExecutiveRequest struct {
	Cursor *int64 `json:"cursor,omitempty"`
}

type SkipExecutiveResponse struct {
	Skipped ExecutiveDTO `json:"skipped"`
	Cursor  int64        `json:"cursor"`
	Next    ExecutiveDTO `json:"next"`
}

type ClientDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ExecutiveID    int64  `json:"executive_id"`
	ExecutiveName  string `json:"executive_name,omitempty"`
	ExecutiveColor string `json:"executive_color,omitempty"`
	ProposalSent   bool   `json:"proposal_sent"`
	CreatedAt      string `json:"created_at"`
}

type ListClientsRequest struct {
	Query        string `json:"q,omitempty"`
	ExecutiveID  int64  `json:"executive_id,omitempty"`
	ProposalSent *bool  `json:"proposal_sent,omitempty"`
}

type ListClientsResponse struct {
	Items []ClientDTO `json:"items"`
}

// CreateClientRequest assigns through the rotation when ExecutiveID is zero.
type CreateClientRequest struct {
	Name         string `json:"name"`
	ExecutiveID  int64  `json:"executive_id,omitempty"`
	Cursor       *int64 `json:"cursor,omitempty"`
	ProposalSent bool   `json:"proposal_sent,omitempty"`
}

type CreateClientResponse struct {
	Item      ClientDTO    `json:"item"`
	Executive ExecutiveDTO `json:"executive"`
	Cursor    *int64       `json:"cursor,omitempty"`
	Rotated   bool         `json:"rotated"`
}

type UpdateClientRequest struct {
	ProposalSent *bool `json:"proposal_sent"`
}

type UpdateClientResponse struct {
	Item ClientDTO `json:"item"`
}

// BulkManualRequest accepts either explicit names or free text with one name
// per line. Names wins when both are present.
type BulkManualRequest struct {
	Names       []string `json:"names,omitempty"`
	Text        string   `json:"text,omitempty"`
	ExecutiveID int64    `json:"executive_id"`
}

type RejectionDTO struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Kind   string `json:"kind"`
}

type BulkImportResponse struct {
	BatchID       string         `json:"batch_id,omitempty"`
	ExecutiveID   int64          `json:"executive_id"`
	Message       string         `json:"message"`
	CreatedCount  int            `json:"created_count"`
	RejectedCount int            `json:"rejected_count"`
	Created       []ClientDTO    `json:"created"`
	Rejected      []string       `json:"rejected"`
	Rejections    []RejectionDTO `json:"rejections"`
}

type ExecutiveStatsDTO struct {
	ExecutiveID    int64   `json:"executive_id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	ClientCount    int     `json:"client_count"`
	ProposalCount  int     `json:"proposal_count"`
	PendingCount   int     `json:"pending_count"`
	ConversionRate float64 `json:"conversion_rate"`
}

type DashboardStatsResponse struct {
	TotalClients   int                 `json:"total_clients"`
	TotalProposals int                 `json:"total_proposals"`
	ConversionRate float64             `json:"conversion_rate"`
	Executives     []ExecutiveStatsDTO `json:"executives"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
