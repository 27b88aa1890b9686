package entities

type ExecutiveStats struct {
	ExecutiveID    int64
	Name           string
	Color          string
	ClientCount    int
	ProposalCount  int
	PendingCount   int
	ConversionRate float64
}

type DashboardStats struct {
	TotalClients   int
	TotalProposals int
	ConversionRate float64
	Executives     []ExecutiveStats
}

// OrphanClient is a client whose executive id does not resolve.
type OrphanClient struct {
	ClientID    int64
	Name        string
	ExecutiveID int64
}
