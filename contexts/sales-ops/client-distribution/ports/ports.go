package ports

import (
	"context"
	"io"
	"time"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
)

// ClientFilter narrows client listings. Query matches client or executive
// name case-insensitively; zero values mean no filter.
type ClientFilter struct {
	Query        string
	ExecutiveID  int64
	ProposalSent *bool
}

type NewExecutive struct {
	Name      string
	NameKey   string
	Color     string
	CreatedAt time.Time
}

type NewClient struct {
	Name         string
	NameKey      string
	ExecutiveID  int64
	ProposalSent bool
	CreatedAt    time.Time
}

// ClientPatch carries the mutable client fields. Nil means unchanged.
type ClientPatch struct {
	ProposalSent *bool
}

// ExecutiveRepository owns executive persistence. ListExecutives returns
// rows in ascending id order.
type ExecutiveRepository interface {
	ListExecutives(ctx context.Context) ([]entities.Executive, error)
	GetExecutive(ctx context.Context, id int64) (entities.Executive, error)
	CreateExecutive(ctx context.Context, executive NewExecutive) (entities.Executive, error)
	// DeleteExecutive removes the executive and all of its clients in one
	// atomic step and refuses to remove the last executive.
	DeleteExecutive(ctx context.Context, id int64) error
}

// ClientRepository owns client persistence. Listings are newest first.
type ClientRepository interface {
	ListClients(ctx context.Context, filter ClientFilter) ([]entities.ClientView, error)
	ListClientsByExecutive(ctx context.Context, executiveID int64) ([]entities.Client, error)
	GetClient(ctx context.Context, id int64) (entities.Client, error)
	CreateClient(ctx context.Context, client NewClient) (entities.Client, error)
	// BulkCreateClients inserts what it can and silently skips rows whose
	// name key is already taken. The returned slice holds only inserted rows.
	BulkCreateClients(ctx context.Context, clients []NewClient) ([]entities.Client, error)
	UpdateClient(ctx context.Context, id int64, patch ClientPatch) (entities.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// RecordStore is the full store contract implemented by every persistence
// adapter.
type RecordStore interface {
	ExecutiveRepository
	ClientRepository
}

// StatsCache memoizes dashboard stats per store generation. Mutations call
// Invalidate, which moves the generation forward.
type StatsCache interface {
	Generation() uint64
	Get(generation uint64) (entities.DashboardStats, bool)
	Put(generation uint64, stats entities.DashboardStats)
	Invalidate()
}

// Metrics records engine outcomes.
type Metrics interface {
	ObserveAssignment(outcome string)
	ObserveSkip()
	ObserveImport(created int, rejected int, elapsed time.Duration)
	ObserveOrphans(count int)
}

// NameExtractor turns an uploaded file into raw candidate names.
type NameExtractor interface {
	Extract(filename string, contentType string, body io.Reader) ([]string, error)
}

type Clock interface {
	Now() time.Time
}

// IDGenerator produces import batch identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
