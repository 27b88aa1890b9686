package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

// Store is an in-memory record store for local runtime and tests.
// It is not intended as production persistence.
type Store struct {
	mu            sync.RWMutex
	executives    map[int64]entities.Executive
	clients       map[int64]entities.Client
	executiveKeys map[string]int64
	clientKeys    map[string]int64
	executiveSeq  int64
	clientSeq     int64
	batchSeq      uint64
	logger        *slog.Logger
}

// NewStore seeds executive state. Seeded executives without an id get the
// next sequence value; ids are never reused afterwards.
func NewStore(seedExecutives []entities.Executive, logger *slog.Logger) *Store {
	s := &Store{
		executives:    make(map[int64]entities.Executive, len(seedExecutives)),
		clients:       make(map[int64]entities.Client),
		executiveKeys: make(map[string]int64, len(seedExecutives)),
		clientKeys:    make(map[string]int64),
		logger:        application.ResolveLogger(logger),
	}
	for _, executive := range seedExecutives {
		if executive.ID <= 0 {
			s.executiveSeq++
			executive.ID = s.executiveSeq
		} else if executive.ID > s.executiveSeq {
			s.executiveSeq = executive.ID
		}
		if executive.CreatedAt.IsZero() {
			executive.CreatedAt = time.Now().UTC()
		}
		s.executives[executive.ID] = executive
		s.executiveKeys[services.NameKey(executive.Name)] = executive.ID
	}
	return s
}

func (s *Store) ListExecutives(_ context.Context) ([]entities.Executive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Executive, 0, len(s.executives))
	for _, executive := range s.executives {
		items = append(items, executive)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Store) GetExecutive(_ context.Context, id int64) (entities.Executive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	executive, ok := s.executives[id]
	if !ok {
		return entities.Executive{}, domainerrors.ErrExecutiveNotFound
	}
	return executive, nil
}

func (s *Store) CreateExecutive(_ context.Context, input ports.NewExecutive) (entities.Executive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.executiveKeys[input.NameKey]; taken {
		return entities.Executive{}, domainerrors.ErrExecutiveExists
	}
	s.executiveSeq++
	executive := entities.Executive{
		ID:        s.executiveSeq,
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: input.CreatedAt.UTC(),
	}
	s.executives[executive.ID] = executive
	s.executiveKeys[input.NameKey] = executive.ID
	return executive, nil
}

func (s *Store) DeleteExecutive(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	executive, ok := s.executives[id]
	if !ok {
		return domainerrors.ErrExecutiveNotFound
	}
	if len(s.executives) <= 1 {
		return domainerrors.ErrLastExecutive
	}

	removed := 0
	for clientID, client := range s.clients {
		if client.ExecutiveID != id {
			continue
		}
		delete(s.clients, clientID)
		delete(s.clientKeys, services.NameKey(client.Name))
		removed++
	}
	delete(s.executives, id)
	delete(s.executiveKeys, services.NameKey(executive.Name))

	s.logger.Debug("executive deleted from memory store",
		"event", "memory_delete_executive",
		"module", "sales-ops/client-distribution",
		"layer", "adapter",
		"executive_id", id,
		"removed_clients", removed,
	)
	return nil
}

func (s *Store) ListClients(_ context.Context, filter ports.ClientFilter) ([]entities.ClientView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	items := make([]entities.ClientView, 0, len(s.clients))
	for _, client := range s.clients {
		if filter.ExecutiveID > 0 && client.ExecutiveID != filter.ExecutiveID {
			continue
		}
		if filter.ProposalSent != nil && client.ProposalSent != *filter.ProposalSent {
			continue
		}
		view := entities.ClientView{Client: client}
		if executive, ok := s.executives[client.ExecutiveID]; ok {
			view.ExecutiveName = executive.Name
			view.ExecutiveColor = executive.Color
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(view.Name), query) &&
			!strings.Contains(strings.ToLower(view.ExecutiveName), query) {
			continue
		}
		items = append(items, view)
	}
	sortNewestFirst(items)

	s.logger.Debug("clients listed from memory store",
		"event", "memory_list_clients",
		"module", "sales-ops/client-distribution",
		"layer", "adapter",
		"total", len(items),
	)
	return items, nil
}

func (s *Store) ListClientsByExecutive(_ context.Context, executiveID int64) ([]entities.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Client
	for _, client := range s.clients {
		if client.ExecutiveID == executiveID {
			items = append(items, client)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return newer(items[i], items[j])
	})
	return items, nil
}

func (s *Store) GetClient(_ context.Context, id int64) (entities.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[id]
	if !ok {
		return entities.Client{}, domainerrors.ErrClientNotFound
	}
	return client, nil
}

func (s *Store) CreateClient(_ context.Context, input ports.NewClient) (entities.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.executives[input.ExecutiveID]; !ok {
		return entities.Client{}, domainerrors.ErrExecutiveNotFound
	}
	if _, taken := s.clientKeys[input.NameKey]; taken {
		return entities.Client{}, domainerrors.ErrClientExists
	}
	return s.insertClientLocked(input), nil
}

func (s *Store) BulkCreateClients(_ context.Context, inputs []ports.NewClient) ([]entities.Client, error) {
	if len(inputs) == 0 {
		return []entities.Client{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, input := range inputs {
		if _, ok := s.executives[input.ExecutiveID]; !ok {
			return nil, domainerrors.ErrExecutiveNotFound
		}
	}

	created := make([]entities.Client, 0, len(inputs))
	for _, input := range inputs {
		if _, taken := s.clientKeys[input.NameKey]; taken {
			continue
		}
		created = append(created, s.insertClientLocked(input))
	}
	return created, nil
}

func (s *Store) UpdateClient(_ context.Context, id int64, patch ports.ClientPatch) (entities.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return entities.Client{}, domainerrors.ErrClientNotFound
	}
	if patch.ProposalSent != nil {
		client.ProposalSent = *patch.ProposalSent
	}
	s.clients[id] = client
	return client, nil
}

func (s *Store) DeleteClient(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return domainerrors.ErrClientNotFound
	}
	delete(s.clients, id)
	delete(s.clientKeys, services.NameKey(client.Name))
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.batchSeq, 1)
	return fmt.Sprintf("batch-%d", value), nil
}

func (s *Store) insertClientLocked(input ports.NewClient) entities.Client {
	s.clientSeq++
	client := entities.Client{
		ID:           s.clientSeq,
		Name:         input.Name,
		ExecutiveID:  input.ExecutiveID,
		ProposalSent: input.ProposalSent,
		CreatedAt:    input.CreatedAt.UTC(),
	}
	s.clients[client.ID] = client
	s.clientKeys[input.NameKey] = client.ID
	return client
}

func sortNewestFirst(items []entities.ClientView) {
	sort.Slice(items, func(i, j int) bool {
		return newer(items[i].Client, items[j].Client)
	})
}

func newer(a, b entities.Client) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
