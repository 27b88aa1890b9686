package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"roster/contexts/sales-ops/client-distribution/adapters/importfile"
	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/application/commands"
	"roster/contexts/sales-ops/client-distribution/application/queries"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	httptransport "roster/contexts/sales-ops/client-distribution/transport/http"
)

type Handler struct {
	ListExecutives  queries.ListExecutivesUseCase
	NextExecutive   queries.NextExecutiveUseCase
	ListClients     queries.ListClientsUseCase
	DashboardStats  queries.DashboardStatsUseCase
	CreateExecutive commands.CreateExecutiveUseCase
	DeleteExecutive commands.DeleteExecutiveUseCase
	SkipExecutive   commands.SkipExecutiveUseCase
	AssignClient    commands.AssignClientUseCase
	UpdateClient    commands.UpdateClientUseCase
	DeleteClient    commands.DeleteClientUseCase
	BulkImport      commands.BulkImportUseCase
	ImportFile      commands.ImportFileUseCase
	Logger          *slog.Logger
}

// ListExecutivesHandler godoc
// @Summary List executives
// @Description Returns every executive in rotation order.
// @Tags client-distribution
// @Produce json
// @Success 200 {object} httptransport.ListExecutivesResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/executives [get]
func (h Handler) ListExecutivesHandler(ctx context.Context) (httptransport.ListExecutivesResponse, error) {
	result, err := h.ListExecutives.Execute(ctx)
	if err != nil {
		return httptransport.ListExecutivesResponse{}, err
	}
	return httptransport.ListExecutivesResponse{Items: mapExecutives(result.Items)}, nil
}

// CreateExecutiveHandler godoc
// @Summary Create an executive
// @Description Adds an executive to the rotation. A palette color is picked when none is given.
// @Tags client-distribution
// @Accept json
// @Produce json
// @Param request body httptransport.CreateExecutiveRequest true "Executive payload"
// @Success 201 {object} httptransport.CreateExecutiveResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/executives [post]
func (h Handler) CreateExecutiveHandler(
	ctx context.Context,
	req httptransport.CreateExecutiveRequest,
) (httptransport.CreateExecutiveResponse, error) {
	result, err := h.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return httptransport.CreateExecutiveResponse{}, err
	}
	return httptransport.CreateExecutiveResponse{Item: mapExecutive(result.Executive)}, nil
}

// DeleteExecutiveHandler godoc
// @Summary Delete an executive
// @Description Removes an executive and all of its clients. The last executive cannot be removed.
// @Tags client-distribution
// @Produce json
// @Param executive_id path int true "Executive id"
// @Success 200 {object} httptransport.DeleteExecutiveResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/executives/{executive_id} [delete]
func (h Handler) DeleteExecutiveHandler(ctx context.Context, executiveID int64) (httptransport.DeleteExecutiveResponse, error) {
	result, err := h.DeleteExecutive.Execute(ctx, commands.DeleteExecutiveCommand{ExecutiveID: executiveID})
	if err != nil {
		return httptransport.DeleteExecutiveResponse{}, err
	}
	return httptransport.DeleteExecutiveResponse{
		ExecutiveID:    result.Executive.ID,
		RemovedClients: result.RemovedClients,
	}, nil
}

// NextExecutiveHandler godoc
// @Summary Preview the next executive
// @Description Returns the executive after the cursor without moving the rotation.
// @Tags client-distribution
// @Produce json
// @Param cursor query int false "Current rotation cursor"
// @Success 200 {object} httptransport.NextExecutiveResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/executives/next [get]
func (h Handler) NextExecutiveHandler(ctx context.Context, cursor *int64) (httptransport.NextExecutiveResponse, error) {
	result, err := h.NextExecutive.Execute(ctx, queries.NextExecutiveQuery{Cursor: cursor})
	if err != nil {
		return httptransport.NextExecutiveResponse{}, err
	}
	return httptransport.NextExecutiveResponse{Item: mapExecutive(result.Executive)}, nil
}

// SkipExecutiveHandler godoc
// @Summary Skip the next executive
// @Description Advances the rotation cursor without creating a client.
// @Tags client-distribution
// @Accept json
// @Produce json
// @Param request body httptransport.SkipExecutiveRequest false "Current cursor"
// @Success 200 {object} httptransport.SkipExecutiveResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/executives/skip [post]
func (h Handler) SkipExecutiveHandler(
	ctx context.Context,
	req httptransport.SkipExecutiveRequest,
) (httptransport.SkipExecutiveResponse, error) {
	result, err := h.SkipExecutive.Execute(ctx, commands.SkipExecutiveCommand{Cursor: req.Cursor})
	if err != nil {
		return httptransport.SkipExecutiveResponse{}, err
	}
	return httptransport.SkipExecutiveResponse{
		Skipped: mapExecutive(result.Skipped),
		Cursor:  result.Cursor,
		Next:    mapExecutive(result.Next),
	}, nil
}

// ListClientsHandler godoc
// @Summary List clients
// @Description Returns clients newest first, with their executive's name and color.
// @Tags client-distribution
// @Produce json
// @Param q query string false "Matches client or executive name"
// @Param executive_id query int false "Executive filter"
// @Param proposal_sent query bool false "Proposal state filter"
// @Success 200 {object} httptransport.ListClientsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients [get]
func (h Handler) ListClientsHandler(
	ctx context.Context,
	req httptransport.ListClientsRequest,
) (httptransport.ListClientsResponse, error) {
	result, err := h.ListClients.Execute(ctx, queries.ListClientsQuery{
		Query:        req.Query,
		ExecutiveID:  req.ExecutiveID,
		ProposalSent: req.ProposalSent,
	})
	if err != nil {
		return httptransport.ListClientsResponse{}, err
	}
	items := make([]httptransport.ClientDTO, 0, len(result.Items))
	for _, view := range result.Items {
		items = append(items, mapClientView(view))
	}
	return httptransport.ListClientsResponse{Items: items}, nil
}

// CreateClientHandler godoc
// @Summary Create a client
// @Description Assigns a client to the given executive, or to the next one in the rotation when executive_id is omitted.
// @Tags client-distribution
// @Accept json
// @Produce json
// @Param request body httptransport.CreateClientRequest true "Client payload"
// @Success 201 {object} httptransport.CreateClientResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients [post]
func (h Handler) CreateClientHandler(
	ctx context.Context,
	req httptransport.CreateClientRequest,
) (httptransport.CreateClientResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create client request received",
		"event", "http_create_client_received",
		"module", "sales-ops/client-distribution",
		"layer", "transport",
		"executive_id", req.ExecutiveID,
	)

	result, err := h.AssignClient.Execute(ctx, commands.AssignClientCommand{
		Name:         req.Name,
		ExecutiveID:  req.ExecutiveID,
		Cursor:       req.Cursor,
		ProposalSent: req.ProposalSent,
	})
	if err != nil {
		return httptransport.CreateClientResponse{}, err
	}
	return httptransport.CreateClientResponse{
		Item:      mapClient(result.Client, result.Executive),
		Executive: mapExecutive(result.Executive),
		Cursor:    result.Cursor,
		Rotated:   result.Rotated,
	}, nil
}

// UpdateClientHandler godoc
// @Summary Update a client
// @Description Sets the proposal state of a client.
// @Tags client-distribution
// @Accept json
// @Produce json
// @Param client_id path int true "Client id"
// @Param request body httptransport.UpdateClientRequest true "Client patch"
// @Success 200 {object} httptransport.UpdateClientResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients/{client_id} [patch]
func (h Handler) UpdateClientHandler(
	ctx context.Context,
	clientID int64,
	req httptransport.UpdateClientRequest,
) (httptransport.UpdateClientResponse, error) {
	result, err := h.UpdateClient.Execute(ctx, commands.UpdateClientCommand{
		ClientID:     clientID,
		ProposalSent: req.ProposalSent,
	})
	if err != nil {
		return httptransport.UpdateClientResponse{}, err
	}
	return httptransport.UpdateClientResponse{
		Item: mapClient(result.Client, result.Executive),
	}, nil
}

// DeleteClientHandler godoc
// @Summary Delete a client
// @Tags client-distribution
// @Param client_id path int true "Client id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients/{client_id} [delete]
func (h Handler) DeleteClientHandler(ctx context.Context, clientID int64) error {
	return h.DeleteClient.Execute(ctx, commands.DeleteClientCommand{ClientID: clientID})
}

// BulkManualHandler godoc
// @Summary Bulk create clients from a name list
// @Description Assigns every new name to one executive. Duplicates are reported, not fatal.
// @Tags client-distribution
// @Accept json
// @Produce json
// @Param request body httptransport.BulkManualRequest true "Names or newline separated text"
// @Success 200 {object} httptransport.BulkImportResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients/bulk-manual [post]
func (h Handler) BulkManualHandler(
	ctx context.Context,
	req httptransport.BulkManualRequest,
) (httptransport.BulkImportResponse, error) {
	names := req.Names
	if len(names) == 0 {
		names = importfile.ParseManualText(req.Text)
	}
	result, err := h.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       names,
		ExecutiveID: req.ExecutiveID,
		Source:      "manual",
	})
	if err != nil {
		return httptransport.BulkImportResponse{}, err
	}
	return mapBulkImport(result), nil
}

// BulkUploadHandler godoc
// @Summary Bulk create clients from a file
// @Description Accepts .txt, .csv (split on newline, comma and semicolon) or .xlsx (first column of the first sheet).
// @Tags client-distribution
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Name list"
// @Param executive_id formData int true "Executive id"
// @Success 200 {object} httptransport.BulkImportResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/clients/bulk-upload [post]
func (h Handler) BulkUploadHandler(
	ctx context.Context,
	executiveID int64,
	filename string,
	contentType string,
	body io.Reader,
) (httptransport.BulkImportResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("bulk upload request received",
		"event", "http_bulk_upload_received",
		"module", "sales-ops/client-distribution",
		"layer", "transport",
		"executive_id", executiveID,
		"filename", filename,
	)

	result, err := h.ImportFile.Execute(ctx, commands.ImportFileCommand{
		Filename:    filename,
		ContentType: contentType,
		Body:        body,
		ExecutiveID: executiveID,
	})
	if err != nil {
		return httptransport.BulkImportResponse{}, err
	}
	return mapBulkImport(result), nil
}

// DashboardStatsHandler godoc
// @Summary Dashboard statistics
// @Description Returns totals, conversion rate and per-executive counts.
// @Tags client-distribution
// @Produce json
// @Success 200 {object} httptransport.DashboardStatsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/dashboard/stats [get]
func (h Handler) DashboardStatsHandler(ctx context.Context) (httptransport.DashboardStatsResponse, error) {
	result, err := h.DashboardStats.Execute(ctx)
	if err != nil {
		return httptransport.DashboardStatsResponse{}, err
	}
	executives := make([]httptransport.ExecutiveStatsDTO, 0, len(result.Stats.Executives))
	for _, stats := range result.Stats.Executives {
		executives = append(executives, httptransport.ExecutiveStatsDTO{
			ExecutiveID:    stats.ExecutiveID,
			Name:           stats.Name,
			Color:          stats.Color,
			ClientCount:    stats.ClientCount,
			ProposalCount:  stats.ProposalCount,
			PendingCount:   stats.PendingCount,
			ConversionRate: stats.ConversionRate,
		})
	}
	return httptransport.DashboardStatsResponse{
		TotalClients:   result.Stats.TotalClients,
		TotalProposals: result.Stats.TotalProposals,
		ConversionRate: result.Stats.ConversionRate,
		Executives:     executives,
	}, nil
}

func mapExecutives(executives []entities.Executive) []httptransport.ExecutiveDTO {
	items := make([]httptransport.ExecutiveDTO, 0, len(executives))
	for _, executive := range executives {
		items = append(items, mapExecutive(executive))
	}
	return items
}

func mapExecutive(executive entities.Executive) httptransport.ExecutiveDTO {
	return httptransport.ExecutiveDTO{
		ID:        executive.ID,
		Name:      executive.Name,
		Color:     executive.Color,
		CreatedAt: formatTime(executive.CreatedAt),
	}
}

func mapClient(client entities.Client, executive entities.Executive) httptransport.ClientDTO {
	return mapClientView(entities.ClientView{
		Client:         client,
		ExecutiveName:  executive.Name,
		ExecutiveColor: executive.Color,
	})
}

func mapClientView(view entities.ClientView) httptransport.ClientDTO {
	return httptransport.ClientDTO{
		ID:             view.ID,
		Name:           view.Name,
		ExecutiveID:    view.ExecutiveID,
		ExecutiveName:  view.ExecutiveName,
		ExecutiveColor: view.ExecutiveColor,
		ProposalSent:   view.ProposalSent,
		CreatedAt:      formatTime(view.CreatedAt),
	}
}

func mapBulkImport(result commands.BulkImportResult) httptransport.BulkImportResponse {
	created := make([]httptransport.ClientDTO, 0, len(result.Created))
	for _, client := range result.Created {
		created = append(created, mapClient(client, result.Executive))
	}
	rejections := make([]httptransport.RejectionDTO, 0, len(result.Rejections))
	for _, rejection := range result.Rejections {
		rejections = append(rejections, httptransport.RejectionDTO{
			Name:   rejection.Name,
			Reason: rejection.Reason,
			Kind:   string(rejection.Kind),
		})
	}
	rejected := result.Rejected
	if rejected == nil {
		rejected = []string{}
	}
	return httptransport.BulkImportResponse{
		BatchID:       result.BatchID,
		ExecutiveID:   result.Executive.ID,
		Message:       result.Message,
		CreatedCount:  len(result.Created),
		RejectedCount: len(rejected),
		Created:       created,
		Rejected:      rejected,
		Rejections:    rejections,
	}
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}
