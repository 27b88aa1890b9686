package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	clientdistribution "roster/contexts/sales-ops/client-distribution"
	"roster/contexts/sales-ops/client-distribution/adapters/importfile"
	distributionerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	distributionhttp "roster/contexts/sales-ops/client-distribution/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "roster/internal/platform/httpserver/docs"
)

const shutdownTimeout = 10 * time.Second

// Options toggles the operational surfaces next to the API.
type Options struct {
	// Metrics is mounted at /metrics when non-nil.
	Metrics        http.Handler
	EnableSwagger  bool
	MaxUploadBytes int64
}

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	distribution clientdistribution.Module
	options      Options
}

func New(
	distribution clientdistribution.Module,
	logger *slog.Logger,
	addr string,
	options Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = importfile.DefaultMaxBytes
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		distribution: distribution,
		options:      options,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting",
			"event", "http_server_starting",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"addr", s.addr,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	if s.options.EnableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}
	if s.options.Metrics != nil {
		s.mux.Handle("GET /metrics", s.options.Metrics)
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("GET /api/executives", s.handleListExecutives)
	s.mux.HandleFunc("POST /api/executives", s.handleCreateExecutive)
	s.mux.HandleFunc("GET /api/executives/next", s.handleNextExecutive)
	s.mux.HandleFunc("POST /api/executives/skip", s.handleSkipExecutive)
	s.mux.HandleFunc("DELETE /api/executives/{executive_id}", s.handleDeleteExecutive)

	s.mux.HandleFunc("GET /api/clients", s.handleListClients)
	s.mux.HandleFunc("POST /api/clients", s.handleCreateClient)
	s.mux.HandleFunc("POST /api/clients/bulk-manual", s.handleBulkManual)
	s.mux.HandleFunc("POST /api/clients/bulk-upload", s.handleBulkUpload)
	s.mux.HandleFunc("PATCH /api/clients/{client_id}", s.handleUpdateClient)
	s.mux.HandleFunc("DELETE /api/clients/{client_id}", s.handleDeleteClient)

	s.mux.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExecutives(w http.ResponseWriter, r *http.Request) {
	resp, err := s.distribution.Handler.ListExecutivesHandler(r.Context())
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExecutive(w http.ResponseWriter, r *http.Request) {
	var req distributionhttp.CreateExecutiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.distribution.Handler.CreateExecutiveHandler(r.Context(), req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleNextExecutive(w http.ResponseWriter, r *http.Request) {
	cursor, ok := optionalInt64(w, r.URL.Query().Get("cursor"), "cursor")
	if !ok {
		return
	}
	resp, err := s.distribution.Handler.NextExecutiveHandler(r.Context(), cursor)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSkipExecutive(w http.ResponseWriter, r *http.Request) {
	var req distributionhttp.SkipExecutiveRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}
	resp, err := s.distribution.Handler.SkipExecutiveHandler(r.Context(), req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteExecutive(w http.ResponseWriter, r *http.Request) {
	executiveID, ok := pathInt64(w, r, "executive_id")
	if !ok {
		return
	}
	resp, err := s.distribution.Handler.DeleteExecutiveHandler(r.Context(), executiveID)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := distributionhttp.ListClientsRequest{
		Query: query.Get("q"),
	}
	executiveID, ok := optionalInt64(w, query.Get("executive_id"), "executive_id")
	if !ok {
		return
	}
	if executiveID != nil {
		req.ExecutiveID = *executiveID
	}
	if raw := strings.TrimSpace(query.Get("proposal_sent")); raw != "" {
		sent, err := strconv.ParseBool(raw)
		if err != nil {
			writeDistributionError(w, http.StatusBadRequest, "invalid_proposal_sent", "proposal_sent must be a boolean")
			return
		}
		req.ProposalSent = &sent
	}

	resp, err := s.distribution.Handler.ListClientsHandler(r.Context(), req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req distributionhttp.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.distribution.Handler.CreateClientHandler(r.Context(), req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathInt64(w, r, "client_id")
	if !ok {
		return
	}
	var req distributionhttp.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.distribution.Handler.UpdateClientHandler(r.Context(), clientID, req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathInt64(w, r, "client_id")
	if !ok {
		return
	}
	if err := s.distribution.Handler.DeleteClientHandler(r.Context(), clientID); err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkManual(w http.ResponseWriter, r *http.Request) {
	var req distributionhttp.BulkManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.distribution.Handler.BulkManualHandler(r.Context(), req)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBulkUpload(w http.ResponseWriter, r *http.Request) {
	// Headroom for the multipart envelope and the executive_id field.
	r.Body = http.MaxBytesReader(w, r.Body, s.options.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.options.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDistributionError(w, http.StatusRequestEntityTooLarge, "import_too_large", distributionerrors.ErrImportTooLarge.Error())
			return
		}
		writeDistributionError(w, http.StatusBadRequest, "invalid_multipart", "request must be multipart/form-data with a file field")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	executiveID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("executive_id")), 10, 64)
	if err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_executive_id", "executive_id must be an integer")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDistributionError(w, http.StatusBadRequest, "missing_file", "file field is required")
		return
	}
	defer file.Close()

	resp, err := s.distribution.Handler.BulkUploadHandler(
		r.Context(),
		executiveID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.distribution.Handler.DashboardStatsHandler(r.Context())
	if err != nil {
		s.writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeDistributionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, distributionerrors.ErrImportTooLarge):
		writeDistributionError(w, http.StatusRequestEntityTooLarge, "import_too_large", err.Error())
	case errors.Is(err, distributionerrors.ErrUnsupportedFile):
		writeDistributionError(w, http.StatusBadRequest, "unsupported_file", err.Error())
	case errors.Is(err, distributionerrors.ErrLastExecutive):
		writeDistributionError(w, http.StatusConflict, "last_executive", err.Error())
	case errors.Is(err, distributionerrors.ErrNoExecutivesAvailable):
		writeDistributionError(w, http.StatusConflict, "no_executives", err.Error())
	case errors.Is(err, distributionerrors.ErrNotFound):
		writeDistributionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, distributionerrors.ErrConflict):
		writeDistributionError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidInput):
		writeDistributionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		s.logger.Error("client distribution request failed",
			"event", "http_distribution_internal_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeDistributionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDistributionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, distributionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || value <= 0 {
		writeDistributionError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return value, true
}

func optionalInt64(w http.ResponseWriter, raw string, name string) (*int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeDistributionError(w, http.StatusBadRequest, "invalid_"+name, name+" must be an integer")
		return nil, false
	}
	return &value, true
}
