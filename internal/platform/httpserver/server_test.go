package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdistribution "roster/contexts/sales-ops/client-distribution"
	"roster/contexts/sales-ops/client-distribution/adapters/importfile"
	"roster/contexts/sales-ops/client-distribution/adapters/memory"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	distributionhttp "roster/contexts/sales-ops/client-distribution/transport/http"
	"roster/internal/platform/metrics"
)

const testUploadLimit = 1 << 10

func newTestServer() *Server {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Executive{
		{ID: 1, Name: "Ana", Color: "#3B82F6", CreatedAt: created},
		{ID: 2, Name: "Bob", Color: "#10B981", CreatedAt: created},
	}, nil)
	registry := metrics.NewRegistry()
	module := clientdistribution.NewModule(clientdistribution.Dependencies{
		Executives:  store,
		Clients:     store,
		Metrics:     registry,
		Extractor:   importfile.NewReader(testUploadLimit),
		Clock:       store,
		IDGenerator: store,
	})
	return New(module, nil, "", Options{
		Metrics:        registry.Handler(),
		EnableSwagger:  true,
		MaxUploadBytes: testUploadLimit,
	})
}

func doJSON(t *testing.T, server *Server, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestRotationOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	first := decode[distributionhttp.CreateClientResponse](t, rr)
	assert.Equal(t, "Ana", first.Executive.Name)
	assert.Equal(t, "Ana", first.Item.ExecutiveName)
	require.NotNil(t, first.Cursor)

	rr = doJSON(t, server, http.MethodGet, "/api/executives/next?cursor=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bob", decode[distributionhttp.NextExecutiveResponse](t, rr).Item.Name)

	rr = doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Globex", "cursor": *first.Cursor})
	require.Equal(t, http.StatusCreated, rr.Code)
	second := decode[distributionhttp.CreateClientResponse](t, rr)
	assert.Equal(t, "Bob", second.Executive.Name)

	rr = doJSON(t, server, http.MethodPost, "/api/executives/skip", map[string]any{"cursor": *second.Cursor})
	require.Equal(t, http.StatusOK, rr.Code)
	skipped := decode[distributionhttp.SkipExecutiveResponse](t, rr)
	assert.Equal(t, "Ana", skipped.Skipped.Name)
	assert.Equal(t, "Bob", skipped.Next.Name)
}

func TestCreateClientErrorsMapToStatus(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Acme", "executive_id": 2})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "ACME"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	failure := decode[distributionhttp.ErrorResponse](t, rr)
	assert.Equal(t, "conflict", failure.Code)
	assert.Contains(t, failure.Message, "Bob")

	rr = doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Hooli", "executive_id": 9})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", bytes.NewBufferString("{"))
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_json", decode[distributionhttp.ErrorResponse](t, rr).Code)
}

func TestDeleteLastExecutiveConflicts(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodDelete, "/api/executives/1", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, server, http.MethodDelete, "/api/executives/2", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "last_executive", decode[distributionhttp.ErrorResponse](t, rr).Code)

	rr = doJSON(t, server, http.MethodDelete, "/api/executives/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBulkManualReportsRejections(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/clients/bulk-manual", map[string]any{
		"text":         "Acme\nGlobex\nacme\n",
		"executive_id": 1,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[distributionhttp.BulkImportResponse](t, rr)
	assert.Equal(t, 2, resp.CreatedCount)
	assert.Equal(t, 1, resp.RejectedCount)
	assert.Equal(t, "2 client(s) created", resp.Message)

	rr = doJSON(t, server, http.MethodPost, "/api/clients/bulk-manual", map[string]any{
		"names":        []string{"", " "},
		"executive_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func uploadRequest(t *testing.T, filename string, contentType string, content []byte, executiveID string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("executive_id", executiveID))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/clients/bulk-upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestBulkUpload(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, uploadRequest(t, "leads.csv", "text/csv", []byte("Acme,Globex;Initech\n"), "2"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[distributionhttp.BulkImportResponse](t, rr)
	assert.Equal(t, 3, resp.CreatedCount)
	assert.Equal(t, int64(2), resp.ExecutiveID)

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, uploadRequest(t, "leads.xls", "application/vnd.ms-excel", []byte("x"), "2"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "unsupported_file", decode[distributionhttp.ErrorResponse](t, rr).Code)

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, uploadRequest(t, "leads.txt", "text/plain", bytes.Repeat([]byte("a"), 2<<10), "2"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, uploadRequest(t, "leads.txt", "text/plain", []byte("Acme"), "nope"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListClientsFilters(t *testing.T) {
	server := newTestServer()
	for _, payload := range []map[string]any{
		{"name": "Acme", "executive_id": 1},
		{"name": "Globex", "executive_id": 2, "proposal_sent": true},
	} {
		rr := doJSON(t, server, http.MethodPost, "/api/clients", payload)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := doJSON(t, server, http.MethodGet, "/api/clients?q=bob", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode[distributionhttp.ListClientsResponse](t, rr).Items
	require.Len(t, items, 1)
	assert.Equal(t, "Globex", items[0].Name)

	rr = doJSON(t, server, http.MethodGet, "/api/clients?proposal_sent=false", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	items = decode[distributionhttp.ListClientsResponse](t, rr).Items
	require.Len(t, items, 1)
	assert.Equal(t, "Acme", items[0].Name)

	rr = doJSON(t, server, http.MethodGet, "/api/clients?proposal_sent=sometimes", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatchClientReturnsExecutive(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Acme", "executive_id": 2})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, server, http.MethodPatch, "/api/clients/1", map[string]any{"proposal_sent": true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	item := decode[distributionhttp.UpdateClientResponse](t, rr).Item
	assert.True(t, item.ProposalSent)
	assert.Equal(t, "Bob", item.ExecutiveName)
	assert.Equal(t, "#10B981", item.ExecutiveColor)
}

func TestDashboardStatsGolden(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/clients/bulk-manual", map[string]any{
		"names":        []string{"Acme", "Globex", "Initech", "Umbrella"},
		"executive_id": 1,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = doJSON(t, server, http.MethodPost, "/api/clients", map[string]any{"name": "Hooli", "executive_id": 2})
	require.Equal(t, http.StatusCreated, rr.Code)
	for _, id := range []string{"1", "2", "5"} {
		rr = doJSON(t, server, http.MethodPatch, "/api/clients/"+id, map[string]any{"proposal_sent": true})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[distributionhttp.DashboardStatsResponse](t, rr)
	payload, err := json.MarshalIndent(stats, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "dashboard_stats", append(payload, '\n'))
}

func TestOperationalEndpoints(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "roster_rotation_skips_total")

	disabled := New(clientdistribution.NewInMemoryModule(nil, nil), nil, "", Options{})
	rr = httptest.NewRecorder()
	disabled.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
