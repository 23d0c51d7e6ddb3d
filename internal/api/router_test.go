package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"roadIncidents/internal/api"
	"roadIncidents/internal/api/handlers/http/catalog"
	"roadIncidents/internal/api/handlers/http/incidents"
	"roadIncidents/internal/api/handlers/http/system"
	"roadIncidents/internal/config"
	"roadIncidents/internal/domain"
	"roadIncidents/internal/pipeline"
	"roadIncidents/internal/service"
	mock_service "roadIncidents/internal/service/mocks"
)

const testAPIKey = "test-key"

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	srv       *httptest.Server
	incidents *mock_service.MockIncidentRepository
	catalog   *mock_service.MockCatalogRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
	incRepo := mock_service.NewMockIncidentRepository(ctrl)
	catRepo := mock_service.NewMockCatalogRepository(ctrl)

	reg := pipeline.NewRegistry()
	service.RegisterValidators(reg)
	svc := service.NewService(
		service.NewIncidentQueryService(incRepo, nil, logger),
		service.NewIncidentCommandService(incRepo, catRepo, nil, logger),
		service.NewCatalogService(catRepo),
		reg,
	)

	cfg := &config.Config{
		Http:      config.HttpConfig{Port: ":0", MaxBodyBytes: 1 << 20},
		APIKey:    testAPIKey,
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Incidents: incidents.NewHandler(logger, svc),
		Catalog:   catalog.NewHandler(logger, svc),
		System:    system.NewHandler(logger, okPinger{}),
	})

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return fixture{srv: ts, incidents: incRepo, catalog: catRepo}
}

func (f fixture) do(t *testing.T, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func writeHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json", "X-API-Key": testAPIKey}
}

func TestRouter_CreateIncident(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.catalog.EXPECT().CityExists(gomock.Any(), "73001").Return(true, nil)
	f.catalog.EXPECT().IncidentTypeExists(gomock.Any(), 1).Return(true, nil)
	f.incidents.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"occurred_at":"2025-01-10T08:30:00Z","city_code":"73001","incident_type_id":1,"vehicles_involved":2,"victims":1}`
	resp := f.do(t, http.MethodPost, "/api/v1/incidents", body, writeHeaders())

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Location"), "/api/v1/incidents/") {
		t.Fatalf("missing Location header")
	}
}

func TestRouter_CreateIncident_Rejections(t *testing.T) {
	t.Parallel()

	valid := `{"occurred_at":"2025-01-10T08:30:00Z","city_code":"73001","incident_type_id":1}`

	tests := []struct {
		name    string
		body    string
		headers map[string]string
		want    int
	}{
		{"no api key", valid, map[string]string{"Content-Type": "application/json"}, http.StatusUnauthorized},
		{"wrong content type", valid, map[string]string{"X-API-Key": testAPIKey, "Content-Type": "text/plain"}, http.StatusUnsupportedMediaType},
		{"validation", `{"city_code":"7300A","incident_type_id":1,"victims":-1}`, writeHeaders(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			resp := f.do(t, http.MethodPost, "/api/v1/incidents", tt.body, tt.headers)
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestRouter_CreateIncident_ValidationBody(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/v1/incidents",
		`{"city_code":"7300A","incident_type_id":1,"victims":-1}`, writeHeaders())

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"occurred_at", "city_code", "victims"} {
		if len(body.Errors[field]) == 0 {
			t.Fatalf("expected failure for %q in %v", field, body.Errors)
		}
	}
}

func TestRouter_CreateIncident_UnknownCity(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.catalog.EXPECT().CityExists(gomock.Any(), "73001").Return(false, nil)

	body := `{"occurred_at":"2025-01-10T08:30:00Z","city_code":"73001","incident_type_id":1}`
	resp := f.do(t, http.MethodPost, "/api/v1/incidents", body, writeHeaders())

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestRouter_SearchIncidents(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	at := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	f.incidents.EXPECT().FetchCandidates(gomock.Any(), gomock.Any()).Return([]domain.IncidentView{
		{ID: uuid.New(), OccurredAt: at, City: "Ibagué", Department: "Tolima"},
		{ID: uuid.New(), OccurredAt: at.Add(time.Hour), City: "Soacha", Department: "Cundinamarca"},
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/incidents?department=TOLIMA%20&page_size=500", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	var page struct {
		Items      []domain.IncidentView `json:"items"`
		TotalItems int                   `json:"total_items"`
		PageSize   int                   `json:"page_size"`
		TotalPages int                   `json:"total_pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalItems != 1 || len(page.Items) != 1 || page.Items[0].City != "Ibagué" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.PageSize != 100 || page.TotalPages != 1 {
		t.Fatalf("unexpected paging %+v", page)
	}
}

func TestRouter_SearchIncidents_HugePage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	at := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	f.incidents.EXPECT().FetchCandidates(gomock.Any(), gomock.Any()).Return([]domain.IncidentView{
		{ID: uuid.New(), OccurredAt: at, City: "Ibagué", Department: "Tolima"},
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/incidents?page=9223372036854775807&page_size=10", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	var page struct {
		Items      []domain.IncidentView `json:"items"`
		TotalItems int                   `json:"total_items"`
		TotalPages int                   `json:"total_pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Items) != 0 || page.TotalItems != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestRouter_SearchIncidents_InvertedRange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/v1/incidents?from=2025-01-12&to=2025-01-10", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestRouter_GetIncident_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	id := uuid.New()
	f.incidents.EXPECT().Get(gomock.Any(), id).Return(nil, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/incidents/"+id.String(), "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestRouter_Catalog(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.catalog.EXPECT().ListCities(gomock.Any(), "73").Return([]domain.City{{Code: "73001", DepartmentCode: "73", Name: "Ibagué"}}, nil)

	if resp := f.do(t, http.MethodGet, "/api/v1/departments/73/cities", "", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, "/api/v1/departments/7x/cities", "", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestRouter_System(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, path := range []string{"/api/v1/health", "/api/v1/ready"} {
		if resp := f.do(t, http.MethodGet, path, "", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.StatusCode)
		}
	}
}
