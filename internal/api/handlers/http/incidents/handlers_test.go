package incidents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"roadIncidents/internal/api/handlers/http/incidents"
	mock_incidents "roadIncidents/internal/api/handlers/http/incidents/mocks"
	"roadIncidents/internal/domain"
	"roadIncidents/internal/middleware"
	"roadIncidents/internal/pipeline"
	"roadIncidents/pkg/e"
	"roadIncidents/pkg/pagination"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

func TestIncidentCreate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_incidents.NewMockIncidents(ctrl)
	h := incidents.NewHandler(newTestLogger(), svc)

	reqBody := `{"occurred_at":"2025-01-10T08:30:00Z","city_code":"73001","incident_type_id":1,"vehicles_involved":2,"victims":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantID := uuid.New()
	svc.EXPECT().
		Create(gomock.Any(), domain.CreateIncidentRequest{
			OccurredAt:       time.Date(2025, 1, 10, 8, 30, 0, 0, time.UTC),
			CityCode:         "73001",
			IncidentTypeID:   1,
			VehiclesInvolved: 2,
		}).
		Return(wantID, nil).
		Times(1)

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/api/v1/incidents/"+wantID.String() {
		t.Fatalf("unexpected Location %q", loc)
	}

	got := decodeJSON[map[string]string](t, rr)
	if got["id"] != wantID.String() {
		t.Fatalf("expected id=%s got=%s", wantID.String(), got["id"])
	}
}

func TestIncidentCreate_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := incidents.NewHandler(newTestLogger(), mock_incidents.NewMockIncidents(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestIncidentCreate_BodyTooLarge_413(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := incidents.NewHandler(newTestLogger(), mock_incidents.NewMockIncidents(ctrl))
	wrapped := middleware.MaxBodySize(16)(http.HandlerFunc(h.IncidentCreate))

	body := `{"note":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", strings.NewReader(body))
	rr := httptest.NewRecorder()

	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected %d got %d, body=%s", http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
	}
}

func TestIncidentCreate_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
		wantField string
	}{
		{
			name: "validation",
			err: &pipeline.ValidationError{Failures: []pipeline.FieldError{
				{Field: "city_code", Message: "bad"},
				{Field: "victims", Message: "bad"},
			}},
			wantCode:  http.StatusBadRequest,
			wantError: "validation failed",
			wantField: "victims",
		},
		{name: "unknown city", err: e.ErrCityNotFound, wantCode: http.StatusBadRequest, wantError: "city not found"},
		{name: "unknown type", err: e.ErrIncidentTypeNotFound, wantCode: http.StatusBadRequest, wantError: "incident type not found"},
		{name: "boom", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantError: "internal error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_incidents.NewMockIncidents(ctrl)
			h := incidents.NewHandler(newTestLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(`{"city_code":"7300A","victims":-1}`))
			rr := httptest.NewRecorder()

			svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, tt.err).Times(1)

			h.IncidentCreate(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d got %d, body=%s", tt.wantCode, rr.Code, rr.Body.String())
			}
			got := decodeJSON[errorBody](t, rr)
			if got.Error != tt.wantError {
				t.Fatalf("expected error %q got %q", tt.wantError, got.Error)
			}
			if tt.wantField != "" {
				if _, ok := got.Errors[tt.wantField]; !ok {
					t.Fatalf("expected field %q in %v", tt.wantField, got.Errors)
				}
			}
		})
	}
}

func TestIncidentGet(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		param    string
		setup    func(svc *mock_incidents.MockIncidents)
		wantCode int
	}{
		{
			name:     "invalid id",
			param:    "not-a-uuid",
			setup:    func(*mock_incidents.MockIncidents) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "absent",
			param: id.String(),
			setup: func(svc *mock_incidents.MockIncidents) {
				svc.EXPECT().Get(gomock.Any(), id).Return(nil, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:  "store error",
			param: id.String(),
			setup: func(svc *mock_incidents.MockIncidents) {
				svc.EXPECT().Get(gomock.Any(), id).Return(nil, e.ErrInternal)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:  "ok",
			param: id.String(),
			setup: func(svc *mock_incidents.MockIncidents) {
				svc.EXPECT().Get(gomock.Any(), id).Return(&domain.IncidentView{ID: id, City: "Ibagué"}, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_incidents.NewMockIncidents(ctrl)
			tt.setup(svc)
			h := incidents.NewHandler(newTestLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents/"+tt.param, nil)
			req = addChiURLParam(req, "id", tt.param)
			rr := httptest.NewRecorder()

			h.IncidentGet(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d got %d, body=%s", tt.wantCode, rr.Code, rr.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				got := decodeJSON[domain.IncidentView](t, rr)
				if got.ID != id || got.City != "Ibagué" {
					t.Fatalf("unexpected body %+v", got)
				}
			}
		})
	}
}

func TestIncidentSearch_ParsesQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_incidents.NewMockIncidents(ctrl)
	h := incidents.NewHandler(newTestLogger(), svc)

	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 11, 15, 0, 0, 0, time.UTC)

	svc.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.SearchIncidentsRequest) (pagination.PageResult[domain.IncidentView], error) {
			if req.Department != "Tolima" || req.City != "ibague" {
				t.Errorf("unexpected text filters %+v", req)
			}
			if req.From == nil || !req.From.Equal(from) {
				t.Errorf("unexpected from %v", req.From)
			}
			if req.To == nil || !req.To.Equal(to) {
				t.Errorf("unexpected to %v", req.To)
			}
			if req.Page != 2 || req.PageSize != 5 {
				t.Errorf("unexpected paging %d/%d", req.Page, req.PageSize)
			}
			return pagination.Paginate([]domain.IncidentView{}, 0, req.Page, req.PageSize), nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents?department=Tolima&city=ibague&from=2025-01-10&to=2025-01-11T15:00:00Z&page=2&page_size=5", nil)
	rr := httptest.NewRecorder()

	h.IncidentSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]any](t, rr)
	for _, key := range []string{"items", "total_items", "page", "page_size", "total_pages"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing %q in %v", key, got)
		}
	}
}

func TestIncidentSearch_ClampsPaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 10},
		{"page=0&page_size=500", 1, 100},
		{"page=-3&page_size=0", 1, 10},
		{"page=abc&page_size=xyz", 1, 10},
		{"page=4&page_size=25", 4, 25},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_incidents.NewMockIncidents(ctrl)
			h := incidents.NewHandler(newTestLogger(), svc)

			svc.EXPECT().
				Search(gomock.Any(), domain.SearchIncidentsRequest{Page: tt.wantPage, PageSize: tt.wantSize}).
				Return(pagination.Paginate([]domain.IncidentView{}, 0, tt.wantPage, tt.wantSize), nil).
				Times(1)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents?"+tt.query, nil)
			rr := httptest.NewRecorder()
			h.IncidentSearch(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestIncidentSearch_BadDates_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := incidents.NewHandler(newTestLogger(), mock_incidents.NewMockIncidents(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents?from=yesterday&to=2025-13-01", nil)
	rr := httptest.NewRecorder()

	h.IncidentSearch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
	got := decodeJSON[errorBody](t, rr)
	if len(got.Errors["from"]) != 1 || len(got.Errors["to"]) != 1 {
		t.Fatalf("expected from and to failures, got %v", got.Errors)
	}
}

func TestIncidentSearch_InvertedRange_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_incidents.NewMockIncidents(ctrl)
	h := incidents.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return(pagination.PageResult[domain.IncidentView]{}, &pipeline.ValidationError{Failures: []pipeline.FieldError{
			{Field: "from", Message: "from must not be after to"},
		}}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents?from=2025-01-12&to=2025-01-10", nil)
	rr := httptest.NewRecorder()

	h.IncidentSearch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
	got := decodeJSON[errorBody](t, rr)
	if got.Errors["from"][0] != "from must not be after to" {
		t.Fatalf("unexpected body %+v", got)
	}
}
