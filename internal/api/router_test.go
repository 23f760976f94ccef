package api

import (
	"context"
	"courier-map-service/internal/adapters/repositories"
	"courier-map-service/internal/api/dto"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

type fixture struct {
	repo   *repositories.MemoryPackageRepository
	poller *services.Poller
	router http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	repo := repositories.NewMemoryPackageRepository([]*domain.Package{
		{ID: 1, RouteID: 1, TrackingCode: "TRK0001", Address: "Rua A 10", Latitude: f64(-22.90), Longitude: f64(-43.20), Status: domain.StatusPending},
		{ID: 2, RouteID: 1, TrackingCode: "TRK0002", Address: "Rua A 10, apto 2", Latitude: f64(-22.9001), Longitude: f64(-43.2001), Status: domain.StatusPending},
		{ID: 3, RouteID: 1, TrackingCode: "TRK0003", Address: "Rua Z 99", Status: domain.StatusDelivered},
		{ID: 9, RouteID: 2, TrackingCode: "TRK0009", Address: "Rua Q 1", Status: domain.StatusPending},
	})
	engine := services.NewEngine(services.DefaultEngineConfig())
	poller := services.NewPoller(repo, engine, services.PollerConfig{RouteID: 1}, nil, nil)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })

	return fixture{repo: repo, poller: poller, router: NewRouter(repo, poller, 1, metrics)}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListPackagesReturnsConfiguredRoute(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodGet, "/packages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListPackagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Packages, 3)
	assert.Equal(t, "TRK0001", res.Packages[0].TrackingCode)
	assert.Nil(t, res.Packages[2].Latitude)

	rec = do(t, f.router, http.MethodDelete, "/packages", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodPost, "/packages/1/status", `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.PackageID)
	assert.Equal(t, "pending", res.OldStatus)
	assert.Equal(t, "delivered", res.NewStatus)

	pkgs, err := f.repo.ListPackages(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, pkgs[0].Status)
}

func TestUpdateStatusRejectsBadRequests(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"non numeric id", "/packages/abc/status", `{"status":"delivered"}`, http.StatusBadRequest},
		{"zero id", "/packages/0/status", `{"status":"delivered"}`, http.StatusBadRequest},
		{"invalid json", "/packages/1/status", `{"status":`, http.StatusBadRequest},
		{"unknown field", "/packages/1/status", `{"status":"delivered","note":"x"}`, http.StatusBadRequest},
		{"two objects", "/packages/1/status", `{"status":"delivered"}{"status":"failed"}`, http.StatusBadRequest},
		{"unknown status", "/packages/1/status", `{"status":"lost"}`, http.StatusBadRequest},
		{"missing package", "/packages/404/status", `{"status":"failed"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, f.router, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}

	rec := do(t, f.router, http.MethodGet, "/packages/1/status", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestViewUnavailableBeforeFirstCycle(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodGet, "/view", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestViewReflectsLatestCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.poller.PollOnce(ctx)
	require.NoError(t, err)

	rec := do(t, f.router, http.MethodPost, "/packages/2/status", `{"status":"failed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = f.poller.PollOnce(ctx)
	require.NoError(t, err)

	rec = do(t, f.router, http.MethodGet, "/view", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var v dto.ViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	assert.Equal(t, 1, v.RouteID)
	assert.Equal(t, 2, v.Cycle)
	assert.False(t, v.RouteComplete)
	assert.Equal(t, dto.CountsResponse{Pending: 1, Delivered: 1, Failed: 1}, v.Counts)

	// Packages 1 and 2 share a building; package 3 has no coordinates.
	require.Len(t, v.Stops, 2)
	assert.Equal(t, 1, v.Stops[0].DisplayIndex)
	assert.Len(t, v.Stops[0].Packages, 2)
	assert.Equal(t, "pending", v.Stops[0].DominantStatus, "mixed statuses stay pending")
	require.NotNil(t, v.Stops[0].Zone)
	assert.Nil(t, v.Stops[1].Coordinate)
	assert.Nil(t, v.Stops[1].Zone)

	require.Len(t, v.Transitions, 1)
	assert.Equal(t, 2, v.Transitions[0].PackageID)
	assert.Equal(t, "pending", v.Transitions[0].From)
	assert.Equal(t, "failed", v.Transitions[0].To)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","last_cycle":0}`, rec.Body.String())

	_, err := f.poller.PollOnce(context.Background())
	require.NoError(t, err)

	rec = do(t, f.router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.EqualValues(t, 1, res["last_cycle"])
	assert.Contains(t, res, "computed_at")
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
