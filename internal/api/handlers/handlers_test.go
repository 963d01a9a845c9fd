// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrasink/internal/api/handlers"
	"github.com/jroosing/hydrasink/internal/api/models"
	"github.com/jroosing/hydrasink/internal/server"
)

// ============================================================================
// Health Endpoint Tests
// ============================================================================

func TestHealth_DatabaseDisabled(t *testing.T) {
	h := handlers.New(testConfig(t), nil, nil)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "disabled", resp.Database)
}

func TestHealth_DatabaseOK(t *testing.T) {
	h := handlers.New(testConfig(t), openTestDB(t), nil)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[models.HealthResponse](t, w).Database)
}

func TestHealth_DatabaseClosed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())
	h := handlers.New(testConfig(t), db, nil)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "error", resp.Database)
}

// ============================================================================
// Stats Endpoint Tests
// ============================================================================

func TestStats_WithoutSinkhole(t *testing.T) {
	h := handlers.New(testConfig(t), nil, nil)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	assert.NotEmpty(t, resp.Uptime)
	assert.Positive(t, resp.GoRoutines)
	assert.Positive(t, resp.NumCPU)
	assert.Zero(t, resp.DNSStats.QueriesTotal)
	assert.Zero(t, resp.BlocklistStats.Entries)
}

func TestStats_WithSinkhole(t *testing.T) {
	s := newFakeSinkhole("ads.example.com", "tracker.example.net")
	s.stats.Record(server.Result{Outcome: server.OutcomeBlocked, Sent: true}, time.Millisecond)
	s.stats.Record(server.Result{Outcome: server.OutcomePassed, Sent: true}, time.Millisecond)
	s.stats.Record(server.Result{Outcome: server.OutcomeDropped}, 0)

	h := handlers.New(testConfig(t), nil, nil)
	h.SetSinkhole(s)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	assert.Equal(t, uint64(3), resp.DNSStats.QueriesTotal)
	assert.Equal(t, uint64(1), resp.DNSStats.Blocked)
	assert.Equal(t, uint64(1), resp.DNSStats.Passed)
	assert.Equal(t, uint64(1), resp.DNSStats.Dropped)
	assert.Equal(t, 2, resp.BlocklistStats.Entries)
	assert.Equal(t, 1, resp.BlocklistStats.Sources)
}

func TestSetSinkhole(t *testing.T) {
	h := handlers.New(testConfig(t), nil, nil)
	assert.Nil(t, h.GetSinkhole())
	assert.Nil(t, h.DB())

	s := newFakeSinkhole()
	h.SetSinkhole(s)
	assert.Same(t, s, h.GetSinkhole())
}
