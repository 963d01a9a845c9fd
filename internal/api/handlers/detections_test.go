package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrasink/internal/api/handlers"
	"github.com/jroosing/hydrasink/internal/api/models"
	"github.com/jroosing/hydrasink/internal/database"
)

func TestGetDetections(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, db.RecordDetection(ctx, database.Detection{
		ObservedAt: base, QName: "ads.example.com", Entry: "ads.example.com", Outcome: "blocked", Client: "192.0.2.1:1000",
	}))
	require.NoError(t, db.RecordDetection(ctx, database.Detection{
		ObservedAt: base.Add(time.Second), QName: "cdn.ads.example.com", Entry: "ads.example.com", Outcome: "blocked",
	}))
	require.NoError(t, db.RecordDetection(ctx, database.Detection{
		ObservedAt: base.Add(2 * time.Second), QName: "example.org", Outcome: "passed", RCode: 2,
	}))

	h := handlers.New(testConfig(t), db, nil)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/detections?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.DetectionsResponse](t, w)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "example.org", resp.Detections[0].QName)
	assert.Equal(t, "SERVFAIL", resp.Detections[0].RCode)
	assert.Equal(t, "cdn.ads.example.com", resp.Detections[1].QName)
	assert.Equal(t, "NOERROR", resp.Detections[1].RCode)

	assert.Equal(t, int64(3), resp.Summary.Total)
	assert.Equal(t, int64(2), resp.Summary.ByOutcome["blocked"])
	assert.Equal(t, int64(1), resp.Summary.ByOutcome["passed"])
	require.NotEmpty(t, resp.Summary.TopEntries)
	assert.Equal(t, "ads.example.com", resp.Summary.TopEntries[0].Entry)
	assert.Equal(t, int64(2), resp.Summary.TopEntries[0].Hits)
	require.NotNil(t, resp.Summary.First)
	assert.True(t, resp.Summary.First.Equal(base))
}

func TestGetDetections_Empty(t *testing.T) {
	h := handlers.New(testConfig(t), openTestDB(t), nil)

	w := performRequest(setupTestRouter(h), http.MethodGet, "/api/v1/detections", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DetectionsResponse](t, w)
	assert.Empty(t, resp.Detections)
	assert.Zero(t, resp.Summary.Total)
	assert.Nil(t, resp.Summary.First)
}

func TestGetDetections_Errors(t *testing.T) {
	w := performRequest(setupTestRouter(handlers.New(testConfig(t), nil, nil)), http.MethodGet, "/api/v1/detections", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r := setupTestRouter(handlers.New(testConfig(t), openTestDB(t), nil))
	for _, q := range []string{"?limit=0", "?limit=-5", "?limit=x"} {
		w := performRequest(r, http.MethodGet, "/api/v1/detections"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
