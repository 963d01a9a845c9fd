package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrasink/internal/api/handlers"
	"github.com/jroosing/hydrasink/internal/config"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/filtering"
	"github.com/jroosing/hydrasink/internal/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSinkhole struct {
	bl      *filtering.Blocklist
	sources []filtering.SourceInfo
	stats   *server.DNSStats
}

func (f *fakeSinkhole) Blocklist() *filtering.Blocklist { return f.bl }
func (f *fakeSinkhole) Sources() []filtering.SourceInfo { return f.sources }
func (f *fakeSinkhole) Stats() *server.DNSStats         { return f.stats }

func newFakeSinkhole(entries ...string) *fakeSinkhole {
	return &fakeSinkhole{
		bl:      filtering.NewBlocklist(entries),
		sources: []filtering.SourceInfo{{Name: "config", Kind: "inline", Domains: len(entries)}},
		stats:   server.NewDNSStats(),
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Sinkhole.Address = "10.0.0.1"
	require.NoError(t, cfg.Validate())
	return cfg
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "hydrasink.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.GET("/blocklist", h.GetBlocklist)
	api.GET("/blocklist/check", h.CheckBlocklist)
	api.GET("/blocklist/stored", h.GetStoredDomains)
	api.POST("/blocklist/stored", h.AddStoredDomains)
	api.DELETE("/blocklist/stored", h.RemoveStoredDomains)
	api.GET("/detections", h.GetDetections)

	return r
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}
