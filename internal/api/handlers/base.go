// Package handlers implements the REST API endpoint handlers for hydrasink.
//
// REST API Endpoints:
//
// System Health:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Process, host and DNS statistics
//   - GET /api/v1/config - Current configuration (API key redacted)
//
// Blocklist:
//   - GET /api/v1/blocklist - Active blocklist entries (paged) and their sources
//   - GET /api/v1/blocklist/check?name= - Whether a name would be sinkholed
//   - GET /api/v1/blocklist/stored - Entries kept in the database
//   - POST /api/v1/blocklist/stored - Store entries (applied at next start)
//   - DELETE /api/v1/blocklist/stored - Remove stored entries (applied at next start)
//
// Detections:
//   - GET /api/v1/detections?limit= - Recent detections and a summary
//
// Authentication:
//
// When api.api_key is set, every endpoint requires the X-API-Key header.
//
// @title hydrasink Management API
// @version 1.0
// @description REST API for inspecting the hydrasink DNS sinkhole and managing stored blocklist entries.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jroosing/hydrasink/internal/config"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/filtering"
	"github.com/jroosing/hydrasink/internal/server"
)

// Sinkhole exposes the running DNS side to the API.
// *server.Runner implements it.
type Sinkhole interface {
	Blocklist() *filtering.Blocklist
	Sources() []filtering.SourceInfo
	Stats() *server.DNSStats
}

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	logger    *slog.Logger
	startTime time.Time

	// Runtime components (set after the sinkhole starts)
	sinkhole Sinkhole
	mu       sync.RWMutex
}

// New creates a new Handler. db may be nil when the database is disabled.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// DB returns the database connection for handlers that need it.
func (h *Handler) DB() *database.DB {
	return h.db
}

// SetSinkhole attaches the running sinkhole.
func (h *Handler) SetSinkhole(s Sinkhole) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinkhole = s
}

// GetSinkhole returns the attached sinkhole, or nil.
func (h *Handler) GetSinkhole() Sinkhole {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sinkhole
}

func (h *Handler) blocklist() *filtering.Blocklist {
	if s := h.GetSinkhole(); s != nil {
		return s.Blocklist()
	}
	return nil
}
