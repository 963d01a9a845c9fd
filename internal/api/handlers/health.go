package handlers

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jroosing/hydrasink/internal/api/models"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status and database reachability
// @Tags system
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Database: "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("database health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "error"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Database: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime, process and host statistics plus DNS counters
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Process:       h.processStats(c.Request.Context()),
	}

	if s := h.GetSinkhole(); s != nil {
		if st := s.Stats(); st != nil {
			snap := st.Snapshot()
			resp.DNSStats = models.DNSStatsResponse{
				QueriesTotal: snap.QueriesTotal,
				Blocked:      snap.Blocked,
				Passed:       snap.Passed,
				Rejected:     snap.Rejected,
				Dropped:      snap.Dropped,
				SendErrors:   snap.SendErrors,
				AvgLatencyMs: snap.AvgLatencyMs,
			}
		}
		resp.BlocklistStats = models.BlocklistSizeResponse{
			Entries: s.Blocklist().Len(),
			Sources: len(s.Sources()),
		}
	}

	c.JSON(http.StatusOK, resp)
}

// processStats reads OS-level figures for this process. Fields that cannot
// be read stay zero; nil means the process itself could not be inspected.
func (h *Handler) processStats(ctx context.Context) *models.ProcessStats {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		h.logger.Debug("process stats unavailable", "err", err)
		return nil
	}

	ps := &models.ProcessStats{}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
		ps.RSSMB = float64(mi.RSS) / 1024 / 1024
	}
	if pct, err := p.CPUPercentWithContext(ctx); err == nil {
		ps.CPUPercent = pct
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		ps.HostMemUsedPct = vm.UsedPercent
	}
	return ps
}
