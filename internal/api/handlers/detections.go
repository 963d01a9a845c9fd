package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrasink/internal/api/models"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/helpers"
)

const (
	defaultDetectionLimit = 100
	maxDetectionLimit     = 1000
)

// GetDetections godoc
// @Summary Recent detections
// @Description Returns the newest detections first, plus totals per outcome and the most frequently matched entries
// @Tags detections
// @Produce json
// @Param limit query int false "Number of detections (default 100, max 1000)"
// @Success 200 {object} models.DetectionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /detections [get]
func (h *Handler) GetDetections(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database not enabled"})
		return
	}

	limit, err := queryInt(c, "limit", defaultDetectionLimit)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
		return
	}
	limit = helpers.ClampInt(limit, 1, maxDetectionLimit)

	ctx := c.Request.Context()
	recent, err := h.db.RecentDetections(ctx, limit)
	if err != nil {
		h.logger.Error("failed to read detections", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read detections"})
		return
	}
	summary, err := h.db.DetectionSummary(ctx)
	if err != nil {
		h.logger.Error("failed to summarize detections", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to summarize detections"})
		return
	}

	out := make([]models.Detection, 0, len(recent))
	for _, d := range recent {
		out = append(out, toDetectionModel(d))
	}

	c.JSON(http.StatusOK, models.DetectionsResponse{
		Detections: out,
		Count:      len(out),
		Summary:    toSummaryModel(summary),
	})
}

func toDetectionModel(d database.Detection) models.Detection {
	return models.Detection{
		ID:         d.ID,
		ObservedAt: d.ObservedAt,
		QName:      d.QName,
		Entry:      d.Entry,
		Outcome:    d.Outcome,
		RCode:      dns.RCode(helpers.ClampIntToUint16(d.RCode)).String(),
		Client:     d.Client,
	}
}

func toSummaryModel(s database.DetectionSummary) models.DetectionSummary {
	out := models.DetectionSummary{
		Total:      s.Total,
		ByOutcome:  s.ByOutcome,
		TopEntries: make([]models.EntryHits, 0, len(s.TopEntries)),
	}
	if out.ByOutcome == nil {
		out.ByOutcome = map[string]int64{}
	}
	for _, e := range s.TopEntries {
		out.TopEntries = append(out.TopEntries, models.EntryHits{Entry: e.Entry, Hits: e.Hits})
	}
	if !s.First.IsZero() {
		first := s.First
		out.First = &first
	}
	if !s.Last.IsZero() {
		last := s.Last
		out.Last = &last
	}
	return out
}
