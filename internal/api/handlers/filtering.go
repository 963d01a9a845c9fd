package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrasink/internal/api/models"
	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/filtering"
)

const (
	defaultPageSize = 1000
	maxPageSize     = 10000
)

// GetBlocklist godoc
// @Summary List active blocklist entries
// @Description Returns a page of the entries the sinkhole is matching against, sorted, plus per-source load results
// @Tags blocklist
// @Produce json
// @Param offset query int false "Entries to skip"
// @Param limit query int false "Page size (default 1000, max 10000)"
// @Success 200 {object} models.DomainListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocklist [get]
func (h *Handler) GetBlocklist(c *gin.Context) {
	s := h.GetSinkhole()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "sinkhole not running"})
		return
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid offset"})
		return
	}
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
		return
	}
	limit = min(limit, maxPageSize)

	entries := s.Blocklist().Entries()
	total := len(entries)
	start := min(offset, total)
	page := entries[start:min(start+limit, total)]
	if page == nil {
		page = []string{}
	}

	c.JSON(http.StatusOK, models.DomainListResponse{
		Domains: page,
		Count:   len(page),
		Total:   total,
		Offset:  offset,
		Sources: s.Sources(),
	})
}

// CheckBlocklist godoc
// @Summary Check a name
// @Description Reports whether a query for the name would be answered with the spoof address, and which entry matched
// @Tags blocklist
// @Produce json
// @Param name query string true "Domain name"
// @Success 200 {object} models.CheckResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocklist/check [get]
func (h *Handler) CheckBlocklist(c *gin.Context) {
	s := h.GetSinkhole()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "sinkhole not running"})
		return
	}

	name := dns.NormalizeName(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	entry, blocked := s.Blocklist().Match(name)
	c.JSON(http.StatusOK, models.CheckResponse{Name: name, Blocked: blocked, Entry: entry})
}

// GetStoredDomains godoc
// @Summary List stored blocklist entries
// @Description Returns entries kept in the database; active marks those already in the running blocklist
// @Tags blocklist
// @Produce json
// @Success 200 {object} models.StoredDomainsResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocklist/stored [get]
func (h *Handler) GetStoredDomains(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database not enabled"})
		return
	}

	stored, err := h.db.GetBlocklistDomains(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list stored domains", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list stored domains"})
		return
	}

	bl := h.blocklist()
	out := make([]models.StoredDomain, 0, len(stored))
	for _, d := range stored {
		out = append(out, models.StoredDomain{
			Domain:  d.Domain,
			AddedAt: d.AddedAt,
			Active:  bl.Contains(d.Domain),
		})
	}

	c.JSON(http.StatusOK, models.StoredDomainsResponse{Domains: out, Count: len(out)})
}

// AddStoredDomains godoc
// @Summary Store blocklist entries
// @Description Adds entries to the database. They take effect the next time the sinkhole starts.
// @Tags blocklist
// @Accept json
// @Produce json
// @Param domains body models.DomainRequest true "Domains to add"
// @Success 200 {object} models.StoredDomainsChangeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocklist/stored [post]
func (h *Handler) AddStoredDomains(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database not enabled"})
		return
	}

	var req models.DomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.StoredDomainsChangeResponse{Changed: []string{}}
	valid := make([]string, 0, len(req.Domains))
	for _, raw := range req.Domains {
		domain, ok := filtering.NormalizeDomain(raw)
		if !ok {
			resp.Invalid = append(resp.Invalid, raw)
			continue
		}
		valid = append(valid, domain)
	}
	if len(valid) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no valid domains"})
		return
	}

	for _, domain := range valid {
		added, err := h.db.AddBlocklistDomain(c.Request.Context(), domain)
		if err != nil {
			h.logger.Error("failed to store domain", "domain", domain, "err", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store domains"})
			return
		}
		if added {
			resp.Changed = append(resp.Changed, domain)
		} else {
			resp.Skipped = append(resp.Skipped, domain)
		}
	}
	resp.Pending = len(resp.Changed) > 0

	h.logger.Info("stored blocklist domains", "added", len(resp.Changed), "skipped", len(resp.Skipped))
	c.JSON(http.StatusOK, resp)
}

// RemoveStoredDomains godoc
// @Summary Remove stored blocklist entries
// @Description Deletes entries from the database. The running blocklist keeps them until the next start.
// @Tags blocklist
// @Accept json
// @Produce json
// @Param domains body models.DomainRequest true "Domains to remove"
// @Success 200 {object} models.StoredDomainsChangeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocklist/stored [delete]
func (h *Handler) RemoveStoredDomains(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database not enabled"})
		return
	}

	var req models.DomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.StoredDomainsChangeResponse{Changed: []string{}}
	for _, raw := range req.Domains {
		domain := dns.NormalizeName(raw)
		err := h.db.DeleteBlocklistDomain(c.Request.Context(), domain)
		switch {
		case err == nil:
			resp.Changed = append(resp.Changed, domain)
		case errors.Is(err, database.ErrNotFound):
			resp.Skipped = append(resp.Skipped, domain)
		default:
			h.logger.Error("failed to delete stored domain", "domain", domain, "err", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete domains"})
			return
		}
	}
	resp.Pending = len(resp.Changed) > 0

	h.logger.Info("removed stored blocklist domains", "removed", len(resp.Changed), "missing", len(resp.Skipped))
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
