package models

import (
	"time"

	"github.com/jroosing/hydrasink/internal/filtering"
)

// DomainListResponse contains a page of blocklist entries.
type DomainListResponse struct {
	Domains []string               `json:"domains"`
	Count   int                    `json:"count"`
	Total   int                    `json:"total"`
	Offset  int                    `json:"offset"`
	Sources []filtering.SourceInfo `json:"sources,omitempty"`
}

// CheckResponse is the verdict for a single name.
type CheckResponse struct {
	Name    string `json:"name"`
	Blocked bool   `json:"blocked"`
	Entry   string `json:"entry,omitempty"`
}

// DomainRequest is used to add/remove domains from the stored blocklist.
type DomainRequest struct {
	Domains []string `json:"domains" binding:"required,min=1"`
}

// StoredDomain is a blocklist entry kept in the database.
type StoredDomain struct {
	Domain  string    `json:"domain"`
	AddedAt time.Time `json:"added_at"`
	Active  bool      `json:"active"` // Part of the running blocklist
}

// StoredDomainsResponse lists the database-backed entries.
type StoredDomainsResponse struct {
	Domains []StoredDomain `json:"domains"`
	Count   int            `json:"count"`
}

// StoredDomainsChangeResponse reports the effect of an add or delete.
// Changes apply to the running sinkhole at the next start.
type StoredDomainsChangeResponse struct {
	Changed []string `json:"changed"`
	Skipped []string `json:"skipped,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
	Pending bool     `json:"restart_required"`
}
