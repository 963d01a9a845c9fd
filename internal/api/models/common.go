// Package models defines request and response types for the hydrasink REST API.
// All types are JSON-serializable and include validation tags where appropriate.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse reports liveness and the state of optional components.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"` // "ok", "disabled" or "error"
}
