package models

import "github.com/jroosing/hydrasink/internal/config"

// APIConfigResponse is a redacted version of APIConfig (no api_key exposed).
type APIConfigResponse struct {
	Enabled   bool   `json:"enabled"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	KeyNeeded bool   `json:"api_key_required"`
}

// ConfigResponse is the API response for GET /config.
type ConfigResponse struct {
	Server    config.ServerConfig    `json:"server"`
	Sinkhole  config.SinkholeConfig  `json:"sinkhole"`
	Blocklist config.BlocklistConfig `json:"blocklist"`
	Logging   config.LoggingConfig   `json:"logging"`
	Database  config.DatabaseConfig  `json:"database"`
	API       APIConfigResponse      `json:"api"`
}
