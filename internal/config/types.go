package config

import (
	"net/netip"
	"time"

	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/filtering"
	"github.com/jroosing/hydrasink/internal/helpers"
)

// ServerConfig contains DNS listener settings.
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// SinkholeConfig controls how queries are answered.
//
// Address, TTL and DefaultRCode are the raw config values; Validate fills
// SpoofIP and RCode from them.
type SinkholeConfig struct {
	// Address is the IPv4 address returned for blocked names.
	Address string `yaml:"address" json:"address"`

	// TTL is the answer TTL in seconds (RFC 2181 caps it at 2^31-1).
	TTL int64 `yaml:"ttl" json:"ttl"`

	// DefaultRCode answers names that are not blocked, telling the client
	// to move on to its next resolver. A mnemonic or a number in 1..15.
	DefaultRCode string `yaml:"default_rcode" json:"default_rcode"`

	SpoofIP netip.Addr `yaml:"-" json:"-"`
	RCode   dns.RCode  `yaml:"-" json:"-"`
}

// AnswerTTL returns TTL as the wire value.
func (s SinkholeConfig) AnswerTTL() uint32 {
	return helpers.ClampInt64ToUint32(s.TTL)
}

// BlocklistFile is a local blocklist file.
type BlocklistFile struct {
	Path   string `yaml:"path" json:"path"`
	Format string `yaml:"format" json:"format"` // "auto", "adblock", "hosts", "domains"
}

// BlocklistURL defines a remote blocklist source.
type BlocklistURL struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Format string `yaml:"format" json:"format"` // "auto", "adblock", "hosts", "domains"
}

// BlocklistConfig lists the sources merged into the blocklist at startup.
type BlocklistConfig struct {
	Domains      []string        `yaml:"domains" json:"domains,omitempty"`
	Files        []BlocklistFile `yaml:"files" json:"files,omitempty"`
	URLs         []BlocklistURL  `yaml:"urls" json:"urls,omitempty"`
	FetchTimeout string          `yaml:"fetch_timeout" json:"fetch_timeout"` // e.g. "30s"

	FetchTimeoutDuration time.Duration `yaml:"-" json:"-"`
}

// Sources converts the config into loader input. Formats must already be
// valid (see Validate); stored holds entries kept in the database.
func (b BlocklistConfig) Sources(stored []string) filtering.Sources {
	src := filtering.Sources{Domains: b.Domains, Stored: stored}
	for _, f := range b.Files {
		format, _ := filtering.ParseListFormat(f.Format)
		src.Files = append(src.Files, filtering.FileSource{Path: f.Path, Format: format})
	}
	for _, u := range b.URLs {
		format, _ := filtering.ParseListFormat(u.Format)
		src.URLs = append(src.URLs, filtering.URLSource{Name: u.Name, URL: u.URL, Format: format})
	}
	return src
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level" json:"level"`
	Structured       bool              `yaml:"structured" json:"structured"`
	StructuredFormat string            `yaml:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid" json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields" json:"extra_fields,omitempty"`
	LogDetections    bool              `yaml:"log_detections" json:"log_detections"` // Blocked names at INFO
}

// DatabaseConfig controls the SQLite store behind the detection log and
// API-managed blocklist entries.
type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`

	// RecordPassed also logs queries that were not blocked.
	RecordPassed bool `yaml:"record_passed" json:"record_passed"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	APIKey  string `yaml:"api_key" json:"api_key,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Sinkhole  SinkholeConfig  `yaml:"sinkhole" json:"sinkhole"`
	Blocklist BlocklistConfig `yaml:"blocklist" json:"blocklist"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Database  DatabaseConfig  `yaml:"database" json:"database"`
	API       APIConfig       `yaml:"api" json:"api"`
}
