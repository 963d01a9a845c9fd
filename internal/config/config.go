// Package config provides configuration types, loading and validation for
// hydrasink.
//
// Configuration is read from a YAML file (optional; defaults apply when no
// path is given), then overridden from HYDRASINK_* environment variables,
// then validated. Validate also derives the typed values the server uses
// (spoof address, error RCODE, fetch timeout) from their raw strings.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/filtering"
)

// EnvConfigPath names the environment variable consulted by ResolveConfigPath.
const EnvConfigPath = "HYDRASINK_CONFIG"

// maxTTL is the largest TTL RFC 2181 Section 8 allows.
const maxTTL = 1<<31 - 1

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 1053,
		},
		Sinkhole: SinkholeConfig{
			Address:      "0.0.0.0",
			TTL:          int64(dns.DefaultTTL),
			DefaultRCode: dns.RCodeServFail.String(),
		},
		Blocklist: BlocklistConfig{
			FetchTimeout: "60s",
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			LogDetections:    true,
		},
		Database: DatabaseConfig{
			Path: "hydrasink.db",
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// ResolveConfigPath returns the flag value when set, else $HYDRASINK_CONFIG.
// An empty result means "use defaults".
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values from HYDRASINK_* variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("HYDRASINK_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HYDRASINK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HYDRASINK_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("HYDRASINK_SINKHOLE_ADDRESS"); v != "" {
		cfg.Sinkhole.Address = v
	}
	if v := os.Getenv("HYDRASINK_TTL"); v != "" {
		ttl, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HYDRASINK_TTL: %w", err)
		}
		cfg.Sinkhole.TTL = ttl
	}
	if v := os.Getenv("HYDRASINK_DEFAULT_RCODE"); v != "" {
		cfg.Sinkhole.DefaultRCode = v
	}
	if v := firstEnv("HYDRASINK_LOG_LEVEL", "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HYDRASINK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	cfg.Database.Enabled = envBool(os.Getenv("HYDRASINK_DB_ENABLED"), cfg.Database.Enabled)
	cfg.API.Enabled = envBool(os.Getenv("HYDRASINK_API_ENABLED"), cfg.API.Enabled)
	if v := os.Getenv("HYDRASINK_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// envBool interprets common boolean spellings, returning def for anything
// else (including the empty string).
func envBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}

	if err := cfg.Sinkhole.validate(); err != nil {
		return err
	}
	if err := cfg.Blocklist.validate(); err != nil {
		return err
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	if cfg.Database.Enabled && strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("database.path is required when the database is enabled")
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}

func (s *SinkholeConfig) validate() error {
	ip, err := netip.ParseAddr(strings.TrimSpace(s.Address))
	if err != nil {
		return fmt.Errorf("sinkhole.address: %w", err)
	}
	ip = ip.Unmap()
	if !ip.Is4() {
		return fmt.Errorf("sinkhole.address %s is not an IPv4 address", s.Address)
	}
	s.SpoofIP = ip

	if s.TTL < 0 || s.TTL > maxTTL {
		return fmt.Errorf("sinkhole.ttl must be 0..%d", maxTTL)
	}

	raw := strings.TrimSpace(s.DefaultRCode)
	if raw == "" {
		raw = dns.RCodeServFail.String()
	}
	rcode, ok := dns.ParseRCode(raw)
	if !ok || rcode == dns.RCodeNoError {
		return fmt.Errorf("sinkhole.default_rcode %q must be an error code (1..15 or a name such as SERVFAIL)", s.DefaultRCode)
	}
	s.RCode = rcode
	s.DefaultRCode = rcode.String()
	return nil
}

func (b *BlocklistConfig) validate() error {
	for _, f := range b.Files {
		if strings.TrimSpace(f.Path) == "" {
			return errors.New("blocklist.files: path is required")
		}
		if _, err := filtering.ParseListFormat(f.Format); err != nil {
			return fmt.Errorf("blocklist.files %s: %w", f.Path, err)
		}
	}
	for _, u := range b.URLs {
		if !strings.HasPrefix(u.URL, "http://") && !strings.HasPrefix(u.URL, "https://") {
			return fmt.Errorf("blocklist.urls: %q is not an http(s) URL", u.URL)
		}
		if _, err := filtering.ParseListFormat(u.Format); err != nil {
			return fmt.Errorf("blocklist.urls %s: %w", u.URL, err)
		}
	}

	if b.FetchTimeout == "" {
		b.FetchTimeout = "60s"
	}
	d, err := time.ParseDuration(b.FetchTimeout)
	if err != nil {
		return fmt.Errorf("blocklist.fetch_timeout: %w", err)
	}
	if d <= 0 {
		return errors.New("blocklist.fetch_timeout must be positive")
	}
	b.FetchTimeoutDuration = d
	return nil
}
