package filtering

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// FileSource is a local blocklist file.
type FileSource struct {
	Path   string
	Format ListFormat
}

// URLSource is a remote blocklist fetched once at startup.
type URLSource struct {
	Name   string
	URL    string
	Format ListFormat
}

// Sources lists everything that contributes entries to the blocklist.
type Sources struct {
	Domains []string
	Files   []FileSource
	URLs    []URLSource

	// Stored holds entries persisted through the management API.
	Stored []string
}

// SourceInfo reports what a single source contributed.
type SourceInfo struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Format    string    `json:"format,omitempty"`
	Domains   int       `json:"domains"`
	LoadedAt  time.Time `json:"loaded_at"`
	LastError string    `json:"last_error,omitempty"`
}

// Loader merges Sources into a single Blocklist.
type Loader struct {
	Parser *Parser
	Logger *slog.Logger
}

// Load builds the blocklist. An unreadable file is an error; a URL that
// cannot be fetched is logged and skipped.
func (l *Loader) Load(ctx context.Context, src Sources) (*Blocklist, []SourceInfo, error) {
	parser := l.Parser
	if parser == nil {
		parser = NewParser()
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		entries []string
		infos   []SourceInfo
	)
	add := func(info SourceInfo, domains []string) {
		info.Domains = len(domains)
		info.LoadedAt = time.Now()
		infos = append(infos, info)
		entries = append(entries, domains...)
	}

	if len(src.Domains) > 0 {
		add(SourceInfo{Name: "config", Kind: "inline"}, src.Domains)
	}

	for _, f := range src.Files {
		domains, err := parser.ParseFile(f.Path, f.Format)
		if err != nil {
			return nil, nil, fmt.Errorf("blocklist file %s: %w", f.Path, err)
		}
		logger.Info("Loaded blocklist", "file", f.Path, "domains", len(domains))
		add(SourceInfo{Name: f.Path, Kind: "file", Format: f.Format.String()}, domains)
	}

	for _, u := range src.URLs {
		name := u.Name
		if name == "" {
			name = u.URL
		}
		domains, err := parser.ParseURL(ctx, u.URL, u.Format)
		if err != nil {
			logger.Warn("Failed to load blocklist", "name", name, "url", u.URL, "error", err)
			infos = append(infos, SourceInfo{
				Name:      name,
				Kind:      "url",
				Format:    u.Format.String(),
				LoadedAt:  time.Now(),
				LastError: err.Error(),
			})
			continue
		}
		logger.Info("Loaded blocklist", "name", name, "domains", len(domains))
		add(SourceInfo{Name: name, Kind: "url", Format: u.Format.String()}, domains)
	}

	if len(src.Stored) > 0 {
		add(SourceInfo{Name: "database", Kind: "stored"}, src.Stored)
	}

	bl := NewBlocklist(entries)
	logger.Info("Blocklist ready", "entries", bl.Len(), "sources", len(infos))
	return bl, infos, nil
}
