package filtering

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ListFormat represents the format of a blocklist file.
type ListFormat int

const (
	// FormatAuto detects the format from the first non-comment line.
	FormatAuto ListFormat = iota
	// FormatDomains is a plain list of domains, one per line.
	FormatDomains
	// FormatHosts is the hosts file format (IP address followed by domain).
	FormatHosts
	// FormatAdblock is the Adblock Plus format (||domain^).
	FormatAdblock
)

var formatNames = map[ListFormat]string{
	FormatAuto:    "auto",
	FormatDomains: "domains",
	FormatHosts:   "hosts",
	FormatAdblock: "adblock",
}

func (f ListFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ListFormat(%d)", int(f))
}

// ParseListFormat maps a config value to a ListFormat. The empty string
// means auto-detection.
func ParseListFormat(s string) (ListFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatAuto, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown blocklist format %q (want auto, domains, hosts or adblock)", s)
}

// DefaultFetchTimeout bounds a blocklist download when none is configured.
const DefaultFetchTimeout = 60 * time.Second

// Parser extracts domain entries from the common blocklist formats.
type Parser struct {
	// IgnoreComments determines whether to skip comment lines.
	IgnoreComments bool
	// Timeout bounds each HTTP fetch.
	Timeout time.Duration
	// Client performs URL fetches; nil uses a client built from Timeout.
	Client *http.Client
}

// NewParser creates a new parser with default settings.
func NewParser() *Parser {
	return &Parser{
		IgnoreComments: true,
		Timeout:        DefaultFetchTimeout,
	}
}

// ParseFile parses a blocklist file.
func (p *Parser) ParseFile(path string, format ListFormat) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blocklist: %w", err)
	}
	defer file.Close()

	return p.Parse(file, format)
}

// ParseURL fetches and parses a blocklist from a URL.
func (p *Parser) ParseURL(ctx context.Context, url string, format ListFormat) ([]string, error) {
	client := p.Client
	if client == nil {
		timeout := p.Timeout
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	return p.Parse(resp.Body, format)
}

// Parse reads a blocklist from r. Lines that do not yield a valid domain
// are skipped; duplicates are kept and collapse in NewBlocklist.
func (p *Parser) Parse(r io.Reader, format ListFormat) ([]string, error) {
	var domains []string
	scanner := bufio.NewScanner(r)

	// Some published lists carry very long lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if format == FormatAuto {
			format = detectFormat(line)
		}

		if domain := p.parseLine(line, format); domain != "" {
			domains = append(domains, domain)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return domains, nil
}

// detectFormat guesses the format from a sample line. Comment lines
// return FormatAuto so detection moves on to the next line.
func detectFormat(line string) ListFormat {
	if isComment(line) {
		return FormatAuto
	}
	if strings.HasPrefix(line, "||") {
		return FormatAdblock
	}
	if strings.HasPrefix(line, "0.0.0.0") || strings.HasPrefix(line, "127.0.0.1") {
		return FormatHosts
	}
	return FormatDomains
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!")
}

func (p *Parser) parseLine(line string, format ListFormat) string {
	if p.IgnoreComments && isComment(line) {
		return ""
	}

	switch format {
	case FormatAdblock:
		return parseAdblockLine(line)
	case FormatHosts:
		return parseHostsLine(line)
	default:
		return parseDomainsLine(line)
	}
}

// parseAdblockLine handles ||domain^ and ||domain^$options. Exceptions
// (@@), URL rules and inner wildcards are not domain rules and are skipped.
func parseAdblockLine(line string) string {
	if !strings.HasPrefix(line, "||") {
		return ""
	}
	domain := strings.TrimPrefix(line, "||")

	if idx := strings.IndexAny(domain, "^$"); idx >= 0 {
		domain = domain[:idx]
	}
	if strings.ContainsAny(domain, "/*") {
		return ""
	}

	return validDomain(domain)
}

// parseHostsLine handles "0.0.0.0 domain" and "127.0.0.1 domain".
func parseHostsLine(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	if fields[0] != "0.0.0.0" && fields[0] != "127.0.0.1" {
		return ""
	}

	domain := validDomain(fields[1])
	if domain == "localhost" || domain == "localhost.localdomain" {
		return ""
	}
	return domain
}

func parseDomainsLine(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	return validDomain(line)
}

// validDomain normalizes domain and returns it, or "" when it is not a
// plausible host name.
func validDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if isValidDomain(domain) {
		return domain
	}
	return ""
}

// NormalizeDomain lowercases domain, strips a trailing dot and reports
// whether the result is a usable blocklist entry.
func NormalizeDomain(domain string) (string, bool) {
	d := validDomain(domain)
	return d, d != ""
}

// isValidDomain performs basic validation of a domain name.
func isValidDomain(domain string) bool {
	if domain == "" || len(domain) > 253 {
		return false
	}

	// Must have at least one dot (TLD)
	if !strings.Contains(domain, ".") {
		return false
	}

	for label := range strings.SplitSeq(domain, ".") {
		if label == "" || len(label) > 63 {
			return false
		}

		// Labels must start and end with alphanumeric
		if !isAlphaNum(label[0]) || !isAlphaNum(label[len(label)-1]) {
			return false
		}

		for i := range len(label) {
			if c := label[i]; !isAlphaNum(c) && c != '-' && c != '_' {
				return false
			}
		}
	}

	return true
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
