package filtering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseDomainsList(t *testing.T) {
	content := `# Comment line
example.com
ADS.example.com.
tracker.example.org   # inline comment

# Another comment
malware.com
not_a_domain
`

	domains, err := NewParser().ParseFile(createTempFile(t, content), FormatDomains)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "ads.example.com", "tracker.example.org", "malware.com"}, domains)
}

func TestParser_ParseHostsFile(t *testing.T) {
	content := `# StevenBlack hosts file format
127.0.0.1 localhost
127.0.0.1 localhost.localdomain
::1 localhost
0.0.0.0 ads.example.com
0.0.0.0 tracker.example.org extra ignored
0.0.0.0 malware.com # with comment
192.168.1.1 router.lan
`

	domains, err := NewParser().ParseFile(createTempFile(t, content), FormatHosts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ads.example.com", "tracker.example.org", "malware.com"}, domains)
}

func TestParser_ParseAdblockFormat(t *testing.T) {
	content := `! Adblock-style blocklist
! Title: Test List
||ads.example.com^
||tracker.example.org^$third-party
||malware.com
@@||allowed.example.com^
||*.doubleclick.net^
||example.net/path^
plain-domain.com
`

	domains, err := NewParser().ParseFile(createTempFile(t, content), FormatAdblock)
	require.NoError(t, err)
	assert.Equal(t, []string{"ads.example.com", "tracker.example.org", "malware.com"}, domains)
}

func TestParser_AutoDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "adblock format",
			content: "! header\n||ads.example.com^\n||tracker.com^\n",
			want:    []string{"ads.example.com", "tracker.com"},
		},
		{
			name:    "hosts format",
			content: "# header\n0.0.0.0 ads.example.com\n0.0.0.0 tracker.com\n",
			want:    []string{"ads.example.com", "tracker.com"},
		},
		{
			name:    "domains format",
			content: "ads.example.com\ntracker.com\nmalware.org\n",
			want:    []string{"ads.example.com", "tracker.com", "malware.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domains, err := NewParser().Parse(strings.NewReader(tt.content), FormatAuto)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domains)
		})
	}
}

func TestParser_ParseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("||ads.example.com^\n||tracker.example.org^\n"))
	}))
	defer server.Close()

	domains, err := NewParser().ParseURL(context.Background(), server.URL, FormatAdblock)
	require.NoError(t, err)
	assert.Len(t, domains, 2)
}

func TestParser_ParseURLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewParser().ParseURL(context.Background(), server.URL, FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestParser_ParseURLTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	parser := NewParser()
	parser.Timeout = 50 * time.Millisecond

	_, err := parser.ParseURL(context.Background(), server.URL, FormatAuto)
	assert.Error(t, err)
}

func TestParser_InvalidFile(t *testing.T) {
	_, err := NewParser().ParseFile("/nonexistent/file.txt", FormatAuto)
	assert.Error(t, err)
}

func TestParseListFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ListFormat
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"Domains", FormatDomains, false},
		{"hosts", FormatHosts, false},
		{" adblock ", FormatAdblock, false},
		{"rpz", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseListFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) ListFormat {
	t.Helper()
	f, err := ParseListFormat(s)
	require.NoError(t, err)
	return f
}

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		domain   string
		expected bool
	}{
		{"example.com", true},
		{"sub.example.com", true},
		{"a.b.c.example.com", true},
		{"example-site.com", true},
		{"example123.com", true},
		{"_dmarc.example.com", false},
		{"x_y.example.com", true},
		{"", false},
		{".", false},
		{"..", false},
		{"example", false},
		{"-example.com", false},
		{"example-.com", false},
		{"example..com", false},
		{"localhost", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.expected, isValidDomain(tt.domain))
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	d, ok := NormalizeDomain("  Ads.Example.COM. ")
	assert.True(t, ok)
	assert.Equal(t, "ads.example.com", d)

	_, ok = NormalizeDomain("localhost")
	assert.False(t, ok)
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "blocklist.txt")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}
