package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBlocklist_Normalizes(t *testing.T) {
	bl := NewBlocklist([]string{"Example.COM.", "  ads.tracker.net ", "example.com", "", ".", "\t"})

	assert.Equal(t, 2, bl.Len())
	assert.True(t, bl.Contains("example.com"))
	assert.True(t, bl.Contains("ads.tracker.net"))
	assert.False(t, bl.Contains("Example.COM."))
	assert.Equal(t, []string{"ads.tracker.net", "example.com"}, bl.Entries())
}

func TestBlocklist_Match(t *testing.T) {
	bl := NewBlocklist([]string{"example.com", "ads.tracker.net", "com.evil.org"})

	tests := []struct {
		name      string
		query     string
		wantEntry string
		wantOK    bool
	}{
		{"exact", "example.com", "example.com", true},
		{"subdomain", "ads.example.com", "example.com", true},
		{"deep subdomain", "a.b.c.example.com", "example.com", true},
		{"partial label", "notexample.com", "", false},
		{"parent of entry", "tracker.net", "", false},
		{"sibling of entry", "cdn.tracker.net", "", false},
		{"entry subdomain", "x.ads.tracker.net", "ads.tracker.net", true},
		{"entry as prefix", "example.com.au", "", false},
		{"tld only", "com", "", false},
		{"empty name", "", "", false},
		{"entry as interior labels", "com.evil.org.example", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := bl.Match(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantEntry, entry)
			assert.Equal(t, tt.wantOK, Matches(tt.query, bl))
		})
	}
}

func TestBlocklist_MatchPrefersMostSpecific(t *testing.T) {
	bl := NewBlocklist([]string{"example.com", "ads.example.com"})

	entry, ok := bl.Match("x.ads.example.com")
	assert.True(t, ok)
	assert.Equal(t, "ads.example.com", entry)
}

func TestBlocklist_Empty(t *testing.T) {
	var nilList *Blocklist
	empty := NewBlocklist(nil)

	for _, bl := range []*Blocklist{nilList, empty} {
		assert.Equal(t, 0, bl.Len())
		assert.False(t, Matches("example.com", bl))
		assert.False(t, bl.Contains("example.com"))
		assert.Empty(t, bl.Entries())
	}
}

// A name matches exactly when it equals an entry or ends with "."+entry.
func TestBlocklist_MatchAgreesWithSuffixDefinition(t *testing.T) {
	entries := []string{"a.b", "b", "c.d.e", "x-y.z"}
	bl := NewBlocklist(entries)

	names := []string{
		"a.b", "b", "xa.b", "q.a.b", "ab", "b.a", "c.d.e", "d.e", "zz.c.d.e",
		"x-y.z", "y.z", "1.x-y.z", "e", "c.d.e.f",
	}
	for _, name := range names {
		want := false
		for _, e := range entries {
			if name == e || len(name) > len(e) && name[len(name)-len(e)-1:] == "."+e {
				want = true
			}
		}
		assert.Equal(t, want, Matches(name, bl), name)
	}
}
