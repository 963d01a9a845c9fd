// Package filtering holds the sinkhole's blocklist: an immutable set of
// domain entries, the suffix matcher that runs against it, and the parsers
// that load entries from inline config, files, URLs and the database.
package filtering

import (
	"maps"
	"slices"
	"strings"

	"github.com/jroosing/hydrasink/internal/dns"
)

// Blocklist is an immutable set of normalized domain entries.
//
// A name is blocked when it equals an entry or ends with "."+entry, so
// "example.com" blocks "ads.example.com" but not "notexample.com".
// Lookups are lock-free; build a new Blocklist to change its contents.
type Blocklist struct {
	entries map[string]struct{}
}

// NewBlocklist builds a blocklist from raw entries. Entries are lowercased
// and stripped of surrounding whitespace and trailing dots; empty entries
// and duplicates are dropped.
func NewBlocklist(entries []string) *Blocklist {
	bl := &Blocklist{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if e = dns.NormalizeName(e); e != "" {
			bl.entries[e] = struct{}{}
		}
	}
	return bl
}

// Len returns the number of distinct entries.
func (bl *Blocklist) Len() int {
	if bl == nil {
		return 0
	}
	return len(bl.entries)
}

// Contains reports whether entry is present exactly, without suffix matching.
func (bl *Blocklist) Contains(entry string) bool {
	if bl == nil {
		return false
	}
	_, ok := bl.entries[entry]
	return ok
}

// Match returns the most specific entry that blocks name.
//
// name must already be normalized (as produced by dns.DecodeName). The
// name itself is looked up first, then each suffix that starts after a
// dot, so the cost is one map lookup per label.
func (bl *Blocklist) Match(name string) (string, bool) {
	if bl.Len() == 0 || name == "" {
		return "", false
	}
	for s := name; ; {
		if _, ok := bl.entries[s]; ok {
			return s, true
		}
		i := strings.IndexByte(s, '.')
		if i < 0 {
			return "", false
		}
		s = s[i+1:]
	}
}

// Entries returns the entries in sorted order.
func (bl *Blocklist) Entries() []string {
	if bl == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(bl.entries))
}

// Matches reports whether name is blocked by bl. A nil or empty blocklist
// matches nothing.
func Matches(name string, bl *Blocklist) bool {
	_, ok := bl.Match(name)
	return ok
}
