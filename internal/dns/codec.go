package dns

import (
	"fmt"
	"strings"
)

// NormalizeName returns a lowercase DNS name without surrounding whitespace
// or trailing dots. DNS names are case-insensitive per RFC 4343.
func NormalizeName(name string) string {
	return strings.ToLower(trimDot(strings.TrimSpace(name)))
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// DNS names are encoded as a sequence of labels, where each label is:
//   - 1 byte: length (1-63)
//   - N bytes: label characters
//
// The name is terminated by a zero-length label (single 0x00 byte).
//
// Example: "www.example.com" encodes as:
//
//	[3]www[7]example[3]com[0]
//
// No compression pointers are emitted.
func EncodeName(domain string) ([]byte, error) {
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // Root domain
	}

	out := make([]byte, 0, len(domain)+2)
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return nil, fmt.Errorf("%w: invalid domain name (empty label): %q", ErrDNSError, domain)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: DNS label too long (%d > %d): %q", ErrDNSError, len(label), MaxLabelLength, label)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)

	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w: encoded domain name too long (%d > %d)", ErrDNSError, len(out), MaxNameLength)
	}
	return out, nil
}

// DecodeName decodes the uncompressed name starting at msg[off].
//
// The result is dot-joined with ASCII letters folded to lowercase and no
// leading or trailing dot; the root name decodes to "". It returns the
// offset just past the terminating zero label.
func DecodeName(msg []byte, off int) (string, int, error) {
	it := newLabelIter(msg, off)

	var b strings.Builder
	for it.Next() {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		for _, c := range it.Label() {
			b.WriteByte(lowerASCII(c))
		}
	}
	if err := it.Err(); err != nil {
		return "", off, err
	}
	return b.String(), it.End(), nil
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
