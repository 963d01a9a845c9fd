package dns

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"two labels", "example.com", []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}, false},
		{"trailing dot", "example.com.", []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}, false},
		{"root", ".", []byte{0}, false},
		{"empty is root", "", []byte{0}, false},
		{"empty label", "a..com", nil, true},
		{"label too long", strings.Repeat("a", 64) + ".com", nil, true},
		{"name too long", strings.Repeat(strings.Repeat("a", 63)+".", 4) + "com", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDNSError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeName_RoundTrip(t *testing.T) {
	wire := []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}

	name, end, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "example.com", name)
	assert.Equal(t, len(wire), end)

	encoded, err := EncodeName(name)
	require.NoError(t, err)
	assert.Equal(t, wire, encoded)
}

func TestDecodeName_FoldsASCIICase(t *testing.T) {
	wire, err := EncodeName("Ads.EXAMPLE.Com")
	require.NoError(t, err)

	name, _, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "ads.example.com", name)
}

func TestDecodeName_PreservesNonASCIIOctets(t *testing.T) {
	wire := []byte{2, 0xC3, 0x89, 3, 'c', 'o', 'm', 0}

	name, _, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "\xC3\x89.com", name)
}

func TestDecodeName_Root(t *testing.T) {
	name, end, err := DecodeName([]byte{0}, 0)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, 1, end)
}

func TestDecodeName_AtOffset(t *testing.T) {
	msg := append(make([]byte, HeaderSize), 3, 'w', 'w', 'w', 0)

	name, end, err := DecodeName(msg, HeaderSize)
	require.NoError(t, err)
	assert.Equal(t, "www", name)
	assert.Equal(t, len(msg), end)
}

// Every label length L with L+1 greater than the octets left must fail.
func TestDecodeName_LabelOverrun(t *testing.T) {
	for l := 1; l <= MaxLabelLength; l++ {
		msg := append([]byte{byte(l)}, bytes.Repeat([]byte{'a'}, l-1)...)
		_, _, err := DecodeName(msg, 0)
		require.Errorf(t, err, "label length %d with %d octets remaining", l, len(msg))
		assert.ErrorIs(t, err, ErrDNSError)
	}
}

func TestDecodeName_Malformed(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want string
	}{
		{"empty buffer", []byte{}, "past end"},
		{"missing terminator", []byte{3, 'c', 'o', 'm'}, "past end"},
		{"compression pointer", []byte{0xC0, 0x0C}, "compression pointer"},
		{"pointer after label", []byte{3, 'w', 'w', 'w', 0xC0, 0x0C}, "compression pointer"},
		{"reserved 01 label type", []byte{0x40, 'a', 0}, "reserved"},
		{"reserved 10 label type", []byte{0x80, 'a', 0}, "reserved"},
		{"label overruns", []byte{5, 'a', 'b', 0}, "overruns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeName(tt.msg, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDNSError)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeName_TooLong(t *testing.T) {
	var msg []byte
	for range 4 {
		msg = append(msg, MaxLabelLength)
		msg = append(msg, bytes.Repeat([]byte{'a'}, MaxLabelLength)...)
	}
	msg = append(msg, 0)
	require.Greater(t, len(msg), MaxNameLength)

	_, _, err := DecodeName(msg, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestDecodeName_LongestLegalName(t *testing.T) {
	// 3*64 + 62 label octets + zero octet = 255.
	var msg []byte
	for range 3 {
		msg = append(msg, MaxLabelLength)
		msg = append(msg, bytes.Repeat([]byte{'a'}, MaxLabelLength)...)
	}
	msg = append(msg, 61)
	msg = append(msg, bytes.Repeat([]byte{'b'}, 61)...)
	msg = append(msg, 0)
	require.Len(t, msg, MaxNameLength)

	_, end, err := DecodeName(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxNameLength, end)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeName("  Example.COM.  "))
	assert.Equal(t, "example.com", NormalizeName("example.com..."))
	assert.Equal(t, "", NormalizeName("."))
}
