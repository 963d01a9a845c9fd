package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQuery(t *testing.T, h Header, name string, qtype RecordType, qclass RecordClass) []byte {
	t.Helper()
	msg, err := BuildQuery(h, name, qtype, qclass)
	require.NoError(t, err)
	return msg
}

func standardHeader() Header {
	return Header{ID: 0x1234, Flags: RDFlag, QDCount: 1}
}

func requireQueryError(t *testing.T, err error) *QueryError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDNSError)
	assert.NotErrorIs(t, err, ErrDrop)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	return qe
}

func TestParseQuery_Valid(t *testing.T) {
	msg := buildQuery(t, standardHeader(), "Ads.Example.COM", TypeA, ClassIN)

	q, err := ParseQuery(msg)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), q.Header.ID)
	assert.True(t, q.Header.RecursionDesired())
	assert.Equal(t, "ads.example.com", q.Question.Name)
	assert.Equal(t, TypeA, q.Question.Type)
	assert.Equal(t, ClassIN, q.Question.Class)
	assert.Equal(t, msg[HeaderSize:], q.Question.Raw)
}

func TestParseQuery_AnyTypeAndClass(t *testing.T) {
	tests := []struct {
		name   string
		qtype  RecordType
		qclass RecordClass
	}{
		{"A IN", TypeA, ClassIN},
		{"ANY IN", TypeANY, ClassIN},
		{"A ANY", TypeA, ClassANY},
		{"ANY ANY", TypeANY, ClassANY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(buildQuery(t, standardHeader(), "example.com", tt.qtype, tt.qclass))
			assert.NoError(t, err)
		})
	}
}

func TestParseQuery_Drops(t *testing.T) {
	valid := buildQuery(t, standardHeader(), "example.com", TypeA, ClassIN)

	response := append([]byte(nil), valid...)
	response[2] |= 0x80

	oversized := append(append([]byte(nil), valid...), make([]byte, MaxUDPMessageSize+1-len(valid))...)

	tests := []struct {
		name string
		msg  []byte
	}{
		{"empty", nil},
		{"11 octets", make([]byte, HeaderSize-1)},
		{"513 octets", oversized},
		{"QR set", response},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.msg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDrop)
		})
	}
}

func TestParseQuery_ExactlyMaxSize(t *testing.T) {
	msg := buildQuery(t, standardHeader(), "example.com", TypeA, ClassIN)
	msg = append(msg, make([]byte, MaxUDPMessageSize-len(msg))...)
	require.Len(t, msg, MaxUDPMessageSize)

	q, err := ParseQuery(msg)
	require.NoError(t, err)
	assert.Equal(t, "example.com", q.Question.Name)
	// Trailing octets are not part of the question.
	assert.Len(t, q.Question.Raw, 13+4)
}

func TestParseQuery_NotImp(t *testing.T) {
	for _, op := range []Opcode{OpcodeIQuery, OpcodeStatus, OpcodeNotify, OpcodeUpdate} {
		h := standardHeader()
		h.Flags |= uint16(op) << OpcodeShift

		_, err := ParseQuery(buildQuery(t, h, "example.com", TypeA, ClassIN))
		qe := requireQueryError(t, err)
		assert.Equal(t, RCodeNotImp, qe.RCode)
		assert.Nil(t, qe.Question)
		assert.Equal(t, op, qe.Header.Opcode())
	}
}

func TestParseQuery_NotImpBeforeFormErr(t *testing.T) {
	h := Header{ID: 7, Flags: uint16(OpcodeStatus) << OpcodeShift, QDCount: 0}

	_, err := ParseQuery(h.Marshal())
	qe := requireQueryError(t, err)
	assert.Equal(t, RCodeNotImp, qe.RCode)
}

func TestParseQuery_FormErr(t *testing.T) {
	valid := buildQuery(t, standardHeader(), "example.com", TypeA, ClassIN)
	nameEnd := HeaderSize + 13

	withHeader := func(mutate func(*Header)) []byte {
		h := standardHeader()
		mutate(&h)
		return append(h.Marshal(), valid[HeaderSize:]...)
	}

	tests := []struct {
		name string
		msg  []byte
	}{
		{"no question", withHeader(func(h *Header) { h.QDCount = 0 })},
		{"two questions", withHeader(func(h *Header) { h.QDCount = 2 })},
		{"answer present", withHeader(func(h *Header) { h.ANCount = 1 })},
		{"authority present", withHeader(func(h *Header) { h.NSCount = 1 })},
		{"additional present", withHeader(func(h *Header) { h.ARCount = 1 })},
		{"header only", standardHeader().Marshal()},
		{"truncated name", valid[:HeaderSize+5]},
		{"three octets after name", valid[:nameEnd+3]},
		{"compressed name", append(standardHeader().Marshal(), 0xC0, 0x0C, 0, 1, 0, 1)},
		{"reserved label type", append(standardHeader().Marshal(), 0x41, 'a', 0, 0, 1, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.msg)
			qe := requireQueryError(t, err)
			assert.Equal(t, RCodeFormErr, qe.RCode)
			assert.Nil(t, qe.Question)
			assert.Equal(t, uint16(0x1234), qe.Header.ID)
		})
	}
}

func TestParseQuery_FourOctetsAfterNameSuffice(t *testing.T) {
	valid := buildQuery(t, standardHeader(), "example.com", TypeA, ClassIN)
	_, err := ParseQuery(valid[:HeaderSize+13+4])
	assert.NoError(t, err)
}

func TestParseQuery_NXDomain(t *testing.T) {
	tests := []struct {
		name   string
		qtype  RecordType
		qclass RecordClass
	}{
		{"MX", TypeMX, ClassIN},
		{"AAAA", TypeAAAA, ClassIN},
		{"TXT", TypeTXT, ClassANY},
		{"CHAOS class", TypeA, ClassCH},
		{"class checked before type", TypeMX, ClassCH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := buildQuery(t, standardHeader(), "example.com", tt.qtype, tt.qclass)

			_, err := ParseQuery(msg)
			qe := requireQueryError(t, err)
			assert.Equal(t, RCodeNXDomain, qe.RCode)
			require.NotNil(t, qe.Question)
			assert.Equal(t, msg[HeaderSize:], qe.Question.Raw)
			assert.Equal(t, "example.com", qe.Question.Name)
		})
	}
}

func TestParseQuery_ClassReportedFirst(t *testing.T) {
	_, err := ParseQuery(buildQuery(t, standardHeader(), "example.com", TypeMX, ClassCH))
	qe := requireQueryError(t, err)
	assert.Contains(t, qe.Reason, "class")
}
