package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
//
// Name is the decoded, lowercased name. Raw holds the question exactly as
// it appeared on the wire (name, type and class) so replies can echo it
// byte-for-byte instead of re-encoding; it aliases the parsed message.
type Question struct {
	Name  string
	Type  RecordType
	Class RecordClass
	Raw   []byte
}

// ParseQuestion parses the question that starts at msg[off].
func ParseQuestion(msg []byte, off int) (Question, error) {
	name, end, err := DecodeName(msg, off)
	if err != nil {
		return Question{}, err
	}
	if len(msg)-end < 4 {
		return Question{}, fmt.Errorf("%w: unexpected EOF while reading DNS question", ErrDNSError)
	}
	return Question{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(msg[end : end+2])),
		Class: RecordClass(binary.BigEndian.Uint16(msg[end+2 : end+4])),
		Raw:   msg[off : end+4],
	}, nil
}

// AppendQuestion encodes name, type and class and appends them to b.
func AppendQuestion(b []byte, name string, qtype RecordType, qclass RecordClass) ([]byte, error) {
	encoded, err := EncodeName(name)
	if err != nil {
		return nil, err
	}
	b = append(b, encoded...)
	b = binary.BigEndian.AppendUint16(b, uint16(qtype))
	return binary.BigEndian.AppendUint16(b, uint16(qclass)), nil
}

// BuildQuery serializes h followed by a single question. The header is
// written as given, so callers can craft deliberately odd counts or flags.
func BuildQuery(h Header, name string, qtype RecordType, qclass RecordClass) ([]byte, error) {
	return AppendQuestion(h.Marshal(), name, qtype, qclass)
}
