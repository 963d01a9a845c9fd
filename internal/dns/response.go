package dns

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

// answerNamePointer is a compression pointer (RFC 1035 Section 4.1.4) to
// offset 12, where the question name starts. It is valid because replies
// always carry exactly one question, placed directly after the header.
const answerNamePointer uint16 = 0xC000 | HeaderSize

// answerRecordSize is pointer(2) + type(2) + class(2) + ttl(4) + rdlength(2) + rdata(4).
const answerRecordSize = 16

// DefaultTTL is the answer TTL used when none is configured.
const DefaultTTL uint32 = 60

// BuildAnswer builds a reply carrying one A record for ip.
//
// The question section is copied verbatim from question (the Raw bytes of
// the parsed query). The answer's owner name is a pointer to the question
// name rather than a second encoding of it.
func BuildAnswer(req Header, question []byte, ip netip.Addr, ttl uint32) ([]byte, error) {
	return AppendAnswer(make([]byte, 0, HeaderSize+len(question)+answerRecordSize), req, question, ip, ttl)
}

// AppendAnswer is BuildAnswer appending to b. On error b is returned unchanged.
func AppendAnswer(b []byte, req Header, question []byte, ip netip.Addr, ttl uint32) ([]byte, error) {
	ip = ip.Unmap()
	if !ip.Is4() {
		return b, fmt.Errorf("%w: answer address %v is not IPv4", ErrDNSError, ip)
	}
	if len(question) == 0 {
		return b, errors.New("answer requires the question section")
	}

	h := Header{
		ID:      req.ID,
		Flags:   responseFlags(req.Flags, RCodeNoError),
		QDCount: 1,
		ANCount: 1,
	}

	out := h.AppendTo(b)
	out = append(out, question...)
	out = binary.BigEndian.AppendUint16(out, answerNamePointer)
	out = binary.BigEndian.AppendUint16(out, uint16(TypeA))
	out = binary.BigEndian.AppendUint16(out, uint16(ClassIN))
	out = binary.BigEndian.AppendUint32(out, ttl)
	addr := ip.As4()
	out = binary.BigEndian.AppendUint16(out, uint16(len(addr)))
	return append(out, addr[:]...), nil
}

// BuildError builds an error reply with the given RCODE.
//
// When question is nil the reply has QDCOUNT=0 and no question section;
// this is the case for failures detected before the question was decoded.
func BuildError(req Header, rcode RCode, question []byte) []byte {
	return AppendError(make([]byte, 0, HeaderSize+len(question)), req, rcode, question)
}

// AppendError is BuildError appending to b.
func AppendError(b []byte, req Header, rcode RCode, question []byte) []byte {
	h := Header{
		ID:    req.ID,
		Flags: responseFlags(req.Flags, rcode),
	}
	if question != nil {
		h.QDCount = 1
	}
	return append(h.AppendTo(b), question...)
}

// BuildRejection answers a classified parse failure, echoing the question
// when one was decoded.
func BuildRejection(qe *QueryError) []byte {
	var question []byte
	if qe.Question != nil {
		question = qe.Question.Raw
	}
	return BuildError(qe.Header, qe.RCode, question)
}
