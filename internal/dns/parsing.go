package dns

import "strconv"

// MaxUDPMessageSize is the RFC 1035 Section 4.2.1 ceiling for DNS over UDP
// without EDNS. Larger datagrams are discarded.
const MaxUDPMessageSize = 512

// Query is a validated single-question DNS query.
type Query struct {
	Header   Header
	Question Question
}

// ParseQuery validates msg as a sinkhole-answerable query.
//
// The checks run in a fixed order because the first failing check decides
// the outcome:
//
//  1. shorter than a header          -> drop
//  2. longer than MaxUDPMessageSize  -> drop
//  3. QR flag set                    -> drop
//  4. OPCODE other than QUERY        -> NOTIMP, no question
//  5. QDCOUNT != 1                   -> FORMERR, no question
//  6. ANCOUNT/NSCOUNT/ARCOUNT != 0   -> FORMERR, no question
//  7. malformed name                 -> FORMERR, no question
//  8. fewer than 4 octets after name -> FORMERR, no question
//  9. QCLASS other than IN or ANY    -> NXDOMAIN, question echoed
//  10. QTYPE other than A or ANY     -> NXDOMAIN, question echoed
//
// Drops wrap ErrDrop; every other failure is a *QueryError. Octets after
// the question are ignored.
func ParseQuery(msg []byte) (Query, error) {
	if len(msg) < HeaderSize {
		return Query{}, dropf("datagram of %d octets is shorter than a header", len(msg))
	}
	if len(msg) > MaxUDPMessageSize {
		return Query{}, dropf("datagram of %d octets exceeds %d", len(msg), MaxUDPMessageSize)
	}

	h, err := ParseHeader(msg)
	if err != nil {
		return Query{}, dropf("%v", err)
	}
	if h.IsResponse() {
		return Query{}, dropf("QR flag set (response packet received)")
	}
	if op := h.Opcode(); op != OpcodeQuery {
		return Query{}, reject(RCodeNotImp, h, nil, "unsupported opcode "+strconv.Itoa(int(op)))
	}
	if h.QDCount != 1 {
		return Query{}, reject(RCodeFormErr, h, nil, "question count "+strconv.Itoa(int(h.QDCount)))
	}
	if h.ANCount != 0 || h.NSCount != 0 || h.ARCount != 0 {
		return Query{}, reject(RCodeFormErr, h, nil, "query carries resource records")
	}

	q, err := ParseQuestion(msg, HeaderSize)
	if err != nil {
		return Query{}, reject(RCodeFormErr, h, nil, err.Error())
	}
	if q.Class != ClassIN && q.Class != ClassANY {
		return Query{}, reject(RCodeNXDomain, h, &q, "unsupported class "+strconv.Itoa(int(q.Class)))
	}
	if q.Type != TypeA && q.Type != TypeANY {
		return Query{}, reject(RCodeNXDomain, h, &q, "unsupported type "+strconv.Itoa(int(q.Type)))
	}

	return Query{Header: h, Question: q}, nil
}
