// Package dns implements the small subset of the DNS wire protocol that a
// sinkhole responder needs: parsing single-question queries and building
// A answers or error replies.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification (header,
//     question section, label encoding, message compression)
//   - RFC 4343: DNS Case Insensitivity Clarification (ASCII-only case folding)
//
// Every multi-byte field is read and written big-endian through
// encoding/binary; nothing depends on in-memory struct layout.
//
// Error Handling:
//
// Errors are wrapped with context using fmt.Errorf("...: %w", err).
// Parse failures come in two kinds: those wrapping ErrDrop (no reply may be
// sent) and *QueryError (answered with the carried RCODE).
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is a sentinel error type for DNS protocol violations.
	// Wrap this with fmt.Errorf("context: %w", ErrDNSError) to add context.
	ErrDNSError = errors.New("dns wire error")

	// ErrDrop marks a datagram that must be discarded without a reply.
	ErrDrop = errors.New("dns datagram dropped")
)

// QueryError is a classified parse failure that is answered on the wire.
//
// Question is nil when the failure was detected before the question section
// could be decoded; the error reply then carries QDCOUNT=0.
type QueryError struct {
	RCode    RCode
	Header   Header
	Question *Question
	Reason   string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("dns query rejected (%s): %s", e.RCode, e.Reason)
}

// Unwrap lets callers match classified errors with errors.Is(err, ErrDNSError).
func (e *QueryError) Unwrap() error {
	return ErrDNSError
}

func dropf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDrop}, args...)...)
}

func reject(rcode RCode, h Header, q *Question, reason string) error {
	return &QueryError{RCode: rcode, Header: h, Question: q, Reason: reason}
}
