package dns

import "fmt"

const (
	// MaxLabelLength is the longest label allowed by RFC 1035 Section 2.3.4.
	MaxLabelLength = 63
	// MaxNameLength bounds the encoded name, terminating zero octet included.
	MaxNameLength = 255
)

// labelIter walks the length-prefixed labels of an uncompressed name.
//
// Each call to Next yields one label as a subslice of the message; the
// iterator never indexes past len(msg). Iteration stops at the terminating
// zero-length label (Err returns nil) or at the first malformed octet (Err
// returns the reason). Compression pointers are reported as malformed: a
// query's question name is always the first name in the message, so a
// pointer there can only point at the header.
type labelIter struct {
	msg   []byte
	start int
	off   int
	label []byte
	err   error
	done  bool
}

func newLabelIter(msg []byte, off int) *labelIter {
	return &labelIter{msg: msg, start: off, off: off}
}

// Next advances to the next label, returning false when the name is
// complete or malformed.
func (it *labelIter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	remaining := len(it.msg) - it.off
	if remaining <= 0 {
		it.err = fmt.Errorf("%w: name runs past end of message", ErrDNSError)
		return false
	}

	length := int(it.msg[it.off])
	if length == 0 {
		it.off++
		it.done = true
		return false
	}
	if length > MaxLabelLength {
		it.err = labelTypeError(it.msg[it.off])
		return false
	}
	if length+1 > remaining {
		it.err = fmt.Errorf("%w: label of %d octets overruns message (%d remaining)", ErrDNSError, length, remaining)
		return false
	}
	// +1 reserves the terminating zero octet.
	if it.off+length+1-it.start+1 > MaxNameLength {
		it.err = fmt.Errorf("%w: encoded name exceeds %d octets", ErrDNSError, MaxNameLength)
		return false
	}

	it.label = it.msg[it.off+1 : it.off+1+length]
	it.off += length + 1
	return true
}

// Label returns the current label. Valid until the next call to Next.
func (it *labelIter) Label() []byte {
	return it.label
}

// Err returns the reason iteration stopped early, or nil after a complete name.
func (it *labelIter) Err() error {
	return it.err
}

// End returns the offset just past the terminating zero label.
func (it *labelIter) End() int {
	return it.off
}

func labelTypeError(b byte) error {
	if isCompressionPointer(b) {
		return fmt.Errorf("%w: compression pointer in question name", ErrDNSError)
	}
	return fmt.Errorf("%w: invalid DNS label length (reserved high bits set)", ErrDNSError)
}

// isCompressionPointer checks if the label length byte indicates a compression pointer.
// Compression pointers have the two high bits set (11xxxxxx = 0xC0 mask).
func isCompressionPointer(b byte) bool {
	return (b & 0xC0) == 0xC0
}
