package dns

import "strconv"

// DNS header flags and masks (RFC 1035 Section 4.1.1)
//
// The DNS header contains a 16-bit flags field with the following layout:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA| Z|AD|CD|   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	QRFlag      uint16 = 0x8000 // Query/Response: 1 = response, 0 = query
	OpcodeMask  uint16 = 0x7800 // Bits 14-11: operation type
	OpcodeShift        = 11
	AAFlag      uint16 = 0x0400 // Authoritative Answer
	TCFlag      uint16 = 0x0200 // Truncation
	RDFlag      uint16 = 0x0100 // Recursion Desired
	RAFlag      uint16 = 0x0080 // Recursion Available
	ZFlag       uint16 = 0x0040 // Reserved
	ADFlag      uint16 = 0x0020 // Authenticated Data (DNSSEC)
	CDFlag      uint16 = 0x0010 // Checking Disabled (DNSSEC)
	RCodeMask   uint16 = 0x000F // Bits 3-0: response code
)

// Opcode is the 4-bit operation code of a DNS message.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0 // Standard query
	OpcodeIQuery Opcode = 1 // Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // Server status request
	OpcodeNotify Opcode = 4 // RFC 1996
	OpcodeUpdate Opcode = 5 // RFC 2136
)

// RecordType represents DNS resource record types.
type RecordType uint16

const (
	TypeA     RecordType = 1   // IPv4 address
	TypeNS    RecordType = 2   // Authoritative name server
	TypeCNAME RecordType = 5   // Canonical name
	TypeSOA   RecordType = 6   // Start of Authority
	TypePTR   RecordType = 12  // Domain name pointer
	TypeMX    RecordType = 15  // Mail exchange
	TypeTXT   RecordType = 16  // Text strings
	TypeAAAA  RecordType = 28  // IPv6 address (RFC 3596)
	TypeANY   RecordType = 255 // QTYPE *: all records
)

// RecordClass represents DNS resource record classes (RFC 1035).
type RecordClass uint16

const (
	ClassIN  RecordClass = 1   // Internet
	ClassCH  RecordClass = 3   // Chaos
	ClassANY RecordClass = 255 // QCLASS *: any class
)

// RCode represents DNS response codes (RFC 1035).
type RCode uint16

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented
	RCodeRefused  RCode = 5 // Query refused by policy
)

var rcodeNames = map[RCode]string{
	RCodeNoError:  "NOERROR",
	RCodeFormErr:  "FORMERR",
	RCodeServFail: "SERVFAIL",
	RCodeNXDomain: "NXDOMAIN",
	RCodeNotImp:   "NOTIMP",
	RCodeRefused:  "REFUSED",
}

func (r RCode) String() string {
	if name, ok := rcodeNames[r]; ok {
		return name
	}
	return "RCODE" + strconv.Itoa(int(r))
}

// ParseRCode accepts a mnemonic ("SERVFAIL", case-insensitive) or a decimal
// value in 0..15, optionally written the way String prints unnamed codes
// ("RCODE9").
func ParseRCode(s string) (RCode, bool) {
	for code, name := range rcodeNames {
		if equalFoldASCII(s, name) {
			return code, true
		}
	}
	if len(s) > 5 && equalFoldASCII(s[:5], "RCODE") {
		s = s[5:]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(RCodeMask) {
		return 0, false
	}
	return RCode(n), true
}

// RCodeFromFlags extracts the response code from the DNS header flags.
func RCodeFromFlags(flags uint16) RCode {
	return RCode(flags & RCodeMask)
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range len(a) {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
