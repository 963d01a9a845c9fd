// Command dnsquery sends a single query to a sinkhole and prints the reply.
//
// The query is written with the sinkhole's own encoder so header fields can
// be set to unusual values (opcode, counts, QR) when probing rejections.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	mdns "github.com/miekg/dns"

	"github.com/jroosing/hydrasink/internal/dns"
)

func main() {
	var (
		server  = flag.String("server", "127.0.0.1:1053", "DNS server HOST:PORT")
		name    = flag.String("name", "example.com", "Query name")
		qtype   = flag.Int("qtype", int(dns.TypeA), "Query type (numeric, A=1)")
		qclass  = flag.Int("qclass", int(dns.ClassIN), "Query class (numeric, IN=1)")
		opcode  = flag.Int("opcode", int(dns.OpcodeQuery), "Header opcode (0..15)")
		id      = flag.Uint("id", 0, "Transaction ID (0 picks one)")
		rd      = flag.Bool("rd", true, "Set the recursion desired flag")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
		quiet   = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	if *opcode < 0 || *opcode > 15 || *qtype < 0 || *qtype > 0xFFFF || *qclass < 0 || *qclass > 0xFFFF || *id > 0xFFFF {
		fmt.Fprintln(os.Stderr, "dnsquery error: opcode, qtype, qclass or id out of range")
		os.Exit(2)
	}

	h := dns.Header{ID: uint16(*id), QDCount: 1}
	if h.ID == 0 {
		h.ID = mdns.Id()
	}
	h.Flags = uint16(*opcode) << dns.OpcodeShift
	if *rd {
		h.Flags |= dns.RDFlag
	}

	req, err := dns.BuildQuery(h, *name, dns.RecordType(*qtype), dns.RecordClass(*qclass))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		os.Exit(2)
	}

	resp, err := exchange(*server, req, *timeout)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	msg := new(mdns.Msg)
	if err := msg.Unpack(resp); err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		return
	}

	fmt.Printf("id=%d rcode=%s aa=%t rd=%t ra=%t answers=%d\n",
		msg.Id,
		mdns.RcodeToString[msg.Rcode],
		msg.Authoritative,
		msg.RecursionDesired,
		msg.RecursionAvailable,
		len(msg.Answer),
	)
	for _, rr := range msg.Answer {
		fmt.Println(strings.ReplaceAll(rr.String(), "\t", " "))
	}
}

// exchange sends req over UDP and waits for one datagram. A sinkhole drops
// malformed queries silently, so a timeout is a normal outcome.
func exchange(server string, req []byte, timeout time.Duration) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	_ = c.SetDeadline(time.Now().Add(timeout))
	if _, err := c.Write(req); err != nil {
		return nil, err
	}

	buf := make([]byte, dns.MaxUDPMessageSize)
	n, err := c.Read(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, errors.New("no reply (query dropped or server unreachable)")
		}
		return nil, err
	}
	return buf[:n], nil
}
