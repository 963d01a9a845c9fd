// Package server answers sinkhole queries over UDP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/netip"
	"time"

	"github.com/jroosing/hydrasink/internal/dns"
	"github.com/jroosing/hydrasink/internal/filtering"
	"github.com/jroosing/hydrasink/internal/pool"
)

// Outcome classifies how a datagram was handled.
type Outcome uint8

const (
	OutcomeDropped  Outcome = iota // No reply written
	OutcomeRejected                // Classified parse failure answered with its RCODE
	OutcomeBlocked                 // Name matched; answered with the spoof address
	OutcomePassed                  // Name not matched; answered with the default RCODE
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeRejected:
		return "rejected"
	case OutcomeBlocked:
		return "blocked"
	case OutcomePassed:
		return "passed"
	default:
		return "unknown"
	}
}

// Result reports what Dispatch did with one datagram.
type Result struct {
	Outcome Outcome
	RCode   dns.RCode
	Name    string
	Type    dns.RecordType
	Entry   string
	Sent    bool
	Err     error // Parse, build or write failure
}

// PeerWriter is implemented by writers that know the client address.
type PeerWriter interface {
	io.Writer
	Peer() netip.AddrPort
}

// replyPool holds reply buffers. One datagram's reply fits without growing.
var replyPool = pool.NewBuffers(dns.MaxUDPMessageSize + 32)

// Dispatcher turns one query datagram into at most one reply.
//
// Processing order:
//  1. Parse; drops write nothing, classified failures are answered
//  2. Match the question name against Blocklist
//  3. Match: A record for SpoofIP with TTL
//  4. No match or empty blocklist: DefaultRCode with the question echoed
//  5. After a successful write, notify Observers
//
// The Dispatcher holds no mutable state of its own; a single instance may
// be shared by concurrent callers as long as Observers tolerate it.
type Dispatcher struct {
	Blocklist    *filtering.Blocklist
	SpoofIP      netip.Addr
	TTL          uint32
	DefaultRCode dns.RCode // Zero means SERVFAIL
	Logger       *slog.Logger
	Stats        *DNSStats
	Observers    []Observer
}

// Dispatch handles payload and writes the reply, if any, to w in a single
// Write call.
func (d *Dispatcher) Dispatch(ctx context.Context, w io.Writer, payload []byte) Result {
	start := time.Now()

	bp := replyPool.Get()
	res := d.respond(ctx, w, payload, *bp)
	replyPool.Put(bp)

	if d.Stats != nil {
		d.Stats.Record(res, time.Since(start))
	}

	if res.Sent && (res.Outcome == OutcomeBlocked || res.Outcome == OutcomePassed) {
		d.notify(ctx, Event{
			Time:    start,
			Client:  clientOf(w),
			Name:    res.Name,
			Type:    res.Type,
			Outcome: res.Outcome,
			Entry:   res.Entry,
			RCode:   res.RCode,
		})
	}
	return res
}

func (d *Dispatcher) respond(ctx context.Context, w io.Writer, payload, buf []byte) Result {
	q, err := dns.ParseQuery(payload)
	if err != nil {
		return d.reject(ctx, w, err, buf)
	}

	res := Result{Name: q.Question.Name, Type: q.Question.Type}

	var reply []byte
	if entry, ok := d.Blocklist.Match(q.Question.Name); ok {
		reply, err = dns.AppendAnswer(buf, q.Header, q.Question.Raw, d.SpoofIP, d.TTL)
		if err != nil {
			d.logger().ErrorContext(ctx, "failed to build answer", "qname", q.Question.Name, "err", err)
			res.Err = err
			return res
		}
		res.Outcome = OutcomeBlocked
		res.RCode = dns.RCodeNoError
		res.Entry = entry
	} else {
		res.Outcome = OutcomePassed
		res.RCode = d.defaultRCode()
		reply = dns.AppendError(buf, q.Header, res.RCode, q.Question.Raw)
	}

	d.send(ctx, w, reply, &res)
	return res
}

func (d *Dispatcher) reject(ctx context.Context, w io.Writer, err error, buf []byte) Result {
	var qe *dns.QueryError
	if !errors.As(err, &qe) {
		if logger := d.logger(); logger.Enabled(ctx, slog.LevelDebug) {
			logger.DebugContext(ctx, "datagram dropped", "client", clientOf(w), "err", err)
		}
		return Result{Outcome: OutcomeDropped, Err: err}
	}

	res := Result{Outcome: OutcomeRejected, RCode: qe.RCode, Err: err}
	var question []byte
	if qe.Question != nil {
		res.Name = qe.Question.Name
		res.Type = qe.Question.Type
		question = qe.Question.Raw
	}
	if logger := d.logger(); logger.Enabled(ctx, slog.LevelDebug) {
		logger.DebugContext(ctx, "query rejected", "client", clientOf(w), "rcode", qe.RCode.String(), "reason", qe.Reason)
	}

	d.send(ctx, w, dns.AppendError(buf, qe.Header, qe.RCode, question), &res)
	return res
}

func (d *Dispatcher) send(ctx context.Context, w io.Writer, reply []byte, res *Result) {
	if _, err := w.Write(reply); err != nil {
		d.logger().WarnContext(ctx, "failed to send reply", "client", clientOf(w), "err", err)
		res.Err = err
		return
	}
	res.Sent = true
}

func (d *Dispatcher) notify(ctx context.Context, ev Event) {
	for _, o := range d.Observers {
		d.observe(ctx, o, ev)
	}
}

func (d *Dispatcher) observe(ctx context.Context, o Observer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger().ErrorContext(ctx, "observer panicked", "qname", ev.Name, "panic", r)
		}
	}()
	o.Observe(ctx, ev)
}

func (d *Dispatcher) defaultRCode() dns.RCode {
	if d.DefaultRCode == dns.RCodeNoError {
		return dns.RCodeServFail
	}
	return d.DefaultRCode
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func clientOf(w io.Writer) string {
	if pw, ok := w.(PeerWriter); ok {
		if ap := pw.Peer(); ap.IsValid() {
			return ap.String()
		}
	}
	return ""
}
