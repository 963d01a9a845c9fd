package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/hydrasink/internal/database"
	"github.com/jroosing/hydrasink/internal/dns"
)

// Event describes an answered query. Observers receive it after the reply
// has been written.
type Event struct {
	Time    time.Time
	Client  string // Source address, empty when the writer does not expose one
	Name    string
	Type    dns.RecordType
	Outcome Outcome
	Entry   string // Matching blocklist entry, empty unless blocked
	RCode   dns.RCode
}

// Observer is notified once per answered Blocked or Passed query.
//
// Observers run on the serving goroutine, so slow work delays the next
// datagram. A panic is recovered and logged.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// LogObserver logs blocked names at INFO and passed names at DEBUG.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) Observe(ctx context.Context, ev Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch ev.Outcome {
	case OutcomeBlocked:
		logger.InfoContext(ctx, "detected", "qname", ev.Name, "entry", ev.Entry, "client", ev.Client)
	case OutcomePassed:
		if logger.Enabled(ctx, slog.LevelDebug) {
			logger.DebugContext(ctx, "not found", "qname", ev.Name, "rcode", ev.RCode.String(), "client", ev.Client)
		}
	}
}

// DetectionStore persists detection events.
type DetectionStore interface {
	RecordDetection(ctx context.Context, d database.Detection) error
}

// DetectionRecorder writes events to a DetectionStore. Passed queries are
// recorded only when IncludePassed is set.
type DetectionRecorder struct {
	Store         DetectionStore
	IncludePassed bool
	Logger        *slog.Logger
	Timeout       time.Duration // Per-write bound; zero means 2s
}

func (r *DetectionRecorder) Observe(ctx context.Context, ev Event) {
	if ev.Outcome != OutcomeBlocked && (ev.Outcome != OutcomePassed || !r.IncludePassed) {
		return
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := r.Store.RecordDetection(ctx, database.Detection{
		ObservedAt: ev.Time,
		QName:      ev.Name,
		Entry:      ev.Entry,
		Outcome:    ev.Outcome.String(),
		RCode:      int(ev.RCode),
		Client:     ev.Client,
	})
	if err != nil && r.Logger != nil {
		r.Logger.WarnContext(ctx, "failed to record detection", "qname", ev.Name, "err", err)
	}
}
