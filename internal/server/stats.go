package server

import (
	"sync/atomic"
	"time"
)

// DNSStats collects per-outcome query counters.
// All methods are safe for concurrent use.
type DNSStats struct {
	started        time.Time
	queriesTotal   atomic.Uint64
	dropped        atomic.Uint64
	rejected       atomic.Uint64
	blocked        atomic.Uint64
	passed         atomic.Uint64
	sendErrors     atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewDNSStats creates a new DNS statistics collector.
func NewDNSStats() *DNSStats {
	return &DNSStats{started: time.Now()}
}

// Record counts one dispatched datagram.
func (s *DNSStats) Record(res Result, elapsed time.Duration) {
	s.queriesTotal.Add(1)
	switch res.Outcome {
	case OutcomeDropped:
		s.dropped.Add(1)
	case OutcomeRejected:
		s.rejected.Add(1)
	case OutcomeBlocked:
		s.blocked.Add(1)
	case OutcomePassed:
		s.passed.Add(1)
	}
	if res.Outcome != OutcomeDropped && !res.Sent {
		s.sendErrors.Add(1)
	}
	if elapsed > 0 {
		s.latencyTotalNs.Add(uint64(elapsed))
	}
}

// DNSStatsSnapshot is a point-in-time snapshot of DNS server statistics.
type DNSStatsSnapshot struct {
	QueriesTotal uint64
	Dropped      uint64
	Rejected     uint64
	Blocked      uint64
	Passed       uint64
	SendErrors   uint64
	AvgLatencyMs float64
	Uptime       time.Duration
}

// Snapshot returns the current statistics.
func (s *DNSStats) Snapshot() DNSStatsSnapshot {
	total := s.queriesTotal.Load()
	latencyNs := s.latencyTotalNs.Load()

	avgLatencyMs := 0.0
	if total > 0 {
		avgLatencyMs = float64(latencyNs) / float64(total) / 1e6
	}

	return DNSStatsSnapshot{
		QueriesTotal: total,
		Dropped:      s.dropped.Load(),
		Rejected:     s.rejected.Load(),
		Blocked:      s.blocked.Load(),
		Passed:       s.passed.Load(),
		SendErrors:   s.sendErrors.Load(),
		AvgLatencyMs: avgLatencyMs,
		Uptime:       time.Since(s.started),
	}
}
