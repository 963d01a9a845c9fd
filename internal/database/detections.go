package database

import (
	"context"
	"fmt"
	"time"
)

// Detection is one logged query decision.
type Detection struct {
	ID         int64
	ObservedAt time.Time
	QName      string
	Entry      string // Blocklist entry that matched; empty when passed
	Outcome    string
	RCode      int
	Client     string
}

// EntryCount is how often a blocklist entry matched.
type EntryCount struct {
	Entry string
	Hits  int64
}

// DetectionSummary aggregates the detection log.
type DetectionSummary struct {
	Total      int64
	ByOutcome  map[string]int64
	TopEntries []EntryCount
	First      time.Time
	Last       time.Time
}

// topEntriesLimit caps DetectionSummary.TopEntries.
const topEntriesLimit = 10

// RecordDetection appends d to the detection log. A zero ObservedAt is
// replaced by the current time.
func (db *DB) RecordDetection(ctx context.Context, d Detection) error {
	if d.ObservedAt.IsZero() {
		d.ObservedAt = time.Now()
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO detections (observed_at, qname, entry, outcome, rcode, client)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ObservedAt.UnixMilli(), d.QName, d.Entry, d.Outcome, d.RCode, d.Client)
	if err != nil {
		return fmt.Errorf("failed to record detection for %s: %w", d.QName, err)
	}
	return nil
}

// RecentDetections returns up to limit detections, newest first.
func (db *DB) RecentDetections(ctx context.Context, limit int) ([]Detection, error) {
	if limit <= 0 {
		return nil, nil
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, observed_at, qname, entry, outcome, rcode, client
		FROM detections
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var out []Detection
	for rows.Next() {
		var (
			d          Detection
			observedAt int64
		)
		if err := rows.Scan(&d.ID, &observedAt, &d.QName, &d.Entry, &d.Outcome, &d.RCode, &d.Client); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		d.ObservedAt = time.UnixMilli(observedAt).UTC()
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detections: %w", err)
	}

	return out, nil
}

// DetectionSummary counts detections per outcome and lists the entries
// that matched most often.
func (db *DB) DetectionSummary(ctx context.Context) (DetectionSummary, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	summary := DetectionSummary{ByOutcome: map[string]int64{}}

	rows, err := db.conn.QueryContext(ctx, "SELECT outcome, COUNT(*) FROM detections GROUP BY outcome")
	if err != nil {
		return summary, fmt.Errorf("failed to count detections: %w", err)
	}
	for rows.Next() {
		var (
			outcome string
			n       int64
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			rows.Close()
			return summary, fmt.Errorf("failed to scan detection count: %w", err)
		}
		summary.ByOutcome[outcome] = n
		summary.Total += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("error iterating detection counts: %w", err)
	}

	if summary.Total == 0 {
		return summary, nil
	}

	var first, last int64
	err = db.conn.QueryRowContext(ctx, "SELECT MIN(observed_at), MAX(observed_at) FROM detections").Scan(&first, &last)
	if err != nil {
		return summary, fmt.Errorf("failed to read detection range: %w", err)
	}
	summary.First = time.UnixMilli(first).UTC()
	summary.Last = time.UnixMilli(last).UTC()

	rows, err = db.conn.QueryContext(ctx, `
		SELECT entry, COUNT(*) AS hits
		FROM detections
		WHERE entry != ''
		GROUP BY entry
		ORDER BY hits DESC, entry
		LIMIT ?
	`, topEntriesLimit)
	if err != nil {
		return summary, fmt.Errorf("failed to rank blocklist entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ec EntryCount
		if err := rows.Scan(&ec.Entry, &ec.Hits); err != nil {
			return summary, fmt.Errorf("failed to scan entry count: %w", err)
		}
		summary.TopEntries = append(summary.TopEntries, ec)
	}

	return summary, rows.Err()
}
