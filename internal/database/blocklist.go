package database

import (
	"context"
	"fmt"
	"time"
)

// StoredDomain is a blocklist entry persisted through the management API.
type StoredDomain struct {
	Domain  string
	AddedAt time.Time
}

// AddBlocklistDomain stores domain. Adding an existing domain is a no-op
// and reports false.
func (db *DB) AddBlocklistDomain(ctx context.Context, domain string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO blocklist_domains (domain, added_at) VALUES (?, ?)",
		domain, time.Now().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add blocklist domain %s: %w", domain, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}

// GetBlocklistDomains retrieves all stored domains ordered by name.
func (db *DB) GetBlocklistDomains(ctx context.Context) ([]StoredDomain, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, "SELECT domain, added_at FROM blocklist_domains ORDER BY domain")
	if err != nil {
		return nil, fmt.Errorf("failed to query blocklist domains: %w", err)
	}
	defer rows.Close()

	var domains []StoredDomain
	for rows.Next() {
		var (
			d       StoredDomain
			addedAt int64
		)
		if err := rows.Scan(&d.Domain, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocklist domain: %w", err)
		}
		d.AddedAt = time.UnixMilli(addedAt).UTC()
		domains = append(domains, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocklist domains: %w", err)
	}

	return domains, nil
}

// BlocklistDomainNames returns just the stored domain names.
func (db *DB) BlocklistDomainNames(ctx context.Context) ([]string, error) {
	stored, err := db.GetBlocklistDomains(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(stored))
	for i, d := range stored {
		names[i] = d.Domain
	}
	return names, nil
}

// DeleteBlocklistDomain removes a stored domain. It returns ErrNotFound
// when the domain is not stored.
func (db *DB) DeleteBlocklistDomain(ctx context.Context, domain string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM blocklist_domains WHERE domain = ?", domain)
	if err != nil {
		return fmt.Errorf("failed to delete blocklist domain: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("blocklist domain %s: %w", domain, ErrNotFound)
	}

	return nil
}
