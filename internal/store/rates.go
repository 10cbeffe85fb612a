package store

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ExchangeRate is one row of the periodically refreshed rates table.
// It belongs to the country/exchange-rate pipeline, not to the string
// corpus; it lives here because it shares the database file.
type ExchangeRate struct {
	Code      string
	Country   string
	Rate      float64
	UpdatedAt time.Time
}

// UpsertRate inserts or replaces the rate for a currency code.
// Unlike strings, rates are mutable by design: each refresh overwrites.
func (s *Store) UpsertRate(code, country string, rate float64) error {
	_, err := s.db.Exec(`
		INSERT INTO exchange_rates (code, country, rate, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			country = excluded.country,
			rate = excluded.rate,
			updated_at = excluded.updated_at
	`, code, country, rate, time.Now().UTC().Format(time.RFC3339))
	return errors.Wrapf(err, "failed to upsert rate for %s", code)
}

// ListRates returns all stored rates ordered by currency code.
func (s *Store) ListRates() ([]ExchangeRate, error) {
	rows, err := s.db.Query(`SELECT code, country, rate, updated_at FROM exchange_rates ORDER BY code`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rates")
	}
	defer rows.Close()

	rates := []ExchangeRate{}
	for rows.Next() {
		var r ExchangeRate
		var updatedAt string
		if err := rows.Scan(&r.Code, &r.Country, &r.Rate, &updatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan rate row")
		}
		if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			r.UpdatedAt = ts
		}
		rates = append(rates, r)
	}
	return rates, errors.Wrap(rows.Err(), "failed while scanning rates")
}
