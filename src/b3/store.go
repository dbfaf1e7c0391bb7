// backend/src/b3/store.go
package b3

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LoadRateBands reads the emolument band table seeded by the database
// migrations. Dates and rates are stored as text and parsed here; rates
// never pass through binary floating point.
func LoadRateBands(db *sql.DB) ([]RateBand, error) {
	rows, err := db.Query(`SELECT effective_from, effective_to, rate FROM emolument_rates ORDER BY effective_from`)
	if err != nil {
		return nil, fmt.Errorf("querying emolument_rates: %w", err)
	}
	defer rows.Close()

	var bands []RateBand
	for rows.Next() {
		var fromStr, toStr, rateStr string
		if err := rows.Scan(&fromStr, &toStr, &rateStr); err != nil {
			return nil, fmt.Errorf("scanning emolument_rates row: %w", err)
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_from %q: %w", fromStr, err)
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_to %q: %w", toStr, err)
		}
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", rateStr, err)
		}
		bands = append(bands, RateBand{EffectiveFrom: from, EffectiveTo: to, Rate: rate})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emolument_rates rows: %w", err)
	}
	return bands, nil
}

// NewStoreRateSource builds a rate source from the database-seeded band
// table. An empty or missing table is an error, never a silent fallback
// to the built-in schedule.
func NewStoreRateSource(db *sql.DB) (*TableRateSource, error) {
	bands, err := LoadRateBands(db)
	if err != nil {
		return nil, err
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("emolument_rates table is empty; run migrations")
	}
	return NewTableRateSource(currentSettlementRate, bands), nil
}
