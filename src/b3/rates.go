// backend/src/b3/rates.go
package b3

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrRateUnavailable is returned when a trade date falls outside every
// known emolument band. Callers must abort the run rather than default
// the rate.
var ErrRateUnavailable = errors.New("no emolument rate effective for date")

// RateBand is one row of the exchange-published emolument schedule: the
// rate in force between EffectiveFrom and EffectiveTo, both inclusive.
type RateBand struct {
	EffectiveFrom time.Time
	EffectiveTo   time.Time
	Rate          decimal.Decimal
}

// Contains reports whether the band covers the given date.
func (b RateBand) Contains(date time.Time) bool {
	return !date.Before(b.EffectiveFrom) && !date.After(b.EffectiveTo)
}

// RateSource resolves the exchange fee rates for a trade. The settlement
// rate is a single flat rate per run; the emolument rate steps over
// calendar date bands, matching the exchange's published schedules.
type RateSource interface {
	SettlementRate() decimal.Decimal
	EmolumentRate(date time.Time) (decimal.Decimal, error)
}

// TableRateSource resolves emolument rates against an in-memory band
// table. It is a pure lookup: no caching, no side effects.
type TableRateSource struct {
	settlement decimal.Decimal
	bands      []RateBand
}

// NewTableRateSource builds a rate source from a settlement rate and a
// band table. The caller's slice is copied; bands are kept sorted by
// effective-from date.
func NewTableRateSource(settlement decimal.Decimal, bands []RateBand) *TableRateSource {
	sorted := make([]RateBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom.Before(sorted[j].EffectiveFrom)
	})
	return &TableRateSource{settlement: settlement, bands: sorted}
}

// SettlementRate returns the flat settlement rate applied to every trade
// in a run.
func (s *TableRateSource) SettlementRate() decimal.Decimal {
	return s.settlement
}

// EmolumentRate returns the emolument rate in force on the given trade
// date, or ErrRateUnavailable naming the date when no band covers it.
func (s *TableRateSource) EmolumentRate(date time.Time) (decimal.Decimal, error) {
	for _, band := range s.bands {
		if band.Contains(date) {
			return band.Rate, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("trade date %s: %w", date.Format("2006-01-02"), ErrRateUnavailable)
}

// currentSettlementRate is the B3 settlement (liquidação) rate for spot
// equity trades at the time of writing.
var currentSettlementRate = decimal.RequireFromString("0.000275")

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// defaultBands is the built-in emolument (emolumentos) schedule, per the
// fee tables published by B3 for spot equity trading.
var defaultBands = []RateBand{
	{EffectiveFrom: mustDate("2019-01-02"), EffectiveTo: mustDate("2019-01-31"), Rate: decimal.RequireFromString("0.00004032")},
	{EffectiveFrom: mustDate("2019-02-01"), EffectiveTo: mustDate("2019-12-30"), Rate: decimal.RequireFromString("0.00004105")},
	{EffectiveFrom: mustDate("2020-01-02"), EffectiveTo: mustDate("2020-12-30"), Rate: decimal.RequireFromString("0.00003245")},
	{EffectiveFrom: mustDate("2021-01-04"), EffectiveTo: mustDate("2021-12-30"), Rate: decimal.RequireFromString("0.00002976")},
}

// DefaultRateSource returns a rate source backed by the built-in
// schedule. The server mode prefers the database-seeded table (see
// LoadRateBands); the built-in table serves the one-shot CLI mode and
// tests.
func DefaultRateSource() *TableRateSource {
	return NewTableRateSource(currentSettlementRate, defaultBands)
}
