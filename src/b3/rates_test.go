package b3

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestDefaultRateSourceResolvesBands(t *testing.T) {
	src := DefaultRateSource()

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "first 2019 band", date: "2019-01-15", want: "0.00004032"},
		{name: "second 2019 band", date: "2019-06-03", want: "0.00004105"},
		{name: "2020 band", date: "2020-07-01", want: "0.00003245"},
		{name: "2021 band", date: "2021-03-10", want: "0.00002976"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := src.EmolumentRate(date(t, tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rate.String())
		})
	}
}

func TestBandBoundariesAreInclusive(t *testing.T) {
	src := DefaultRateSource()

	first, err := src.EmolumentRate(date(t, "2019-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "0.00004105", first.String())

	last, err := src.EmolumentRate(date(t, "2019-12-30"))
	require.NoError(t, err)
	assert.Equal(t, "0.00004105", last.String())
}

func TestEmolumentRateUnavailableNamesDate(t *testing.T) {
	src := DefaultRateSource()

	tests := []struct {
		name string
		date string
	}{
		{name: "before all bands", date: "2018-12-28"},
		{name: "gap between years", date: "2019-12-31"},
		{name: "after all bands", date: "2022-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.EmolumentRate(date(t, tt.date))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRateUnavailable)
			assert.Contains(t, err.Error(), tt.date)
		})
	}
}

func TestSettlementRateIsFlat(t *testing.T) {
	src := DefaultRateSource()
	assert.Equal(t, "0.000275", src.SettlementRate().String())
}

func TestNewTableRateSourceSortsBands(t *testing.T) {
	bands := []RateBand{
		{EffectiveFrom: date(t, "2021-01-04"), EffectiveTo: date(t, "2021-12-30"), Rate: decimal.RequireFromString("0.2")},
		{EffectiveFrom: date(t, "2019-01-02"), EffectiveTo: date(t, "2019-12-30"), Rate: decimal.RequireFromString("0.1")},
	}
	src := NewTableRateSource(decimal.RequireFromString("0.000275"), bands)

	rate, err := src.EmolumentRate(date(t, "2019-06-01"))
	require.NoError(t, err)
	assert.Equal(t, "0.1", rate.String())

	// The caller's slice is copied, not reordered in place.
	assert.Equal(t, date(t, "2021-01-04"), bands[0].EffectiveFrom)
}
