package b3

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSeededDB(t *testing.T, seed bool) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE emolument_rates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		effective_from TEXT NOT NULL,
		effective_to TEXT NOT NULL,
		rate TEXT NOT NULL
	)`)
	require.NoError(t, err)

	if seed {
		_, err = db.Exec(`INSERT INTO emolument_rates (effective_from, effective_to, rate) VALUES
			('2019-02-01', '2019-12-30', '0.00004105'),
			('2019-01-02', '2019-01-31', '0.00004032')`)
		require.NoError(t, err)
	}
	return db
}

func TestLoadRateBandsParsesSeededRows(t *testing.T) {
	db := openSeededDB(t, true)

	bands, err := LoadRateBands(db)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	// Ordered by effective_from regardless of insert order.
	assert.Equal(t, date(t, "2019-01-02"), bands[0].EffectiveFrom)
	assert.Equal(t, "0.00004032", bands[0].Rate.String())
	assert.Equal(t, date(t, "2019-02-01"), bands[1].EffectiveFrom)
	assert.Equal(t, date(t, "2019-12-30"), bands[1].EffectiveTo)
	assert.Equal(t, "0.00004105", bands[1].Rate.String())
}

func TestLoadRateBandsRejectsMalformedRate(t *testing.T) {
	db := openSeededDB(t, false)
	_, err := db.Exec(`INSERT INTO emolument_rates (effective_from, effective_to, rate) VALUES
		('2019-01-02', '2019-01-31', 'not-a-rate')`)
	require.NoError(t, err)

	_, err = LoadRateBands(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-rate")
}

func TestNewStoreRateSourceRequiresSeededTable(t *testing.T) {
	db := openSeededDB(t, false)
	_, err := NewStoreRateSource(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNewStoreRateSourceResolvesFromStore(t *testing.T) {
	db := openSeededDB(t, true)
	src, err := NewStoreRateSource(db)
	require.NoError(t, err)

	rate, err := src.EmolumentRate(date(t, "2019-06-03"))
	require.NoError(t, err)
	assert.Equal(t, "0.00004105", rate.String())
	assert.Equal(t, "0.000275", src.SettlementRate().String())
}
