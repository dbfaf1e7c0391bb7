package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/ceifolio/backend/src/models"
)

// Grouped sample trades with hand-picked fees, matching sampleTrades
// after grouping.
func sampleTaxed(t *testing.T) []models.TaxedTrade {
	mk := func(date, code, desc, side string, qty int64, gross, settlement, emolument string) models.TaxedTrade {
		return models.TaxedTrade{
			GroupedTrade: models.GroupedTrade{
				TradeDate: day(t, date), AssetCode: code, Description: desc,
				Side: side, Quantity: qty, GrossValue: dec(gross),
			},
			SettlementFee: dec(settlement),
			EmolumentFee:  dec(emolument),
		}
	}
	return []models.TaxedTrade{
		mk("2019-02-01", "BOVA11", "ISHARES BOVA CI", models.SideBuy, 20, "10.20", "1", "0.2"),
		mk("2019-02-01", "PETR4", "PETROBRAS PN", models.SideSell, 30, "30.50", "2", "0.3"),
		mk("2019-02-05", "BOVA11", "ISHARES BOVA CI", models.SideBuy, 340, "695.123", "5", "1.3"),
		mk("2019-02-05", "BOVA11", "ISHARES BOVA CI", models.SideSell, 80, "210.34", "4", "0.8"),
		mk("2019-02-05", "PETR4", "PETROBRAS PN", models.SideSell, 50, "80.13", "3", "0.5"),
	}
}

func TestBuySellSplitterFoldsFeesIntoCost(t *testing.T) {
	splits := NewBuySellSplitter().Process(sampleTaxed(t))
	require.Len(t, splits, 5)

	// Buys land in the buy columns, fees included.
	assert.Equal(t, int64(20), splits[0].BuyQuantity)
	assert.Equal(t, "11.4", splits[0].BuyCost.String())
	assert.Equal(t, int64(0), splits[0].SellQuantity)
	assert.True(t, splits[0].SellCost.IsZero())

	assert.Equal(t, int64(340), splits[2].BuyQuantity)
	assert.Equal(t, "701.423", splits[2].BuyCost.String())

	// Sells land in the sell columns, fees likewise added on top.
	assert.Equal(t, int64(30), splits[1].SellQuantity)
	assert.Equal(t, "32.8", splits[1].SellCost.String())
	assert.Equal(t, int64(0), splits[1].BuyQuantity)
	assert.True(t, splits[1].BuyCost.IsZero())

	assert.Equal(t, "215.14", splits[3].SellCost.String())
	assert.Equal(t, "83.63", splits[4].SellCost.String())
}

func TestBuySellSplitterOneToOneInOrder(t *testing.T) {
	taxed := sampleTaxed(t)
	splits := NewBuySellSplitter().Process(taxed)
	require.Len(t, splits, len(taxed))
	for i := range splits {
		assert.Equal(t, taxed[i].TradeDate, splits[i].TradeDate)
		assert.Equal(t, taxed[i].AssetCode, splits[i].AssetCode)
		assert.Equal(t, taxed[i].Description, splits[i].Description)
	}
}

func TestBuySellSplitterEmptyInput(t *testing.T) {
	assert.Empty(t, NewBuySellSplitter().Process(nil))
}
