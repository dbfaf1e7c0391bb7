// backend/src/processors/splitter.go
package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/ceifolio/backend/src/models"
)

type buySellSplitterImpl struct{}

func NewBuySellSplitter() BuySellSplitter {
	return &buySellSplitterImpl{}
}

// Process maps each taxed trade to a split row, one-to-one and in order.
// Total cost is gross value plus both fees on either side; a sale's
// recorded cost is the fee-inclusive figure, not net proceeds.
func (s *buySellSplitterImpl) Process(trades []models.TaxedTrade) []models.TradeSplit {
	splits := make([]models.TradeSplit, 0, len(trades))
	for _, t := range trades {
		totalCost := t.GrossValue.Add(t.SettlementFee).Add(t.EmolumentFee)
		split := models.TradeSplit{
			TradeDate:   t.TradeDate,
			AssetCode:   t.AssetCode,
			Description: t.Description,
			BuyCost:     decimal.Zero,
			SellCost:    decimal.Zero,
		}
		if t.Side == models.SideBuy {
			split.BuyQuantity = t.Quantity
			split.BuyCost = totalCost
		} else {
			split.SellQuantity = t.Quantity
			split.SellCost = totalCost
		}
		splits = append(splits, split)
	}
	return splits
}
