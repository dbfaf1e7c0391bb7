// backend/src/processors/positions.go
package processors

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/ceifolio/backend/src/models"
)

type positionAggregatorImpl struct{}

func NewPositionAggregator() PositionAggregator {
	return &positionAggregatorImpl{}
}

// Process partitions splits by asset code and sums the four buy/sell
// columns independently. The description is carried from the first split
// of each asset in input order. Output is sorted ascending by asset
// code. Aggregating already-aggregated rows is a no-op.
func (a *positionAggregatorImpl) Process(splits []models.TradeSplit) []models.AssetPosition {
	byAsset := make(map[string]*models.AssetPosition)
	for _, s := range splits {
		pos, ok := byAsset[s.AssetCode]
		if !ok {
			pos = &models.AssetPosition{
				AssetCode:   s.AssetCode,
				Description: s.Description,
				BuyCost:     decimal.Zero,
				SellCost:    decimal.Zero,
			}
			byAsset[s.AssetCode] = pos
		}
		pos.BuyQuantity += s.BuyQuantity
		pos.BuyCost = pos.BuyCost.Add(s.BuyCost)
		pos.SellQuantity += s.SellQuantity
		pos.SellCost = pos.SellCost.Add(s.SellCost)
	}

	positions := make([]models.AssetPosition, 0, len(byAsset))
	for _, pos := range byAsset {
		positions = append(positions, *pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].AssetCode < positions[j].AssetCode
	})
	return positions
}
