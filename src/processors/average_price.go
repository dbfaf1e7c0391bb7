// backend/src/processors/average_price.go
package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/utils"
)

type averagePriceCalculatorImpl struct{}

func NewAveragePriceCalculator() AveragePriceCalculator {
	return &averagePriceCalculatorImpl{}
}

// Process fills in AveragePrice = buy cost / buy quantity, truncated to 3
// decimal places, for each position. A position with zero buy quantity
// (shares sold out of a prior year's holdings) gets the undefined marker
// rather than zero.
func (c *averagePriceCalculatorImpl) Process(positions []models.AssetPosition) []models.AssetPosition {
	out := make([]models.AssetPosition, 0, len(positions))
	for _, pos := range positions {
		if pos.BuyQuantity == 0 {
			pos.AveragePrice = decimal.NullDecimal{}
		} else {
			avg := pos.BuyCost.Div(decimal.NewFromInt(pos.BuyQuantity))
			pos.AveragePrice = decimal.NullDecimal{Decimal: utils.RoundDownPrice(avg), Valid: true}
		}
		out = append(out, pos)
	}
	return out
}
