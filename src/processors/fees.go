// backend/src/processors/fees.go
package processors

import (
	"fmt"

	"github.com/username/ceifolio/backend/src/b3"
	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/utils"
)

type feeCalculatorImpl struct {
	rates b3.RateSource
}

func NewFeeCalculator(rates b3.RateSource) FeeCalculator {
	return &feeCalculatorImpl{rates: rates}
}

// Process appends the settlement and emolument fee columns to each
// grouped trade, preserving input order. The settlement rate is flat for
// the whole run; the emolument rate is resolved per trade date against
// the exchange's band schedule. Each fee is truncated to 2 decimal
// places independently. A date with no known emolument band aborts the
// run.
func (c *feeCalculatorImpl) Process(trades []models.GroupedTrade) ([]models.TaxedTrade, error) {
	settlementRate := c.rates.SettlementRate()

	taxed := make([]models.TaxedTrade, 0, len(trades))
	for _, t := range trades {
		emolumentRate, err := c.rates.EmolumentRate(t.TradeDate)
		if err != nil {
			return nil, fmt.Errorf("resolving emolument rate: %w", err)
		}
		taxed = append(taxed, models.TaxedTrade{
			GroupedTrade:  t,
			SettlementFee: utils.RoundDownMoney(t.GrossValue.Mul(settlementRate)),
			EmolumentFee:  utils.RoundDownMoney(t.GrossValue.Mul(emolumentRate)),
		})
	}
	return taxed, nil
}
