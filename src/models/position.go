// backend/src/models/position.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetPosition is the final per-asset row of the holdings report: total
// quantities and fee-inclusive costs on each side, plus the weighted
// average acquisition price. AveragePrice is invalid (JSON null) when the
// period had no buys for the asset; it must render distinctly from zero.
type AssetPosition struct {
	AssetCode    string              `json:"asset_code"`
	Description  string              `json:"description"`
	BuyQuantity  int64               `json:"buy_quantity"`
	BuyCost      decimal.Decimal     `json:"buy_cost"`
	SellQuantity int64               `json:"sell_quantity"`
	SellCost     decimal.Decimal     `json:"sell_cost"`
	AveragePrice decimal.NullDecimal `json:"average_price"`
}

// FeeDetail is one row of the per-trade fee report handed to the
// reporting layer.
type FeeDetail struct {
	TradeDate     time.Time       `json:"trade_date"`
	AssetCode     string          `json:"asset_code"`
	Side          string          `json:"side"`
	GrossValue    decimal.Decimal `json:"gross_value"`
	SettlementFee decimal.Decimal `json:"settlement_fee"`
	EmolumentFee  decimal.Decimal `json:"emolument_fee"`
}
