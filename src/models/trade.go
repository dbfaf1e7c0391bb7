// backend/src/models/trade.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade sides as they appear after normalization of the statement's
// "C/V" column (" C " -> BUY, " V " -> SELL).
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Trade is one execution row from the brokerage statement, already
// normalized by the parser: trimmed strings, parsed date, decimal money.
type Trade struct {
	TradeDate   time.Time       `json:"trade_date"`
	AssetCode   string          `json:"asset_code"`
	Description string          `json:"description"`
	Side        string          `json:"side"`
	Quantity    int64           `json:"quantity"`
	GrossValue  decimal.Decimal `json:"gross_value"`
}

// GroupedTrade is all same-day executions of one asset on one side,
// collapsed into a single row. Quantity and GrossValue are sums; the
// description is shared by every member of the group.
type GroupedTrade struct {
	TradeDate   time.Time       `json:"trade_date"`
	AssetCode   string          `json:"asset_code"`
	Description string          `json:"description"`
	Side        string          `json:"side"`
	Quantity    int64           `json:"quantity"`
	GrossValue  decimal.Decimal `json:"gross_value"`
}

// TaxedTrade is a GroupedTrade annotated with the two exchange fees,
// each already truncated to 2 decimal places.
type TaxedTrade struct {
	GroupedTrade
	SettlementFee decimal.Decimal `json:"settlement_fee"`
	EmolumentFee  decimal.Decimal `json:"emolument_fee"`
}

// TradeSplit decomposes a TaxedTrade into buy and sell columns. Cost is
// gross value plus both fees on either side.
type TradeSplit struct {
	TradeDate    time.Time       `json:"trade_date"`
	AssetCode    string          `json:"asset_code"`
	Description  string          `json:"description"`
	BuyQuantity  int64           `json:"buy_quantity"`
	BuyCost      decimal.Decimal `json:"buy_cost"`
	SellQuantity int64           `json:"sell_quantity"`
	SellCost     decimal.Decimal `json:"sell_cost"`
}
