// backend/src/processors/interfaces.go
package processors

import "github.com/username/ceifolio/backend/src/models"

// The pipeline runs as a synchronous chain of pure transformations:
//
//	trades -> TradeGrouper -> FeeCalculator -> BuySellSplitter ->
//	PositionAggregator -> AveragePriceCalculator
//
// Each stage consumes the full output of its predecessor and builds a new
// slice; no stage mutates its input. The only external dependency is the
// FeeCalculator's rate source, and a rate lookup failure aborts the run.

// TradeGrouper collapses same-day executions of one asset and side into a
// single aggregate row.
type TradeGrouper interface {
	Process(trades []models.Trade) []models.GroupedTrade
}

// FeeCalculator annotates grouped trades with settlement and emolument
// fees per the dated rate schedule.
type FeeCalculator interface {
	Process(trades []models.GroupedTrade) ([]models.TaxedTrade, error)
}

// BuySellSplitter expands taxed trades into buy/sell quantity and cost
// columns, folding fees into cost on both sides.
type BuySellSplitter interface {
	Process(trades []models.TaxedTrade) []models.TradeSplit
}

// PositionAggregator regroups splits by asset across all dates, one row
// per asset held.
type PositionAggregator interface {
	Process(splits []models.TradeSplit) []models.AssetPosition
}

// AveragePriceCalculator derives the weighted average acquisition price
// for each aggregated position.
type AveragePriceCalculator interface {
	Process(positions []models.AssetPosition) []models.AssetPosition
}
