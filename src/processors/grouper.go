// backend/src/processors/grouper.go
package processors

import (
	"sort"

	"github.com/username/ceifolio/backend/src/models"
)

type tradeGrouperImpl struct{}

func NewTradeGrouper() TradeGrouper {
	return &tradeGrouperImpl{}
}

type groupKey struct {
	date  string
	asset string
	side  string
}

// Process partitions trades by (date, asset code, side), sums quantity
// and gross value within each partition, and emits the groups sorted
// ascending by date, then asset code, then side (BUY before SELL).
// Output order must not depend on input order.
func (g *tradeGrouperImpl) Process(trades []models.Trade) []models.GroupedTrade {
	groups := make(map[groupKey]*models.GroupedTrade)
	for _, t := range trades {
		k := groupKey{date: t.TradeDate.Format("2006-01-02"), asset: t.AssetCode, side: t.Side}
		if grp, ok := groups[k]; ok {
			grp.Quantity += t.Quantity
			grp.GrossValue = grp.GrossValue.Add(t.GrossValue)
			continue
		}
		groups[k] = &models.GroupedTrade{
			TradeDate:   t.TradeDate,
			AssetCode:   t.AssetCode,
			Description: t.Description,
			Side:        t.Side,
			Quantity:    t.Quantity,
			GrossValue:  t.GrossValue,
		}
	}

	grouped := make([]models.GroupedTrade, 0, len(groups))
	for _, grp := range groups {
		grouped = append(grouped, *grp)
	}
	sort.Slice(grouped, func(i, j int) bool {
		if !grouped[i].TradeDate.Equal(grouped[j].TradeDate) {
			return grouped[i].TradeDate.Before(grouped[j].TradeDate)
		}
		if grouped[i].AssetCode != grouped[j].AssetCode {
			return grouped[i].AssetCode < grouped[j].AssetCode
		}
		return grouped[i].Side < grouped[j].Side
	})
	return grouped
}
