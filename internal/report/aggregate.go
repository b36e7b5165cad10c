package report

import (
	"github.com/funfair-pos/api/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemStats is the per-item summary keyed by the snapshot item name.
type ItemStats struct {
	ItemName      string
	TotalQuantity int64
	TotalAmount   decimal.Decimal
}

// Stats summarizes a set of orders.
type Stats struct {
	TotalOrders int
	TotalAmount decimal.Decimal
	// Items are in order of first appearance, not sorted.
	Items []ItemStats
}

// Aggregate totals the line items of orders. The amount comes from the line
// items rather than Order.TotalPrice; the two agree for every stored order.
func Aggregate(orders []domain.Order) Stats {
	stats := Stats{
		TotalOrders: len(orders),
		TotalAmount: decimal.Zero,
		Items:       []ItemStats{},
	}

	index := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			stats.TotalAmount = stats.TotalAmount.Add(item.LineTotal)

			i, ok := index[item.ItemName]
			if !ok {
				i = len(stats.Items)
				index[item.ItemName] = i
				stats.Items = append(stats.Items, ItemStats{
					ItemName:    item.ItemName,
					TotalAmount: decimal.Zero,
				})
			}
			stats.Items[i].TotalQuantity += int64(item.Quantity)
			stats.Items[i].TotalAmount = stats.Items[i].TotalAmount.Add(item.LineTotal)
		}
	}

	return stats
}
