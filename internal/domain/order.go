package domain

import (
	"fmt"
	"time"

	"github.com/funfair-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// OrderCodePrefix is prepended to the zero-padded order ID.
const OrderCodePrefix = "ORD-"

// MenuItem is a sellable item in the catalog.
type MenuItem struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	IsActive  bool
	PhotoPath *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is a customer order with its line items.
type Order struct {
	ID           int64
	OrderCode    string
	CustomerName *string
	Status       enum.OrderStatus
	Preorder     bool
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []OrderItem
}

// OrderItem is one line of an order. Name and UnitPrice are snapshots taken
// when the order was placed; MenuItemID may point at a deleted menu item.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID *int64
	ItemName   string
	UnitPrice  decimal.Decimal
	Quantity   int32
	LineTotal  decimal.Decimal
}

// OrderCode derives the display code for an order ID, e.g. 7 -> "ORD-0007".
func OrderCode(id int64) string {
	return fmt.Sprintf("%s%04d", OrderCodePrefix, id)
}

// SnapshotLine freezes the menu item's current name and price into a new
// order line. Quantity must already be validated as positive.
func SnapshotLine(item MenuItem, quantity int32) OrderItem {
	menuItemID := item.ID
	return OrderItem{
		MenuItemID: &menuItemID,
		ItemName:   item.Name,
		UnitPrice:  item.UnitPrice,
		Quantity:   quantity,
		LineTotal:  LineTotal(item.UnitPrice, quantity),
	}
}

// LineTotal is unit price × quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int32) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt32(quantity))
}

// SumLineTotals adds up the line totals of items.
func SumLineTotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}
