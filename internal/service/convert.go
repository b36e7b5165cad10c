package service

import (
	"fmt"

	"github.com/funfair-pos/api/internal/database"
	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/enum"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func toDomainMenuItem(m database.MenuItem) domain.MenuItem {
	item := domain.MenuItem{
		ID:        m.ID,
		Name:      m.Name,
		UnitPrice: numericToDecimal(m.UnitPrice),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.PhotoPath.Valid {
		p := m.PhotoPath.String
		item.PhotoPath = &p
	}
	return item
}

// toDomainOrder is the only place stored status strings become enum values.
func toDomainOrder(o database.Order, items []database.OrderItem) (domain.Order, error) {
	status, err := enum.ParseOrderStatus(o.Status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: %w", o.ID, err)
	}

	order := domain.Order{
		ID:         o.ID,
		OrderCode:  o.OrderCode,
		Status:     status,
		Preorder:   o.Preorder,
		TotalPrice: numericToDecimal(o.TotalPrice),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      make([]domain.OrderItem, len(items)),
	}
	if o.CustomerName.Valid {
		name := o.CustomerName.String
		order.CustomerName = &name
	}

	for i, it := range items {
		order.Items[i] = domain.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ItemName:  it.ItemName,
			UnitPrice: numericToDecimal(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: numericToDecimal(it.LineTotal),
		}
		if it.MenuItemID.Valid {
			id := it.MenuItemID.Int64
			order.Items[i].MenuItemID = &id
		}
	}
	return order, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
