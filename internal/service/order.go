package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/funfair-pos/api/internal/database"
	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/enum"
	"github.com/funfair-pos/api/internal/report"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Errors returned by the order service.
var (
	ErrEmptyItems       = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be > 0")
	ErrInvalidMenuItems = errors.New("some menu items are invalid or inactive")
	ErrOrderNotFound    = errors.New("order not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed by the order lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	NextOrderID(ctx context.Context) (int64, error)
	ListActiveMenuItemsByIDs(ctx context.Context, ids []int64) ([]database.MenuItem, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	GetOrder(ctx context.Context, id int64) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, id int64) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]database.OrderItem, error)
	DeleteAllOrders(ctx context.Context) (int64, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	CustomerName string
	Preorder     bool
	Items        []CreateOrderItemRequest
}

// CreateOrderItemRequest is a single line in the order.
type CreateOrderItemRequest struct {
	MenuItemID int64
	Quantity   int32
}

// OrderFilter narrows list and stats queries. Nil fields are not applied.
type OrderFilter struct {
	Status   *enum.OrderStatus
	Preorder *bool
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	store    OrderStore
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService. store serves reads outside
// transactions; newStore binds a store to each transaction.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, store: store, newStore: newStore}
}

// CreateOrder snapshots the requested menu items and persists the order and
// all of its items in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Resolve menu items (active only) ---
	ids := distinctMenuItemIDs(req.Items)
	rows, err := store.ListActiveMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	menu := make(map[int64]domain.MenuItem, len(rows))
	for _, row := range rows {
		menu[row.ID] = toDomainMenuItem(row)
	}
	if len(menu) != len(ids) {
		return nil, ErrInvalidMenuItems
	}

	// --- Snapshot lines and total ---
	lines := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		lines[i] = domain.SnapshotLine(menu[item.MenuItemID], item.Quantity)
	}
	total := domain.SumLineTotals(lines)

	// --- Allocate id and code ---
	orderID, err := store.NextOrderID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next order id: %w", err)
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		ID:           orderID,
		OrderCode:    domain.OrderCode(orderID),
		CustomerName: optionalText(req.CustomerName),
		Preorder:     req.Preorder,
		TotalPrice:   decimalToNumeric(total),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]database.OrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:    order.ID,
			MenuItemID: pgtype.Int8{Int64: *line.MenuItemID, Valid: true},
			ItemName:   line.ItemName,
			UnitPrice:  decimalToNumeric(line.UnitPrice),
			Quantity:   line.Quantity,
			LineTotal:  decimalToNumeric(line.LineTotal),
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	result, err := toDomainOrder(order, items)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Await moves a NEW order to AWAITING.
func (s *OrderService) Await(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.Await)
}

// Complete moves an AWAITING order to COMPLETED.
func (s *OrderService) Complete(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.Complete)
}

// Cancel moves a NEW order to CANCELED.
func (s *OrderService) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.Cancel)
}

// transition locks the order row, checks the current status against t and
// writes the new status. Totals and items are never touched.
func (s *OrderService) transition(ctx context.Context, orderID int64, t domain.Transition) (*domain.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := store.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order for %s: %w", t.Name, err)
	}

	status, err := enum.ParseOrderStatus(current.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", current.ID, err)
	}

	next, err := t.Apply(status)
	if err != nil {
		return nil, err
	}

	updated, err := store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:     orderID,
		Status: next.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	items, err := store.ListOrderItemsByOrderIDs(ctx, []int64{orderID})
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	result, err := toDomainOrder(updated, items)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder returns a single order with its items.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := s.store.ListOrderItemsByOrderIDs(ctx, []int64{orderID})
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	result, err := toDomainOrder(order, items)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOrders returns matching orders, oldest first, with their items.
func (s *OrderService) ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	params := database.ListOrdersParams{}
	if filter.Status != nil {
		params.Status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	if filter.Preorder != nil {
		params.Preorder = pgtype.Bool{Bool: *filter.Preorder, Valid: true}
	}

	orders, err := s.store.ListOrders(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.store.ListOrderItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	byOrder := make(map[int64][]database.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	result := make([]domain.Order, len(orders))
	for i, o := range orders {
		result[i], err = toDomainOrder(o, byOrder[o.ID])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Stats aggregates the orders matching filter.
func (s *OrderService) Stats(ctx context.Context, filter OrderFilter) (report.Stats, error) {
	orders, err := s.ListOrders(ctx, filter)
	if err != nil {
		return report.Stats{}, err
	}
	return report.Aggregate(orders), nil
}

// DeleteAllOrders removes every order (items cascade) and returns the count.
func (s *OrderService) DeleteAllOrders(ctx context.Context) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	n, err := s.newStore(tx).DeleteAllOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return n, nil
}

// Statuses lists every order status in lifecycle order.
func (s *OrderService) Statuses() []enum.OrderStatus {
	return enum.OrderStatuses()
}

// --- Helpers ---

func distinctMenuItemIDs(items []CreateOrderItemRequest) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}
	return ids
}
