package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/enum"
	"github.com/funfair-pos/api/internal/report"
	"github.com/funfair-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, filter service.OrderFilter) ([]domain.Order, error)
	Await(ctx context.Context, orderID int64) (*domain.Order, error)
	Complete(ctx context.Context, orderID int64) (*domain.Order, error)
	Cancel(ctx context.Context, orderID int64) (*domain.Order, error)
	DeleteAllOrders(ctx context.Context) (int64, error)
	Stats(ctx context.Context, filter service.OrderFilter) (report.Stats, error)
	Statuses() []enum.OrderStatus
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/", h.DeleteAll)
	r.Get("/statuses", h.Statuses)
	r.Get("/stats", h.Stats)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/await", h.transition("await order", h.svc.Await))
	r.Post("/{id}/complete", h.transition("complete order", h.svc.Complete))
	r.Post("/{id}/cancel", h.transition("cancel order", h.svc.Cancel))
}

// --- Request / Response types ---

type createOrderRequest struct {
	CustomerName string                   `json:"customer_name"`
	Preorder     bool                     `json:"preorder"`
	Items        []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int32 `json:"quantity"`
}

type orderResponse struct {
	ID           int64               `json:"id"`
	OrderCode    string              `json:"order_code"`
	CustomerName *string             `json:"customer_name"`
	Status       enum.OrderStatus    `json:"status"`
	Preorder     bool                `json:"preorder"`
	TotalPrice   string              `json:"total_price"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Items        []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID         int64  `json:"id"`
	MenuItemID *int64 `json:"menu_item_id"`
	ItemName   string `json:"item_name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int32  `json:"quantity"`
	LineTotal  string `json:"line_total"`
}

type statsResponse struct {
	TotalOrders int                 `json:"total_orders"`
	TotalAmount string              `json:"total_amount"`
	Items       []itemStatsResponse `json:"items"`
}

type itemStatsResponse struct {
	ItemName      string `json:"item_name"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalAmount   string `json:"total_amount"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items := make([]service.CreateOrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateOrderItemRequest{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		CustomerName: req.CustomerName,
		Preorder:     req.Preorder,
		Items:        items,
	})
	if err != nil {
		writeServiceError(w, "create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /orders?status=&preorder=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseOrderFilter(w, r)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, "list orders", err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, "get order", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

// transition adapts one lifecycle operation to POST /orders/{id}/<action>.
func (h *OrderHandler) transition(op string, apply func(context.Context, int64) (*domain.Order, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseIDParam(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
			return
		}

		order, err := apply(r.Context(), orderID)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(*order))
	}
}

// Statuses handles GET /orders/statuses.
func (h *OrderHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Statuses())
}

// Stats handles GET /orders/stats?status=&preorder=.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseOrderFilter(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), filter)
	if err != nil {
		writeServiceError(w, "order stats", err)
		return
	}

	resp := statsResponse{
		TotalOrders: stats.TotalOrders,
		TotalAmount: stats.TotalAmount.StringFixed(2),
		Items:       make([]itemStatsResponse, len(stats.Items)),
	}
	for i, item := range stats.Items {
		resp.Items[i] = itemStatsResponse{
			ItemName:      item.ItemName,
			TotalQuantity: item.TotalQuantity,
			TotalAmount:   item.TotalAmount.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteAll handles DELETE /orders.
func (h *OrderHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteAllOrders(r.Context())
	if err != nil {
		writeServiceError(w, "delete orders", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Deleted %d orders", n)})
}

// --- Helpers ---

// parseOrderFilter reads the status and preorder query parameters. It writes
// the error response itself and reports whether to continue.
func parseOrderFilter(w http.ResponseWriter, r *http.Request) (service.OrderFilter, bool) {
	var filter service.OrderFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := enum.ParseOrderStatus(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return filter, false
		}
		filter.Status = &status
	}

	preorder, err := parseOptionalBool(r.URL.Query().Get("preorder"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "preorder must be a boolean"})
		return filter, false
	}
	filter.Preorder = preorder

	return filter, true
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:           o.ID,
		OrderCode:    o.OrderCode,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Preorder:     o.Preorder,
		TotalPrice:   o.TotalPrice.StringFixed(2),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        make([]orderItemResponse, len(o.Items)),
	}
	for i, item := range o.Items {
		resp.Items[i] = orderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			ItemName:   item.ItemName,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			Quantity:   item.Quantity,
			LineTotal:  item.LineTotal.StringFixed(2),
		}
	}
	return resp
}
