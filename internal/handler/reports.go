package handler

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/enum"
	"github.com/funfair-pos/api/internal/report"
	"github.com/funfair-pos/api/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	reportFilename = "orders_report.xlsx"
	// allStatuses disables the status filter on exports.
	allStatuses = "ALL"
)

// ReportServicer defines the service methods needed by report handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type ReportServicer interface {
	ListOrders(ctx context.Context, filter service.OrderFilter) ([]domain.Order, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	svc ReportServicer
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(svc ReportServicer) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// RegisterRoutes registers report endpoints.
// Expected to be mounted at /reports.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders.xlsx", h.OrdersWorkbook)
}

// OrdersWorkbook handles GET /reports/orders.xlsx?status=.
// Without a status only COMPLETED orders are exported; status=ALL exports every order.
func (h *ReportsHandler) OrdersWorkbook(w http.ResponseWriter, r *http.Request) {
	var filter service.OrderFilter

	switch s := r.URL.Query().Get("status"); {
	case s == "":
		completed := enum.OrderStatusCompleted
		filter.Status = &completed
	case strings.EqualFold(s, allStatuses):
	default:
		status, err := enum.ParseOrderStatus(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		filter.Status = &status
	}

	orders, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, "orders report", err)
		return
	}

	// Buffer the workbook so a render failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := report.WriteOrders(&buf, orders); err != nil {
		writeServiceError(w, "render orders report", err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+reportFilename)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ERROR: write orders report: %v", err)
	}
}
