//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/funfair-pos/api/internal/config"
	"github.com/funfair-pos/api/internal/database"
	"github.com/funfair-pos/api/internal/report"
	"github.com/funfair-pos/api/internal/router"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/xuri/excelize/v2"
)

// TestIntegrationFlow exercises the full API lifecycle against a real PostgreSQL database.
func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()

	// Start PostgreSQL container
	_, connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	// Run migrations
	runMigrations(t, connStr)

	// Create pgxpool connection
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	mediaRoot := t.TempDir()
	cfg := &config.Config{
		Port:        "8081",
		DatabaseURL: connStr,
		Media: config.MediaConfig{
			Root:           mediaRoot,
			Subdir:         "uploads",
			URLPrefix:      "/media/",
			MaxUploadBytes: 1 << 20,
		},
		CORSAllowedOrigins: []string{"*"},
	}

	r := router.New(cfg, database.New(pool), pool, prometheus.NewRegistry())
	server := httptest.NewServer(r)
	defer server.Close()

	// --- 1. Menu: burger with photo, fries, inactive lemonade ---
	burger := createMenuItem(t, server, "Burger", "5.00", []byte("\x89PNG fake"))
	burgerID := int64(burger["id"].(float64))
	photoURL, _ := burger["photo_url"].(string)
	if photoURL == "" {
		t.Fatal("burger photo_url missing")
	}

	// Photo is served from /media
	resp, err := http.Get(server.URL + photoURL)
	if err != nil {
		t.Fatalf("get photo: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get photo: status %d", resp.StatusCode)
	}

	fries := createMenuItem(t, server, "Fries", "2.00", nil)
	friesID := int64(fries["id"].(float64))

	lemonade := createMenuItem(t, server, "Lemonade", "2.25", nil)
	lemonadeID := int64(lemonade["id"].(float64))
	updateMenuItem(t, server, lemonadeID, map[string]string{"is_active": "false"})

	// --- 2. Order with an inactive item is rejected and nothing is stored ---
	status, body := httpJSON(t, server, "POST", "/orders", map[string]interface{}{
		"customer_name": "Mallory",
		"items": []map[string]interface{}{
			{"menu_item_id": burgerID, "quantity": 1},
			{"menu_item_id": lemonadeID, "quantity": 1},
		},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("inactive item order: status %d, body %v", status, body)
	}
	assertCount(t, ctx, pool, "orders", 0)
	assertCount(t, ctx, pool, "order_items", 0)

	// --- 3. Valid order: 3 burgers + 1 fries = 17.00 ---
	status, order := httpJSON(t, server, "POST", "/orders", map[string]interface{}{
		"customer_name": "Alice",
		"items": []map[string]interface{}{
			{"menu_item_id": burgerID, "quantity": 3},
			{"menu_item_id": friesID, "quantity": 1},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create order: status %d, body %v", status, order)
	}
	orderID := int64(order["id"].(float64))
	if order["total_price"] != "17.00" || order["status"] != "NEW" {
		t.Fatalf("order: got %v", order)
	}
	if order["order_code"] != fmt.Sprintf("ORD-%04d", orderID) {
		t.Fatalf("order_code: got %v", order["order_code"])
	}

	// --- 4. Price change does not alter the stored order ---
	updateMenuItem(t, server, burgerID, map[string]string{"unit_price": "9.00", "name": "Deluxe Burger"})
	_, got := httpJSON(t, server, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	if got["total_price"] != "17.00" {
		t.Fatalf("snapshot total changed: %v", got["total_price"])
	}
	firstItem := got["items"].([]interface{})[0].(map[string]interface{})
	if firstItem["item_name"] != "Burger" || firstItem["unit_price"] != "5.00" {
		t.Fatalf("snapshot item changed: %v", firstItem)
	}

	// --- 5. Lifecycle: complete from NEW is rejected, await then complete ---
	status, body = httpJSON(t, server, "POST", fmt.Sprintf("/orders/%d/complete", orderID), nil)
	if status != http.StatusBadRequest || body["error"] != "only AWAITING orders can be completed" {
		t.Fatalf("complete from NEW: status %d, body %v", status, body)
	}
	if status, body = httpJSON(t, server, "POST", fmt.Sprintf("/orders/%d/await", orderID), nil); status != http.StatusOK {
		t.Fatalf("await: status %d, body %v", status, body)
	}
	if status, body = httpJSON(t, server, "POST", fmt.Sprintf("/orders/%d/complete", orderID), nil); status != http.StatusOK || body["status"] != "COMPLETED" {
		t.Fatalf("complete: status %d, body %v", status, body)
	}

	// --- 6. A second order that gets canceled ---
	status, second := httpJSON(t, server, "POST", "/orders", map[string]interface{}{
		"preorder": true,
		"items":    []map[string]interface{}{{"menu_item_id": friesID, "quantity": 2}},
	})
	if status != http.StatusCreated {
		t.Fatalf("create second order: status %d, body %v", status, second)
	}
	secondID := int64(second["id"].(float64))
	if status, body = httpJSON(t, server, "POST", fmt.Sprintf("/orders/%d/cancel", secondID), nil); status != http.StatusOK {
		t.Fatalf("cancel: status %d, body %v", status, body)
	}

	// --- 6b. Listing follows created_at, not id or insertion order ---
	if _, err := pool.Exec(ctx, `UPDATE orders SET created_at = now() - interval '1 hour' WHERE id = $1`, secondID); err != nil {
		t.Fatalf("backdate order: %v", err)
	}
	listed := httpJSONList(t, server, "/orders")
	if len(listed) != 2 || int64(listed[0]["id"].(float64)) != secondID || int64(listed[1]["id"].(float64)) != orderID {
		t.Fatalf("list order: got %v", listed)
	}

	// --- 7. Stats over completed orders ---
	_, stats := httpJSON(t, server, "GET", "/orders/stats?status=COMPLETED", nil)
	if stats["total_orders"] != float64(1) || stats["total_amount"] != "17.00" {
		t.Fatalf("stats: got %v", stats)
	}

	// --- 8. Deleting a menu item keeps order history ---
	if status, body = httpJSON(t, server, "DELETE", fmt.Sprintf("/menu/%d", burgerID), nil); status != http.StatusOK {
		t.Fatalf("delete menu item: status %d, body %v", status, body)
	}
	if entries, _ := os.ReadDir(filepath.Join(mediaRoot, "uploads")); len(entries) != 0 {
		t.Errorf("photo not removed: %d files left", len(entries))
	}
	_, got = httpJSON(t, server, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	firstItem = got["items"].([]interface{})[0].(map[string]interface{})
	if firstItem["menu_item_id"] != float64(burgerID) || firstItem["item_name"] != "Burger" {
		t.Fatalf("history after menu delete: %v", firstItem)
	}

	// --- 9. XLSX export defaults to COMPLETED ---
	verifyExport(t, server, orderID)

	// --- 10. Delete all orders ---
	status, body = httpJSON(t, server, "DELETE", "/orders", nil)
	if status != http.StatusOK || body["message"] != "Deleted 2 orders" {
		t.Fatalf("delete all: status %d, body %v", status, body)
	}
	assertCount(t, ctx, pool, "order_items", 0)
}

func setupPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("funfair_test"),
		tcpostgres.WithUsername("funfair"),
		tcpostgres.WithPassword("funfair"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}

	return pgContainer, connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	// Connect with stdlib for migrate
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Go test sets cwd to the package directory.
	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

func assertCount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, table string, want int) {
	t.Helper()
	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	if n != want {
		t.Fatalf("%s rows: got %d, want %d", table, n, want)
	}
}

func createMenuItem(t *testing.T, server *httptest.Server, name, price string, photo []byte) map[string]interface{} {
	t.Helper()
	status, body := httpMultipart(t, server, "POST", "/menu", map[string]string{"name": name, "unit_price": price}, photo)
	if status != http.StatusCreated {
		t.Fatalf("create menu item %s: status %d, body %v", name, status, body)
	}
	return body
}

func updateMenuItem(t *testing.T, server *httptest.Server, id int64, fields map[string]string) map[string]interface{} {
	t.Helper()
	status, body := httpMultipart(t, server, "PUT", fmt.Sprintf("/menu/%d", id), fields, nil)
	if status != http.StatusOK {
		t.Fatalf("update menu item %d: status %d, body %v", id, status, body)
	}
	return body
}

func verifyExport(t *testing.T, server *httptest.Server, completedID int64) {
	t.Helper()

	resp, err := http.Get(server.URL + "/reports/orders.xlsx")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get report: status %d", resp.StatusCode)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	// Header + two item lines of the single completed order.
	if len(rows) < 3 || rows[1][1] != fmt.Sprintf("ORD-%04d", completedID) || rows[2][1] != rows[1][1] {
		t.Fatalf("unexpected report rows: %v", rows)
	}
}

func httpMultipart(t *testing.T, server *httptest.Server, method, path string, fields map[string]string, photo []byte) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(method, server.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return sendJSON(t, req)
}

func httpJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return sendJSON(t, req)
}

func httpJSONList(t *testing.T, server *httptest.Server, path string) []map[string]interface{} {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}

	var out []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode GET %s: %v", path, err)
	}
	return out
}

func sendJSON(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		t.Fatalf("decode %s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp.StatusCode, out
}
