package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/funfair-pos/api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func readWorkbook(t *testing.T, orders []domain.Order) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteOrders(&buf, orders); err != nil {
		t.Fatalf("WriteOrders: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("get %s: %v", cell, err)
	}
	return v
}

func assertCell(t *testing.T, f *excelize.File, cell, want string) {
	t.Helper()
	if got := cellValue(t, f, cell); got != want {
		t.Errorf("%s: got %q, want %q", cell, got, want)
	}
}

func assertMoneyCell(t *testing.T, f *excelize.File, cell, want string) {
	t.Helper()
	got := cellValue(t, f, cell)
	if !dec(got).Equal(dec(want)) {
		t.Errorf("%s: got %s, want %s", cell, got, want)
	}
}

func TestWriteOrders_Layout(t *testing.T) {
	created := time.Date(2026, 7, 4, 13, 5, 9, 0, time.UTC)
	customer := "Alice"

	o1 := testOrder(1, line("Burger", "5.00", 2), line("Fries", "2.00", 1))
	o1.CustomerName = &customer
	o1.CreatedAt = created
	o2 := testOrder(2, line("Burger", "5.00", 1))
	o2.CreatedAt = created.Add(time.Minute)

	f := readWorkbook(t, []domain.Order{o1, o2})

	if f.GetSheetName(0) != SheetName {
		t.Fatalf("sheet name: got %q, want %q", f.GetSheetName(0), SheetName)
	}

	// Header
	assertCell(t, f, "A1", "Order ID")
	assertCell(t, f, "F1", "Item Name")
	assertCell(t, f, "I1", "Line Total")

	// One row per (order, item)
	assertCell(t, f, "A2", "1")
	assertCell(t, f, "B2", "ORD-0001")
	assertCell(t, f, "C2", "2026-07-04 13:05:09")
	assertCell(t, f, "D2", "Alice")
	assertCell(t, f, "E2", "COMPLETED")
	assertCell(t, f, "F2", "Burger")
	assertCell(t, f, "G2", "2")
	assertMoneyCell(t, f, "H2", "5.00")
	assertMoneyCell(t, f, "I2", "10.00")

	assertCell(t, f, "B3", "ORD-0001")
	assertCell(t, f, "F3", "Fries")

	assertCell(t, f, "B4", "ORD-0002")
	assertCell(t, f, "D4", "")

	// Totals: last data row 4, +2
	assertCell(t, f, "A6", "Total Amount:")
	assertMoneyCell(t, f, "B6", "17.00")

	// Item summary: +2 title, +1 header, then items in first-encounter order
	assertCell(t, f, "A8", "Item Summary")
	assertCell(t, f, "A9", "Item Name")
	assertCell(t, f, "B9", "Total Quantity")
	assertCell(t, f, "A10", "Burger")
	assertCell(t, f, "B10", "3")
	assertMoneyCell(t, f, "C10", "15.00")
	assertCell(t, f, "A11", "Fries")
	assertCell(t, f, "B11", "1")
	assertMoneyCell(t, f, "C11", "2.00")
}

func TestWriteOrders_Empty(t *testing.T) {
	f := readWorkbook(t, nil)

	assertCell(t, f, "A1", "Order ID")
	assertCell(t, f, "A3", "Total Amount:")
	assertMoneyCell(t, f, "B3", "0")
	assertCell(t, f, "A5", "Item Summary")
	assertCell(t, f, "A6", "Item Name")
	assertCell(t, f, "A7", "")
}

func TestWriteOrders_ColumnWidths(t *testing.T) {
	long := "Extra Large Double Cheese Burger Deluxe"
	f := readWorkbook(t, []domain.Order{testOrder(1, line(long, "9.99", 1))})

	w, err := f.GetColWidth(SheetName, "F")
	if err != nil {
		t.Fatalf("col width: %v", err)
	}
	if w < float64(len(long)) {
		t.Errorf("column F width %v too narrow for %d chars", w, len(long))
	}

	w, err = f.GetColWidth(SheetName, "G")
	if err != nil {
		t.Fatalf("col width: %v", err)
	}
	if w < minColumnWidth {
		t.Errorf("column G width %v below minimum %d", w, minColumnWidth)
	}
}
