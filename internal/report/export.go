package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/funfair-pos/api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet holding the order report.
	SheetName = "Orders"
	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	createdAtLayout = "2006-01-02 15:04:05"
	minColumnWidth  = 12
	headerFill      = "DCE6F1"
	// numFmt 2 is the built-in "0.00" format.
	moneyNumFmt = 2
)

var orderHeaders = []interface{}{
	"Order ID",
	"Order Code",
	"Created At",
	"Customer",
	"Status",
	"Item Name",
	"Quantity",
	"Unit Price",
	"Line Total",
}

var summaryHeaders = []interface{}{"Item Name", "Total Quantity", "Total Amount"}

// WriteOrders renders orders as an XLSX workbook: one row per order line,
// then the grand total, then the per-item summary from Aggregate.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := newSheetWriter(f)
	if err != nil {
		return err
	}
	if err := sw.write(orders, Aggregate(orders)); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	moneyStyle  int
	boldStyle   int
	widths      map[int]int
}

func newSheetWriter(f *excelize.File) (*sheetWriter, error) {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("bold style: %w", err)
	}

	return &sheetWriter{
		f:           f,
		headerStyle: headerStyle,
		moneyStyle:  moneyStyle,
		boldStyle:   boldStyle,
		widths:      make(map[int]int),
	}, nil
}

func (sw *sheetWriter) write(orders []domain.Order, stats Stats) error {
	row := 1
	if err := sw.setRow(row, orderHeaders, sw.headerStyle); err != nil {
		return err
	}

	for _, o := range orders {
		customer := ""
		if o.CustomerName != nil {
			customer = *o.CustomerName
		}
		for _, item := range o.Items {
			row++
			values := []interface{}{
				o.ID,
				o.OrderCode,
				o.CreatedAt.Format(createdAtLayout),
				customer,
				o.Status.String(),
				item.ItemName,
				item.Quantity,
				money(item.UnitPrice),
				money(item.LineTotal),
			}
			if err := sw.setRow(row, values, 0); err != nil {
				return err
			}
			if err := sw.styleRange(8, row, 9, row, sw.moneyStyle); err != nil {
				return err
			}
		}
	}

	// Totals section
	row += 2
	if err := sw.setRow(row, []interface{}{"Total Amount:", money(stats.TotalAmount)}, 0); err != nil {
		return err
	}
	if err := sw.styleRange(2, row, 2, row, sw.moneyStyle); err != nil {
		return err
	}

	// Item summary section
	row += 2
	if err := sw.setRow(row, []interface{}{"Item Summary"}, sw.boldStyle); err != nil {
		return err
	}
	row++
	if err := sw.setRow(row, summaryHeaders, sw.headerStyle); err != nil {
		return err
	}
	for _, it := range stats.Items {
		row++
		if err := sw.setRow(row, []interface{}{it.ItemName, it.TotalQuantity, money(it.TotalAmount)}, 0); err != nil {
			return err
		}
		if err := sw.styleRange(3, row, 3, row, sw.moneyStyle); err != nil {
			return err
		}
	}

	return sw.fitColumns()
}

// setRow writes values starting at column A and applies style when non-zero.
func (sw *sheetWriter) setRow(row int, values []interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := sw.f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	for i, v := range values {
		sw.track(i+1, v)
	}
	if style != 0 {
		return sw.styleRange(1, row, len(values), row, style)
	}
	return nil
}

func (sw *sheetWriter) styleRange(col1, row1, col2, row2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return sw.f.SetCellStyle(SheetName, from, to, style)
}

func (sw *sheetWriter) track(col int, v interface{}) {
	n := utf8.RuneCountInString(fmt.Sprint(v))
	if n > sw.widths[col] {
		sw.widths[col] = n
	}
}

func (sw *sheetWriter) fitColumns() error {
	for col, n := range sw.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		width := float64(max(minColumnWidth, n+2))
		if err := sw.f.SetColWidth(SheetName, name, name, width); err != nil {
			return fmt.Errorf("column %s width: %w", name, err)
		}
	}
	return nil
}

// money converts to float64 only at the spreadsheet boundary; all sums are
// done in decimal before this point.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
