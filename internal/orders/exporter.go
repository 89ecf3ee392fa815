package orders

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"salesorders-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	SheetOrders = "Orders"
	SheetLines  = "Order Lines"
)

// Exporter dumps the whole store, no filtering or pagination. An empty store
// produces header-only output.
type Exporter struct {
	DB *gorm.DB
}

func (e *Exporter) fetchOrders() ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := e.DB.Order("order_reference asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("could not load orders: %w", err)
	}
	return orders, nil
}

func (e *Exporter) fetchLines() ([]models.SalesOrderLine, error) {
	var lines []models.SalesOrderLine
	if err := e.DB.Order("order_reference asc, id asc").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("could not load order lines: %w", err)
	}
	return lines, nil
}

// Workbook writes every order and order line into a two-sheet xlsx file with
// the same column layout the importer reads, so an export can be re-imported
// as-is.
func (e *Exporter) Workbook() ([]byte, error) {
	orders, err := e.fetchOrders()
	if err != nil {
		return nil, err
	}
	lines, err := e.fetchLines()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetLines); err != nil {
		return nil, err
	}

	if err := writeRow(f, SheetOrders, 1, Headers(OrderColumns)); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := writeRow(f, SheetOrders, i+2, OrderToRow(&orders[i])); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetLines, 1, Headers(LineColumns)); err != nil {
		return nil, err
	}
	for i := range lines {
		if err := writeRow(f, SheetLines, i+2, LineToRow(&lines[i])); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cellName, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cellName, &row)
}

// CSV writes the orders table only, same 21 columns as the orders sheet.
func (e *Exporter) CSV() ([]byte, error) {
	orders, err := e.fetchOrders()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers(OrderColumns)); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := w.Write(OrderToRow(&orders[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("could not write csv: %w", err)
	}
	return buf.Bytes(), nil
}
