package orders

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"salesorders-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type WarningReason string

const (
	ReasonBadValue      WarningReason = "bad_value"
	ReasonOrderNotFound WarningReason = "order_not_found"
)

// RowWarning describes one skipped row. Row numbers are 1-based as shown in a
// spreadsheet editor, so the first data row is row 2.
type RowWarning struct {
	Sheet   string        `json:"sheet"`
	Row     int           `json:"row"`
	Reason  WarningReason `json:"reason"`
	Message string        `json:"message"`
}

type ImportResult struct {
	OrdersImported int          `json:"orders_imported"`
	LinesImported  int          `json:"lines_imported"`
	Warnings       []RowWarning `json:"warnings"`
}

// Importer loads a workbook into the store. Orders are upserted by reference;
// order lines use replace-on-import: the first time a reference appears in the
// lines sheet its existing lines are deleted, so re-running the same file does
// not duplicate them.
type Importer struct {
	DB *gorm.DB

	// When false only the first sheet (orders) is read.
	ImportLines bool
}

// Import runs the whole workbook. Only file-level problems return an error;
// every row-level problem becomes a warning in the result. There is no batch
// transaction: rows committed before a failure stay committed.
func (imp *Importer) Import(filename string, r io.Reader) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".xlsx" {
		return nil, ErrUnsupportedFormat
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingSheet
	}
	if imp.ImportLines && len(sheets) < 2 {
		return nil, ErrMissingSheet
	}

	result := &ImportResult{Warnings: make([]RowWarning, 0)}

	// Orders first: the lines sheet references them by value.
	if err := imp.importOrders(f, sheets[0], result); err != nil {
		return nil, err
	}
	if imp.ImportLines {
		if err := imp.importLines(f, sheets[1], result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (imp *Importer) importOrders(f *excelize.File, sheet string, result *ImportResult) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}

	for i, row := range rows {
		if i == 0 || RowIsBlank(row) { // header row, blank rows
			continue
		}

		order, err := OrderFromRow(row)
		if err != nil {
			result.Warnings = append(result.Warnings, RowWarning{
				Sheet:   sheet,
				Row:     i + 1,
				Reason:  ReasonBadValue,
				Message: err.Error(),
			})
			continue
		}

		if err := imp.upsertOrder(order); err != nil {
			result.Warnings = append(result.Warnings, RowWarning{
				Sheet:   sheet,
				Row:     i + 1,
				Reason:  ReasonBadValue,
				Message: fmt.Sprintf("could not save order: %v", err),
			})
			continue
		}

		result.OrdersImported++
	}

	return nil
}

// upsertOrder creates the order or overwrites every field of an existing one.
// The reference itself is the key and is never rewritten.
func (imp *Importer) upsertOrder(order *models.SalesOrder) error {
	var existing models.SalesOrder
	err := imp.DB.First(&existing, "order_reference = ?", order.OrderReference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return imp.DB.Create(order).Error
	}
	if err != nil {
		return err
	}

	order.CreatedAt = existing.CreatedAt
	return imp.DB.Save(order).Error
}

func (imp *Importer) importLines(f *excelize.File, sheet string, result *ImportResult) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}

	// References whose previous lines were already cleared during this run.
	cleared := make(map[string]bool)

	for i, row := range rows {
		if i == 0 || RowIsBlank(row) {
			continue
		}

		line, err := LineFromRow(row)
		if err != nil {
			result.Warnings = append(result.Warnings, RowWarning{
				Sheet:   sheet,
				Row:     i + 1,
				Reason:  ReasonBadValue,
				Message: err.Error(),
			})
			continue
		}

		// Lines are never created without their parent.
		var count int64
		imp.DB.Model(&models.SalesOrder{}).
			Where("order_reference = ?", line.OrderReference).
			Count(&count)
		if count == 0 {
			result.Warnings = append(result.Warnings, RowWarning{
				Sheet:   sheet,
				Row:     i + 1,
				Reason:  ReasonOrderNotFound,
				Message: fmt.Sprintf("no order with reference %q", line.OrderReference),
			})
			continue
		}

		if !cleared[line.OrderReference] {
			if err := imp.DB.Where("order_reference = ?", line.OrderReference).
				Delete(&models.SalesOrderLine{}).Error; err != nil {
				return err
			}
			cleared[line.OrderReference] = true
		}

		if err := imp.DB.Create(line).Error; err != nil {
			result.Warnings = append(result.Warnings, RowWarning{
				Sheet:   sheet,
				Row:     i + 1,
				Reason:  ReasonBadValue,
				Message: fmt.Sprintf("could not save line: %v", err),
			})
			continue
		}

		result.LinesImported++
	}

	return nil
}
