package orders

import (
	"bytes"
	"testing"

	"salesorders-backend/internal/database"
	"salesorders-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

// buildWorkbook creates an in-memory two-sheet xlsx in the import layout.
// Header rows are written automatically.
func buildWorkbook(t *testing.T, orderRows, lineRows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", SheetOrders))
	_, err := f.NewSheet(SheetLines)
	require.NoError(t, err)

	writeTestRows(t, f, SheetOrders, Headers(OrderColumns), orderRows)
	writeTestRows(t, f, SheetLines, Headers(LineColumns), lineRows)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newSingleSheetFile(t *testing.T, orderRows [][]string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetOrders))
	writeTestRows(t, f, SheetOrders, Headers(OrderColumns), orderRows)
	return f
}

func writeTestRows(t *testing.T, f *excelize.File, sheet string, header []string, rows [][]string) {
	t.Helper()

	all := append([][]string{header}, rows...)
	for i, row := range all {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cellName, &vals))
	}
}

// orderRow produces a full 21-column row with the required fields set and
// selected optional columns overridden.
func orderRow(reference, customer string, overrides map[int]string) []string {
	row := make([]string, len(OrderColumns))
	row[0] = "2024-01-01"
	row[1] = customer
	row[2] = "USD"
	row[3] = reference
	row[4] = "Jane"
	row[5] = "Confirmed"
	row[6] = "1000"
	for i, v := range overrides {
		row[i] = v
	}
	return row
}

func lineRow(reference, product, qty, price, cost string) []string {
	return []string{reference, product, qty, price, cost, "", ""}
}

func seedOrder(t *testing.T, db *gorm.DB, reference, customer string) *models.SalesOrder {
	t.Helper()

	order, err := OrderFromRow(orderRow(reference, customer, nil))
	require.NoError(t, err)
	require.NoError(t, db.Create(order).Error)
	return order
}
