package orders

import (
	"bytes"
	"encoding/csv"
	"testing"

	"salesorders-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportEmptyStoreIsHeaderOnly(t *testing.T) {
	db := newTestDB(t)
	exp := &Exporter{DB: db}

	data, err := exp.Workbook()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOrders, SheetLines}, f.GetSheetList())

	orderRows, err := f.GetRows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, orderRows, 1)
	assert.Equal(t, Headers(OrderColumns), orderRows[0])

	lineRows, err := f.GetRows(SheetLines)
	require.NoError(t, err)
	require.Len(t, lineRows, 1)
	assert.Equal(t, Headers(LineColumns), lineRows[0])
}

func TestExportImportRoundTrip(t *testing.T) {
	db := newTestDB(t)

	seedOrder(t, db, "SO-100", "Acme")
	seedOrder(t, db, "SO-200", "Globex")

	line, err := LineFromRow(lineRow("SO-100", "Widget", "10", "50", "30"))
	require.NoError(t, err)
	require.NoError(t, db.Create(line).Error)

	data, err := (&Exporter{DB: db}).Workbook()
	require.NoError(t, err)

	// Import the export into a fresh store.
	target := newTestDB(t)
	imp := &Importer{DB: target, ImportLines: true}
	result, err := imp.Import("export.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 2, result.OrdersImported)
	assert.Equal(t, 1, result.LinesImported)
	assert.Empty(t, result.Warnings)

	var orders []models.SalesOrder
	require.NoError(t, target.Order("order_reference asc").Find(&orders).Error)
	require.Len(t, orders, 2)
	assert.Equal(t, "SO-100", orders[0].OrderReference)
	assert.Equal(t, "Acme", orders[0].Customer)
	assert.Equal(t, "1000.00", orders[0].Total.StringFixed(2))
	assert.Equal(t, "SO-200", orders[1].OrderReference)

	var restored models.SalesOrderLine
	require.NoError(t, target.First(&restored, "order_reference = ?", "SO-100").Error)
	assert.Equal(t, "Widget", restored.Product)
	assert.Equal(t, uint(10), restored.Quantity)
	assert.Equal(t, "20.00", restored.Margin.StringFixed(2))
	assert.Equal(t, "40.00", restored.MarginPercentage.StringFixed(2))
}

func TestExportRoundTripIsStable(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "SO-1", "Acme")

	data, err := (&Exporter{DB: db}).Workbook()
	require.NoError(t, err)

	// Re-importing an export into the same store must change nothing.
	imp := &Importer{DB: db, ImportLines: true}
	_, err = imp.Import("export.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	var count int64
	db.Model(&models.SalesOrder{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "SO-2", "Globex")
	seedOrder(t, db, "SO-1", "Acme")

	data, err := (&Exporter{DB: db}).CSV()
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Headers(OrderColumns), records[0])
	// Deterministic dump order by reference.
	assert.Equal(t, "SO-1", records[1][3])
	assert.Equal(t, "SO-2", records[2][3])
	assert.Equal(t, "1000.00", records[1][6])
}

func TestExportCSVEmptyStore(t *testing.T) {
	db := newTestDB(t)

	data, err := (&Exporter{DB: db}).CSV()
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Headers(OrderColumns), records[0])
}
