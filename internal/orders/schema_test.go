package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLayouts(t *testing.T) {
	assert.Len(t, OrderColumns, 21)
	assert.Len(t, LineColumns, 7)

	// The reference column positions are load-bearing for the importer.
	assert.Equal(t, "Order Reference", OrderColumns[3].Header)
	assert.Equal(t, "Order Reference", LineColumns[0].Header)
	assert.Equal(t, "Total", OrderColumns[6].Header)
}

func TestOrderRowRoundTrip(t *testing.T) {
	row := orderRow("SO-7", "Acme", map[int]string{
		7:  "John Doe",
		11: "orders@acme.example",
		12: "2024-02-15",
		17: "2024-02-01",
		18: "2024-01-20",
		19: "LPO-4711",
		20: "deliver to gate 3",
	})

	order, err := OrderFromRow(row)
	require.NoError(t, err)

	assert.Equal(t, "SO-7", order.OrderReference)
	assert.Equal(t, "John Doe", order.PrimaryContact)
	require.NotNil(t, order.DeliveryDate)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), *order.DeliveryDate)
	require.NotNil(t, order.LPOConfirmationDate)

	back := OrderToRow(order)
	require.Len(t, back, len(OrderColumns))

	reparsed, err := OrderFromRow(back)
	require.NoError(t, err)
	assert.Equal(t, order.OrderReference, reparsed.OrderReference)
	assert.Equal(t, order.Customer, reparsed.Customer)
	assert.Equal(t, order.Total.StringFixed(2), reparsed.Total.StringFixed(2))
	assert.Equal(t, order.Comments, reparsed.Comments)
	require.NotNil(t, reparsed.LPODate)
	assert.Equal(t, *order.LPODate, *reparsed.LPODate)
}

func TestOrderFromRowRequiredFields(t *testing.T) {
	for _, idx := range []int{0, 1, 2, 3, 4, 5, 6} {
		row := orderRow("SO-1", "Acme", map[int]string{idx: ""})
		_, err := OrderFromRow(row)
		assert.Error(t, err, "column %d is required", idx)
	}
}

func TestOrderFromRowAcceptsAlternateDateFormats(t *testing.T) {
	for _, date := range []string{"2024-01-01", "01/01/2024", "01-01-24"} {
		order, err := OrderFromRow(orderRow("SO-1", "Acme", map[int]string{0: date}))
		require.NoError(t, err, date)
		assert.Equal(t, 2024, order.CreationDate.Year())
	}
}

func TestOrderFromRowToleratesShortRows(t *testing.T) {
	// Excelize trims trailing empty cells, so rows may be shorter than the schema.
	row := orderRow("SO-1", "Acme", nil)[:7]
	order, err := OrderFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "SO-1", order.OrderReference)
	assert.Empty(t, order.Comments)
}

func TestLineFromRowComputesMargins(t *testing.T) {
	line, err := LineFromRow([]string{"SO-1", "Widget", "10", "50", "30", "1.00", "2.00"})
	require.NoError(t, err)

	assert.Equal(t, "20.00", line.Margin.StringFixed(2))
	assert.Equal(t, "40.00", line.MarginPercentage.StringFixed(2))
}

func TestLineFromRowRejectsNegativeQuantity(t *testing.T) {
	_, err := LineFromRow([]string{"SO-1", "Widget", "-3", "50", "30", "", ""})
	assert.Error(t, err)
}

func TestParseDecimalWithThousandsSeparator(t *testing.T) {
	order, err := OrderFromRow(orderRow("SO-1", "Acme", map[int]string{6: "1,250.75"}))
	require.NoError(t, err)
	assert.Equal(t, "1250.75", order.Total.StringFixed(2))
}
