package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesorders-backend/internal/models"

	"github.com/shopspring/decimal"
)

// The importer and exporter share these column descriptors, so the spreadsheet
// layout cannot drift between the two. Columns are positional; the header row
// is informative only and is always skipped on import.

type ColumnKind int

const (
	KindString ColumnKind = iota
	KindDate
	KindDecimal
	KindInt
	KindStatus
)

type Column struct {
	Header   string
	Kind     ColumnKind
	Required bool
}

var OrderColumns = []Column{
	{Header: "Creation Date", Kind: KindDate, Required: true},
	{Header: "Customer", Kind: KindString, Required: true},
	{Header: "Currency", Kind: KindString, Required: true},
	{Header: "Order Reference", Kind: KindString, Required: true},
	{Header: "Salesperson", Kind: KindString, Required: true},
	{Header: "Status", Kind: KindStatus, Required: true},
	{Header: "Total", Kind: KindDecimal, Required: true},
	{Header: "Primary Contact", Kind: KindString},
	{Header: "Finance Contact", Kind: KindString},
	{Header: "Delivery Address", Kind: KindString},
	{Header: "Invoice Address", Kind: KindString},
	{Header: "Email Address", Kind: KindString},
	{Header: "Delivery Date", Kind: KindDate},
	{Header: "Delivery Office Location", Kind: KindString},
	{Header: "Tell No", Kind: KindString},
	{Header: "Designation", Kind: KindString},
	{Header: "Department", Kind: KindString},
	{Header: "LPO Confirmation Date", Kind: KindDate},
	{Header: "LPO Date", Kind: KindDate},
	{Header: "LPO Number", Kind: KindString},
	{Header: "Comments", Kind: KindString},
}

var LineColumns = []Column{
	{Header: "Order Reference", Kind: KindString, Required: true},
	{Header: "Product", Kind: KindString, Required: true},
	{Header: "Quantity", Kind: KindInt, Required: true},
	{Header: "Unit Price", Kind: KindDecimal, Required: true},
	{Header: "Cost", Kind: KindDecimal, Required: true},
	{Header: "Margin", Kind: KindDecimal},
	{Header: "Margin Percentage", Kind: KindDecimal},
}

func Headers(cols []Column) []string {
	hs := make([]string, len(cols))
	for i, col := range cols {
		hs[i] = col.Header
	}
	return hs
}

const dateLayout = "2006-01-02"

// Accepted input layouts, tried in order. Excelize hands back formatted cell
// strings, so dates arrive as text in whatever format the workbook used.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01-02-06", // Excel's default short date
	"2006-01-02 15:04:05",
}

// OrderFromRow maps one positional orders-sheet row onto a SalesOrder.
func OrderFromRow(row []string) (*models.SalesOrder, error) {
	if err := checkRequired(OrderColumns, row); err != nil {
		return nil, err
	}

	creationDate, err := parseDate(cell(row, 0), OrderColumns[0].Header)
	if err != nil {
		return nil, err
	}
	total, err := parseDecimal(cell(row, 6), OrderColumns[6].Header)
	if err != nil {
		return nil, err
	}
	status := cell(row, 5)
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("column %q: unknown status %q", OrderColumns[5].Header, status)
	}
	deliveryDate, err := parseOptDate(cell(row, 12), OrderColumns[12].Header)
	if err != nil {
		return nil, err
	}
	lpoConfirmationDate, err := parseOptDate(cell(row, 17), OrderColumns[17].Header)
	if err != nil {
		return nil, err
	}
	lpoDate, err := parseOptDate(cell(row, 18), OrderColumns[18].Header)
	if err != nil {
		return nil, err
	}

	return &models.SalesOrder{
		CreationDate:           creationDate,
		Customer:               cell(row, 1),
		Currency:               cell(row, 2),
		OrderReference:         cell(row, 3),
		Salesperson:            cell(row, 4),
		Status:                 models.OrderStatus(status),
		Total:                  total,
		PrimaryContact:         cell(row, 7),
		FinanceContact:         cell(row, 8),
		DeliveryAddress:        cell(row, 9),
		InvoiceAddress:         cell(row, 10),
		EmailAddress:           cell(row, 11),
		DeliveryDate:           deliveryDate,
		DeliveryOfficeLocation: cell(row, 13),
		TellNo:                 cell(row, 14),
		Designation:            cell(row, 15),
		Department:             cell(row, 16),
		LPOConfirmationDate:    lpoConfirmationDate,
		LPODate:                lpoDate,
		LPONumber:              cell(row, 19),
		Comments:               cell(row, 20),
	}, nil
}

// OrderToRow is the exact inverse of OrderFromRow.
func OrderToRow(o *models.SalesOrder) []string {
	return []string{
		o.CreationDate.Format(dateLayout),
		o.Customer,
		o.Currency,
		o.OrderReference,
		o.Salesperson,
		string(o.Status),
		o.Total.StringFixed(2),
		o.PrimaryContact,
		o.FinanceContact,
		o.DeliveryAddress,
		o.InvoiceAddress,
		o.EmailAddress,
		formatOptDate(o.DeliveryDate),
		o.DeliveryOfficeLocation,
		o.TellNo,
		o.Designation,
		o.Department,
		formatOptDate(o.LPOConfirmationDate),
		formatOptDate(o.LPODate),
		o.LPONumber,
		o.Comments,
	}
}

// LineFromRow maps one lines-sheet row onto a SalesOrderLine. The margin
// columns in the sheet are ignored; ComputeMargins is authoritative.
func LineFromRow(row []string) (*models.SalesOrderLine, error) {
	if err := checkRequired(LineColumns, row); err != nil {
		return nil, err
	}

	quantity, err := parseUint(cell(row, 2), LineColumns[2].Header)
	if err != nil {
		return nil, err
	}
	unitPrice, err := parseDecimal(cell(row, 3), LineColumns[3].Header)
	if err != nil {
		return nil, err
	}
	cost, err := parseDecimal(cell(row, 4), LineColumns[4].Header)
	if err != nil {
		return nil, err
	}

	line := &models.SalesOrderLine{
		OrderReference: cell(row, 0),
		Product:        cell(row, 1),
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		Cost:           cost,
	}
	line.ComputeMargins()
	return line, nil
}

func LineToRow(l *models.SalesOrderLine) []string {
	return []string{
		l.OrderReference,
		l.Product,
		strconv.FormatUint(uint64(l.Quantity), 10),
		l.UnitPrice.StringFixed(2),
		l.Cost.StringFixed(2),
		l.Margin.StringFixed(2),
		l.MarginPercentage.StringFixed(2),
	}
}

func RowIsBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cell tolerates short rows: excelize trims trailing empty cells.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func checkRequired(cols []Column, row []string) error {
	for i, col := range cols {
		if col.Required && cell(row, i) == "" {
			return fmt.Errorf("column %q is required", col.Header)
		}
	}
	return nil
}

func parseDate(s, header string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %q: cannot parse date %q", header, s)
}

func parseOptDate(s, header string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s, header)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDecimal(s, header string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "") // "1,000.50"
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %q: cannot parse number %q", header, s)
	}
	return d.Round(2), nil
}

func parseUint(s, header string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("column %q: cannot parse quantity %q", header, s)
	}
	return uint(n), nil
}
