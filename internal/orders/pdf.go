package orders

import (
	"bytes"
	"errors"
	"fmt"

	"salesorders-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// Renderer produces the printable sales order document. It only reads the
// store; rendering never mutates anything.
type Renderer struct {
	DB *gorm.DB

	// Company name printed at the top of every document.
	SiteHeader string
}

// Render builds the PDF for one order. Returns ErrNotFound when no order
// exists with the given reference.
func (r *Renderer) Render(reference string) ([]byte, error) {
	var order models.SalesOrder
	err := r.DB.First(&order, "order_reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not load order: %w", err)
	}

	var lines []models.SalesOrderLine
	if err := r.DB.Where("order_reference = ?", reference).
		Order("id asc").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("could not load order lines: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Sales Order %s", order.OrderReference), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.SiteHeader, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Sales Order %s", order.OrderReference), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.headerFields(pdf, &order)
	pdf.Ln(5)
	r.lineTable(pdf, &order, lines)

	if order.Comments != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Comments", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, order.Comments, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// headerFields prints the order attributes as two label/value columns.
func (r *Renderer) headerFields(pdf *gofpdf.Fpdf, order *models.SalesOrder) {
	fields := []struct {
		label string
		value string
	}{
		{"Creation Date", order.CreationDate.Format(dateLayout)},
		{"Customer", order.Customer},
		{"Status", string(order.Status)},
		{"Salesperson", order.Salesperson},
		{"Currency", order.Currency},
		{"Total", order.Total.StringFixed(2)},
		{"Primary Contact", order.PrimaryContact},
		{"Finance Contact", order.FinanceContact},
		{"Email", order.EmailAddress},
		{"Tell No", order.TellNo},
		{"Delivery Date", formatOptDate(order.DeliveryDate)},
		{"Delivery Office", order.DeliveryOfficeLocation},
		{"Delivery Address", order.DeliveryAddress},
		{"Invoice Address", order.InvoiceAddress},
		{"Designation", order.Designation},
		{"Department", order.Department},
		{"LPO Number", order.LPONumber},
		{"LPO Date", formatOptDate(order.LPODate)},
		{"LPO Confirmation", formatOptDate(order.LPOConfirmationDate)},
	}

	for i := 0; i < len(fields); i += 2 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 6, fields[i].label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(60, 6, fields[i].value, "", 0, "L", false, 0, "")

		if i+1 < len(fields) {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(35, 6, fields[i+1].label, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(60, 6, fields[i+1].value, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *Renderer) lineTable(pdf *gofpdf.Fpdf, order *models.SalesOrder, lines []models.SalesOrderLine) {
	headers := []string{"Product", "Qty", "Unit Price", "Cost", "Margin", "Margin %"}
	widths := []float64{70, 15, 26, 26, 26, 26}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range lines {
		l := &lines[i]
		pdf.CellFormat(widths[0], 6, l.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, l.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, l.Cost.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, l.Margin.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, l.MarginPercentage.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1], 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2]+widths[3]+widths[4]+widths[5], 7,
		fmt.Sprintf("%s %s", order.Currency, order.Total.StringFixed(2)), "1", 1, "R", false, 0, "")
}
