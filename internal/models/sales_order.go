package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusQuotation  OrderStatus = "Quotation"
	StatusSalesOrder OrderStatus = "Sales Order"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// SalesOrder: the order reference is the natural primary key and never changes
// after creation. Re-importing the same reference overwrites the other fields.
type SalesOrder struct {
	OrderReference string          `gorm:"primaryKey;size:100" json:"order_reference"`
	CreationDate   time.Time       `gorm:"not null" json:"creation_date"`
	Customer       string          `gorm:"size:255;not null" json:"customer"`
	Currency       string          `gorm:"size:20;not null" json:"currency"`
	Salesperson    string          `gorm:"size:255;not null" json:"salesperson"`
	Status         OrderStatus     `gorm:"size:100;not null" json:"status"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	PrimaryContact         string     `gorm:"size:50" json:"primary_contact"`
	FinanceContact         string     `gorm:"size:50" json:"finance_contact"`
	DeliveryAddress        string     `gorm:"type:text" json:"delivery_address"`
	InvoiceAddress         string     `gorm:"type:text" json:"invoice_address"`
	EmailAddress           string     `gorm:"size:254" json:"email_address"`
	DeliveryDate           *time.Time `json:"delivery_date"`
	DeliveryOfficeLocation string     `gorm:"size:255" json:"delivery_office_location"`
	TellNo                 string     `gorm:"size:20" json:"tell_no"`
	Designation            string     `gorm:"size:150" json:"designation"`
	Department             string     `gorm:"size:150" json:"department"`
	LPOConfirmationDate    *time.Time `json:"lpo_confirmation_date"`
	LPODate                *time.Time `json:"lpo_date"`
	LPONumber              string     `gorm:"size:100" json:"lpo_number"`
	Comments               string     `gorm:"type:text" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lines []SalesOrderLine `gorm:"foreignKey:OrderReference;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

type SalesOrderLine struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderReference string          `gorm:"size:100;index;not null" json:"order_reference"`
	Product        string          `gorm:"size:255;not null" json:"product"`
	Quantity       uint            `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Cost           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"cost"`

	// Derived, see ComputeMargins. Never taken from client or spreadsheet input.
	Margin           decimal.Decimal `gorm:"type:numeric(10,2)" json:"margin"`
	MarginPercentage decimal.Decimal `gorm:"type:numeric(7,2)" json:"margin_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeMargins fills Margin and MarginPercentage from UnitPrice and Cost.
// Must be called at every place a line is created or updated; the fields are
// not recalculated by any persistence hook.
func (l *SalesOrderLine) ComputeMargins() {
	l.Margin = l.UnitPrice.Sub(l.Cost).Round(2)
	if l.UnitPrice.IsZero() {
		l.MarginPercentage = decimal.Zero
		return
	}
	hundred := decimal.NewFromInt(100)
	l.MarginPercentage = l.Margin.Div(l.UnitPrice).Mul(hundred).Round(2)
}

func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusQuotation, StatusSalesOrder, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}
