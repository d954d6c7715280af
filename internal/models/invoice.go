package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the calendar-date format used for invoice dates on the wire.
const DateLayout = "2006-01-02"

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice amounts are stored as integer cents.
type Invoice struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  string         `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer      `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AmountCents int64          `gorm:"column:amount;type:integer;not null" json:"amount"`
	Status      InvoiceStatus  `gorm:"size:255;not null;index" json:"status"`
	Date        datatypes.Date `gorm:"not null;index" json:"-"`
}

// InvoiceRow is an invoice joined with its customer, as listed on the dashboard.
type InvoiceRow struct {
	ID          string
	CustomerID  string
	Name        string
	Email       string
	ImageURL    string
	AmountCents int64 `gorm:"column:amount"`
	Status      InvoiceStatus
	Date        datatypes.Date
}

// InvoiceSummary is the amount/customer-name pair served by the query route.
type InvoiceSummary struct {
	Amount int64  `json:"amount"`
	Name   string `json:"name"`
}

// NewDate truncates t to a calendar date in UTC.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
