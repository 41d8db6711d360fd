package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// CanTransition reports whether an invoice may move from s to next.
// Paid and void invoices are final.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return next == InvoiceStatusSent || next == InvoiceStatusPaid || next == InvoiceStatusVoid
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid || next == InvoiceStatusVoid || next == InvoiceStatusDraft
	}
	return false
}

// IsPublic reports whether the invoice may be shown through its share link.
func (s InvoiceStatus) IsPublic() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPaid
}

var (
	ErrPercentOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
	ErrNegativeUnitPrice = errors.New("unit price must not be negative")
)

type Invoice struct {
	ID              int64         `json:"id"`
	WorkspaceID     int64         `json:"workspace_id"`
	ClientID        int64         `json:"client_id"`
	Number          string        `json:"number"`
	Status          InvoiceStatus `json:"status"`
	Currency        string        `json:"currency"`
	IssueDate       time.Time     `json:"issue_date"`
	DueDate         time.Time     `json:"due_date"`
	DiscountPercent float64       `json:"discount_percent"`
	TaxPercent      float64       `json:"tax_percent"`
	InvoiceTotals
	Notes      *string       `json:"notes,omitempty"`
	ShareToken string        `json:"share_token"`
	CreatedBy  int64         `json:"created_by"`
	SentAt     *time.Time    `json:"sent_at,omitempty"`
	PaidAt     *time.Time    `json:"paid_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Items      []InvoiceItem `json:"items"`
}

type InvoiceItem struct {
	ID             int64   `json:"id"`
	InvoiceID      int64   `json:"invoice_id"`
	Position       int     `json:"position"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	AmountCents    int64   `json:"amount_cents"`
}

// InvoiceTotals are the computed monetary columns, all in minor units.
type InvoiceTotals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

var hundred = decimal.NewFromInt(100)

// LineAmount is quantity x unit price rounded half away from zero to minor units.
func LineAmount(quantity float64, unitPriceCents int64) int64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromInt(unitPriceCents)).
		Round(0).
		IntPart()
}

// ComputeTotals fills each item's AmountCents and returns the invoice totals:
//
//	subtotal = Σ amount
//	discount = subtotal × discount%
//	tax      = (subtotal − discount) × tax%
//	total    = subtotal − discount + tax
//
// Every step is rounded half away from zero to minor units.
func ComputeTotals(items []InvoiceItem, discountPercent, taxPercent float64) (InvoiceTotals, error) {
	if !validPercent(discountPercent) || !validPercent(taxPercent) {
		return InvoiceTotals{}, ErrPercentOutOfRange
	}

	subtotal := decimal.Zero
	for i := range items {
		if items[i].Quantity < 0 {
			return InvoiceTotals{}, ErrNegativeQuantity
		}
		if items[i].UnitPriceCents < 0 {
			return InvoiceTotals{}, ErrNegativeUnitPrice
		}
		items[i].AmountCents = LineAmount(items[i].Quantity, items[i].UnitPriceCents)
		subtotal = subtotal.Add(decimal.NewFromInt(items[i].AmountCents))
	}

	discount := subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred).Round(0)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(decimal.NewFromFloat(taxPercent)).Div(hundred).Round(0)

	return InvoiceTotals{
		SubtotalCents: subtotal.IntPart(),
		DiscountCents: discount.IntPart(),
		TaxCents:      tax.IntPart(),
		TotalCents:    taxable.Add(tax).IntPart(),
	}, nil
}

func validPercent(p float64) bool {
	return p >= 0 && p <= 100
}

// HoursFromMs converts tracked milliseconds to hours rounded to two decimals.
func HoursFromMs(ms int64) float64 {
	hours, _ := decimal.NewFromInt(ms).Div(decimal.NewFromInt(int64(time.Hour / time.Millisecond))).Round(2).Float64()
	return hours
}
