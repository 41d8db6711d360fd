package dto

import (
	"fmt"
	"time"

	"hourline.app/server/internal/model"
)

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string like 2026-01-31")
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("date must look like 2026-01-31: %w", err)
	}
	d.Time = t
	return nil
}

type ListInvoicesRequest struct {
	Status *model.InvoiceStatus `json:"status,omitempty"`
}

type InvoiceItemRequest struct {
	Description    string  `json:"description" binding:"required,max=1000"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

type InvoiceRequest struct {
	ClientID        int64                `json:"client_id,string" binding:"required"`
	Number          *string              `json:"number,omitempty" binding:"omitempty,min=1,max=64"`
	IssueDate       Date                 `json:"issue_date"`
	DueDate         Date                 `json:"due_date"`
	Currency        string               `json:"currency,omitempty" binding:"omitempty,len=3"`
	DiscountPercent float64              `json:"discount_percent"`
	TaxPercent      float64              `json:"tax_percent"`
	Items           []InvoiceItemRequest `json:"items" binding:"dive"`
	Notes           *string              `json:"notes,omitempty" binding:"omitempty,max=5000"`
}

type UpdateInvoiceRequest struct {
	ID int64 `json:"id,string" binding:"required"`
	InvoiceRequest
}

type UpdateInvoiceStatusRequest struct {
	ID     int64               `json:"id,string" binding:"required"`
	Status model.InvoiceStatus `json:"status" binding:"required"`
}

type FromEntriesRequest struct {
	ClientID        int64    `json:"client_id,string" binding:"required"`
	ProjectIDs      []string `json:"project_ids" binding:"required,min=1"`
	Month           string   `json:"month" binding:"required"`
	IssueDate       Date     `json:"issue_date"`
	DueDate         Date     `json:"due_date"`
	Currency        string   `json:"currency,omitempty" binding:"omitempty,len=3"`
	DiscountPercent float64  `json:"discount_percent"`
	TaxPercent      float64  `json:"tax_percent"`
	Notes           *string  `json:"notes,omitempty" binding:"omitempty,max=5000"`
}

type SendInvoiceRequest struct {
	InvoiceID int64  `json:"invoice_id,string" binding:"required"`
	To        string `json:"to,omitempty" binding:"omitempty,email"`
}

type InvoiceItemResponse struct {
	Position       int     `json:"position"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	AmountCents    int64   `json:"amount_cents"`
}

type InvoiceResponse struct {
	ID              int64                 `json:"id,string"`
	ClientID        int64                 `json:"client_id,string"`
	Number          string                `json:"number"`
	Status          model.InvoiceStatus   `json:"status"`
	Currency        string                `json:"currency"`
	IssueDate       Date                  `json:"issue_date"`
	DueDate         Date                  `json:"due_date"`
	DiscountPercent float64               `json:"discount_percent"`
	TaxPercent      float64               `json:"tax_percent"`
	SubtotalCents   int64                 `json:"subtotal_cents"`
	DiscountCents   int64                 `json:"discount_cents"`
	TaxCents        int64                 `json:"tax_cents"`
	TotalCents      int64                 `json:"total_cents"`
	Notes           *string               `json:"notes,omitempty"`
	ShareURL        string                `json:"share_url,omitempty"`
	SentAt          *time.Time            `json:"sent_at,omitempty"`
	PaidAt          *time.Time            `json:"paid_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Items           []InvoiceItemResponse `json:"items"`
}

// ToInvoiceResponse maps an invoice. shareURL is empty for draft and void invoices.
func ToInvoiceResponse(inv *model.Invoice, shareURL string) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:              inv.ID,
		ClientID:        inv.ClientID,
		Number:          inv.Number,
		Status:          inv.Status,
		Currency:        inv.Currency,
		IssueDate:       Date{inv.IssueDate},
		DueDate:         Date{inv.DueDate},
		DiscountPercent: inv.DiscountPercent,
		TaxPercent:      inv.TaxPercent,
		SubtotalCents:   inv.SubtotalCents,
		DiscountCents:   inv.DiscountCents,
		TaxCents:        inv.TaxCents,
		TotalCents:      inv.TotalCents,
		Notes:           inv.Notes,
		SentAt:          inv.SentAt,
		PaidAt:          inv.PaidAt,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Items:           make([]InvoiceItemResponse, len(inv.Items)),
	}
	if inv.Status.IsPublic() {
		resp.ShareURL = shareURL
	}
	for i, item := range inv.Items {
		resp.Items[i] = InvoiceItemResponse{
			Position:       item.Position,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			AmountCents:    item.AmountCents,
		}
	}
	return resp
}

// PublicInvoiceResponse is what a client sees through the share link.
type PublicInvoiceResponse struct {
	Number        string                `json:"number"`
	Status        model.InvoiceStatus   `json:"status"`
	Currency      string                `json:"currency"`
	IssueDate     Date                  `json:"issue_date"`
	DueDate       Date                  `json:"due_date"`
	SubtotalCents int64                 `json:"subtotal_cents"`
	DiscountCents int64                 `json:"discount_cents"`
	TaxCents      int64                 `json:"tax_cents"`
	TotalCents    int64                 `json:"total_cents"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
}

func ToPublicInvoiceResponse(inv *model.Invoice) *PublicInvoiceResponse {
	full := ToInvoiceResponse(inv, "")
	return &PublicInvoiceResponse{
		Number:        full.Number,
		Status:        full.Status,
		Currency:      full.Currency,
		IssueDate:     full.IssueDate,
		DueDate:       full.DueDate,
		SubtotalCents: full.SubtotalCents,
		DiscountCents: full.DiscountCents,
		TaxCents:      full.TaxCents,
		TotalCents:    full.TotalCents,
		Notes:         full.Notes,
		Items:         full.Items,
	}
}
