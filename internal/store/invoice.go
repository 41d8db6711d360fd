package store

import (
	"context"

	"hourline.app/server/common/id"
	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

// invoiceStore writes an invoice and its items with several statements;
// callers run Create and Update inside a transaction.
type invoiceStore struct {
	queries *sqlc.Queries
}

func newInvoiceStore(queries *sqlc.Queries) InvoiceStore {
	return &invoiceStore{queries: queries}
}

func (s *invoiceStore) GetByID(ctx context.Context, workspaceID, id int64) (*model.Invoice, error) {
	row, err := s.queries.GetInvoice(ctx, sqlc.GetInvoiceParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return s.withItems(ctx, row)
}

func (s *invoiceStore) GetByShareToken(ctx context.Context, token string) (*model.Invoice, error) {
	row, err := s.queries.GetInvoiceByShareToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return s.withItems(ctx, row)
}

func (s *invoiceStore) Create(ctx context.Context, inv *model.Invoice) error {
	row, err := s.queries.CreateInvoice(ctx, sqlc.CreateInvoiceParams{
		ID:              inv.ID,
		WorkspaceID:     inv.WorkspaceID,
		ClientID:        inv.ClientID,
		Number:          inv.Number,
		Status:          string(inv.Status),
		Currency:        inv.Currency,
		IssueDate:       date(inv.IssueDate),
		DueDate:         date(inv.DueDate),
		DiscountPercent: inv.DiscountPercent,
		TaxPercent:      inv.TaxPercent,
		SubtotalCents:   inv.SubtotalCents,
		DiscountCents:   inv.DiscountCents,
		TaxCents:        inv.TaxCents,
		TotalCents:      inv.TotalCents,
		Notes:           inv.Notes,
		ShareToken:      inv.ShareToken,
		CreatedBy:       inv.CreatedBy,
	})
	if err != nil {
		return mapErr(err)
	}

	items, err := s.insertItems(ctx, row.ID, inv.Items)
	if err != nil {
		return err
	}

	*inv = *toInvoiceModel(row, items)
	return nil
}

func (s *invoiceStore) Update(ctx context.Context, inv *model.Invoice) error {
	row, err := s.queries.UpdateInvoice(ctx, sqlc.UpdateInvoiceParams{
		ID:              inv.ID,
		WorkspaceID:     inv.WorkspaceID,
		ClientID:        inv.ClientID,
		Number:          inv.Number,
		Currency:        inv.Currency,
		IssueDate:       date(inv.IssueDate),
		DueDate:         date(inv.DueDate),
		DiscountPercent: inv.DiscountPercent,
		TaxPercent:      inv.TaxPercent,
		SubtotalCents:   inv.SubtotalCents,
		DiscountCents:   inv.DiscountCents,
		TaxCents:        inv.TaxCents,
		TotalCents:      inv.TotalCents,
		Notes:           inv.Notes,
	})
	if err != nil {
		return mapErr(err)
	}

	if err := s.queries.DeleteInvoiceItems(ctx, row.ID); err != nil {
		return err
	}
	items, err := s.insertItems(ctx, row.ID, inv.Items)
	if err != nil {
		return err
	}

	*inv = *toInvoiceModel(row, items)
	return nil
}

func (s *invoiceStore) UpdateStatus(ctx context.Context, inv *model.Invoice) error {
	row, err := s.queries.UpdateInvoiceStatus(ctx, sqlc.UpdateInvoiceStatusParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Status:      string(inv.Status),
		SentAt:      optTimestamptz(inv.SentAt),
		PaidAt:      optTimestamptz(inv.PaidAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*inv = *toInvoiceModel(row, inv.Items)
	return nil
}

func (s *invoiceStore) List(ctx context.Context, workspaceID int64, status *model.InvoiceStatus) ([]model.Invoice, error) {
	var statusFilter *string
	if status != nil {
		v := string(*status)
		statusFilter = &v
	}
	rows, err := s.queries.ListInvoices(ctx, sqlc.ListInvoicesParams{
		WorkspaceID: workspaceID,
		Status:      statusFilter,
	})
	if err != nil {
		return nil, err
	}
	invoices := make([]model.Invoice, len(rows))
	for i, row := range rows {
		invoices[i] = *toInvoiceModel(row, nil)
	}
	return invoices, nil
}

func (s *invoiceStore) withItems(ctx context.Context, row sqlc.Invoice) (*model.Invoice, error) {
	rows, err := s.queries.ListInvoiceItems(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	items := make([]model.InvoiceItem, len(rows))
	for i, r := range rows {
		items[i] = toInvoiceItemModel(r)
	}
	return toInvoiceModel(row, items), nil
}

func (s *invoiceStore) insertItems(ctx context.Context, invoiceID int64, items []model.InvoiceItem) ([]model.InvoiceItem, error) {
	out := make([]model.InvoiceItem, 0, len(items))
	for i, item := range items {
		row, err := s.queries.CreateInvoiceItem(ctx, sqlc.CreateInvoiceItemParams{
			ID:             id.New(),
			InvoiceID:      invoiceID,
			Position:       int32(i),
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			AmountCents:    item.AmountCents,
		})
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, toInvoiceItemModel(row))
	}
	return out, nil
}

func toInvoiceModel(row sqlc.Invoice, items []model.InvoiceItem) *model.Invoice {
	if items == nil {
		items = []model.InvoiceItem{}
	}
	return &model.Invoice{
		ID:              row.ID,
		WorkspaceID:     row.WorkspaceID,
		ClientID:        row.ClientID,
		Number:          row.Number,
		Status:          model.InvoiceStatus(row.Status),
		Currency:        row.Currency,
		IssueDate:       row.IssueDate.Time,
		DueDate:         row.DueDate.Time,
		DiscountPercent: row.DiscountPercent,
		TaxPercent:      row.TaxPercent,
		InvoiceTotals: model.InvoiceTotals{
			SubtotalCents: row.SubtotalCents,
			DiscountCents: row.DiscountCents,
			TaxCents:      row.TaxCents,
			TotalCents:    row.TotalCents,
		},
		Notes:      row.Notes,
		ShareToken: row.ShareToken,
		CreatedBy:  row.CreatedBy,
		SentAt:     timePtr(row.SentAt),
		PaidAt:     timePtr(row.PaidAt),
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
		Items:      items,
	}
}

func toInvoiceItemModel(row sqlc.InvoiceItem) model.InvoiceItem {
	return model.InvoiceItem{
		ID:             row.ID,
		InvoiceID:      row.InvoiceID,
		Position:       int(row.Position),
		Description:    row.Description,
		Quantity:       row.Quantity,
		UnitPriceCents: row.UnitPriceCents,
		AmountCents:    row.AmountCents,
	}
}
