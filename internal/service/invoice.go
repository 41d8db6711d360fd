package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hourline.app/server/common/id"
	"hourline.app/server/common/logger"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceNumberTaken  = errors.New("an invoice with this number already exists")
	ErrInvoiceNotDraft     = errors.New("only draft invoices can be edited")
	ErrInvalidTransition   = errors.New("invoice status change not allowed")
	ErrInvalidInvoice      = errors.New("invalid invoice")
	ErrNoBillableEntries   = errors.New("no completed time entries for the selected projects and month")
	ErrInvoiceNotSendable  = errors.New("void invoices cannot be sent")
	ErrInvoiceNoRecipient  = errors.New("no recipient: pass an address or set the client's email")
	ErrInvalidInvoiceState = errors.New("unknown invoice status")
)

type InvoiceItemInput struct {
	Description    string
	Quantity       float64
	UnitPriceCents int64
}

type InvoiceInput struct {
	ClientID        int64
	Number          *string
	IssueDate       time.Time
	DueDate         time.Time
	Currency        string
	DiscountPercent float64
	TaxPercent      float64
	Items           []InvoiceItemInput
	Notes           *string
}

// FromEntriesInput bills a month of completed entries on the given projects.
type FromEntriesInput struct {
	ClientID        int64
	ProjectIDs      []int64
	Month           time.Time
	IssueDate       time.Time
	DueDate         time.Time
	Currency        string
	DiscountPercent float64
	TaxPercent      float64
	Notes           *string
}

type InvoiceService interface {
	List(ctx context.Context, workspaceID int64, status *model.InvoiceStatus) ([]model.Invoice, error)
	Get(ctx context.Context, workspaceID, id int64) (*model.Invoice, error)
	Create(ctx context.Context, actor Actor, input InvoiceInput) (*model.Invoice, error)
	Update(ctx context.Context, actor Actor, id int64, input InvoiceInput) (*model.Invoice, error)
	UpdateStatus(ctx context.Context, workspaceID, id int64, status model.InvoiceStatus) (*model.Invoice, error)
	FromEntries(ctx context.Context, actor Actor, input FromEntriesInput) (*model.Invoice, error)
	// GetPublic returns a sent or paid invoice by its share token.
	GetPublic(ctx context.Context, token string) (*model.Invoice, error)
	// Send emails the share link, marking a draft as sent first.
	Send(ctx context.Context, actor Actor, id int64, to string) (*model.Invoice, error)
	ShareURL(inv *model.Invoice) string
}

type invoiceService struct {
	invoiceStore store.InvoiceStore
	clientStore  store.ClientStore
	txRunner     TxRunner
	emails       EmailService
	dashboardURL string
	now          func() time.Time
}

func NewInvoiceService(
	invoiceStore store.InvoiceStore,
	clientStore store.ClientStore,
	txRunner TxRunner,
	emails EmailService,
	dashboardURL string,
) InvoiceService {
	return &invoiceService{
		invoiceStore: invoiceStore,
		clientStore:  clientStore,
		txRunner:     txRunner,
		emails:       emails,
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
}

func (s *invoiceService) List(ctx context.Context, workspaceID int64, status *model.InvoiceStatus) ([]model.Invoice, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidInvoiceState
	}
	invoices, err := s.invoiceStore.List(ctx, workspaceID, status)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) Get(ctx context.Context, workspaceID, id int64) (*model.Invoice, error) {
	inv, err := s.invoiceStore.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) Create(ctx context.Context, actor Actor, input InvoiceInput) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		inv, err = s.create(ctx, stores, actor, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(logger.WithLogFields(ctx, logger.LogFields{InvoiceID: &inv.ID}), "invoice created",
		"workspace_id", inv.WorkspaceID,
		"number", inv.Number,
		"total_cents", inv.TotalCents,
	)
	return inv, nil
}

func (s *invoiceService) create(ctx context.Context, stores StoreProvider, actor Actor, input InvoiceInput) (*model.Invoice, error) {
	client, err := stores.Clients().GetByID(ctx, actor.WorkspaceID(), input.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotInWorkspace
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}

	inv := &model.Invoice{
		ID:          id.New(),
		WorkspaceID: actor.WorkspaceID(),
		Status:      model.InvoiceStatusDraft,
		ShareToken:  uuid.NewString(),
		CreatedBy:   actor.UserID,
	}
	if err := applyInvoiceInput(inv, input, client.Currency); err != nil {
		return nil, err
	}

	if inv.Number == "" {
		seq, err := stores.Workspaces().NextInvoiceSeq(ctx, actor.WorkspaceID())
		if err != nil {
			return nil, fmt.Errorf("allocating invoice number: %w", err)
		}
		inv.Number = FormatInvoiceNumber(seq)
	}

	if err := stores.Invoices().Create(ctx, inv); err != nil {
		return nil, mapInvoiceWriteErr("creating invoice", err)
	}
	return inv, nil
}

func (s *invoiceService) Update(ctx context.Context, actor Actor, id int64, input InvoiceInput) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		inv, err = stores.Invoices().GetByID(ctx, actor.WorkspaceID(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("getting invoice: %w", err)
		}
		if inv.Status != model.InvoiceStatusDraft {
			return ErrInvoiceNotDraft
		}

		client, err := stores.Clients().GetByID(ctx, actor.WorkspaceID(), input.ClientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotInWorkspace
			}
			return fmt.Errorf("getting client: %w", err)
		}

		number := inv.Number
		if err := applyInvoiceInput(inv, input, client.Currency); err != nil {
			return err
		}
		if inv.Number == "" {
			inv.Number = number
		}

		if err := stores.Invoices().Update(ctx, inv); err != nil {
			return mapInvoiceWriteErr("updating invoice", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, workspaceID, id int64, status model.InvoiceStatus) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, ErrInvalidInvoiceState
	}
	inv, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, inv, status); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) transition(ctx context.Context, inv *model.Invoice, status model.InvoiceStatus) error {
	if !inv.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, inv.Status, status)
	}

	from := inv.Status
	now := s.now()
	inv.Status = status
	switch status {
	case model.InvoiceStatusSent:
		inv.SentAt = &now
	case model.InvoiceStatusPaid:
		inv.PaidAt = &now
		if inv.SentAt == nil {
			inv.SentAt = &now
		}
	case model.InvoiceStatusDraft:
		inv.SentAt = nil
	}

	if err := s.invoiceStore.UpdateStatus(ctx, inv); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("updating invoice status: %w", err)
	}

	slog.InfoContext(ctx, "invoice status changed",
		"invoice_id", inv.ID,
		"from", from,
		"to", status,
	)
	return nil
}

func (s *invoiceService) FromEntries(ctx context.Context, actor Actor, input FromEntriesInput) (*model.Invoice, error) {
	if len(input.ProjectIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one project is required", ErrInvalidInvoice)
	}

	projectIDs := slices.Clone(input.ProjectIDs)
	slices.Sort(projectIDs)
	projectIDs = slices.Compact(projectIDs)

	var inv *model.Invoice
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		month := model.MonthStart(input.Month)

		projects := make([]*model.Project, 0, len(projectIDs))
		for _, projectID := range projectIDs {
			project, err := stores.Projects().GetByID(ctx, actor.WorkspaceID(), projectID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrProjectNotFound
				}
				return fmt.Errorf("getting project: %w", err)
			}
			if project.ClientID != nil && *project.ClientID != input.ClientID {
				return fmt.Errorf("%w: project %d belongs to another client", ErrInvalidInvoice, project.ID)
			}
			projects = append(projects, project)
		}

		entries, err := stores.TimeEntries().ListCompletedForProjects(ctx, actor.WorkspaceID(), month, projectIDs)
		if err != nil {
			return fmt.Errorf("listing billable entries: %w", err)
		}

		items := BillableItems(projects, entries, month)
		if len(items) == 0 {
			return ErrNoBillableEntries
		}

		inv, err = s.create(ctx, stores, actor, InvoiceInput{
			ClientID:        input.ClientID,
			IssueDate:       input.IssueDate,
			DueDate:         input.DueDate,
			Currency:        input.Currency,
			DiscountPercent: input.DiscountPercent,
			TaxPercent:      input.TaxPercent,
			Items:           items,
			Notes:           input.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invoice built from time entries",
		"invoice_id", inv.ID,
		"projects", len(projectIDs),
		"items", len(inv.Items),
	)
	return inv, nil
}

// BillableItems turns completed entries into one line per project:
// tracked hours x the project's hourly rate. Projects without tracked time are skipped,
// and a project listed twice is billed once.
func BillableItems(projects []*model.Project, entries []model.TimeEntry, month time.Time) []InvoiceItemInput {
	totals := make(map[int64]int64, len(projects))
	for _, e := range entries {
		if e.ProjectID == nil || e.IsLive() {
			continue
		}
		totals[*e.ProjectID] += e.DurationMs
	}

	label := month.Format("January 2006")
	var items []InvoiceItemInput
	billed := make(map[int64]bool, len(projects))
	for _, p := range projects {
		ms := totals[p.ID]
		if ms <= 0 || billed[p.ID] {
			continue
		}
		billed[p.ID] = true
		var rate int64
		if p.RateCents != nil {
			rate = *p.RateCents
		}
		items = append(items, InvoiceItemInput{
			Description:    fmt.Sprintf("%s (%s)", p.Name, label),
			Quantity:       model.HoursFromMs(ms),
			UnitPriceCents: rate,
		})
	}
	return items
}

func (s *invoiceService) GetPublic(ctx context.Context, token string) (*model.Invoice, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInvoiceNotFound
	}
	inv, err := s.invoiceStore.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	if !inv.Status.IsPublic() {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *invoiceService) Send(ctx context.Context, actor Actor, id int64, to string) (*model.Invoice, error) {
	inv, err := s.Get(ctx, actor.WorkspaceID(), id)
	if err != nil {
		return nil, err
	}
	if inv.Status == model.InvoiceStatusVoid {
		return nil, ErrInvoiceNotSendable
	}

	client, err := s.clientStore.GetByID(ctx, actor.WorkspaceID(), inv.ClientID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	recipient := strings.TrimSpace(to)
	if recipient == "" && client != nil && client.Email != nil {
		recipient = *client.Email
	}
	if recipient == "" {
		return nil, ErrInvoiceNoRecipient
	}
	if _, err := normalizeEmail(recipient); err != nil {
		return nil, err
	}

	if inv.Status == model.InvoiceStatusDraft {
		if err := s.transition(ctx, inv, model.InvoiceStatusSent); err != nil {
			return nil, err
		}
	}

	data := map[string]string{
		"workspace_name": actor.Workspace.Name,
		"invoice_number": inv.Number,
		"total":          FormatMoney(inv.TotalCents, inv.Currency),
		"due_date":       inv.DueDate.Format("2 January 2006"),
		"invoice_url":    s.ShareURL(inv),
	}
	if client != nil {
		data["client_name"] = client.Name
	}

	wsID := actor.WorkspaceID()
	if err := s.emails.Enqueue(ctx, model.EmailMessage{
		To:          recipient,
		Template:    model.EmailTemplateInvoice,
		Data:        data,
		WorkspaceID: &wsID,
	}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invoice email queued", "invoice_id", inv.ID, "number", inv.Number)
	return inv, nil
}

func (s *invoiceService) ShareURL(inv *model.Invoice) string {
	return fmt.Sprintf("%s/i/%s", s.dashboardURL, inv.ShareToken)
}

// FormatInvoiceNumber renders the default per-workspace invoice number.
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%04d", seq)
}

// FormatMoney renders minor units as "1,234.50 EUR" style text for emails.
func FormatMoney(cents int64, currency string) string {
	amount := decimal.New(cents, -2).StringFixed(2)
	whole, frac, _ := strings.Cut(amount, ".")
	sign := ""
	if strings.HasPrefix(whole, "-") {
		sign, whole = "-", whole[1:]
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%s.%s %s", sign, b.String(), frac, currency)
}

func applyInvoiceInput(inv *model.Invoice, input InvoiceInput, fallbackCurrency string) error {
	if input.IssueDate.IsZero() || input.DueDate.IsZero() {
		return fmt.Errorf("%w: issue and due dates are required", ErrInvalidInvoice)
	}
	if input.DueDate.Before(input.IssueDate) {
		return fmt.Errorf("%w: due date is before issue date", ErrInvalidInvoice)
	}
	currency, err := model.NormalizeCurrency(input.Currency, fallbackCurrency)
	if err != nil {
		return err
	}

	items := make([]model.InvoiceItem, len(input.Items))
	for i, in := range input.Items {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return fmt.Errorf("%w: item %d needs a description", ErrInvalidInvoice, i+1)
		}
		items[i] = model.InvoiceItem{
			Position:       i,
			Description:    desc,
			Quantity:       in.Quantity,
			UnitPriceCents: in.UnitPriceCents,
		}
	}

	totals, err := model.ComputeTotals(items, input.DiscountPercent, input.TaxPercent)
	if err != nil {
		return err
	}

	inv.ClientID = input.ClientID
	inv.Number = ""
	if input.Number != nil {
		inv.Number = strings.TrimSpace(*input.Number)
	}
	inv.Currency = currency
	inv.IssueDate = dateOnly(input.IssueDate)
	inv.DueDate = dateOnly(input.DueDate)
	inv.DiscountPercent = input.DiscountPercent
	inv.TaxPercent = input.TaxPercent
	inv.InvoiceTotals = totals
	inv.Items = items
	inv.Notes = trimmedOrNil(input.Notes)
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapInvoiceWriteErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrConflict):
		return ErrInvoiceNumberTaken
	case errors.Is(err, store.ErrInvalidReference):
		return ErrClientNotInWorkspace
	case errors.Is(err, store.ErrNotFound):
		return ErrInvoiceNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
