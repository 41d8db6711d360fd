package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ListInvoicesRequest
	if !bindInput(c, &req) {
		return
	}

	invoices, err := h.invoiceService.List(ctx, m.Workspace.ID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = dto.ToInvoiceResponse(&invoices[i], h.invoiceService.ShareURL(&invoices[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.IDRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invoiceService.Get(ctx, m.Workspace.ID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.InvoiceRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), actor, invoiceInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), actor, req.ID, invoiceInput(req.InvoiceRequest))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.UpdateInvoiceStatusRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invoiceService.UpdateStatus(ctx, m.Workspace.ID, req.ID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

func (h *InvoiceHandler) FromEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.FromEntriesRequest
	if !bindInput(c, &req) {
		return
	}

	month, err := dto.ParseMonth(req.Month)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	projectIDs := make([]int64, len(req.ProjectIDs))
	for i, raw := range req.ProjectIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "project_ids must be numeric strings")
			return
		}
		projectIDs[i] = id
	}

	inv, err := h.invoiceService.FromEntries(c.Request.Context(), actor, service.FromEntriesInput{
		ClientID:        req.ClientID,
		ProjectIDs:      projectIDs,
		Month:           month,
		IssueDate:       req.IssueDate.Time,
		DueDate:         req.DueDate.Time,
		Currency:        req.Currency,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

// Send queues the invoice email (emails.sendInvoice). Drafts are marked sent first.
func (h *InvoiceHandler) Send(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.SendInvoiceRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invoiceService.Send(c.Request.Context(), actor, req.InvoiceID, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ToInvoiceResponse(inv, h.invoiceService.ShareURL(inv)))
}

// Public serves a sent or paid invoice by its share token. No session is required.
func (h *InvoiceHandler) Public(c *gin.Context) {
	inv, err := h.invoiceService.GetPublic(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.ToPublicInvoiceResponse(inv))
}

func invoiceInput(req dto.InvoiceRequest) service.InvoiceInput {
	items := make([]service.InvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.InvoiceItemInput{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}
	return service.InvoiceInput{
		ClientID:        req.ClientID,
		Number:          req.Number,
		IssueDate:       req.IssueDate.Time,
		DueDate:         req.DueDate.Time,
		Currency:        req.Currency,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
		Items:           items,
		Notes:           req.Notes,
	}
}
