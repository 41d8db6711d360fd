package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/service"
)

type EntryHandler struct {
	entryService service.TimeEntryService
}

func NewEntryHandler(entryService service.TimeEntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

func (h *EntryHandler) Start(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.StartEntryRequest
	if !bindInput(c, &req) {
		return
	}

	entry, err := h.entryService.Start(c.Request.Context(), actor, service.StartEntryParams{
		ProjectID:   req.ProjectID,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *EntryHandler) Stop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.entryService.Stop(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// Live returns the running entry, or null when the tracker is idle.
func (h *EntryHandler) Live(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.entryService.Live(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *EntryHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if !bindInput(c, &req) {
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), actor, service.ManualEntryParams{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *EntryHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if !bindInput(c, &req) {
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), actor, req.ID, service.UpdateEntryParams{
		ProjectID:    req.ProjectID,
		ClearProject: req.ClearProject,
		Description:  req.Description,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *EntryHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if !bindInput(c, &req) {
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *EntryHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ListEntriesRequest
	if !bindInput(c, &req) {
		return
	}

	params := service.ListEntriesParams{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Year:      req.Year,
		Week:      req.Week,
		Limit:     req.Limit,
	}
	if req.Month != "" {
		month, err := dto.ParseMonth(req.Month)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		params.Month = &month
	}

	entries, err := h.entryService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

func (h *EntryHandler) Summary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.SummaryRequest
	if !bindInput(c, &req) {
		return
	}

	month, err := dto.ParseMonth(req.Month)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	totals, err := h.entryService.Summary(c.Request.Context(), actor, month)
	if err != nil {
		respondError(c, err)
		return
	}
	var totalMs int64
	for _, t := range totals {
		totalMs += t.TotalMs
	}
	c.JSON(http.StatusOK, gin.H{
		"month":    month.Format("2006-01"),
		"projects": dto.ToProjectTotals(totals),
		"total_ms": totalMs,
	})
}
