package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	clients, err := h.clientService.List(ctx, m.Workspace.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponses(clients))
}

func (h *ClientHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.IDRequest
	if !bindInput(c, &req) {
		return
	}

	client, err := h.clientService.Get(ctx, m.Workspace.ID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *ClientHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ClientRequest
	if !bindInput(c, &req) {
		return
	}

	client, err := h.clientService.Create(ctx, m.Workspace, clientParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.UpdateClientRequest
	if !bindInput(c, &req) {
		return
	}

	client, err := h.clientService.Update(ctx, m.Workspace.ID, req.ID, clientParams(req.ClientRequest))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func clientParams(req dto.ClientRequest) service.ClientParams {
	return service.ClientParams{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Currency: req.Currency,
	}
}
