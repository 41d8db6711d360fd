package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/service"
)

type InvitationHandler struct {
	invService service.InvitationService
}

func NewInvitationHandler(invService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invService: invService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if !bindInput(c, &req) {
		return
	}

	inv, inviteURL, err := h.invService.Create(c.Request.Context(), actor, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateInvitationResponse{
		Invitation: dto.ToInvitationResponse(inv),
		InviteURL:  inviteURL,
	})
}

func (h *InvitationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	invitations, err := h.invService.List(ctx, m.Workspace.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationResponses(invitations))
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.IDRequest
	if !bindInput(c, &req) {
		return
	}

	inv, err := h.invService.Revoke(ctx, m.Workspace.ID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.InfoContext(ctx, "invitation revoked", "invitation_id", inv.ID)
	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv))
}

// Validate checks an invitation token for the public invite page.
func (h *InvitationHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		badRequest(c, "token is required")
		return
	}

	inv, err := h.invService.ValidateToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found", "code": "not_found"})
		case errors.Is(err, service.ErrInviteExpired):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has expired", "code": "expired"})
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has already been used", "code": "already_used"})
		case errors.Is(err, service.ErrInviteRevoked):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has been revoked", "code": "revoked"})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ValidateInvitationResponse{
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
		Valid:     true,
	})
}

// Accept joins the signed in user to the inviting workspace.
func (h *InvitationHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.AcceptInvitationRequest
	if !bindInput(c, &req) {
		return
	}

	inv, ws, err := h.invService.Accept(ctx, req.Token, user)
	if err != nil {
		slog.WarnContext(ctx, "failed to accept invitation", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AcceptInvitationResponse{
		Invitation: dto.ToInvitationResponse(inv),
		Workspace:  dto.ToWorkspaceResponse(ws),
	})
}
