package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/service"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	members, err := h.teamService.ListMembers(ctx, m.Workspace.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

func (h *TeamHandler) UpdateRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !bindInput(c, &req) {
		return
	}

	member, err := h.teamService.UpdateRole(c.Request.Context(), actor, req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *TeamHandler) Remove(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RemoveMemberRequest
	if !bindInput(c, &req) {
		return
	}

	if err := h.teamService.Remove(c.Request.Context(), actor, req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// requireActor fails the request when it did not pass RequireAuth and RequireWorkspace.
func requireActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.GetActor(c.Request.Context())
	if !ok {
		respondError(c, service.ErrForbidden)
	}
	return actor, ok
}
