package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ListProjectsRequest
	if !bindInput(c, &req) {
		return
	}

	projects, err := h.projectService.List(ctx, m.Workspace.ID, req.Archived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	h.byID(c, h.projectService.Get)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ProjectRequest
	if !bindInput(c, &req) {
		return
	}

	project, err := h.projectService.Create(ctx, m.Workspace.ID, projectParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.UpdateProjectRequest
	if !bindInput(c, &req) {
		return
	}

	project, err := h.projectService.Update(ctx, m.Workspace.ID, req.ID, projectParams(req.ProjectRequest))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	h.byID(c, h.projectService.Archive)
}

func (h *ProjectHandler) Unarchive(c *gin.Context) {
	h.byID(c, h.projectService.Unarchive)
}

func (h *ProjectHandler) byID(c *gin.Context, fn func(ctx context.Context, workspaceID, id int64) (*model.Project, error)) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.IDRequest
	if !bindInput(c, &req) {
		return
	}

	project, err := fn(ctx, m.Workspace.ID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func projectParams(req dto.ProjectRequest) service.ProjectParams {
	return service.ProjectParams{
		Name:            req.Name,
		ClientID:        req.ClientID,
		Color:           req.Color,
		RateCents:       req.RateCents,
		EstimateMinutes: req.EstimateMinutes,
	}
}
