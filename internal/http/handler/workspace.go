package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

const (
	workspaceIDCookie  = "hourline_workspace_id"
	roleCookie         = "hourline_role"
	permissionsCookie  = "hourline_permissions"
	recentWorkspaceTTL = 30 * 24 * 60 * 60
)

var recentWorkspaceCookies = []string{
	middleware.WorkspaceCookie,
	workspaceIDCookie,
	roleCookie,
	permissionsCookie,
}

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
	cookies          middleware.CookieConfig
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService, cookies middleware.CookieConfig) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, cookies: cookies}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.CreateWorkspaceRequest
	if !bindInput(c, &req) {
		return
	}

	ws, err := h.workspaceService.Create(ctx, user.ID, service.CreateWorkspaceParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRecentWorkspace(c, &model.Membership{
		Workspace:   *ws,
		Role:        model.RoleOwner,
		Permissions: model.PermissionsFor(model.RoleOwner),
	})
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	workspaces, err := h.workspaceService.ListForUser(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		out[i] = dto.ToWorkspaceResponse(&workspaces[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.SlugRequest
	if !bindInput(c, &req) {
		return
	}

	m, err := h.workspaceService.Resolve(ctx, user.ID, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(m))
}

// Update edits the workspace resolved by RequireWorkspace.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.UpdateWorkspaceRequest
	if !bindInput(c, &req) {
		return
	}

	ws, err := h.workspaceService.Update(ctx, m.Workspace.ID, service.UpdateWorkspaceParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Keep the slug cookie pointing at the renamed workspace.
	if ws.Slug != m.Workspace.Slug {
		updated := *m
		updated.Workspace = *ws
		h.setRecentWorkspace(c, &updated)
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Select(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.SlugRequest
	if !bindInput(c, &req) {
		return
	}

	m, err := h.workspaceService.Select(ctx, user.ID, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRecentWorkspace(c, m)
	c.JSON(http.StatusOK, dto.ToMembershipResponse(m))
}

// Current returns the workspace from the cookie, else the cached recent one, else
// the caller's first workspace.
func (h *WorkspaceHandler) Current(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	m, err := h.workspaceService.Current(ctx, user.ID, middleware.WorkspaceSlug(c))
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRecentWorkspace(c, m)
	c.JSON(http.StatusOK, dto.ToMembershipResponse(m))
}

// setRecentWorkspace writes the tenant cookies. They are readable by the dashboard.
func (h *WorkspaceHandler) setRecentWorkspace(c *gin.Context, m *model.Membership) {
	perms := make([]string, len(m.Permissions))
	for i, p := range m.Permissions {
		perms[i] = string(p)
	}

	h.cookies.Set(c, middleware.WorkspaceCookie, m.Workspace.Slug, recentWorkspaceTTL, false)
	h.cookies.Set(c, workspaceIDCookie, strconv.FormatInt(m.Workspace.ID, 10), recentWorkspaceTTL, false)
	h.cookies.Set(c, roleCookie, string(m.Role), recentWorkspaceTTL, false)
	h.cookies.Set(c, permissionsCookie, strings.Join(perms, ","), recentWorkspaceTTL, false)
}
