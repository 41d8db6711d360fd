package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service/integration"
)

type IntegrationHandler struct {
	integrations integration.Service
	dashboardURL string
}

func NewIntegrationHandler(integrations integration.Service, dashboardURL string) *IntegrationHandler {
	return &IntegrationHandler{integrations: integrations, dashboardURL: dashboardURL}
}

// Connect redirects to the provider's authorize page with a signed state.
func (h *IntegrationHandler) Connect(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	authURL, err := h.integrations.ConnectURL(c.Request.Context(), model.Provider(c.Param("provider")), actor.WorkspaceID(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the OAuth flow and always redirects back to the dashboard.
func (h *IntegrationHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	provider := model.Provider(c.Param("provider"))
	cookieSlug, _ := c.Cookie(middleware.WorkspaceCookie)

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "provider denied authorization",
			"provider", provider,
			"error", errorParam,
			"description", c.Query("error_description"))
		h.redirect(c, cookieSlug, url.Values{"integration_error": {"access_denied"}})
		return
	}

	result, err := h.integrations.HandleCallback(ctx, integration.CallbackParams{
		Provider:      provider,
		Code:          c.Query("code"),
		State:         c.Query("state"),
		WorkspaceSlug: cookieSlug,
	})
	slug := result.WorkspaceSlug
	if slug == "" {
		slug = cookieSlug
	}
	if err != nil {
		slog.WarnContext(ctx, "integration callback failed", "provider", provider, "error", err)
		h.redirect(c, slug, url.Values{"integration_error": {integration.ErrorCode(err)}})
		return
	}

	h.redirect(c, slug, url.Values{"connected": {string(provider)}})
}

func (h *IntegrationHandler) redirect(c *gin.Context, slug string, query url.Values) {
	target := h.dashboardURL
	if slug != "" {
		target += "/" + url.PathEscape(slug) + "/settings/integrations"
	}
	c.Redirect(http.StatusTemporaryRedirect, target+"?"+query.Encode())
}

func (h *IntegrationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	integrations, err := h.integrations.List(ctx, m.Workspace.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIntegrationResponses(integrations))
}

func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ProviderRequest
	if !bindInput(c, &req) {
		return
	}

	if err := h.integrations.Disconnect(ctx, m.Workspace.ID, req.Provider); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disconnected": true})
}

func (h *IntegrationHandler) Repositories(c *gin.Context) {
	ctx := c.Request.Context()
	m := middleware.GetMembership(ctx)

	var req dto.ProviderRequest
	if !bindInput(c, &req) {
		return
	}

	repos, err := h.integrations.Repositories(ctx, m.Workspace.ID, req.Provider)
	if err != nil {
		respondError(c, err)
		return
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	c.JSON(http.StatusOK, repos)
}
