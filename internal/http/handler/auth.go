package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

const (
	stateCookieName    = "hourline_oauth_state"
	returnToCookieName = "hourline_return_to"
	stateMaxAge        = 600
	sessionMaxAge      = int(model.SessionDuration / time.Second)
)

type AuthHandler struct {
	authService  service.AuthService
	userService  service.UserService
	cookies      middleware.CookieConfig
	dashboardURL string
}

func NewAuthHandler(
	authService service.AuthService,
	userService service.UserService,
	cookies middleware.CookieConfig,
	dashboardURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		cookies:      cookies,
		dashboardURL: dashboardURL,
	}
}

// Login redirects to WorkOS AuthKit. An optional return_to path is restored after the callback.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		respondError(c, err)
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get authorization URL", "error", err)
		respondError(c, err)
		return
	}

	h.cookies.Set(c, stateCookieName, state, stateMaxAge, true)
	if returnTo := safeReturnPath(c.Query("return_to")); returnTo != "" {
		h.cookies.Set(c, returnToCookieName, returnTo, stateMaxAge, true)
	}

	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		h.redirectAuthError(c, errorParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || storedState == "" || state != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.redirectAuthError(c, "invalid_state")
		return
	}
	h.cookies.Clear(c, stateCookieName)

	if code == "" {
		h.redirectAuthError(c, "no_code")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		if errors.Is(err, service.ErrInvalidCode) {
			h.redirectAuthError(c, "invalid_code")
			return
		}
		h.redirectAuthError(c, "callback_failed")
		return
	}

	h.cookies.Set(c, middleware.SessionCookie, strconv.FormatInt(session.ID, 10), sessionMaxAge, true)

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	target := h.dashboardURL + "/dashboard"
	if returnTo, err := c.Cookie(returnToCookieName); err == nil && safeReturnPath(returnTo) != "" {
		target = h.dashboardURL + returnTo
		h.cookies.Clear(c, returnToCookieName)
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sessionID := middleware.GetSessionID(ctx); sessionID > 0 {
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		}
	}

	h.cookies.Clear(c, middleware.SessionCookie)
	for _, name := range recentWorkspaceCookies {
		h.cookies.Clear(c, name)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	user := middleware.GetUser(ctx)
	if user == nil {
		respondError(c, service.ErrSessionExpired)
		return
	}

	profile, workspaces, err := h.userService.Profile(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		User:       dto.ToUserResponse(profile),
		Workspaces: dto.ToWorkspaceBriefs(workspaces),
	})
}

func (h *AuthHandler) redirectAuthError(c *gin.Context, code string) {
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error="+code)
}

// safeReturnPath accepts only same-site absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return ""
	}
	return p
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
