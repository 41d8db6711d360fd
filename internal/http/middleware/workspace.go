package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/common/logger"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

// WorkspaceResolver is the part of service.WorkspaceService tenant resolution needs.
type WorkspaceResolver interface {
	Resolve(ctx context.Context, userID int64, slug string) (*model.Membership, error)
}

// RequireWorkspace resolves the tenant from the X-Workspace header, falling back to
// the hourline_workspace cookie, and stores the caller's membership in the context.
// It must run after RequireAuth.
func RequireWorkspace(workspaces WorkspaceResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := GetUser(ctx)
		if user == nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
			return
		}

		slug := WorkspaceSlug(c)
		if slug == "" {
			abort(c, http.StatusBadRequest, "bad_request", "no workspace selected")
			return
		}

		m, err := workspaces.Resolve(ctx, user.ID, slug)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrWorkspaceNotFound):
				abort(c, http.StatusNotFound, "not_found", "workspace not found")
			case errors.Is(err, service.ErrNotMember):
				abort(c, http.StatusForbidden, "forbidden", "not a member of this workspace")
			default:
				slog.ErrorContext(ctx, "failed to resolve workspace", "error", err, "slug", slug)
				abort(c, http.StatusInternalServerError, "internal", "failed to resolve workspace")
			}
			return
		}

		ctx = context.WithValue(ctx, membershipContextKey, m)
		ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &m.Workspace.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequirePermission rejects callers whose role lacks p. It must run after RequireWorkspace.
func RequirePermission(p model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := GetMembership(c.Request.Context())
		if m == nil || !m.Can(p) {
			abort(c, http.StatusForbidden, "forbidden", "missing permission "+string(p))
			return
		}
		c.Next()
	}
}

// WorkspaceSlug returns the slug a request addresses, header first.
func WorkspaceSlug(c *gin.Context) string {
	if slug := c.GetHeader(WorkspaceHeader); slug != "" {
		return slug
	}
	slug, _ := c.Cookie(WorkspaceCookie)
	return slug
}
