package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

type contextKey string

const (
	userContextKey       contextKey = "user"
	sessionIDContextKey  contextKey = "session_id"
	membershipContextKey contextKey = "membership"
)

const (
	SessionCookie   = "hourline_session"
	SessionIDHeader = "X-Session-ID"
	WorkspaceCookie = "hourline_workspace"
	WorkspaceHeader = "X-Workspace"
)

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

func GetMembership(ctx context.Context) *model.Membership {
	m, _ := ctx.Value(membershipContextKey).(*model.Membership)
	return m
}

// GetActor combines the authenticated user and the resolved workspace.
// ok is false outside RequireAuth + RequireWorkspace.
func GetActor(ctx context.Context) (service.Actor, bool) {
	user := GetUser(ctx)
	m := GetMembership(ctx)
	if user == nil || m == nil {
		return service.Actor{}, false
	}
	return service.NewActor(user, *m), true
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
