package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hourline.app/server/common/logger"
	"hourline.app/server/internal/service"
)

// RequireAuth loads the session named by the hourline_session cookie (or the
// X-Session-ID header used by server side dashboard calls) and puts its user in
// the request context.
func RequireAuth(authService service.AuthService, cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sessionID, err := sessionIDFrom(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
			return
		}

		user, err := authService.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				cookies.Clear(c, SessionCookie)
				abort(c, http.StatusUnauthorized, "unauthorized", "session expired")
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			abort(c, http.StatusInternalServerError, "internal", "failed to validate session")
			return
		}

		ctx = context.WithValue(ctx, userContextKey, user)
		ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth attaches the user when a valid session exists but never aborts.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := sessionIDFrom(c)
		if err != nil {
			c.Next()
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func sessionIDFrom(c *gin.Context) (int64, error) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil {
			return 0, err
		}
		raw = cookie
	}
	return strconv.ParseInt(raw, 10, 64)
}
