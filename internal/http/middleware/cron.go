package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireCronSecret accepts requests carrying "Authorization: Bearer <secret>".
// An empty secret disables the guarded routes.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abort(c, http.StatusServiceUnavailable, "unavailable", "cron endpoints are not configured")
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid cron secret")
			return
		}

		c.Next()
	}
}
