package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieConfig carries the attributes shared by every cookie the server sets.
type CookieConfig struct {
	Domain string
	Secure bool
}

func (cc CookieConfig) Set(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", cc.Domain, cc.Secure, httpOnly)
}

func (cc CookieConfig) Clear(c *gin.Context, name string) {
	cc.Set(c, name, "", -1, true)
}
