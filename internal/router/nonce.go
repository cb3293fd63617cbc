package router

import (
	"fmt"
	"net/http"

	"neurowatch/internal/handlers"
	"neurowatch/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// NonceMiddleware keeps one CSP nonce per session and exposes it to the layout.
func NonceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		nonce, ok := session.Get(handlers.CSPNonceContextKey).(string)
		if !ok || nonce == "" {
			var err error
			nonce, err = utils.SecureToken(32)
			if err != nil {
				c.AbortWithError(http.StatusInternalServerError, fmt.Errorf("failed to generate CSP nonce: %w", err))
				return
			}
			session.Set(handlers.CSPNonceContextKey, nonce)
			if err := session.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, fmt.Errorf("failed to save session: %w", err))
				return
			}
		}

		c.Set(handlers.CSPNonceContextKey, nonce)
		c.Next()
	}
}

// ContentSecurityPolicy allows scripts from the two CDNs and nonce-tagged inline scripts.
func ContentSecurityPolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsHTMX(c.GetHeader("HX-Request")) {
			csp := fmt.Sprintf(
				"script-src 'self' https://unpkg.com https://cdn.jsdelivr.net 'nonce-%s'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
				c.GetString(handlers.CSPNonceContextKey),
			)
			c.Header("Content-Security-Policy", csp)
		}
		c.Next()
	}
}
