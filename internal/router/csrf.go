package router

import (
	"errors"
	"net/http"

	"neurowatch/internal/handlers"
	"neurowatch/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	csrfTokenSessionKey = "csrf_token"
	csrfTokenFormKey    = "_csrf"
	csrfTokenHeaderKey  = "X-CSRF-Token"
)

// CSRFProtection keeps one token per session and checks it on unsafe methods.
// HTMX requests carry it in the X-CSRF-Token header set by the layout.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, ok := session.Get(csrfTokenSessionKey).(string)
		if !ok || token == "" {
			newToken, err := utils.SecureToken(32)
			if err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to generate CSRF token"))
				return
			}
			token = newToken
			session.Set(csrfTokenSessionKey, token)
			if err := session.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to save session"))
				return
			}
		}

		c.Set(handlers.CSRFTokenContextKey, token)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			// Multipart bodies are left for the handler, which caps their size,
			// so uploads must send the header.
			submitted := c.GetHeader(csrfTokenHeaderKey)
			if submitted == "" && c.ContentType() != gin.MIMEMultipartPOSTForm {
				submitted = c.PostForm(csrfTokenFormKey)
			}
			if !ok || submitted == "" || submitted != token {
				if utils.IsHTMX(c.GetHeader("HX-Request")) {
					c.Header("HX-Redirect", "/")
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
				c.AbortWithError(http.StatusForbidden, errors.New("invalid CSRF token"))
				return
			}
		}

		c.Next()
	}
}
