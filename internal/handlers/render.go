package handlers

import (
	"net/http"

	"neurowatch/internal/repository"
	"neurowatch/internal/utils"
	"neurowatch/views"
	"neurowatch/views/components"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context and session keys shared with the router middleware.
const (
	CSRFTokenContextKey = "csrf_token"
	CSPNonceContextKey  = "csp_nonce"
	WorkspaceContextKey = "workspace"
	WorkspaceSessionKey = "workspaceID"
)

func isHTMX(c *gin.Context) bool {
	return utils.IsHTMX(c.GetHeader("HX-Request"))
}

// currentWorkspace returns the workspace the loader middleware attached.
func currentWorkspace(c *gin.Context) *repository.Workspace {
	ws, _ := c.Get(WorkspaceContextKey)
	w, _ := ws.(*repository.Workspace)
	return w
}

// renderPage wraps component in the full layout.
func renderPage(c *gin.Context, log *zap.Logger, status int, title string, component templ.Component) {
	csrfToken := c.GetString(CSRFTokenContextKey)
	cspNonce := c.GetString(CSPNonceContextKey)

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := views.Layout(title, csrfToken, cspNonce).Render(templ.WithChildren(c.Request.Context(), component), c.Writer)
	if err != nil {
		log.Error("Failed to render page", zap.String("title", title), zap.Error(err))
	}
}

// renderFragment writes component on its own for an HTMX swap.
func renderFragment(c *gin.Context, log *zap.Logger, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render fragment", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// renderAlert answers an HTMX caller with an inline error message.
func renderAlert(c *gin.Context, log *zap.Logger, status int, message string) {
	renderFragment(c, log, status, components.Alert(message, "error"))
}

// NotFound renders the 404 page for every undefined path, and for fragment
// endpoints reached by direct navigation.
func NotFound(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, log, http.StatusNotFound, "Page not found", views.NotFound(c.Request.URL.Path))
	}
}
