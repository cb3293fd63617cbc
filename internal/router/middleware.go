package router

import (
	"net/http"

	"neurowatch/internal/handlers"
	"neurowatch/internal/models"
	"neurowatch/internal/repository"
	"neurowatch/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkspaceLoader attaches the session's workspace to the context. Only a page
// load of "/" creates workspaces; a request whose workspace is missing or
// expired is sent back there.
func WorkspaceLoader(log *zap.Logger, store *repository.WorkspaceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := sessions.Default(c).Get(handlers.WorkspaceSessionKey).(string)
		ws, ok := store.Get(id)
		if !ok {
			if id != "" {
				log.Debug("Workspace expired", zap.String("workspace_id", id))
			}
			restart(c)
			return
		}

		c.Set(handlers.WorkspaceContextKey, ws)
		c.Next()
	}
}

// restart sends the browser back to the role selection.
func restart(c *gin.Context) {
	if utils.IsHTMX(c.GetHeader("HX-Request")) {
		c.Header("HX-Redirect", "/")
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

// FragmentOnly keeps HTMX endpoints off the address bar: a direct navigation
// gets the not-found page.
func FragmentOnly(notFound gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsHTMX(c.GetHeader("HX-Request")) {
			notFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired sends callers whose workspace has a different role back to
// the role selection.
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, _ := c.Get(handlers.WorkspaceContextKey)
		if w, ok := ws.(*repository.Workspace); !ok || w.Role() != role {
			restart(c)
			return
		}
		c.Next()
	}
}
