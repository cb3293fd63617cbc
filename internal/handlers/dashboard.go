package handlers

import (
	"errors"
	"net/http"

	"neurowatch/internal/models"
	"neurowatch/internal/repository"
	"neurowatch/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	log     *zap.Logger
	store   *repository.WorkspaceStore
	doctor  *DoctorHandler
	patient *PatientHandler
}

func NewDashboardHandler(log *zap.Logger, store *repository.WorkspaceStore, doctor *DoctorHandler, patient *PatientHandler) *DashboardHandler {
	return &DashboardHandler{log: log, store: store, doctor: doctor, patient: patient}
}

// Index serves the only navigable page. Every full load starts over: the
// previous workspace and its uploads are dropped and the role selection is shown.
func (h *DashboardHandler) Index(c *gin.Context) {
	session := sessions.Default(c)
	if old, ok := session.Get(WorkspaceSessionKey).(string); ok {
		h.store.Discard(old)
	}
	ws := h.store.Create()

	session.Set(WorkspaceSessionKey, ws.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to start session")
		return
	}
	c.Set(WorkspaceContextKey, ws)

	renderPage(c, h.log, http.StatusOK, views.AppName, views.RoleSelection())
}

// SelectRole fixes the workspace role and swaps in that role's dashboard.
func (h *DashboardHandler) SelectRole(c *gin.Context) {
	ws := currentWorkspace(c)
	role, err := models.ParseRole(c.PostForm("role"))
	if err != nil {
		h.log.Warn("Rejected role selection", zap.String("role", c.PostForm("role")))
		renderAlert(c, h.log, http.StatusBadRequest, "Please choose either the doctor or the patient view.")
		return
	}

	if err := ws.SelectRole(role); err != nil {
		if !errors.Is(err, repository.ErrRoleAlreadySelected) {
			h.log.Error("Failed to select role", zap.Error(err))
			renderAlert(c, h.log, http.StatusInternalServerError, "Could not switch views.")
			return
		}
		h.log.Info("Role already chosen for this workspace",
			zap.String("workspace_id", ws.ID),
			zap.String("requested", string(role)),
			zap.String("current", string(ws.Role())),
		)
	}

	switch ws.Role() {
	case models.RoleDoctor:
		h.doctor.Dashboard(c)
	case models.RolePatient:
		h.patient.Dashboard(c)
	}
}
