package handlers

import (
	"errors"
	"net/http"

	"neurowatch/internal/config"
	"neurowatch/internal/eeg"
	"neurowatch/internal/models"
	"neurowatch/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DoctorHandler struct {
	log    *zap.Logger
	roster *models.Roster
}

func NewDoctorHandler(log *zap.Logger, roster *models.Roster) *DoctorHandler {
	return &DoctorHandler{log: log, roster: roster}
}

// Dashboard renders the clinician view for the workspace's selected patient.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	ws := currentWorkspace(c)
	selected, ok := ws.SelectedPatient(h.roster)
	if !ok {
		h.log.Error("Patient roster is empty")
		renderAlert(c, h.log, http.StatusInternalServerError, "No patients are available.")
		return
	}
	renderFragment(c, h.log, http.StatusOK, views.DoctorDashboard(h.dashboardData(selected)))
}

// SelectPatient switches the analysis panel to another patient.
func (h *DoctorHandler) SelectPatient(c *gin.Context) {
	ws := currentWorkspace(c)
	id := c.Param("id")
	selected, err := ws.SelectPatient(h.roster, id)
	if err != nil {
		if errors.Is(err, models.ErrPatientNotFound) {
			h.log.Warn("Unknown patient selected", zap.String("patient_id", id))
			c.Header("HX-Retarget", "#patient-analysis")
			c.Header("HX-Reswap", "innerHTML")
			renderAlert(c, h.log, http.StatusNotFound, "Patient not found.")
			return
		}
		h.log.Error("Failed to select patient", zap.String("patient_id", id), zap.Error(err))
		renderAlert(c, h.log, http.StatusInternalServerError, "Could not load the patient.")
		return
	}
	renderFragment(c, h.log, http.StatusOK, views.DoctorDashboard(h.dashboardData(selected)))
}

// dashboardData draws a fresh baseline and patient trace on every render.
func (h *DoctorHandler) dashboardData(selected models.Patient) views.DoctorDashboardData {
	length := config.Current().Waveform.DefaultLength
	return views.DoctorDashboardData{
		Patients: h.roster.All(),
		Selected: selected,
		Baseline: chartFor("baseline-eeg", "Normal Baseline", normalColor, eeg.GenerateNormal(length), false),
		Current:  chartFor("patient-eeg", selected.Name+" (Current)", abnormalColor, eeg.GenerateAbnormal(length), true),
	}
}
