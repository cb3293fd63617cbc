package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"neurowatch/internal/config"
	"neurowatch/internal/eeg"
	"neurowatch/internal/models"
	"neurowatch/internal/reports"
	"neurowatch/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportsHandler struct {
	log    *zap.Logger
	roster *models.Roster
}

func NewReportsHandler(log *zap.Logger, roster *models.Roster) *ReportsHandler {
	return &ReportsHandler{log: log, roster: roster}
}

// Patients exports the roster for the doctor dashboard.
func (h *ReportsHandler) Patients(c *gin.Context) {
	var buf bytes.Buffer
	if err := reports.PatientRoster(&buf, h.roster); err != nil {
		h.log.Error("Failed to build patient export", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to build report")
		return
	}
	h.send(c, "patients.xlsx", &buf)
}

// Latest exports the report of the upload shown in the latest analysis card.
func (h *ReportsHandler) Latest(c *gin.Context) {
	ws := currentWorkspace(c)
	latest, ok := ws.Uploads.Latest()
	if !ok {
		renderPage(c, h.log, http.StatusNotFound, "Page not found", views.NotFound(c.Request.URL.Path))
		return
	}

	var buf bytes.Buffer
	if err := reports.AnalysisReport(&buf, latest, eeg.GenerateNormal(config.Current().Waveform.DefaultLength)); err != nil {
		h.log.Error("Failed to build analysis report", zap.String("upload_id", latest.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to build report")
		return
	}
	h.send(c, "eeg-report-"+latest.Day()+".xlsx", &buf)
}

func (h *ReportsHandler) send(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, reports.ContentType, buf.Bytes())
}
