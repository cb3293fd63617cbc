package handlers

import (
	"errors"
	"net/http"
	"strings"

	"neurowatch/internal/config"
	"neurowatch/internal/eeg"
	"neurowatch/internal/repository"
	"neurowatch/internal/uploads"
	"neurowatch/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PatientHandler struct {
	log *zap.Logger
}

func NewPatientHandler(log *zap.Logger) *PatientHandler {
	return &PatientHandler{log: log}
}

// Dashboard renders the patient portal.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	ws := currentWorkspace(c)
	renderFragment(c, h.log, http.StatusOK, views.PatientDashboard(h.dashboardData(ws, "")))
}

// Uploads re-renders the portal body; the page polls it while any upload is processing.
func (h *PatientHandler) Uploads(c *gin.Context) {
	ws := currentWorkspace(c)
	renderFragment(c, h.log, http.StatusOK, views.PatientWorkspace(h.dashboardData(ws, "")))
}

// Upload records the picked files. Only the names are used; the bodies are
// discarded unread.
func (h *PatientHandler) Upload(c *gin.Context) {
	ws := currentWorkspace(c)
	if maxBytes := config.Current().Upload.MaxMultipartMB << 20; maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.log.Warn("Failed to read upload form", zap.Error(err))
		h.rejectUpload(c, ws, "The selected files could not be read.")
		return
	}
	defer form.RemoveAll()

	headers := form.File["files"]
	names := make([]string, 0, len(headers))
	for _, fh := range headers {
		names = append(names, fh.Filename)
	}

	started, err := ws.Uploads.Start(names)
	if err != nil {
		h.log.Warn("Rejected upload", zap.Strings("files", names), zap.Error(err))
		switch {
		case errors.Is(err, uploads.ErrUnsupportedExtension):
			h.rejectUpload(c, ws, "Only CSV and EDF files are supported.")
		case errors.Is(err, uploads.ErrInvalidInput):
			h.rejectUpload(c, ws, "Please choose at least one file.")
		default:
			h.rejectUpload(c, ws, "The upload could not be started.")
		}
		return
	}

	h.log.Info("Uploads started", zap.String("workspace_id", ws.ID), zap.Int("count", len(started)))
	renderFragment(c, h.log, http.StatusOK, views.PatientWorkspace(h.dashboardData(ws, "")))
}

func (h *PatientHandler) rejectUpload(c *gin.Context, ws *repository.Workspace, notice string) {
	renderFragment(c, h.log, http.StatusBadRequest, views.PatientWorkspace(h.dashboardData(ws, notice)))
}

func (h *PatientHandler) dashboardData(ws *repository.Workspace, notice string) views.PatientDashboardData {
	conf := config.Current()
	data := views.PatientDashboardData{
		Files:   ws.Uploads.List(),
		Accept:  strings.Join(conf.Upload.AllowedExtensions, ","),
		Polling: ws.Uploads.Processing(),
		Notice:  notice,
	}
	if latest, ok := ws.Uploads.Latest(); ok {
		data.Latest = &latest
		data.Chart = chartFor("patient-pattern", "Your EEG Pattern", patientColor, eeg.GenerateNormal(conf.Waveform.DefaultLength), false)
	}
	return data
}
