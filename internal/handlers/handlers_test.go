package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"neurowatch/internal/config"
	"neurowatch/internal/eeg"
	"neurowatch/internal/models"
	"neurowatch/internal/repository"
	"neurowatch/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChartForMarksAbnormalTrace(t *testing.T) {
	samples := eeg.NewSeededGenerator(1).Abnormal(eeg.DefaultLength)

	marked := chartFor("patient-eeg", "Current", abnormalColor, samples, true)
	require.Equal(t, "patient-eeg", marked.ID)
	require.Contains(t, marked.Options, `"markLine"`)
	require.Contains(t, marked.Options, `"xAxis":15`)
	require.Contains(t, marked.Options, `"xAxis":25`)
	require.Equal(t, eeg.DefaultLength, marked.Summary.Count)

	plain := chartFor("baseline-eeg", "Baseline", normalColor, eeg.GenerateNormal(eeg.DefaultLength), false)
	require.NotContains(t, plain.Options, `"markLine"`)
	require.Contains(t, plain.Options, normalColor)
}

type manualScheduler struct{ pending []func() }

func (s *manualScheduler) After(_ time.Duration, fn func()) { s.pending = append(s.pending, fn) }

func patientContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder, *repository.Workspace) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Conf = config.Default()
	store := repository.NewWorkspaceStore(10, time.Hour, func() *uploads.Tracker {
		return uploads.NewTracker(zap.NewNop(), nil, uploads.Options{
			AllowedExtensions: []string{".csv", ".edf"},
			Scorer:            fixedScorer(30),
			Scheduler:         &manualScheduler{},
		})
	})
	ws := store.Create()
	require.NoError(t, ws.SelectRole(models.RolePatient))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Request.Header.Set("HX-Request", "true")
	c.Set(WorkspaceContextKey, ws)
	return c, rec, ws
}

type fixedScorer int

func (s fixedScorer) Score() int { return int(s) }

func TestPatientDashboardWithoutUploads(t *testing.T) {
	c, rec, _ := patientContext(t, http.MethodGet, "/patient")
	NewPatientHandler(zap.NewNop()).Dashboard(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Patient Portal")
	require.Contains(t, body, `accept=".csv,.edf"`)
	require.NotContains(t, body, "Latest Analysis Results")
	require.NotContains(t, body, `hx-trigger="every 1s"`)
}

func TestPatientPollingFollowsProcessingState(t *testing.T) {
	c, rec, ws := patientContext(t, http.MethodGet, "/patient/uploads")
	_, err := ws.Uploads.Start([]string{"night.edf"})
	require.NoError(t, err)

	h := NewPatientHandler(zap.NewNop())
	h.Uploads(c)
	require.Contains(t, rec.Body.String(), `hx-trigger="every 1s"`)
	require.True(t, strings.HasPrefix(rec.Body.String(), `<div id="patient-grid"`))
}

func TestUploadWithoutFormIsRejected(t *testing.T) {
	c, rec, ws := patientContext(t, http.MethodPost, "/patient/uploads")
	NewPatientHandler(zap.NewNop()).Upload(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `role="alert"`)
	require.Empty(t, ws.Uploads.List())
}

func TestNotFoundRendersPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/missing", nil)
	c.Set(CSRFTokenContextKey, "tok")

	NotFound(zap.NewNop())(c)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	require.Contains(t, rec.Body.String(), "/missing")
}

func TestTraceFollowsReloadedLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conf := config.Default()
	conf.Waveform.DefaultLength = 12
	config.Conf = conf
	h := NewWaveformHandler(zap.NewNop())

	trace := func(target string) (int, waveformResponse) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		c.Params = gin.Params{{Key: "kind", Value: "normal"}}
		h.Trace(c)
		var resp waveformResponse
		if rec.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		}
		return rec.Code, resp
	}

	code, resp := trace("/api/eeg/normal")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Samples, 12)

	conf.Waveform.DefaultLength = 20
	conf.Waveform.MaxLength = 30
	_, resp = trace("/api/eeg/normal")
	require.Len(t, resp.Samples, 20)

	code, _ = trace("/api/eeg/normal?length=31")
	require.Equal(t, http.StatusBadRequest, code)
}
