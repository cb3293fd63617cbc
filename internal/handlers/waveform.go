package handlers

import (
	"net/http"
	"strconv"

	"neurowatch/internal/config"
	"neurowatch/internal/eeg"
	"neurowatch/internal/metrics"
	"neurowatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WaveformHandler struct {
	log *zap.Logger
}

func NewWaveformHandler(log *zap.Logger) *WaveformHandler {
	return &WaveformHandler{log: log}
}

type waveformResponse struct {
	Kind    eeg.Kind                `json:"kind"`
	Samples []eeg.Sample            `json:"samples"`
	Summary metrics.WaveformSummary `json:"summary"`
}

// Trace serves GET /api/eeg/:kind?length=N[&seed=S].
func (h *WaveformHandler) Trace(c *gin.Context) {
	kind, err := eeg.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limits := config.Current().Waveform
	length, err := utils.ParseWaveformLength(c.Query("length"), limits.DefaultLength, limits.MaxLength)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gen := eeg.NewGenerator(nil)
	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an unsigned integer"})
			return
		}
		gen = eeg.NewSeededGenerator(seed)
	}

	samples, err := gen.Generate(kind, length)
	if err != nil {
		h.log.Error("Failed to generate trace", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate trace"})
		return
	}
	c.JSON(http.StatusOK, waveformResponse{Kind: kind, Samples: samples, Summary: metrics.Summarize(samples)})
}
