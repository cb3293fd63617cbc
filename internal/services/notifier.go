package services

import (
	"neurowatch/internal/models"

	"go.uber.org/zap"
)

// ReportNotifier is a placeholder for telling a patient their analysis is ready.
type ReportNotifier struct {
	log *zap.Logger
}

func NewReportNotifier(log *zap.Logger) *ReportNotifier {
	return &ReportNotifier{log: log}
}

// ReportReady logs the completed analysis. A real deployment would push a
// message to the patient here.
func (n *ReportNotifier) ReportReady(file models.UploadedFile) {
	n.log.Info("Analysis report ready",
		zap.String("upload_id", file.ID),
		zap.String("file", file.Name),
		zap.Int("risk_score", file.Score()),
	)
}
