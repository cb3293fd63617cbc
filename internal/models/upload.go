package models

import "time"

// DateLayout is the calendar date format used for scans and uploads.
const DateLayout = "2006-01-02"

type UploadStatus string

const (
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadError      UploadStatus = "error"
)

// UploadedFile tracks one file picked in the patient portal. Only the name is
// kept; the file body is never read.
type UploadedFile struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	UploadDate time.Time    `json:"-"`
	Status     UploadStatus `json:"status"`
	RiskScore  *int         `json:"riskScore,omitempty"`
}

// Day formats the upload date the way the portal lists it.
func (f UploadedFile) Day() string {
	return f.UploadDate.Format(DateLayout)
}

// HasRiskScore mirrors the portal's rule of only showing a score once one is set.
func (f UploadedFile) HasRiskScore() bool {
	return f.RiskScore != nil
}

// Score returns the risk score or 0 when none is set.
func (f UploadedFile) Score() int {
	if f.RiskScore == nil {
		return 0
	}
	return *f.RiskScore
}

// WithScore returns a copy of f completed with score.
func (f UploadedFile) WithScore(score int) UploadedFile {
	f.Status = UploadCompleted
	f.RiskScore = &score
	return f
}
