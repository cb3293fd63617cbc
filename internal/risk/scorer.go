// Package risk assigns the placeholder risk score given to a processed upload.
// The score is random and unrelated to any trace shown next to it.
package risk

import (
	"math"

	"neurowatch/internal/eeg"
)

const (
	MinScore = 10
	MaxScore = 39

	scoreSpan = MaxScore - MinScore + 1
)

// Scorer draws risk scores from a random source.
type Scorer struct {
	src eeg.Source
}

// NewScorer returns a scorer over src. A nil src uses the process-wide source.
func NewScorer(src eeg.Source) *Scorer {
	if src == nil {
		return &Scorer{src: eeg.DefaultSource()}
	}
	return &Scorer{src: eeg.Locked(src)}
}

// Score returns floor(u*30)+10 for a uniform u in [0, 1).
func (s *Scorer) Score() int {
	return int(math.Floor(s.src.Float64()*scoreSpan)) + MinScore
}
