package metrics

import (
	"math"

	"neurowatch/internal/eeg"
)

// WaveformSummary describes a trace in a few numbers for the chart footers.
type WaveformSummary struct {
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stdDev"`
	RMS     float64 `json:"rms"`
	Peak    float64 `json:"peak"`
	Flagged int     `json:"flagged"`
}

// Summarize computes the summary of samples. An empty trace yields the zero value.
func Summarize(samples []eeg.Sample) WaveformSummary {
	if len(samples) == 0 {
		return WaveformSummary{}
	}

	summary := WaveformSummary{Count: len(samples)}
	var sum, sumSquares float64
	for _, s := range samples {
		sum += s.Amplitude
		sumSquares += s.Amplitude * s.Amplitude
		if math.Abs(s.Amplitude) > math.Abs(summary.Peak) {
			summary.Peak = s.Amplitude
		}
		if s.IsAbnormal {
			summary.Flagged++
		}
	}

	n := float64(len(samples))
	summary.Mean = sum / n
	summary.RMS = math.Sqrt(sumSquares / n)
	summary.StdDev = calculateStdDev(samples, summary.Mean)
	return summary
}

func calculateStdDev(samples []eeg.Sample, mean float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var variance float64
	for _, s := range samples {
		variance += math.Pow(s.Amplitude-mean, 2)
	}
	return math.Sqrt(variance / float64(len(samples)-1))
}
