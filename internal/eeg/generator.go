// Package eeg generates the synthetic EEG traces shown on the dashboards.
// The traces are decorative: a fixed two-sine base shape plus uniform noise,
// with spike windows on the abnormal variant.
package eeg

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
)

// DefaultLength is the number of samples drawn when the caller has no preference.
const DefaultLength = 50

var ErrUnknownKind = errors.New("unknown waveform kind")

// Sample is one point of a trace. Time is the 0-based sample index.
type Sample struct {
	Time       int     `json:"time"`
	Amplitude  float64 `json:"amplitude"`
	IsAbnormal bool    `json:"isAbnormal,omitempty"`
}

// Kind selects which trace to generate.
type Kind string

const (
	Normal   Kind = "normal"
	Abnormal Kind = "abnormal"
)

// ParseKind accepts "normal" or "abnormal", case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Normal, Abnormal:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Window is an open interval (Start, End) of sample indexes.
type Window struct {
	Start int
	End   int
}

// Contains reports whether Start < i < End.
func (w Window) Contains(i int) bool {
	return i > w.Start && i < w.End
}

// AbnormalWindows are the index ranges that receive spikes in an abnormal trace.
var AbnormalWindows = []Window{{Start: 15, End: 18}, {Start: 25, End: 28}}

// ReferenceMarks are the x positions highlighted on the clinician chart.
var ReferenceMarks = []int{15, 25}

const (
	normalNoise   = 0.2
	abnormalNoise = 0.3
	spikeScale    = 2.0
)

// Source is anything that yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// lockedSource serializes access to a source that is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Float64()
}

// DefaultSource returns the process-wide source, safe for concurrent use.
func DefaultSource() Source { return globalSource{} }

// Locked guards src with a mutex.
func Locked(src Source) Source {
	if _, ok := src.(globalSource); ok {
		return src
	}
	return &lockedSource{src: src}
}

// Generator draws traces from a single random source.
type Generator struct {
	src Source
}

// NewGenerator wraps src so the generator can be shared between goroutines.
// A nil src falls back to the process-wide source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		return &Generator{src: DefaultSource()}
	}
	return &Generator{src: Locked(src)}
}

// NewSeededGenerator returns a generator whose output is reproducible for a given seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

var defaultGenerator = NewGenerator(nil)

// GenerateNormal draws a normal trace from the process-wide source.
func GenerateNormal(length int) []Sample {
	return defaultGenerator.Normal(length)
}

// GenerateAbnormal draws an abnormal trace from the process-wide source.
func GenerateAbnormal(length int) []Sample {
	return defaultGenerator.Abnormal(length)
}

// Generate dispatches on kind using the process-wide source.
func Generate(kind Kind, length int) ([]Sample, error) {
	return defaultGenerator.Generate(kind, length)
}

// Generate dispatches on kind.
func (g *Generator) Generate(kind Kind, length int) ([]Sample, error) {
	switch kind {
	case Normal:
		return g.Normal(length), nil
	case Abnormal:
		return g.Abnormal(length), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Normal returns length samples of base shape plus noise in [-0.1, 0.1).
// A negative length yields an empty trace.
func (g *Generator) Normal(length int) []Sample {
	samples := make([]Sample, clamp(length))
	for i := range samples {
		samples[i] = Sample{
			Time:      i,
			Amplitude: base(i) + g.noise(normalNoise),
		}
	}
	return samples
}

// Abnormal returns length samples with spikes of up to 2.0 inside AbnormalWindows
// and noise in [-0.15, 0.15).
func (g *Generator) Abnormal(length int) []Sample {
	samples := make([]Sample, clamp(length))
	for i := range samples {
		var spike float64
		if inAbnormalWindow(i) {
			spike = g.src.Float64() * spikeScale
		}
		samples[i] = Sample{
			Time:       i,
			Amplitude:  base(i) + spike + g.noise(abnormalNoise),
			IsAbnormal: spike > 0,
		}
	}
	return samples
}

func (g *Generator) noise(width float64) float64 {
	return (g.src.Float64() - 0.5) * width
}

func base(i int) float64 {
	x := float64(i)
	return math.Sin(x*0.3)*0.5 + math.Sin(x*0.1)*0.3
}

func inAbnormalWindow(i int) bool {
	for _, w := range AbnormalWindows {
		if w.Contains(i) {
			return true
		}
	}
	return false
}

func clamp(length int) int {
	if length < 0 {
		return 0
	}
	return length
}
