package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientStatus is a fixture field on its own; nothing derives it from the risk score.
type PatientStatus string

const (
	StatusNormal  PatientStatus = "normal"
	StatusWarning PatientStatus = "warning"
	StatusAlert   PatientStatus = "alert"
)

func (s PatientStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusAlert:
		return true
	}
	return false
}

// Patient matches an entry of the patients fixture file.
type Patient struct {
	ID           string        `yaml:"id" json:"id"`
	Name         string        `yaml:"name" json:"name"`
	Age          int           `yaml:"age" json:"age"`
	RiskScore    int           `yaml:"risk_score" json:"riskScore"`
	LastScan     string        `yaml:"last_scan" json:"lastScanDate"`
	Status       PatientStatus `yaml:"status" json:"status"`
	Confidence   int           `yaml:"confidence" json:"confidence"`
	LastScanDate time.Time     `yaml:"-" json:"-"`
}

func (p *Patient) validate() error {
	if p.ID == "" {
		return errors.New("patient id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("patient %s: name is required", p.ID)
	}
	if p.RiskScore < 0 || p.RiskScore > 100 {
		return fmt.Errorf("patient %s: risk score %d out of range 0-100", p.ID, p.RiskScore)
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		return fmt.Errorf("patient %s: confidence %d out of range 0-100", p.ID, p.Confidence)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("patient %s: unknown status %q", p.ID, p.Status)
	}
	date, err := time.Parse(DateLayout, p.LastScan)
	if err != nil {
		return fmt.Errorf("patient %s: invalid last scan date: %w", p.ID, err)
	}
	p.LastScanDate = date
	return nil
}

// Roster is the ordered, read-only list of patients shown to clinicians.
type Roster struct {
	patients []Patient
}

// NewRoster validates patients and keeps its own copy of them.
func NewRoster(patients []Patient) (*Roster, error) {
	seen := make(map[string]bool, len(patients))
	own := make([]Patient, len(patients))
	copy(own, patients)
	for i := range own {
		if err := own[i].validate(); err != nil {
			return nil, err
		}
		if seen[own[i].ID] {
			return nil, fmt.Errorf("duplicate patient id %s", own[i].ID)
		}
		seen[own[i].ID] = true
	}
	return &Roster{patients: own}, nil
}

// All returns a copy of the patients in fixture order.
func (r *Roster) All() []Patient {
	out := make([]Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *Roster) Len() int {
	return len(r.patients)
}

// First returns the patient selected when the clinician dashboard opens.
func (r *Roster) First() (Patient, bool) {
	if len(r.patients) == 0 {
		return Patient{}, false
	}
	return r.patients[0], true
}

func (r *Roster) Find(id string) (Patient, error) {
	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, fmt.Errorf("%w: %s", ErrPatientNotFound, id)
}
