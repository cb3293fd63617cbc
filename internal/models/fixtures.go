package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixtures is the seed data the dashboards are built from. It is loaded once
// at startup and handed to the handlers; nothing mutates it afterwards.
type Fixtures struct {
	Roster  *Roster
	uploads []UploadedFile
}

// SeedUploads returns a fresh copy of the upload history every new workspace starts with.
func (f *Fixtures) SeedUploads() []UploadedFile {
	out := make([]UploadedFile, len(f.uploads))
	copy(out, f.uploads)
	return out
}

type fixtureFile struct {
	Patients []Patient   `yaml:"patients"`
	Uploads  []seedUpload `yaml:"uploads"`
}

type seedUpload struct {
	Name       string       `yaml:"name"`
	UploadDate string       `yaml:"upload_date"`
	Status     UploadStatus `yaml:"status"`
	RiskScore  *int         `yaml:"risk_score"`
}

// LoadFixtures reads and validates the fixtures YAML file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes fixtures from YAML.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixtures YAML: %w", err)
	}

	roster, err := NewRoster(file.Patients)
	if err != nil {
		return nil, fmt.Errorf("invalid patient fixture: %w", err)
	}

	uploads := make([]UploadedFile, 0, len(file.Uploads))
	for i, u := range file.Uploads {
		record, err := u.toRecord(i)
		if err != nil {
			return nil, fmt.Errorf("invalid upload fixture: %w", err)
		}
		uploads = append(uploads, record)
	}

	return &Fixtures{Roster: roster, uploads: uploads}, nil
}

func (u seedUpload) toRecord(index int) (UploadedFile, error) {
	if u.Name == "" {
		return UploadedFile{}, fmt.Errorf("upload %d: name is required", index)
	}
	date, err := time.Parse(DateLayout, u.UploadDate)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("upload %s: invalid date: %w", u.Name, err)
	}
	switch u.Status {
	case UploadProcessing, UploadCompleted, UploadError:
	default:
		return UploadedFile{}, fmt.Errorf("upload %s: unknown status %q", u.Name, u.Status)
	}
	if u.RiskScore != nil && (*u.RiskScore < 0 || *u.RiskScore > 100) {
		return UploadedFile{}, fmt.Errorf("upload %s: risk score %d out of range 0-100", u.Name, *u.RiskScore)
	}
	return UploadedFile{
		ID:         fmt.Sprintf("seed-%d", index+1),
		Name:       u.Name,
		UploadDate: date,
		Status:     u.Status,
		RiskScore:  u.RiskScore,
	}, nil
}
