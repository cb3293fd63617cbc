package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFixturesRosterOrder(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/patients.yaml")
	require.NoError(t, err)

	patients := fixtures.Roster.All()
	require.Len(t, patients, 3)

	want := []struct {
		name       string
		risk       int
		status     PatientStatus
		confidence int
	}{
		{"Aarav Sharma", 85, StatusAlert, 92},
		{"Priya Nair", 35, StatusWarning, 78},
		{"Rohan Patel", 12, StatusNormal, 94},
	}
	for i, w := range want {
		require.Equal(t, w.name, patients[i].Name)
		require.Equal(t, w.risk, patients[i].RiskScore)
		require.Equal(t, w.status, patients[i].Status)
		require.Equal(t, w.confidence, patients[i].Confidence)
	}
	require.Equal(t, "2024-01-15", patients[0].LastScanDate.Format(DateLayout))
}

func TestLoadFixturesSeedUploads(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/patients.yaml")
	require.NoError(t, err)

	uploads := fixtures.SeedUploads()
	require.Len(t, uploads, 1)
	require.Equal(t, "eeg_recording_2024_01_15.csv", uploads[0].Name)
	require.Equal(t, UploadCompleted, uploads[0].Status)
	require.Equal(t, 23, uploads[0].Score())
	require.Equal(t, "2024-01-15", uploads[0].Day())

	uploads[0].Name = "changed.csv"
	require.Equal(t, "eeg_recording_2024_01_15.csv", fixtures.SeedUploads()[0].Name)
}

func TestRosterIsReadOnly(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/patients.yaml")
	require.NoError(t, err)

	all := fixtures.Roster.All()
	all[0].RiskScore = 1
	first, ok := fixtures.Roster.First()
	require.True(t, ok)
	require.Equal(t, 85, first.RiskScore)
}

func TestRosterFind(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/patients.yaml")
	require.NoError(t, err)

	p, err := fixtures.Roster.Find("P002")
	require.NoError(t, err)
	require.Equal(t, "Priya Nair", p.Name)

	_, err = fixtures.Roster.Find("P999")
	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestParseFixturesRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"bad status": `
patients:
  - {id: P1, name: A, age: 1, risk_score: 10, last_scan: "2024-01-01", status: critical, confidence: 50}
`,
		"score out of range": `
patients:
  - {id: P1, name: A, age: 1, risk_score: 101, last_scan: "2024-01-01", status: normal, confidence: 50}
`,
		"duplicate id": `
patients:
  - {id: P1, name: A, age: 1, risk_score: 10, last_scan: "2024-01-01", status: normal, confidence: 50}
  - {id: P1, name: B, age: 2, risk_score: 10, last_scan: "2024-01-01", status: normal, confidence: 50}
`,
		"bad date": `
patients:
  - {id: P1, name: A, age: 1, risk_score: 10, last_scan: "15/01/2024", status: normal, confidence: 50}
`,
		"bad upload status": `
uploads:
  - {name: a.csv, upload_date: "2024-01-01", status: queued}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestStatusIsIndependentOfScore(t *testing.T) {
	doc := `
patients:
  - {id: P1, name: A, age: 1, risk_score: 95, last_scan: "2024-01-01", status: normal, confidence: 50}
`
	fixtures, err := ParseFixtures([]byte(doc))
	require.NoError(t, err)
	p, _ := fixtures.Roster.First()
	require.Equal(t, StatusNormal, p.Status)
	require.Equal(t, 95, p.RiskScore)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Doctor")
	require.NoError(t, err)
	require.Equal(t, RoleDoctor, r)

	_, err = ParseRole("admin")
	require.Error(t, err)
}
