// Package reports builds the Excel workbooks behind the dashboards' export buttons.
package reports

import (
	"fmt"
	"io"

	"neurowatch/internal/eeg"
	"neurowatch/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	PatientsSheet = "Patients"
	ReportSheet   = "Report"
	TraceSheet    = "EEG"

	// ContentType is the MIME type of the generated workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var patientHeaders = []string{"Patient ID", "Name", "Age", "Risk Score (%)", "Last Scan", "Status", "AI Confidence (%)"}

// PatientRoster writes the clinician's patient list as a workbook.
func PatientRoster(w io.Writer, roster *models.Roster) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, PatientsSheet, patientHeaders, []float64{12, 24, 8, 16, 14, 12, 18}); err != nil {
		return err
	}
	for i, p := range roster.All() {
		row := []interface{}{p.ID, p.Name, p.Age, p.RiskScore, p.LastScanDate.Format(models.DateLayout), string(p.Status), p.Confidence}
		if err := setRow(f, PatientsSheet, i+2, row); err != nil {
			return err
		}
	}
	return write(f, w)
}

// AnalysisReport writes the summary of a completed upload together with the
// trace shown next to it.
func AnalysisReport(w io.Writer, file models.UploadedFile, samples []eeg.Sample) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, ReportSheet, []string{"Field", "Value"}, []float64{16, 36}); err != nil {
		return err
	}
	fields := [][]interface{}{
		{"File", file.Name},
		{"Upload Date", file.Day()},
		{"Status", string(file.Status)},
		{"Risk Score (%)", file.Score()},
	}
	for i, row := range fields {
		if err := setRow(f, ReportSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(TraceSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", TraceSheet, err)
	}
	if err := setRow(f, TraceSheet, 1, []interface{}{"Time", "Amplitude", "Abnormal"}); err != nil {
		return err
	}
	for i, s := range samples {
		if err := setRow(f, TraceSheet, i+2, []interface{}{s.Time, s.Amplitude, s.IsAbnormal}); err != nil {
			return err
		}
	}
	return write(f, w)
}

// newSheet renames the default sheet to name and writes a bold, frozen header row.
func newSheet(f *excelize.File, name string, headers []string, widths []float64) error {
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, name, 1, row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
