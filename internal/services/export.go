package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"airhr/resume-analyzer/internal/models"
)

// ExportService renders a batch as a downloadable tabular report: one row
// per candidate, one column per field, the full raw reply as the last
// column. Absent values appear as the sentinel display form.
type ExportService interface {
	ExportCSV(candidates []models.Candidate) ([]byte, error)
	ExportXLSX(candidates []models.Candidate) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

var reportColumns = []string{
	"Candidate", "Score", "Match %", "Experience", "Verdict",
	"Hire", "Strengths", "Red Flags", "Summary", "Full Reply",
}

func reportRow(c models.Candidate) []string {
	return []string{
		c.Name,
		displayNumber(c.Score),
		displayNumber(c.MatchPercent),
		c.Experience,
		c.Verdict,
		c.HireRecommendation,
		c.Strengths,
		c.RedFlags,
		c.Summary,
		c.FullReply,
	}
}

func displayNumber(n *int) string {
	if n == nil {
		return MissingValue
	}
	return strconv.Itoa(*n)
}

// ExportCSV implements ExportService.
func (e *exportService) ExportCSV(candidates []models.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportColumns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, c := range candidates {
		if err := w.Write(reportRow(c)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportXLSX implements ExportService.
func (e *exportService) ExportXLSX(candidates []models.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, c := range candidates {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}

		cols := reportRow(c)
		row := make([]interface{}, len(cols))
		for j, v := range cols {
			row[j] = v
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx: %w", err)
	}

	return buf.Bytes(), nil
}
