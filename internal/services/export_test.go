package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"airhr/resume-analyzer/internal/models"
)

func exportFixture() []models.Candidate {
	score := 85
	match := 70
	return []models.Candidate{
		{
			Name:               "alice.pdf",
			Score:              &score,
			MatchPercent:       &match,
			Experience:         "6 years",
			Verdict:            "Strong Fit",
			HireRecommendation: "Hire",
			Strengths:          "Go, Postgres",
			RedFlags:           "None",
			Summary:            "BSc CS",
			FullReply:          "Score: 85\n...",
		},
		{
			Name:               "Pasted_1",
			Experience:         MissingValue,
			Verdict:            MissingValue,
			HireRecommendation: MissingValue,
			Strengths:          MissingValue,
			RedFlags:           MissingValue,
			Summary:            MissingValue,
			FullReply:          "[API Error] quota exceeded",
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, err := NewExportService().ExportCSV(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	if rows[0][0] != "Candidate" || rows[0][len(rows[0])-1] != "Full Reply" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	if rows[1][0] != "alice.pdf" || rows[1][1] != "85" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}

	// absent numbers render as the sentinel, visibly distinct from 0
	if rows[2][1] != MissingValue || rows[2][2] != MissingValue {
		t.Fatalf("expected sentinel values in second row: %v", rows[2])
	}
}

func TestExportXLSX(t *testing.T) {
	data, err := NewExportService().ExportXLSX(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported XLSX does not open: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	if err != nil || header != "Candidate" {
		t.Fatalf("unexpected A1 value %q (err %v)", header, err)
	}

	name, err := f.GetCellValue(sheet, "A2")
	if err != nil || name != "alice.pdf" {
		t.Fatalf("unexpected A2 value %q (err %v)", name, err)
	}

	score, err := f.GetCellValue(sheet, "B3")
	if err != nil || score != MissingValue {
		t.Fatalf("expected sentinel in B3, got %q (err %v)", score, err)
	}
}
