// Package export writes batch analysis reports as Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/resumelens/resumelens/internal/models"
)

// WriteReport generates an Excel report for a batch of analyses. Records are
// written in the order given, which batch analysis ranks by score. skipped
// counts files that failed extraction.
func WriteReport(records []*models.AnalysisRecord, skipped int, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	candidatesSheet := "Ranked Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, records, skipped); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, records); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		// Fall back to a buffered write; SaveAs can fail on some network mounts.
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save report: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save report: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, records []*models.AnalysisRecord, skipped int) error {
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Resume Analysis Report")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Generated:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), time.Now().Format("2006-01-02 15:04:05"))
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Resumes Analyzed:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), len(records))
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Files Skipped:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), skipped)
	row += 2

	if len(records) == 0 {
		return nil
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Score Distribution:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	var strong, fair, weak, total int
	high, low := records[0].Result.ATSScore, records[0].Result.ATSScore
	for _, rec := range records {
		score := rec.Result.ATSScore
		switch {
		case score >= 70:
			strong++
		case score >= 50:
			fair++
		default:
			weak++
		}
		if score > high {
			high = score
		}
		if score < low {
			low = score
		}
		total += score
	}

	for _, line := range []struct {
		label string
		value interface{}
	}{
		{"Strong (70+):", strong},
		{"Fair (50-69):", fair},
		{"Weak (<50):", weak},
		{"Average Score:", fmt.Sprintf("%.1f", float64(total)/float64(len(records)))},
		{"Highest Score:", high},
		{"Lowest Score:", low},
	} {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.value)
		row++
	}
	return nil
}

func writeCandidatesSheet(f *excelize.File, sheet string, records []*models.AnalysisRecord) error {
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "G", 14)
	f.SetColWidth(sheet, "H", "I", 45)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Resume", "ATS Score", "Skills", "Experience", "Projects", "Role Fit", "Missing Keywords", "Top Suggestion"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i, rec := range records {
		row := i + 2
		suggestion := ""
		if len(rec.Result.ImprovementSuggestions) > 0 {
			suggestion = rec.Result.ImprovementSuggestions[0]
		}
		values := []interface{}{
			i + 1,
			rec.ResumeName,
			rec.Result.ATSScore,
			rec.Result.SectionScores.Skills,
			rec.Result.SectionScores.Experience,
			rec.Result.SectionScores.Projects,
			rec.Result.SectionScores.RoleAlignment,
			strings.Join(rec.Result.MissingKeywords, ", "),
			suggestion,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}
