package analytics

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Progress"

// WriteReport writes the per-course standing and the cumulative GPA to an
// xlsx workbook at path.
func WriteReport(path, studentID string, courses []CourseProgress) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	headers := []string{"Course", "Average Score", "Grade", "Grade Points", "Credits", "Trend", "Attempts"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, c := range courses {
		values := []any{
			c.Course,
			fmt.Sprintf("%.1f%%", c.AverageScore),
			c.Grade,
			c.GradePoints,
			c.Credits,
			c.Trend,
			c.Attempts,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	summaryRow := len(courses) + 3
	cell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return fmt.Errorf("summary cell: %w", err)
	}
	if err := f.SetCellValue(reportSheet, cell, fmt.Sprintf("CGPA (%s)", studentID)); err != nil {
		return fmt.Errorf("write summary label: %w", err)
	}
	cell, err = excelize.CoordinatesToCellName(2, summaryRow)
	if err != nil {
		return fmt.Errorf("summary cell: %w", err)
	}
	if err := f.SetCellValue(reportSheet, cell, fmt.Sprintf("%.2f", CGPA(courses))); err != nil {
		return fmt.Errorf("write summary value: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
