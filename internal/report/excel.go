package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ApplicationRow is one line of the admin applications export.
type ApplicationRow struct {
	Name        string
	Email       string
	Gender      string
	JobTitle    string
	Status      string
	Feedback    string
	MatchScore  float64
	Category    string
	SubmittedOn time.Time
}

const applicationsSheet = "Applications"

// WriteApplicationsXLSX renders the export workbook into memory.
func WriteApplicationsXLSX(rows []ApplicationRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", applicationsSheet)

	headers := []string{"Name", "Email", "Gender", "Job Title", "Status", "Feedback", "Match Score", "Category", "Submitted On"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(applicationsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		values := []any{
			r.Name, r.Email, r.Gender, r.JobTitle, r.Status, r.Feedback,
			r.MatchScore, r.Category, r.SubmittedOn.Format("2006-01-02"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(applicationsSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
