package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// Feedback is the content of an applicant feedback document.
type Feedback struct {
	ApplicantName string
	Email         string
	JobTitle      string
	MatchScore    float64
	MissingSkills []string
	FeedbackText  string
}

type PDFGenerator struct {
	dir string
}

func NewPDFGenerator(dir string) *PDFGenerator {
	return &PDFGenerator{dir: dir}
}

// Generate writes a feedback report and returns its path. The filename
// is keyed by the caller-supplied key (the application ID), so two
// applicants with the same name cannot clobber each other's reports.
func (g *PDFGenerator) Generate(key string, fb Feedback) (string, error) {
	if g == nil || g.dir == "" {
		return "", fmt.Errorf("report directory not configured")
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(g.dir, fmt.Sprintf("%s_feedback.pdf", key))

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Application Feedback Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Applicant Name: %s", fb.ApplicantName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Email: %s", fb.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Job Title: %s", fb.JobTitle), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Match Score: %.2f%%", fb.MatchScore), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Missing Skills:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(fb.MissingSkills) == 0 {
		pdf.CellFormat(0, 6, "- none", "", 1, "L", false, 0, "")
	}
	for _, skill := range fb.MissingSkills {
		pdf.CellFormat(0, 6, fmt.Sprintf("- %s", skill), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Feedback:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fb.FeedbackText, "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}
