package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	g := NewPDFGenerator(dir)

	path, err := g.Generate("abc-123", Feedback{
		ApplicantName: "Alice",
		Email:         "alice@example.com",
		JobTitle:      "Data Analyst",
		MatchScore:    66.67,
		MissingSkills: []string{"communication"},
		FeedbackText:  "Unfortunately, your application did not meet our requirements.",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := filepath.Join(dir, "abc-123_feedback.pdf"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("report is empty")
	}

	header := make([]byte, 5)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Read(header); err != nil {
		t.Fatal(err)
	}
	if string(header) != "%PDF-" {
		t.Errorf("header = %q, want PDF magic", header)
	}
}

func TestGenerateNoMissingSkills(t *testing.T) {
	g := NewPDFGenerator(t.TempDir())

	if _, err := g.Generate("xyz", Feedback{
		ApplicantName: "Bob",
		MatchScore:    100,
		FeedbackText:  "Congratulations!",
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
}

func TestGenerateUnconfigured(t *testing.T) {
	g := NewPDFGenerator("")
	if _, err := g.Generate("k", Feedback{}); err == nil {
		t.Error("Generate() error = nil, want unconfigured failure")
	}
}
