package analyze

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/assemble"
	"github.com/resumelens/resumelens/internal/extract"
	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/internal/scoring"
	"github.com/resumelens/resumelens/internal/storage"
)

const testResume = `JANE DOE

EXPERIENCE

- Built Python services and Docker images for five years
- Operated Kubernetes clusters in production

SKILLS

Python, Docker, Kubernetes, PostgreSQL`

const testJD = "Looking for an engineer with Python, Docker and Terraform experience."

func newTestService(t *testing.T, withStore bool) (*Service, storage.Storage) {
	t.Helper()
	var store storage.Storage
	if withStore {
		s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
	}
	svc := NewService(
		extract.NewExtractor(0),
		assemble.NewHeuristic(scoring.DefaultWeights()),
		store,
		zap.NewNop(),
	)
	return svc, store
}

func makeDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	doc := `<?xml version="1.0"?><w:document><w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAnalyzeText(t *testing.T) {
	svc, store := newTestService(t, true)

	rec, err := svc.AnalyzeText(context.Background(), &models.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJD,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("record ID should be set")
	}
	if rec.Result.ATSScore <= 0 {
		t.Errorf("atsScore = %d, want positive", rec.Result.ATSScore)
	}
	if len(rec.Result.MissingKeywords) == 0 {
		t.Error("terraform should be missing")
	}

	stored, err := store.GetAnalysis(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.Result.ATSScore != rec.Result.ATSScore {
		t.Errorf("stored score = %d, want %d", stored.Result.ATSScore, rec.Result.ATSScore)
	}
}

func TestAnalyzeText_invalidLength(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.AnalyzeText(context.Background(), &models.AnalyzeRequest{
		ResumeText:     "too short",
		JobDescription: testJD,
	})
	if !errors.Is(err, models.ErrInvalidInputLength) {
		t.Fatalf("err = %v, want ErrInvalidInputLength", err)
	}
}

func TestAnalyzeText_withoutStore(t *testing.T) {
	svc, _ := newTestService(t, false)

	rec, err := svc.AnalyzeText(context.Background(), &models.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJD,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result.ATSScore <= 0 {
		t.Errorf("atsScore = %d, want positive", rec.Result.ATSScore)
	}
}

func TestAnalyzeFile(t *testing.T) {
	svc, _ := newTestService(t, true)

	content := makeDocx(t,
		"JANE DOE",
		"EXPERIENCE",
		"Built Python services and Docker images for five years running",
		"SKILLS",
		"Python, Docker, Kubernetes and PostgreSQL in production use",
	)
	rec, err := svc.AnalyzeFile(context.Background(), "jane.docx", content, testJD)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ResumeName != "jane.docx" {
		t.Errorf("resume name = %s", rec.ResumeName)
	}
	if rec.Result.ATSScore <= 0 {
		t.Errorf("atsScore = %d, want positive", rec.Result.ATSScore)
	}
}

func TestAnalyzeFile_unsupportedFormat(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.AnalyzeFile(context.Background(), "resume.txt", []byte("plain text"), testJD)
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestAnalyzeFile_chainsPreviousAnalysis(t *testing.T) {
	svc, _ := newTestService(t, true)

	content := makeDocx(t,
		"JANE DOE",
		"EXPERIENCE",
		"Built Python services and Docker images for five years running",
		"Operated Kubernetes clusters and PostgreSQL databases in production",
	)
	first, err := svc.AnalyzeFile(context.Background(), "jane.docx", content, testJD)
	if err != nil {
		t.Fatal(err)
	}
	if first.PreviousID != "" {
		t.Errorf("first analysis previous_id = %q, want empty", first.PreviousID)
	}

	second, err := svc.AnalyzeFile(context.Background(), "jane.docx", content, testJD)
	if err != nil {
		t.Fatal(err)
	}
	if second.PreviousID != first.ID {
		t.Errorf("previous_id = %q, want %q", second.PreviousID, first.ID)
	}
}

func TestAnalyzeFile_shortJobDescription(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.AnalyzeFile(context.Background(), "jane.docx", makeDocx(t, "text"), "too short")
	if !errors.Is(err, models.ErrInvalidInputLength) {
		t.Fatalf("err = %v, want ErrInvalidInputLength", err)
	}
}
