package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/analyze"
	"github.com/resumelens/resumelens/internal/assemble"
	"github.com/resumelens/resumelens/internal/config"
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

func newTestServer(t *testing.T) (*Server, storage.Storage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	service := analyze.NewService(
		extract.NewExtractor(0),
		assemble.NewHeuristic(scoring.DefaultWeights()),
		store,
		zap.NewNop(),
	)
	cfg := &config.ServerConfig{Host: "localhost", Port: 8080, MaxUploadBytes: 10 << 20}
	return NewServer(service, store, cfg, zap.NewNop()), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
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

func multipartUpload(t *testing.T, filename string, content []byte, jd string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("jobDescription", jd); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleAnalyze(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJD,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Error("response id should be set")
	}
	if resp.ATSScore <= 0 || resp.ATSScore > 98 {
		t.Errorf("atsScore = %d, want in (0, 98]", resp.ATSScore)
	}
	if resp.OptimizedBullets == nil {
		t.Error("optimizedBullets should be an empty array, not null")
	}
}

func TestHandleAnalyze_invalidBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleAnalyze_shortResume(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{
		ResumeText:     "too short",
		JobDescription: testJD,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleAnalyzeFile(t *testing.T) {
	srv, _ := newTestServer(t)

	content := makeDocx(t,
		"JANE DOE",
		"EXPERIENCE",
		"Built Python services and Docker images for five years running",
		"Operated Kubernetes clusters and PostgreSQL databases in production",
	)
	body, contentType := multipartUpload(t, "jane.docx", content, testJD)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp analyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ATSScore <= 0 {
		t.Errorf("atsScore = %d, want positive", resp.ATSScore)
	}
}

func TestHandleAnalyzeFile_unsupportedFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"), testJD)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", w.Code)
	}
}

func TestHandleAnalyzeFile_corruptDocument(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "jane.docx", []byte("not a zip archive"), testJD)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestHandleHistory(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJD,
	})
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	var created analyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list struct {
		Analyses []*models.AnalysisRecord `json:"analyses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Analyses) != 1 {
		t.Fatalf("list length = %d, want 1", len(list.Analyses))
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/history/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/history/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/history/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestHandleHistoryGet_notFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/history/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Analyses int64  `json:"analyses"`
		Strategy string `json:"strategy"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Strategy != "heuristic" {
		t.Errorf("strategy = %q, want heuristic", resp.Strategy)
	}
}
