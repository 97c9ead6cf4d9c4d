package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ats-matcher/internal/config"
	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/usecase"
	"github.com/fairyhunter13/ats-matcher/pkg/textx"
	"github.com/gabriel-vasile/mimetype"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg       config.Config
	Analyze   *usecase.AnalyzeService
	Extractor domain.TextExtractor
	TikaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired. extractor and
// tikaCheck may be nil when document upload is not configured.
func NewServer(cfg config.Config, analyze *usecase.AnalyzeService, extractor domain.TextExtractor, tikaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Extractor: extractor, TikaCheck: tikaCheck}
}

// extractUploadedText performs text extraction based on the uploaded content and filename.
// - For .pdf/.docx: requires an external extractor (Apache Tika) and streams via a temp file.
// - For .txt: returns sanitized text directly.
func extractUploadedText(ctx context.Context, extractor domain.TextExtractor, h *multipart.FileHeader, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if ext == ".pdf" || ext == ".docx" {
		if extractor == nil {
			return "", fmt.Errorf("%w: %s requires extractor", domain.ErrInvalidArgument, strings.TrimPrefix(ext, "."))
		}
		tmp, err := os.CreateTemp("", "upload-*")
		if err != nil {
			return "", err
		}
		defer func() { _ = os.Remove(tmp.Name()); _ = tmp.Close() }()
		if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
			return "", err
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		return extractor.ExtractPath(ctx, h.Filename, tmp.Name())
	}
	// Treat as plain text with sanitization
	return textx.SanitizeText(string(data)), nil
}

// allowedExt enforces an allowlist for uploads: .txt, .pdf, .docx
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func allowedMIMEFor(m string, filename string) bool {
	m = strings.ToLower(m)
	// For .txt files, accept any text/* including text/html as some detectors misclassify rich text
	if strings.HasSuffix(strings.ToLower(filename), ".txt") {
		if strings.HasPrefix(m, "text/") {
			return true
		}
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	return m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// notAcceptable rejects requests whose Accept header excludes JSON.
func notAcceptable(w http.ResponseWriter, r *http.Request) bool {
	if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotAcceptable)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "not acceptable", "details": map[string]any{"accept": a}}})
		return true
	}
	return false
}

// AnalyzeHandler scores a resume against a job description supplied as JSON.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		// Cap body size to prevent abuse
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		var req struct {
			ResumeText     string `json:"resume_text" validate:"required,max=200000"`
			JobDescription string `json:"job_description" validate:"required,max=200000"`
			Lenient        bool   `json:"lenient"`
			Highlights     bool   `json:"highlights"`
			Preview        bool   `json:"preview"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		res, err := s.Analyze.Analyze(r.Context(), usecase.AnalyzeInput{
			ResumeText:        req.ResumeText,
			JDText:            req.JobDescription,
			Lenient:           req.Lenient,
			IncludeHighlights: req.Highlights,
			IncludePreview:    req.Preview,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("analyze: %w", err), nil)
			return
		}
		status := http.StatusOK
		if res.Status == domain.AnalysisFailed {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, res)
	}
}

// UploadHandler accepts a multipart resume document plus job description text,
// extracts the resume text, and runs the same analysis as AnalyzeHandler.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		// Limit total multipart size
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)
		if err := r.ParseMultipartForm(maxBytes * 2); err != nil {
			// Map body too large to 413
			if strings.Contains(strings.ToLower(err.Error()), "too large") || strings.Contains(strings.ToLower(err.Error()), "request body too large") {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "payload too large", "details": map[string]any{"max_mb": s.Cfg.MaxUploadMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		resumeFile, resumeHeader, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), map[string]string{"field": "resume"})
			return
		}
		defer func() { _ = resumeFile.Close() }()
		jobDesc := r.FormValue("job_description")
		if strings.TrimSpace(jobDesc) == "" {
			writeError(w, r, fmt.Errorf("%w: job_description required", domain.ErrInvalidArgument), map[string]string{"field": "job_description"})
			return
		}

		resumeBytes, err := io.ReadAll(resumeFile)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		// Extension allowlist first
		if !allowedExt(resumeHeader.Filename) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "unsupported media type for resume (extension)", "details": map[string]any{"filename": resumeHeader.Filename}}})
			return
		}

		// Content sniffing with mimetype; enforce allowlist
		resumeMime := mimetype.Detect(resumeBytes)
		if !allowedMIMEFor(resumeMime.String(), resumeHeader.Filename) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "unsupported media type for resume (content)", "details": map[string]any{"mime": resumeMime.String(), "filename": resumeHeader.Filename}}})
			return
		}

		resumeText, err := extractUploadedText(r.Context(), s.Extractor, resumeHeader, resumeBytes)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume extract: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		res, err := s.Analyze.Analyze(r.Context(), usecase.AnalyzeInput{
			ResumeText:        resumeText,
			JDText:            jobDesc,
			Lenient:           r.FormValue("lenient") == "true",
			IncludeHighlights: r.FormValue("highlights") == "true",
			IncludePreview:    true,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("analyze: %w", err), nil)
			return
		}
		status := http.StatusOK
		if res.Status == domain.AnalysisFailed {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, res)
	}
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// readinessCheck is a single readiness probe result.
type readinessCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Details string `json:"details,omitempty"`
}

// ReadyzHandler reports readiness of optional collaborators. The embedding
// collaborator being absent is reported but does not fail readiness; the
// service still serves coverage-only analyses.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := []readinessCheck{
			{Name: "embeddings", OK: true},
			{Name: "tika", OK: true},
		}
		if !s.Cfg.EmbeddingsEnabled() {
			checks[0].OK = false
			checks[0].Details = "not configured; running coverage-only"
		}
		ready := true
		if s.TikaCheck != nil {
			if err := s.TikaCheck(r.Context()); err != nil {
				checks[1].OK = false
				checks[1].Details = err.Error()
				ready = false
			}
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"ready": ready, "checks": checks})
	}
}
