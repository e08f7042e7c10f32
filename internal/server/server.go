// Package server exposes the transcript validator over HTTP: multipart
// upload, per-file summaries and a time-limited download link for the
// result archive. The validation core never sees any of this.
package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/transcriba/transcriba/bundle"
	"github.com/transcriba/transcriba/docx"
	"github.com/transcriba/transcriba/format"
	"github.com/transcriba/transcriba/internal/logger"
	"github.com/transcriba/transcriba/report"
	"github.com/transcriba/transcriba/validate"
)

const maxUploadBytes = 32 << 20

// Config holds the HTTP service configuration.
type Config struct {
	Addr           string
	AllowedOrigins []string
	TokenTTL       time.Duration
	Rules          validate.Rules
}

// Server is the HTTP front end around the validation engine.
type Server struct {
	cfg    Config
	engine *validate.Engine
	tokens *TokenStore
	mux    *http.ServeMux
	now    func() time.Time
}

// New creates a configured server.
func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 5 * time.Minute
	}
	s := &Server{
		cfg:    cfg,
		engine: validate.New(cfg.Rules),
		tokens: NewTokenStore(cfg.TokenTTL),
		mux:    http.NewServeMux(),
		now:    time.Now,
	}
	s.mux.HandleFunc("POST /api/process", s.handleProcess)
	s.mux.HandleFunc("GET /api/download/{token}", s.handleDownload)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the full handler chain, CORS included.
func (s *Server) Handler() http.Handler {
	return s.cors(s.mux)
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	logger.Info("listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// fileSummary is the per-file part of the process response.
type fileSummary struct {
	Name       string         `json:"name"`
	Error      string         `json:"error,omitempty"`
	Findings   int            `json:"findings"`
	ByCategory map[string]int `json:"findings_by_category,omitempty"`
	Removed    int            `json:"removed_chars"`
}

// processResponse is the JSON body returned by POST /api/process.
type processResponse struct {
	Files     []fileSummary `json:"files"`
	Token     string        `json:"token,omitempty"`
	ExpiresAt string        `json:"expires_at,omitempty"`
}

// handleProcess validates every uploaded file sequentially and stores the
// result archive behind a download token. Files that cannot be opened get
// a per-file error entry; the request fails only when no file succeeds.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		s.writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	generated := s.now()
	var resp processResponse
	var entries []bundle.Entry

	for _, fh := range uploads {
		summary, fileEntries := s.processOne(fh, generated)
		resp.Files = append(resp.Files, summary)
		entries = append(entries, fileEntries...)
	}

	if len(entries) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.writeJSON(w, resp)
		return
	}

	var archive bytes.Buffer
	if err := bundle.Write(&archive, entries); err != nil {
		logger.Error("packaging results", "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not package results")
		return
	}

	token, expires := s.tokens.Put("resultado.zip", archive.Bytes())
	resp.Token = token
	resp.ExpiresAt = expires.UTC().Format(time.RFC3339)
	s.writeJSON(w, resp)
}

// processOne runs the engine over a single upload. A load failure is
// reported in the summary, never as a transport error.
func (s *Server) processOne(fh *multipart.FileHeader, generated time.Time) (fileSummary, []bundle.Entry) {
	summary := fileSummary{Name: fh.Filename}

	data, err := readUpload(fh)
	if err != nil {
		logger.Warn("reading upload", "file", fh.Filename, "error", err)
		summary.Error = "file could not be opened"
		return summary, nil
	}
	if f, _ := format.DetectFromBytes(data); f != format.DOCX {
		summary.Error = "file could not be opened"
		return summary, nil
	}

	doc, err := docx.FromBytes(data)
	if err != nil {
		logger.Warn("loading document", "file", fh.Filename, "error", err)
		summary.Error = "file could not be opened"
		return summary, nil
	}

	res := s.engine.Run(doc)
	cleaned, err := doc.Bytes()
	if err != nil {
		logger.Error("serializing cleaned document", "file", fh.Filename, "error", err)
		summary.Error = "file could not be opened"
		return summary, nil
	}

	summary.Findings = len(res.Findings)
	summary.Removed = res.Removed
	if counts := res.CountByCategory(); len(counts) > 0 {
		summary.ByCategory = make(map[string]int, len(counts))
		for _, c := range counts {
			summary.ByCategory[string(c.Category)] = c.Count
		}
	}

	reportText := report.Render(fh.Filename, generated, res)
	return summary, bundle.ForResult(fh.Filename, cleaned, reportText)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// handleDownload streams a stored result archive.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	name, data, ok := s.tokens.Get(token)
	if !ok {
		s.writeError(w, http.StatusNotFound, "download link is invalid or has expired")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// cors wraps next with the allow-list CORS middleware.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		logger.Error("encoding response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := sonic.Marshal(map[string]string{"error": msg})
	w.Write(data)
}
