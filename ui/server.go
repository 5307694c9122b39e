// Package ui serves a browser preview of writedown documents.
package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/dhamidi/writedown/format"
	"github.com/dhamidi/writedown/parser"
	"github.com/dhamidi/writedown/scanner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"
)

//go:embed templates
var embeddedFS embed.FS

// maxBodySize bounds the documents accepted by the API endpoints.
const maxBodySize = 4 << 20

var log = commonlog.GetLogger("writedown.ui")

type Server struct {
	docs      fs.FS
	opts      []parser.Option
	scanner   *scanner.Scanner
	templates *template.Template
	router    chi.Router
}

// NewServer serves the .wd documents found in docs. Documents are parsed
// with opts on every request.
func NewServer(docs fs.FS, opts ...parser.Option) (*Server, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		docs:      docs,
		opts:      opts,
		scanner:   scanner.New(docs, opts...),
		templates: tmpl,
	}
	s.setupRoutes()
	return s, nil
}

// Close stops the background scanner.
func (s *Server) Close() {
	s.scanner.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/doc/*", s.handleDocument)
	r.Post("/api/parse", s.handleParse)
	r.Post("/api/tokens", s.handleTokens)
	r.Get("/api/scans", s.handleListScans)
	r.Post("/api/scans", s.handleScan)
	r.Get("/api/scans/{id}", s.handleGetScan)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Documents returns the slash-separated paths of all .wd files, sorted.
func (s *Server) Documents() ([]string, error) {
	return scanner.Documents(s.docs, ".")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := s.Documents()
	if err != nil {
		http.Error(w, "list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Title     string
		Documents []string
	}{
		Title:     "writedown",
		Documents: docs,
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if !fs.ValidPath(name) || path.Ext(name) != ".wd" {
		http.NotFound(w, r)
		return
	}

	src, err := fs.ReadFile(s.docs, name)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, "read document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	opts := append([]parser.Option{parser.WithFile(name)}, s.opts...)
	root, err := parser.Parse(string(src), opts...)
	if err != nil {
		log.Warningf("%s: %v", name, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	enc := format.NewHTMLEncoder(nil, format.HTMLOptions{Standalone: true, Title: documentTitle(root, name)})
	text, err := enc.MarshalText(root)
	if err != nil {
		http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(text)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	src, ok := readBody(w, r)
	if !ok {
		return
	}

	root, err := parser.Parse(src, s.opts...)
	if err != nil {
		syntaxError(w, err)
		return
	}

	text, err := format.NewJSONEncoder(nil).MarshalText(root)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(text)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	src, ok := readBody(w, r)
	if !ok {
		return
	}

	enc := format.NewTokenEncoder(nil, format.TokenOptions{JSON: true})
	text, err := enc.MarshalText(parser.NewTokenizer(src, ""))
	if err != nil {
		syntaxError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(text)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanner.Request
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			jsonError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Root != "" && !fs.ValidPath(req.Root) {
		jsonError(w, "invalid root: "+req.Root, http.StatusBadRequest)
		return
	}

	id := s.scanner.Submit(req)
	log.Infof("scan %s submitted for %q", id, req.Root)
	w.Header().Set("Location", "/api/scans/"+id)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	result, ok := s.scanner.Get(chi.URLParam(r, "id"))
	if !ok {
		jsonError(w, "scan not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"scans": s.scanner.List()})
}

// documentTitle is the title of the first section, or the file name.
func documentTitle(root *parser.Section, name string) string {
	if sections := root.Sections(); len(sections) > 0 {
		return sections[0].Title
	}
	return path.Base(name)
}

func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		jsonError(w, "read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return "", false
	}
	return string(body), true
}

func syntaxError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"error":  err.Error(),
		"offset": parser.Offset(err),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
