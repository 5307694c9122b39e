// Package scanner checks trees of writedown documents in the background.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhamidi/writedown/parser"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ErrUnknownScan is returned by Wait for an ID that was never submitted.
var ErrUnknownScan = errors.New("unknown scan")

type Request struct {
	ID string `json:"id"`
	// Root is the slash-separated directory to scan, relative to the
	// scanner's file system. Empty means the whole file system.
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"created_at"`
}

// FileResult is the outcome of parsing one document.
type FileResult struct {
	Path     string `json:"path"`
	Sections int    `json:"sections"`
	Error    string `json:"error,omitempty"`
	// Offset is the byte offset of the syntax error, or -1.
	Offset int `json:"offset"`
}

func (f FileResult) OK() bool {
	return f.Error == ""
}

type Result struct {
	ID        string       `json:"id"`
	Status    Status       `json:"status"`
	Request   Request      `json:"request"`
	Files     []FileResult `json:"files,omitempty"`
	Error     string       `json:"error,omitempty"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Progress  int          `json:"progress"`
	Total     int          `json:"total"`

	seq  int
	done chan struct{}
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// Failed returns the files that did not parse.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// Scanner runs scan requests one after another on a background goroutine.
// It is safe for concurrent use.
type Scanner struct {
	fsys fs.FS
	opts []parser.Option

	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
	closed   bool
}

func New(fsys fs.FS, opts ...parser.Option) *Scanner {
	s := &Scanner{
		fsys:     fsys,
		opts:     opts,
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

// Close stops the background goroutine once queued scans are done.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.requests)
	}
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	files, err := Documents(s.fsys, req.Root)
	if err == nil {
		s.mu.Lock()
		result.Total = len(files)
		s.mu.Unlock()
	}

	var checked []FileResult
	for i, name := range files {
		checked = append(checked, CheckFile(s.fsys, name, s.opts...))

		s.mu.Lock()
		result.Progress = i + 1
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Files = checked
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
	} else {
		result.Status = StatusCompleted
	}
	close(result.done)
}

// Documents returns the .wd files below root, sorted. Hidden directories
// are skipped.
func Documents(fsys fs.FS, root string) ([]string, error) {
	if root == "" {
		root = "."
	}
	if !fs.ValidPath(root) {
		return nil, fmt.Errorf("invalid scan root %q", root)
	}

	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) == ".wd" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// CheckFile parses one document.
func CheckFile(fsys fs.FS, name string, opts ...parser.Option) FileResult {
	result := FileResult{Path: name, Offset: -1}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		result.Error = fmt.Sprintf("read %s: %v", name, err)
		return result
	}

	opts = append([]parser.Option{parser.WithFile(name)}, opts...)
	root, err := parser.Parse(string(data), opts...)
	if err != nil {
		result.Error = err.Error()
		result.Offset = parser.Offset(err)
		return result
	}

	parser.Walk(root, func(n parser.Node) bool {
		if sec, ok := n.(*parser.Section); ok && sec != root {
			result.Sections++
		}
		return true
	})
	return result
}

// Check parses every document below root synchronously.
func Check(fsys fs.FS, root string, opts ...parser.Option) ([]FileResult, error) {
	files, err := Documents(fsys, root)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, 0, len(files))
	for _, name := range files {
		results = append(results, CheckFile(fsys, name, opts...))
	}
	return results, nil
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	result := &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
		seq:     s.nextID,
		done:    make(chan struct{}),
	}
	s.scans[req.ID] = result

	if s.closed {
		s.fail(result, "scanner closed")
		return req.ID
	}
	select {
	case s.requests <- req:
	default:
		s.fail(result, "scan queue full")
	}
	return req.ID
}

// fail finishes a scan that never ran. The caller holds s.mu.
func (s *Scanner) fail(result *Result, msg string) {
	result.Status = StatusFailed
	result.Error = msg
	result.EndedAt = time.Now()
	close(result.done)
}

// Get returns a snapshot of the scan with the given ID.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

// Wait blocks until the scan finishes or ctx is done.
func (s *Scanner) Wait(ctx context.Context, id string) (*Result, error) {
	s.mu.RLock()
	result, ok := s.scans[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScan, id)
	}

	select {
	case <-result.done:
		r, _ := s.Get(id)
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// List returns snapshots of all scans, oldest first.
func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].seq < results[j].seq
	})
	return results
}
