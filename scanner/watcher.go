package scanner

import (
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dhamidi/writedown/parser"
)

// Watcher polls a file system and re-checks documents whose modification
// time changed.
type Watcher struct {
	fsys         fs.FS
	root         string
	opts         []parser.Option
	pollInterval time.Duration
	modTimes     map[string]time.Time
	stopCh       chan struct{}
	doneCh       chan struct{}

	// OnChange receives the result of every new or modified document.
	OnChange func(FileResult)
	// OnRemove receives the path of every document that disappeared.
	OnRemove func(name string)
}

func NewWatcher(fsys fs.FS, root string, interval time.Duration, opts ...parser.Option) *Watcher {
	if root == "" {
		root = "."
	}
	return &Watcher{
		fsys:         fsys,
		root:         root,
		opts:         opts,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

// Stop ends polling and waits for the current pass to finish.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	currentFiles := make(map[string]bool)

	fs.WalkDir(w.fsys, w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != w.root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != ".wd" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		currentFiles[p] = true

		lastMod, known := w.modTimes[p]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[p] = info.ModTime()
			if w.OnChange != nil {
				w.OnChange(CheckFile(w.fsys, p, w.opts...))
			}
		}
		return nil
	})

	for p := range w.modTimes {
		if !currentFiles[p] {
			delete(w.modTimes, p)
			if w.OnRemove != nil {
				w.OnRemove(p)
			}
		}
	}
}
