package scanner

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestWatcherScan(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"a.wd": {Data: []byte("= A\n"), ModTime: start},
		"b.wd": {Data: []byte("```\n"), ModTime: start},
	}

	var changed []FileResult
	var removed []string
	w := NewWatcher(fsys, "", time.Hour)
	w.OnChange = func(r FileResult) { changed = append(changed, r) }
	w.OnRemove = func(name string) { removed = append(removed, name) }

	w.scan()
	if len(changed) != 2 {
		t.Fatalf("first scan reported %d changes, want 2", len(changed))
	}
	if !changed[0].OK() || changed[1].OK() {
		t.Errorf("changes = %+v, want a.wd ok and b.wd failing", changed)
	}

	changed = nil
	w.scan()
	if len(changed) != 0 {
		t.Errorf("unchanged scan reported %d changes", len(changed))
	}

	fsys["b.wd"] = &fstest.MapFile{Data: []byte("```\nfixed\n```\n"), ModTime: start.Add(time.Minute)}
	delete(fsys, "a.wd")
	w.scan()
	if len(changed) != 1 || changed[0].Path != "b.wd" || !changed[0].OK() {
		t.Errorf("changes = %+v, want fixed b.wd", changed)
	}
	if len(removed) != 1 || removed[0] != "a.wd" {
		t.Errorf("removed = %v, want [a.wd]", removed)
	}
}

func TestWatcherStartStop(t *testing.T) {
	fsys := fstest.MapFS{"a.wd": {Data: []byte("x\n")}}

	seen := make(chan struct{}, 1)
	w := NewWatcher(fsys, ".", 10*time.Millisecond)
	w.OnChange = func(FileResult) {
		select {
		case seen <- struct{}{}:
		default:
		}
	}

	w.Start()
	select {
	case <-seen:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the initial document")
	}
	w.Stop()
}
