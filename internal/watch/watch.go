// Package watch observes the runs directory and translates file-system
// notifications into router events. Log files are written externally; a
// notification is assumed to arrive after the write is durably visible.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"wvtrace/internal/router"
)

// Watcher streams run-file events for one directory until closed.
type Watcher struct {
	fw     *fsnotify.Watcher
	ext    string
	events chan router.Event
}

// New starts watching dir for files with the given log extension.
func New(dir, ext string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{fw: fw, ext: ext, events: make(chan router.Event, 64)}
	go w.loop()
	return w, nil
}

// Events returns the channel of translated run events. It is closed when
// the watcher is closed.
func (w *Watcher) Events() <-chan router.Event { return w.events }

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error { return w.fw.Close() }

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if rev, ok := Classify(ev, w.ext); ok {
				w.events <- rev
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient here; the next explicit refresh
			// re-lists the directory anyway.
		}
	}
}

// Classify maps one raw notification onto a run event. Files without the
// log extension, and operations the viewer does not care about, map to
// nothing.
func Classify(ev fsnotify.Event, ext string) (router.Event, bool) {
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ext) {
		return nil, false
	}
	runID := strings.TrimSuffix(name, ext)
	switch {
	case ev.Op.Has(fsnotify.Create):
		return router.RunAppeared{RunID: runID}, true
	case ev.Op.Has(fsnotify.Write):
		return router.RunChanged{RunID: runID}, true
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		return router.RunRemoved{RunID: runID}, true
	default:
		return nil, false
	}
}
