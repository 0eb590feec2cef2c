// Package store holds the viewer's single source of truth: the set of known
// runs, per-run record caches and the current focus state. One Store exists
// per session; every mutation goes through its methods, and all callers run
// on the same logical thread, so there is no locking discipline beyond "one
// handler completes before the next begins".
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wvtrace/internal/record"
	"wvtrace/internal/runlog"
)

// Options configures a Store.
type Options struct {
	Dir string // runs directory
	Ext string // log extension, runlog.Ext when empty
}

// Store is the process-wide trace state.
type Store struct {
	dir string
	ext string

	activeRun    string
	selectedCall string
	focusedFn    string
	highlight    bool
	suppressNext bool

	// cache entries are either absent or fully loaded, never partial.
	cache map[string][]record.CallRecord
}

// New creates an empty Store over the given runs directory. Highlighting
// starts enabled so an active run decorates its files before any call has
// been selected.
func New(opts Options) *Store {
	ext := opts.Ext
	if ext == "" {
		ext = runlog.Ext
	}
	return &Store{
		dir:       opts.Dir,
		ext:       ext,
		highlight: true,
		cache:     make(map[string][]record.CallRecord),
	}
}

// Dir returns the runs directory.
func (s *Store) Dir() string { return s.dir }

// RunPath returns the log file path for a run id.
func (s *Store) RunPath(runID string) string {
	return filepath.Join(s.dir, runID+s.ext)
}

// ListRunIDs lists the runs directory, newest first (descending
// lexicographic order, which matches descending recency for date-encoded
// stems). A missing directory is "nothing to show", not an error. If no run
// is active and at least one exists, the most recent becomes active.
func (s *Store) ListRunIDs() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), s.ext))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if s.activeRun == "" && len(ids) > 0 {
		s.activeRun = ids[0]
	}
	return ids
}

// EnsureLoaded returns the run's records, loading and caching them on first
// access. Idempotent; an unreadable or missing log caches as empty.
func (s *Store) EnsureLoaded(runID string) []record.CallRecord {
	if recs, ok := s.cache[runID]; ok {
		return recs
	}
	recs := runlog.Load(s.RunPath(runID))
	s.cache[runID] = recs
	return recs
}

// Loaded reports whether a run's records are cached.
func (s *Store) Loaded(runID string) bool {
	_, ok := s.cache[runID]
	return ok
}

// Invalidate drops a run's cache entry. The active run is untouched; the
// next access reloads from disk.
func (s *Store) Invalidate(runID string) {
	delete(s.cache, runID)
}

// ActiveRecords returns the active run's records, loading them if needed.
func (s *Store) ActiveRecords() []record.CallRecord {
	if s.activeRun == "" {
		return nil
	}
	return s.EnsureLoaded(s.activeRun)
}

// FindCall resolves a call id within a run.
func (s *Store) FindCall(runID, callID string) (record.CallRecord, bool) {
	if runID == "" || callID == "" {
		return record.CallRecord{}, false
	}
	for _, rec := range s.EnsureLoaded(runID) {
		if rec.CallID == callID {
			return rec, true
		}
	}
	return record.CallRecord{}, false
}

func (s *Store) ActiveRun() string { return s.activeRun }

// SetActiveRun switches the run driving all views; "" clears it.
func (s *Store) SetActiveRun(runID string) { s.activeRun = runID }

func (s *Store) SelectedCall() string { return s.selectedCall }

func (s *Store) SetSelectedCall(callID string) { s.selectedCall = callID }

func (s *Store) FocusedFunction() string { return s.focusedFn }

func (s *Store) SetFocusedFunction(name string) { s.focusedFn = name }

func (s *Store) HighlightEnabled() bool { return s.highlight }

func (s *Store) SetHighlightEnabled(on bool) { s.highlight = on }

// ArmCursorSuppression marks the next cursor event to be swallowed. The
// selection action's own reveal moves the cursor; without this one-shot
// token that jump would immediately re-trigger focus-by-cursor.
func (s *Store) ArmCursorSuppression() { s.suppressNext = true }

// ConsumeCursorSuppression returns true exactly once after arming.
func (s *Store) ConsumeCursorSuppression() bool {
	was := s.suppressNext
	s.suppressNext = false
	return was
}
