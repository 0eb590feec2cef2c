// Package runlog reads append-only JSONL trace logs, one file per run.
// Ingestion is best-effort: a log being appended to by an external writer
// must always display its complete valid prefix, so unreadable files and
// unparseable lines are skipped, never surfaced.
package runlog

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"wvtrace/internal/record"
)

// Ext is the recognized log file extension.
const Ext = ".jsonl"

// Load reads one run's log file and returns its normalized records sorted
// ascending by start timestamp (stable, so equal timestamps keep file
// order). A missing or unreadable file yields an empty sequence.
func Load(path string) []record.CallRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return Parse(data)
}

// Parse decodes log content that is already in memory. Each non-blank line
// is one independent JSON object; lines that fail to decode are dropped
// (this doubles as protection against reading a half-flushed line).
func Parse(data []byte) []record.CallRecord {
	var records []record.CallRecord
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal(line, &raw); err != nil {
			continue
		}
		records = append(records, record.Normalize(raw))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TimestampStart < records[j].TimestampStart
	})
	return records
}
