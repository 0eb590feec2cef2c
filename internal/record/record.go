package record

// UnknownFunction is the placeholder name for records that carry neither a
// "function" field nor an op name to derive one from.
const UnknownFunction = "(unknown)"

// CallRecord is one logged function invocation, normalized from a raw JSONL
// entry. Immutable once constructed.
type CallRecord struct {
	CallID   string
	Function string
	OpName   string // raw op identifier, "" when absent
	TraceURL string // external trace link, "" unless the record provided one

	SourceFile string // absolute path, "" when the record has no location
	LineStart  int    // 1-based inclusive, 0 when absent
	LineEnd    int    // 1-based inclusive, 0 when absent

	TimestampStart float64 // seconds since epoch, sole sort key
	DurationS      float64

	Inputs map[string]any
	Output any

	Err *CallError // nil on success

	Prov *Provenance // nil unless the logger was version-control aware
}

// HasLocation reports whether the record carries a usable source range.
// Both bounds must be present; records violating the both-or-neither
// contract are treated as having no location.
func (r *CallRecord) HasLocation() bool {
	return r.SourceFile != "" && r.LineStart > 0 && r.LineEnd > 0
}

// CallError is the normalized error payload of a failed call. Structured
// logs carry type/message/traceback; legacy logs carried a bare string,
// which lands in Message with Legacy set.
type CallError struct {
	Type      string
	Message   string
	Traceback string
	Legacy    bool
}

// Display renders the error the way the viewer shows it: "Type: message"
// for structured errors, the raw string for legacy ones.
func (e *CallError) Display() string {
	if e == nil {
		return ""
	}
	if e.Legacy || e.Type == "" {
		return e.Message
	}
	return e.Type + ": " + e.Message
}

// Provenance identifies the code state a record was captured against.
type Provenance struct {
	RepoRoot    string
	Commit      string
	Dirty       bool
	SnapshotSHA string
}

// SnapshotCommit returns the commit a snapshot restore should target:
// the dedicated snapshot commit when present, otherwise the plain commit.
func (p *Provenance) SnapshotCommit() string {
	if p == nil {
		return ""
	}
	if p.SnapshotSHA != "" {
		return p.SnapshotSHA
	}
	return p.Commit
}
