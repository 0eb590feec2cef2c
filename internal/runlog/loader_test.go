package runlog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSortsByTimestamp(t *testing.T) {
	path := writeLog(t, "run"+Ext, `
{"call_id":"c","function":"third","timestamp_start":3.0}
{"call_id":"a","function":"first","timestamp_start":1.0}
{"call_id":"b","function":"second","timestamp_start":2.0}
`)
	records := Load(path)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	var order []string
	for _, r := range records {
		order = append(order, r.Function)
	}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestLoadStableForEqualTimestamps(t *testing.T) {
	path := writeLog(t, "run"+Ext, `
{"call_id":"a","timestamp_start":5.0}
{"call_id":"b","timestamp_start":5.0}
{"call_id":"c"}
{"call_id":"d"}
`)
	records := Load(path)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	// Missing timestamps sort as 0, ahead of 5.0; ties keep file order.
	var order []string
	for _, r := range records {
		order = append(order, r.CallID)
	}
	want := []string{"c", "d", "a", "b"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := writeLog(t, "run"+Ext, `
{"call_id":"a","timestamp_start":1}
{"call_id":"b","timestamp_start":2}
{not json at all
{"call_id":"c","timestamp_start":3}
`)
	records := Load(path)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, id := range []string{"a", "b", "c"} {
		if records[i].CallID != id {
			t.Errorf("records[%d].CallID = %q, want %q", i, records[i].CallID, id)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	records := Load(filepath.Join(t.TempDir(), "absent"+Ext))
	if len(records) != 0 {
		t.Errorf("missing file must load as empty, got %d records", len(records))
	}
}

func TestLoadIdempotent(t *testing.T) {
	path := writeLog(t, "run"+Ext, `{"call_id":"a","timestamp_start":1,"inputs":{"x":1}}
{"call_id":"b","timestamp_start":2}
`)
	first := Load(path)
	second := Load(path)
	if !reflect.DeepEqual(first, second) {
		t.Error("loading an unchanged file twice must yield identical output")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"20240115_143022", "2024-01-15 14:30:22"},
		{"20240115_143022_a1b2c3", "2024-01-15 14:30:22"},
		{"notatimestamp", "notatimestamp"},
		{"2024_143022", "2024_143022"},
		{"20240115-143022", "20240115-143022"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Label(tt.id); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
