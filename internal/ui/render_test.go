package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a-very-long-path/to/file.py", 10, "a-very-..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.value, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 3); got != 3 {
		t.Errorf("clamp above = %d", got)
	}
	if got := clamp(-1, 0, 3); got != 0 {
		t.Errorf("clamp below = %d", got)
	}
	if got := clamp(2, 0, -1); got != 0 {
		t.Errorf("clamp empty range = %d", got)
	}
}
