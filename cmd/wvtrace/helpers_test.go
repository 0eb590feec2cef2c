package main

import "testing"

func TestParseFileLine(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		wantFile string
		wantLine int
		wantErr  bool
	}{
		{name: "plain", arg: "src/module.py:42", wantFile: "src/module.py", wantLine: 42},
		{name: "absolute", arg: "/repo/src/module.py:7", wantFile: "/repo/src/module.py", wantLine: 7},
		{name: "windows drive", arg: `C:\repo\m.py:3`, wantFile: `C:\repo\m.py`, wantLine: 3},
		{name: "no colon", arg: "module.py", wantErr: true},
		{name: "no line", arg: "module.py:", wantErr: true},
		{name: "bad line", arg: "module.py:abc", wantErr: true},
		{name: "zero line", arg: "module.py:0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, line, err := parseFileLine(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFileLine(%q) expected error, got %q:%d", tt.arg, file, line)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFileLine(%q): %v", tt.arg, err)
			}
			if file != tt.wantFile || line != tt.wantLine {
				t.Errorf("parseFileLine(%q) = %q:%d, want %q:%d", tt.arg, file, line, tt.wantFile, tt.wantLine)
			}
		})
	}
}
