package version

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default value")
	}
	// Color codes aside, the default must read as major.minor.patch.
	if strings.Count(Version, ".") != 2 {
		t.Errorf("Version = %q, want a three-part semantic version", Version)
	}
}

func TestVersionOverride(t *testing.T) {
	orig, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = orig, origCommit, origDate }()

	// Simulates build-time -ldflags injection.
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"
	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("override failed: %q %q %q", Version, GitCommit, BuildDate)
	}
}
