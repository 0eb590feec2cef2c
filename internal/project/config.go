package project

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wvtrace/internal/correlate"
	"wvtrace/internal/runlog"
)

// Settings holds the parsed contents of wvtrace.toml. Every section is
// optional; zero values fall back to defaults in Resolve.
type Settings struct {
	Runs struct {
		Dir string `toml:"dir"`
		Ext string `toml:"ext"`
	} `toml:"runs"`
	Correlate struct {
		StartOffset *int `toml:"start_offset"`
		EndOffset   *int `toml:"end_offset"`
	} `toml:"correlate"`
	View struct {
		BaseDelayMS int   `toml:"base_delay_ms"`
		Highlight   *bool `toml:"highlight"`
	} `toml:"view"`
}

// Resolved is a Settings with every default filled in and the runs
// directory made absolute against the manifest location.
type Resolved struct {
	RunsDir   string
	Ext       string
	Window    correlate.Window
	BaseDelay int // milliseconds
	Highlight bool
}

// DefaultRunsDir is used when neither the CLI nor wvtrace.toml name one.
const DefaultRunsDir = "runs"

// LoadSettings parses a wvtrace.toml file.
func LoadSettings(path string) (Settings, error) {
	var cfg Settings
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// Resolve locates wvtrace.toml upward from startDir, applies overrideDir
// (CLI flag or positional argument, highest precedence) and fills defaults.
// A missing manifest is not an error.
func Resolve(startDir, overrideDir string) (Resolved, error) {
	res := Resolved{
		RunsDir:   DefaultRunsDir,
		Ext:       runlog.Ext,
		Window:    correlate.DefaultWindow,
		BaseDelay: 1200,
		Highlight: true,
	}
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return Resolved{}, err
	}
	if ok {
		cfg, err := LoadSettings(manifestPath)
		if err != nil {
			return Resolved{}, err
		}
		root := filepath.Dir(manifestPath)
		if cfg.Runs.Dir != "" {
			dir := cfg.Runs.Dir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(root, dir)
			}
			res.RunsDir = dir
		}
		if cfg.Runs.Ext != "" {
			res.Ext = cfg.Runs.Ext
		}
		if cfg.Correlate.StartOffset != nil {
			res.Window.StartOffset = *cfg.Correlate.StartOffset
		}
		if cfg.Correlate.EndOffset != nil {
			res.Window.EndOffset = *cfg.Correlate.EndOffset
		}
		if cfg.View.BaseDelayMS > 0 {
			res.BaseDelay = cfg.View.BaseDelayMS
		}
		if cfg.View.Highlight != nil {
			res.Highlight = *cfg.View.Highlight
		}
	}
	if overrideDir != "" {
		res.RunsDir = overrideDir
	}
	return res, nil
}
