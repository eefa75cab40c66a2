package config

import (
	"path/filepath"

	"github.com/b/tabdeck/pkg/paths"
)

type Config struct {
	CatalogPath string     `yaml:"catalog_path"` // empty uses the built-in menus
	Layout      Layout     `yaml:"layout"`
	Groups      []Group    `yaml:"groups"`
	PaneHeader  PaneHeader `yaml:"pane_header"`
	Log         LogConfig  `yaml:"log"`
	Daemon      Daemon     `yaml:"daemon"`
	Metrics     Metrics    `yaml:"metrics"`
}

type Layout struct {
	SplitRatio   float64 `yaml:"split_ratio"`   // Left pane share in dual split (default: 0.5)
	SidebarWidth int     `yaml:"sidebar_width"` // Catalog sidebar width in cells (default: 24)
	SidebarOpen  *bool   `yaml:"sidebar_open"`  // Sidebar visible on start (default: true)
}

// PaneHeader colors for focused and unfocused pane tab bars
type PaneHeader struct {
	ActiveFg   string `yaml:"active_fg"`   // Active tab text (default: derived from active_bg)
	ActiveBg   string `yaml:"active_bg"`   // Active tab background (default: #3498db)
	InactiveFg string `yaml:"inactive_fg"` // Inactive tab text (default: #cccccc)
	InactiveBg string `yaml:"inactive_bg"` // Inactive tab background (default: #333333)
}

// Group collects catalog menus whose title or href matches Pattern under one header section
type Group struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Color   string `yaml:"color"`
}

type LogConfig struct {
	Level      string `yaml:"level"`        // debug, info, warn, error
	Format     string `yaml:"format"`       // text or json
	Output     string `yaml:"output"`       // stdout, stderr, or empty
	FilePath   string `yaml:"file_path"`    // rotated log file
	MaxSizeMB  int    `yaml:"max_size_mb"`  // rotate after this size
	MaxBackups int    `yaml:"max_backups"`  // old files kept
	MaxAgeDays int    `yaml:"max_age_days"` // days old files are kept
}

type Daemon struct {
	Session string `yaml:"session"`
}

type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// SidebarVisible resolves the optional sidebar_open flag.
func (l Layout) SidebarVisible() bool {
	return l.SidebarOpen == nil || *l.SidebarOpen
}

func DefaultConfigPath() string {
	return paths.ConfigPath()
}

// DefaultLogPath is where the TUI writes its log when no file is configured.
func DefaultLogPath() string {
	return filepath.Join(paths.StateDir(), "tabdeck.log")
}
