package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  split_ratio: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Layout.SplitRatio != 0.3 {
		t.Errorf("expected split ratio 0.3, got %v", cfg.Layout.SplitRatio)
	}
	if cfg.Layout.SidebarWidth != 24 {
		t.Errorf("expected default sidebar width 24, got %d", cfg.Layout.SidebarWidth)
	}
	if !cfg.Layout.SidebarVisible() {
		t.Errorf("expected sidebar visible by default")
	}
	if cfg.Daemon.Session != "default" {
		t.Errorf("expected default session, got %q", cfg.Daemon.Session)
	}
	if FindGroup(cfg, "Default") == nil {
		t.Errorf("expected Default group")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.PaneHeader.ActiveBg != "#3498db" {
		t.Errorf("expected default active bg, got %q", cfg.PaneHeader.ActiveBg)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.CatalogPath = "/etc/tabdeck/menus.yaml"
	open := false
	cfg.Layout.SidebarOpen = &open

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.CatalogPath != cfg.CatalogPath {
		t.Errorf("catalog path lost: %q", loaded.CatalogPath)
	}
	if loaded.Layout.SidebarVisible() {
		t.Errorf("expected sidebar_open=false to survive save")
	}
}

func TestGroupEdits(t *testing.T) {
	cfg := DefaultConfig()

	if err := AddGroup(cfg, Group{Name: "Reports", Pattern: "(?i)report"}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	last := cfg.Groups[len(cfg.Groups)-1]
	if last.Name != "Default" {
		t.Fatalf("expected Default to stay last, got %s", last.Name)
	}
	if err := AddGroup(cfg, Group{Name: "Reports", Pattern: "x"}); !errors.Is(err, ErrGroupExists) {
		t.Fatalf("expected ErrGroupExists, got %v", err)
	}
	if err := AddGroup(cfg, Group{Name: "Broken", Pattern: "("}); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if err := DeleteGroup(cfg, "Default"); !errors.Is(err, ErrCannotDeleteGroup) {
		t.Fatalf("expected ErrCannotDeleteGroup, got %v", err)
	}
	if err := DeleteGroup(cfg, "Reports"); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if err := DeleteGroup(cfg, "Reports"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  sidebar_width: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 4)
	w, err := Watch(path, func(c *Config) { changed <- c }, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("layout:\n  sidebar_width: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Layout.SidebarWidth == 40 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}
