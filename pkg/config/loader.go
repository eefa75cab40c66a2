package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupExists       = errors.New("group already exists")
	ErrCannotDeleteGroup = errors.New("cannot delete this group")
	ErrInvalidPattern    = errors.New("invalid group pattern")
)

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// SaveConfig writes the config to the specified path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AddGroup adds a new group to the config.
// The group is inserted before the "Default" group so the catch-all stays last.
func AddGroup(cfg *Config, group Group) error {
	if _, err := regexp.Compile(group.Pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	for _, g := range cfg.Groups {
		if g.Name == group.Name {
			return ErrGroupExists
		}
	}

	defaultIdx := -1
	for i, g := range cfg.Groups {
		if g.Name == "Default" {
			defaultIdx = i
			break
		}
	}

	if defaultIdx == -1 {
		cfg.Groups = append(cfg.Groups, group)
	} else {
		cfg.Groups = append(cfg.Groups[:defaultIdx], append([]Group{group}, cfg.Groups[defaultIdx:]...)...)
	}
	return nil
}

// DeleteGroup removes a group by name.
// The "Default" group cannot be deleted.
func DeleteGroup(cfg *Config, name string) error {
	if name == "Default" {
		return ErrCannotDeleteGroup
	}

	for i, g := range cfg.Groups {
		if g.Name == name {
			cfg.Groups = append(cfg.Groups[:i], cfg.Groups[i+1:]...)
			return nil
		}
	}
	return ErrGroupNotFound
}

// FindGroup returns a pointer to the group with the given name, or nil if not found
func FindGroup(cfg *Config, name string) *Group {
	for i := range cfg.Groups {
		if cfg.Groups[i].Name == name {
			return &cfg.Groups[i]
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Layout.SplitRatio <= 0 || cfg.Layout.SplitRatio >= 1 {
		cfg.Layout.SplitRatio = 0.5
	}
	if cfg.Layout.SidebarWidth <= 0 {
		cfg.Layout.SidebarWidth = 24
	}
	if len(cfg.Groups) == 0 {
		cfg.Groups = []Group{
			{Name: "Campaigns", Pattern: "(?i)campaign|list", Color: "#3498db"},
			{Name: "Monitoring", Pattern: "(?i)monitor|status|progress", Color: "#27ae60"},
			{Name: "Settings", Pattern: "(?i)settings|limits|preferences", Color: "#8e44ad"},
			{Name: "Default", Pattern: ".*", Color: "#7f8c8d"},
		}
	}
	if cfg.PaneHeader.ActiveBg == "" {
		cfg.PaneHeader.ActiveBg = "#3498db"
	}
	if cfg.PaneHeader.InactiveBg == "" {
		cfg.PaneHeader.InactiveBg = "#333333"
	}
	if cfg.PaneHeader.InactiveFg == "" {
		cfg.PaneHeader.InactiveFg = "#cccccc"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Daemon.Session == "" {
		cfg.Daemon.Session = "default"
	}
}
