// Package catalog holds the static registry of menus an operator can open as tabs.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidID   = errors.New("menu id must be positive")
	ErrDuplicateID = errors.New("duplicate menu id")
	ErrEmptyTitle  = errors.New("menu title is empty")
)

// MenuEntry is one selectable catalog item. Entries never change once loaded.
type MenuEntry struct {
	ID           int    `yaml:"id" json:"id"`
	Title        string `yaml:"title" json:"title"`
	Icon         string `yaml:"icon" json:"icon,omitempty"`
	Href         string `yaml:"href" json:"href,omitempty"`
	Duplicatable bool   `yaml:"duplicatable" json:"duplicatable"`
}

// Catalog is a read-only, ordered set of menu entries.
type Catalog struct {
	entries []MenuEntry
	byID    map[int]int
}

type catalogFile struct {
	Menus []MenuEntry `yaml:"menus"`
}

// New builds a catalog from entries, keeping their order.
func New(entries []MenuEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]MenuEntry, 0, len(entries)),
		byID:    make(map[int]int, len(entries)),
	}
	for _, e := range entries {
		if e.ID <= 0 {
			return nil, fmt.Errorf("menu %q: %w", e.Title, ErrInvalidID)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("menu %d: %w", e.ID, ErrEmptyTitle)
		}
		if _, ok := c.byID[e.ID]; ok {
			return nil, fmt.Errorf("menu %d: %w", e.ID, ErrDuplicateID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Load reads a catalog file of the form `menus: [{id, title, icon, href, duplicatable}]`.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return New(f.Menus)
}

// Lookup returns the entry with the given id.
func (c *Catalog) Lookup(id int) (MenuEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return MenuEntry{}, false
	}
	return c.entries[i], true
}

// All returns a copy of every entry in catalog order.
func (c *Catalog) All() []MenuEntry {
	out := make([]MenuEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
