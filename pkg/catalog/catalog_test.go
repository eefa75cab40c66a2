package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 12 {
		t.Fatalf("expected 12 default menus, got %d", c.Len())
	}

	m, ok := c.Lookup(2)
	if !ok {
		t.Fatalf("expected menu 2 to exist")
	}
	if !m.Duplicatable {
		t.Errorf("expected menu 2 to be duplicatable")
	}

	if _, ok := c.Lookup(99); ok {
		t.Errorf("expected unknown id lookup to fail")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Title = "mutated"

	m, _ := c.Lookup(all[0].ID)
	if m.Title == "mutated" {
		t.Fatalf("All must not expose internal storage")
	}
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []MenuEntry
		wantErr error
	}{
		{"zero id", []MenuEntry{{ID: 0, Title: "a"}}, ErrInvalidID},
		{"negative id", []MenuEntry{{ID: -3, Title: "a"}}, ErrInvalidID},
		{"empty title", []MenuEntry{{ID: 1}}, ErrEmptyTitle},
		{"duplicate", []MenuEntry{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}, ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menus.yaml")
	data := `menus:
  - id: 7
    title: Reports
    href: /reports
    duplicatable: true
  - id: 3
    title: Monitor
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	all := c.All()
	if len(all) != 2 || all[0].ID != 7 || all[1].ID != 3 {
		t.Fatalf("expected file order [7 3], got %+v", all)
	}
	if !all[0].Duplicatable || all[1].Duplicatable {
		t.Errorf("duplicatable flags not loaded: %+v", all)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
