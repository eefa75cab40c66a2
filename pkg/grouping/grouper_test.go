package grouping

import (
	"testing"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/config"
)

func TestGroupMenus(t *testing.T) {
	menus := []catalog.MenuEntry{
		{ID: 1, Title: "Campaign Groups", Href: "/main"},
		{ID: 3, Title: "Unified Monitor", Href: "/monitor"},
		{ID: 12, Title: "Preferences", Href: "/settings"},
		{ID: 20, Title: "Scratch"},
	}
	groups := []config.Group{
		{Name: "Campaigns", Pattern: "(?i)campaign", Color: "#111111"},
		{Name: "Monitoring", Pattern: "(?i)monitor"},
		{Name: "Settings", Pattern: "^/settings$"},
		{Name: "Default", Pattern: ""},
	}

	result := GroupMenus(menus, groups)

	counts := map[string]int{}
	for _, group := range result {
		counts[group.Name] = len(group.Menus)
	}
	for name, want := range map[string]int{"Campaigns": 1, "Monitoring": 1, "Settings": 1, "Default": 1} {
		if counts[name] != want {
			t.Fatalf("expected %s count %d, got %d", name, want, counts[name])
		}
	}
}

func TestGroupMenusDropsEmptyAndBadPatterns(t *testing.T) {
	menus := []catalog.MenuEntry{{ID: 1, Title: "Monitor"}}
	groups := []config.Group{
		{Name: "Broken", Pattern: "("},
		{Name: "Unused", Pattern: "nothing-matches-this"},
		{Name: "Default", Pattern: ".*"},
	}

	result := GroupMenus(menus, groups)
	if len(result) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result))
	}
	if result[0].Name != "Default" {
		t.Fatalf("expected Default group, got %s", result[0].Name)
	}
}

func TestGroupColorFor(t *testing.T) {
	grouped := []GroupedMenus{
		{Name: "A", Color: "#abcdef", Menus: []catalog.MenuEntry{{ID: 4}}},
		{Name: "B", Menus: []catalog.MenuEntry{{ID: 5}}},
	}
	if got := GroupColorFor(4, grouped); got != "#abcdef" {
		t.Errorf("GroupColorFor(4) = %s", got)
	}
	if got := GroupColorFor(5, grouped); got != fallbackColor {
		t.Errorf("GroupColorFor(5) = %s", got)
	}
	if got := GroupColorFor(9, grouped); got != fallbackColor {
		t.Errorf("GroupColorFor(9) = %s", got)
	}
}
