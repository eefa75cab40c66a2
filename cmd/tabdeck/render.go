package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/b/tabdeck/pkg/colors"
	"github.com/b/tabdeck/pkg/grouping"
	"github.com/b/tabdeck/pkg/layout"
	"github.com/b/tabdeck/pkg/tabs"
)

const maxTabTitle = 18

// tabSpan is where one tab label sits in a rendered tab bar, relative to the pane.
type tabSpan struct {
	tabID int
	start int
	end   int // exclusive
}

func tabLabel(t tabs.Tab) string {
	return " " + runewidth.Truncate(t.Title, maxTabTitle, "…") + " "
}

// layoutTabBar decides which tabs fit in width, keeping the active tab visible.
// Tabs are separated by one cell.
func layoutTabBar(view layout.PaneView, width int) []tabSpan {
	if len(view.Tabs) == 0 || width <= 0 {
		return nil
	}
	widths := make([]int, len(view.Tabs))
	activeIdx := 0
	for i, t := range view.Tabs {
		widths[i] = runewidth.StringWidth(tabLabel(t))
		if t.TabID == view.ActiveTabID {
			activeIdx = i
		}
	}

	// scroll right until the active tab fits
	start := 0
	for start < activeIdx {
		used := 0
		for i := start; i <= activeIdx; i++ {
			used += widths[i] + 1
		}
		if used-1 <= width {
			break
		}
		start++
	}

	var spans []tabSpan
	x := 0
	for i := start; i < len(view.Tabs); i++ {
		if x+widths[i] > width && i > start {
			break
		}
		spans = append(spans, tabSpan{tabID: view.Tabs[i].TabID, start: x, end: x + widths[i]})
		x += widths[i] + 1
	}
	return spans
}

// tabAt returns the tab under column x of a pane's tab bar, or 0.
func tabAt(spans []tabSpan, x int) int {
	for _, s := range spans {
		if x >= s.start && x < s.end {
			return s.tabID
		}
	}
	return 0
}

// minAccentContrast keeps group accents legible on the inactive tab background.
const minAccentContrast = 3.0

// tabAccent is the inactive label color of a tab: its menu group's color,
// adjusted against the inactive background.
func tabAccent(menuID int, grouped []grouping.GroupedMenus, pal colors.Palette) string {
	return colors.EnsureContrast(grouping.GroupColorFor(menuID, grouped), pal.InactiveBg, minAccentContrast)
}

func renderTabBar(view layout.PaneView, pal colors.Palette, grouped []grouping.GroupedMenus) string {
	spans := layoutTabBar(view, view.Rect.Width)
	byID := make(map[int]tabs.Tab, len(view.Tabs))
	for _, t := range view.Tabs {
		byID[t.TabID] = t
	}

	activeBg := pal.ActiveBg
	if view.Focused {
		activeBg = pal.FocusBg
	}
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(pal.ActiveFg)).
		Background(lipgloss.Color(activeBg)).
		Bold(true)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(pal.InactiveFg)).
		Background(lipgloss.Color(pal.InactiveBg))

	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		tab := byID[s.tabID]
		style := inactive.Foreground(lipgloss.Color(tabAccent(tab.MenuID, grouped, pal)))
		if s.tabID == view.ActiveTabID {
			style = active
		}
		parts = append(parts, style.Render(tabLabel(tab)))
	}
	bar := strings.Join(parts, " ")
	if len(parts) == 0 {
		bar = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(" no tabs")
	}
	return lipgloss.NewStyle().Width(view.Rect.Width).MaxWidth(view.Rect.Width).Render(bar)
}

func renderPane(view layout.PaneView, pal colors.Palette, grouped []grouping.GroupedMenus) string {
	w, h := view.Rect.Width, view.Rect.Height
	if w <= 0 || h <= 0 {
		return ""
	}
	bar := renderTabBar(view, pal, grouped)
	if h == 1 {
		return bar
	}

	body := ""
	for _, t := range view.Tabs {
		if t.TabID != view.ActiveTabID {
			continue
		}
		body = fmt.Sprintf("%s\n#%d · %s", t.Title, t.TabID, t.Pane)
		if t.OriginalPane != t.Pane {
			body += fmt.Sprintf(" (from %s)", t.OriginalPane)
		}
	}
	borderColor := pal.Border
	if view.Focused {
		borderColor = pal.FocusBg
	}
	content := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor)).Render(body)
	return bar + "\n" + lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, content)
}

// sidebarRow is one line of the menu sidebar. Group headers have menuID 0.
type sidebarRow struct {
	menuID int
	label  string
	color  string
}

func sidebarRows(grouped []grouping.GroupedMenus) []sidebarRow {
	var rows []sidebarRow
	for _, g := range grouped {
		rows = append(rows, sidebarRow{label: g.Name, color: g.Color})
		for _, m := range g.Menus {
			rows = append(rows, sidebarRow{menuID: m.ID, label: m.Title, color: g.Color})
		}
	}
	return rows
}

// sidebarOffset is the first visible row so that cursor stays on screen.
func sidebarOffset(cursor, height int) int {
	if height <= 0 || cursor < height {
		return 0
	}
	return cursor - height + 1
}

func renderSidebar(rows []sidebarRow, cursor, activeMenu int, rect layout.Rect) string {
	offset := sidebarOffset(cursor, rect.Height)
	lines := make([]string, 0, rect.Height)
	for i := offset; i < len(rows) && len(lines) < rect.Height; i++ {
		row := rows[i]
		if row.menuID == 0 {
			header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(row.color))
			lines = append(lines, header.Render(runewidth.Truncate(row.label, rect.Width, "…")))
			continue
		}
		marker := "  "
		if row.menuID == activeMenu {
			marker = "▸ "
		}
		text := runewidth.Truncate(marker+row.label, rect.Width, "…")
		style := lipgloss.NewStyle()
		if i == cursor {
			style = style.Reverse(true)
		}
		lines = append(lines, style.Render(runewidth.FillRight(text, rect.Width)))
	}
	return lipgloss.NewStyle().Width(rect.Width).Height(rect.Height).Render(strings.Join(lines, "\n"))
}

// renderPlan draws every visible pane in plan order.
func renderPlan(plan layout.RenderPlan, pal colors.Palette, grouped []grouping.GroupedMenus) string {
	rendered := make([]string, 0, len(plan.Panes))
	for _, v := range plan.Panes {
		rendered = append(rendered, renderPane(v, pal, grouped))
	}
	switch {
	case len(rendered) == 0:
		return ""
	case len(rendered) == 1:
		return rendered[0]
	case plan.Mode == tabs.ModeQuadSplit && !plan.Maximized.IsSet():
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
}
