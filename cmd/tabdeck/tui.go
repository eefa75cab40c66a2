package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/colors"
	"github.com/b/tabdeck/pkg/config"
	"github.com/b/tabdeck/pkg/dragdrop"
	"github.com/b/tabdeck/pkg/grouping"
	"github.com/b/tabdeck/pkg/layout"
	"github.com/b/tabdeck/pkg/perf"
	"github.com/b/tabdeck/pkg/tabs"
)

const resizeStep = 0.05

var errNotTerminal = errors.New("stdout is not a terminal")

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

type configReloadedMsg struct{ cfg *config.Config }

type configErrorMsg struct{ err error }

// dragState is a tab press that has not been released yet.
type dragState struct {
	tabID int
	pane  tabs.Pane
}

type model struct {
	coord   *layout.Coordinator
	drops   *dragdrop.Adapter
	cfg     *config.Config
	palette colors.Palette
	grouped []grouping.GroupedMenus
	rows    []sidebarRow
	keys    keyMap
	help    help.Model
	logger  *slog.Logger

	width  int
	height int
	plan   layout.RenderPlan
	cursor int // index into rows, always on a menu row
	drag   *dragState
	status string
}

func newModel(cfg *config.Config, cat *catalog.Catalog, store *tabs.Store, logger *slog.Logger) model {
	m := model{
		coord:  layout.NewCoordinator(store, cat, cfg.Layout),
		drops:  dragdrop.NewAdapter(store),
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logger,
		width:  80,
		height: 24,
	}
	m.applyConfig(cfg)
	m.cursor = m.nextMenuRow(-1, 1)
	m.refresh()
	return m
}

func (m *model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.palette = colors.HeaderPalette(cfg.PaneHeader)
	m.grouped = grouping.GroupMenus(m.coord.Catalog().All(), cfg.Groups)
	m.rows = sidebarRows(m.grouped)
	m.coord.Apply(cfg.Layout)
	if m.cursor >= len(m.rows) || (len(m.rows) > 0 && m.rows[m.cursor].menuID == 0) {
		m.cursor = m.nextMenuRow(-1, 1)
	}
}

// refresh recomputes the plan after anything that can change the layout.
func (m *model) refresh() {
	m.help.Width = m.width
	m.plan = m.coord.Plan(m.width, m.height-m.footerHeight())
}

func (m model) footerHeight() int {
	if m.help.ShowAll && m.status == "" {
		return lipgloss.Height(m.help.View(m.keys))
	}
	return 1
}

// nextMenuRow walks from row i in direction dir to the next menu row.
// It returns i unchanged when there is none.
func (m model) nextMenuRow(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.rows); j += dir {
		if m.rows[j].menuID != 0 {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

func (m model) focusedView() (layout.PaneView, bool) {
	for _, v := range m.plan.Panes {
		if v.Focused {
			return v, true
		}
	}
	if len(m.plan.Panes) > 0 {
		return m.plan.Panes[0], true
	}
	return layout.PaneView{}, false
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.status = ""
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		m.status = "config reloaded"
		m.logger.Info("config reloaded")

	case configErrorMsg:
		m.status = "config: " + msg.err.Error()
		m.logger.Warn("config reload failed", "error", msg.err)
	}

	m.refresh()
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) {
	store := m.coord.Store()
	view, hasView := m.focusedView()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.nextMenuRow(m.cursor, -1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.nextMenuRow(m.cursor, 1)
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.OpenNew):
		m.openAtCursor(key.Matches(msg, m.keys.OpenNew))
	case key.Matches(msg, m.keys.Close):
		if hasView && view.ActiveTabID > 0 {
			if !view.Pane.IsSide() {
				m.status = "exit quad split to close tabs"
				return
			}
			m.coord.Close(view.Pane, view.ActiveTabID)
		}
	case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.NextTab):
		if hasView {
			dir := 1
			if key.Matches(msg, m.keys.PrevTab) {
				dir = -1
			}
			if id := neighbourTab(view, dir); id > 0 {
				m.coord.Click(view.Pane, id)
			}
		}
	case key.Matches(msg, m.keys.NextPane):
		m.cycleFocus()
	case key.Matches(msg, m.keys.Move):
		if hasView && view.Pane.IsSide() && view.ActiveTabID > 0 {
			store.MoveTabToOtherSide(view.ActiveTabID, view.Pane)
			if other, ok := view.Pane.Opposite(); ok {
				m.coord.SetFocus(other)
			}
		}
	case key.Matches(msg, m.keys.Split):
		store.ToggleSplit()
	case key.Matches(msg, m.keys.Quad):
		if store.IsQuadSplit() {
			store.ExitQuadSplit()
		} else {
			store.EnterQuadSplit()
			if !store.IsQuadSplit() {
				snap := store.Snapshot()
				m.status = fmt.Sprintf("quad split needs exactly 4 open tabs, have %d", len(snap.Left)+len(snap.Right))
			}
		}
	case key.Matches(msg, m.keys.Maximize):
		if hasView && view.ActiveTabID > 0 {
			m.coord.ToggleMaximize(view.Pane, view.ActiveTabID)
		}
	case key.Matches(msg, m.keys.Sidebar):
		m.coord.ToggleSidebar()
	case key.Matches(msg, m.keys.Shrink):
		m.coord.Resize(m.coord.SplitRatio() - resizeStep)
	case key.Matches(msg, m.keys.Grow):
		m.coord.Resize(m.coord.SplitRatio() + resizeStep)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *model) openAtCursor(force bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].menuID == 0 {
		return
	}
	if err := m.coord.Open(m.rows[m.cursor].menuID, m.coord.Focus(), force); err != nil {
		m.status = err.Error()
		m.logger.Warn("open failed", "menu", m.rows[m.cursor].menuID, "error", err)
	}
}

func (m *model) cycleFocus() {
	panes := m.plan.Panes
	if len(panes) < 2 {
		return
	}
	for i, v := range panes {
		if v.Focused {
			m.coord.SetFocus(panes[(i+1)%len(panes)].Pane)
			return
		}
	}
	m.coord.SetFocus(panes[0].Pane)
}

// neighbourTab returns the tab next to the active one in direction dir, wrapping.
func neighbourTab(view layout.PaneView, dir int) int {
	n := len(view.Tabs)
	if n == 0 {
		return 0
	}
	for i, t := range view.Tabs {
		if t.TabID == view.ActiveTabID {
			return view.Tabs[(i+dir+n)%n].TabID
		}
	}
	return view.Tabs[0].TabID
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if m.plan.SidebarOpen && m.plan.Sidebar.Contains(msg.X, msg.Y) {
			if msg.Button != tea.MouseButtonLeft {
				return
			}
			row := msg.Y + sidebarOffset(m.cursor, m.plan.Sidebar.Height)
			if row < len(m.rows) && m.rows[row].menuID != 0 {
				m.cursor = row
				m.openAtCursor(false)
			}
			return
		}

		view, ok := m.plan.PaneAt(msg.X, msg.Y)
		if !ok {
			return
		}
		if msg.Y != view.Rect.Y {
			m.coord.SetFocus(view.Pane)
			return
		}
		tabID := tabAt(layoutTabBar(view, view.Rect.Width), msg.X-view.Rect.X)
		if tabID == 0 {
			m.coord.SetFocus(view.Pane)
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.coord.Click(view.Pane, tabID)
			m.coord.SetFocus(view.Pane)
			m.drag = &dragState{tabID: tabID, pane: view.Pane}
		case tea.MouseButtonMiddle:
			m.coord.Close(view.Pane, tabID)
		case tea.MouseButtonRight:
			m.coord.ToggleMaximize(view.Pane, tabID)
		}

	case tea.MouseActionRelease:
		if m.drag == nil {
			return
		}
		drag := m.drag
		m.drag = nil
		view, ok := m.plan.PaneAt(msg.X, msg.Y)
		if !ok {
			return
		}
		over := 0
		if msg.Y == view.Rect.Y {
			over = tabAt(layoutTabBar(view, view.Rect.Width), msg.X-view.Rect.X)
		}
		if view.Pane == drag.pane && (over == 0 || over == drag.tabID) {
			return
		}
		res := m.drops.Drop(dragdrop.Event{
			ActiveTabID: drag.tabID,
			OverTabID:   over,
			SourcePane:  drag.pane,
			TargetPane:  view.Pane,
		})
		m.logger.Debug("tab dropped", "tab", drag.tabID, "from", drag.pane, "to", view.Pane, "over", over, "result", res)
		if res == dragdrop.Moved {
			m.coord.SetFocus(view.Pane)
		}
	}
}

func (m model) View() string {
	defer perf.Start("tui.View").Stop()

	content := renderPlan(m.plan, m.palette, m.grouped)
	if m.plan.SidebarOpen {
		sidebar := renderSidebar(m.rows, m.cursor, m.plan.ActiveMenu, m.plan.Sidebar)
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("#e67e22")).Render(m.status)
	}
	return content + "\n" + footer
}

func runTUI(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var opts []tabs.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, tabs.WithRecorder(perf.NewMetrics()))
	}
	m := newModel(cfg, cat, tabs.NewStore(opts...), log.Logger)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
		m.refresh()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	watcher, err := config.Watch(cfgFile,
		func(c *config.Config) { p.Send(configReloadedMsg{cfg: c}) },
		func(err error) { p.Send(configErrorMsg{err: err}) },
	)
	if err != nil {
		log.Warn("config hot reload disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	log.Info("dashboard started", "catalog_size", cat.Len())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
