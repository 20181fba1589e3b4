package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type dashboardPanel int

const (
	panelLines dashboardPanel = iota
	panelChart
	panelRatios
)

var panelTitles = []string{"Lines", "Chart", "Ratios"}

var dashboardOverlays = [][]domain.Overlay{
	{domain.OverlayBase},
	{domain.OverlayBase, domain.OverlayPlan},
	{domain.OverlayBase, domain.OverlayActual},
	{domain.OverlayBase, domain.OverlayPlan, domain.OverlayActual},
}

var dashboardViews = []calendar.View{
	calendar.ViewMonths, calendar.ViewQuarters, calendar.ViewCalendar, calendar.ViewFiscal,
}

type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Panel   key.Binding
	Overlay key.Binding
	View    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev line")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next line")),
		Panel:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "panel")),
		Overlay: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overlay")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Panel, k.Overlay, k.View, k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dashboardLoadedMsg carries one full refresh of the dashboard panels.
type dashboardLoadedMsg struct {
	lines  *contract.LinesResponse
	chart  *contract.ChartResponse
	ratios *contract.RatiosResponse
	err    error
}

type chartLoadedMsg struct {
	chart *contract.ChartResponse
	err   error
}

type dashboardModel struct {
	app         *App
	blueprintID string
	keys        dashboardKeyMap
	help        help.Model
	vp          viewport.Model

	panel      dashboardPanel
	overlayIdx int
	viewIdx    int
	cursor     int

	lines  *contract.LinesResponse
	chart  *contract.ChartResponse
	ratios *contract.RatiosResponse

	loading bool
	err     error
	width   int
	height  int
}

func newDashboardModel(app *App, blueprintID string) dashboardModel {
	return dashboardModel{
		app:         app,
		blueprintID: blueprintID,
		keys:        defaultDashboardKeys(),
		help:        help.New(),
		vp:          viewport.New(80, 20),
		overlayIdx:  1,
		loading:     true,
	}
}

func (m dashboardModel) overlays() []domain.Overlay { return dashboardOverlays[m.overlayIdx] }
func (m dashboardModel) view() calendar.View        { return dashboardViews[m.viewIdx] }

// codedLines returns the lines that can be charted.
func (m dashboardModel) codedLines() []contract.LineView {
	if m.lines == nil {
		return nil
	}
	var out []contract.LineView
	for _, l := range m.lines.Lines {
		if l.Code != "" {
			out = append(out, l)
		}
	}
	return out
}

func (m dashboardModel) selectedCode() string {
	coded := m.codedLines()
	if m.cursor < 0 || m.cursor >= len(coded) {
		return ""
	}
	return coded[m.cursor].Code
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadAll("")
}

func (m dashboardModel) loadAll(lineCode string) tea.Cmd {
	app, id, overlays, view := m.app, m.blueprintID, m.overlays(), m.view()
	return func() tea.Msg {
		ctx := context.Background()
		lines, err := app.Analytics.Lines(ctx, contract.LinesRequest{BlueprintID: id, Overlays: overlays})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		ratios, err := app.Analytics.Ratios(ctx, contract.RatiosRequest{BlueprintID: id, Overlays: overlays})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		code := lineCode
		if code == "" {
			for _, l := range lines.Lines {
				if l.Code != "" {
					code = l.Code
					break
				}
			}
		}
		var chart *contract.ChartResponse
		if code != "" {
			req := contract.NewChartRequest(id, code)
			req.View = view
			req.Overlays = overlays
			chart, err = app.Analytics.Chart(ctx, req)
			if err != nil {
				return dashboardLoadedMsg{err: err}
			}
		}
		return dashboardLoadedMsg{lines: lines, chart: chart, ratios: ratios}
	}
}

func (m dashboardModel) loadChart() tea.Cmd {
	code := m.selectedCode()
	if code == "" {
		return nil
	}
	app := m.app
	req := contract.NewChartRequest(m.blueprintID, code)
	req.View = m.view()
	req.Overlays = m.overlays()
	return func() tea.Msg {
		chart, err := app.Analytics.Chart(context.Background(), req)
		return chartLoadedMsg{chart: chart, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-5, 1)
		m.vp.SetContent(m.panelContent())
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.lines, m.chart, m.ratios = msg.lines, msg.chart, msg.ratios
			if n := len(m.codedLines()); m.cursor >= n {
				m.cursor = max(n-1, 0)
			}
		}
		m.vp.SetContent(m.panelContent())
		return m, nil

	case chartLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.chart = msg.chart
		}
		m.vp.SetContent(m.panelContent())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.vp.SetContent(m.panelContent())
			return m, m.loadChart()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.codedLines())-1 {
			m.cursor++
			m.vp.SetContent(m.panelContent())
			return m, m.loadChart()
		}

	case key.Matches(msg, m.keys.Panel):
		m.panel = (m.panel + 1) % dashboardPanel(len(panelTitles))
		m.vp.SetContent(m.panelContent())
		m.vp.GotoTop()

	case key.Matches(msg, m.keys.Overlay):
		m.overlayIdx = (m.overlayIdx + 1) % len(dashboardOverlays)
		m.loading = true
		return m, m.loadAll(m.selectedCode())

	case key.Matches(msg, m.keys.View):
		m.viewIdx = (m.viewIdx + 1) % len(dashboardViews)
		return m, m.loadChart()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadAll(m.selectedCode())

	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) tabs() string {
	parts := make([]string, len(panelTitles))
	for i, title := range panelTitles {
		if dashboardPanel(i) == m.panel {
			parts[i] = formatter.StyleHeader.Render("[" + title + "]")
		} else {
			parts[i] = formatter.Dim(" " + title + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m dashboardModel) panelContent() string {
	if m.err != nil {
		return formatter.RenderBox("Error", formatter.StyleRed.Render(m.err.Error()))
	}
	if m.lines == nil {
		return formatter.Dim("Loading…")
	}
	switch m.panel {
	case panelChart:
		if m.chart == nil {
			return formatter.Dim("No coded lines to chart.")
		}
		return formatter.FormatChart(m.chart)
	case panelRatios:
		if m.ratios == nil {
			return ""
		}
		return formatter.FormatRatios(m.ratios)
	default:
		return m.linesContent()
	}
}

func (m dashboardModel) linesContent() string {
	selected := m.selectedCode()
	headers := []string{"", "LINE", "TOTAL", "RUN RATE"}
	rows := make([][]string, 0, len(m.lines.Lines))
	for _, l := range m.lines.Lines {
		marker := " "
		name := strings.Repeat("  ", l.Depth) + l.Name
		if l.Code != "" && l.Code == selected {
			marker = formatter.StyleHeader.Render("›")
			name = lipgloss.NewStyle().Bold(true).Render(name)
		}
		rows = append(rows, []string{marker, name, formatter.SignedAmount(l.Total), formatter.Amount(l.RunRate)})
	}
	align := []formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight}
	return formatter.RenderAlignedTable(headers, rows, align)
}

func (m dashboardModel) View() string {
	var b strings.Builder
	title := "Blueprint"
	if m.lines != nil {
		title = fmt.Sprintf("%s (v%d)", m.lines.Blueprint.Name, m.lines.Blueprint.Version)
	}
	fmt.Fprintf(&b, "%s  %s  %s %s\n", formatter.StyleHeader.Render(title), formatter.OverlayBadge(m.overlays()),
		formatter.Dim("view:"), m.view())
	b.WriteString(m.tabs())
	if m.loading {
		b.WriteString("  " + formatter.Dim("refreshing…"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [id|name]",
		Short: "Browse lines, charts and ratios interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dashboard requires an interactive terminal")
			}
			id, err := resolveBlueprintID(context.Background(), app, optionalArg(args))
			if err != nil {
				return err
			}
			p := tea.NewProgram(newDashboardModel(app, id), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
