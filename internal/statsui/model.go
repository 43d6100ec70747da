// Package statsui provides the Bubble Tea round history browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/stats"
)

const (
	tabOverview = iota
	tabRounds
)

const (
	filterMode = iota
	filterSince
	filterLast
	filterWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store stats.RoundLister
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	overview    viewport.Model
	roundsTable table.Model

	width  int
	height int

	filtering    bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a history UI model.
func NewModel(st stats.RoundLister, cfg model.StatsConfig) *Model {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Rounds"},
		overview: viewport.New(0, 0),
	}
	m.roundsTable = table.New(
		table.WithColumns(roundColumns()),
		table.WithHeight(1),
	)
	m.roundsTable.SetStyles(roundTableStyles())
	m.filterInputs = []textinput.Model{
		newFilterInput("Mode (drag/choice/spelling): "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Trend window: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filtering && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			if m.activeTab == tabRounds {
				m.roundsTable.Focus()
			} else {
				m.roundsTable.Blur()
			}
			return m, tea.ClearScreen
		case "/":
			return m, m.startFilter()
		case "g", "home":
			if m.activeTab == tabRounds {
				m.roundsTable.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabRounds {
				m.roundsTable.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabRounds {
			m.roundsTable, cmd = m.roundsTable.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X"))) + 1
	footerHeight = 1
	if !m.filtering && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.roundsTable.SetWidth(m.width)
	m.roundsTable.SetHeight(max(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load history.")
		m.roundsTable.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.report = report
	m.roundsTable.SetRows(roundRows(report.Rounds))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(overviewContent(m.report, m.cfg.Window, width))
}

func overviewContent(report stats.Report, window, width int) string {
	if len(report.Rounds) == 0 {
		return "No rounds found."
	}
	t := report.Total
	cards := []string{
		metricCard("Rounds", strconv.Itoa(t.Rounds)),
		metricCard("Words", strconv.Itoa(t.Entries)),
		metricCard("Avg Accuracy", fmt.Sprintf("%.1f%%", t.AvgAccuracy*100)),
		metricCard("Best Accuracy", fmt.Sprintf("%.1f%%", t.BestAccuracy*100)),
		metricCard("Sec/Word", fmt.Sprintf("%.1f", t.SecondsPerWord)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, report); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	if err := stats.RenderTrend(&buf, report.Rounds, window, width); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func roundColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Mode", Width: 8},
		{Title: "Words", Width: 5},
		{Title: "Mistakes", Width: 8},
		{Title: "Accuracy", Width: 8},
		{Title: "Time", Width: 8},
	}
}

func roundRows(rounds []model.RoundAggregate) []table.Row {
	rows := make([]table.Row, 0, len(rounds))
	// Newest first.
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		acc, _ := stats.RoundMetrics(r)
		rows = append(rows, table.Row{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Mode),
			strconv.Itoa(r.Entries),
			strconv.Itoa(r.Mistakes),
			fmt.Sprintf("%.1f%%", acc*100),
			(time.Duration(r.DurationMs) * time.Millisecond).Round(time.Second).String(),
		})
	}
	return rows
}

func roundTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
	return tabs + "\n" + padLines(headerStyle.Render(truncateLine(m.filterSummary(), m.width)), m.width)
}

func (m *Model) filterSummary() string {
	mode := string(m.cfg.Mode)
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	return fmt.Sprintf("Filters: mode=%s  since=%s  last=%s  window=%d", mode, since, last, m.cfg.Window)
}

func (m *Model) renderBody() string {
	if m.filtering {
		lines := []string{"Filters (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabRounds {
		if len(m.report.Rounds) == 0 {
			return "No rounds found."
		}
		return tableMutedStyle.Render(m.roundsTable.View())
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	if m.filtering {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Tabs: left/right  Scroll: up/down/pgup/pgdn  Filters: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	m.filterError = ""
	m.filterInputs[filterMode].SetValue(string(m.cfg.Mode))
	if m.cfg.Since != nil {
		m.filterInputs[filterSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[filterSince].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[filterLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[filterLast].SetValue("")
	}
	m.filterInputs[filterWindow].SetValue(strconv.Itoa(m.cfg.Window))
	return m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := m.parseFilters()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filtering = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx%count + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilters() (model.StatsConfig, error) {
	var cfg model.StatsConfig
	if raw := strings.TrimSpace(m.filterInputs[filterMode].Value()); raw != "" && raw != "any" {
		mode, err := model.ParseMode(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if raw := strings.TrimSpace(m.filterInputs[filterSince].Value()); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	if raw := strings.TrimSpace(m.filterInputs[filterLast].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	cfg.Window = 1
	if raw := strings.TrimSpace(m.filterInputs[filterWindow].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid trend window (use integer >= 1)")
		}
		cfg.Window = parsed
	}
	return cfg, nil
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
