package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	fbdto "faithtrack/internal/modules/feedback/dto"
	resdto "faithtrack/internal/modules/resolution/dto"
	"faithtrack/internal/ui/components"
	"faithtrack/internal/ui/theme"
	dashboardview "faithtrack/internal/ui/views/dashboard"
	resolutionsview "faithtrack/internal/ui/views/resolutions"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type resolutionPort interface {
	List(ctx context.Context, userRef string) ([]resdto.ResolutionOutput, error)
	LogProgress(ctx context.Context, id string, amount float64, note string) (resdto.ResolutionOutput, error)
}

type feedbackPort interface {
	Detail(ctx context.Context, resolutionID string) (fbdto.DetailOutput, error)
	Dashboard(ctx context.Context, userRef string) (fbdto.DashboardOutput, error)
	Verse(ctx context.Context, category string) (fbdto.VerseOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabResolutions
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Resolutions",
}

// ─── async messages ───────────────────────────────────────────────────────────

type progressLoggedMsg struct {
	res resdto.ResolutionOutput
	err error
}

type verseLoadedMsg struct {
	verse fbdto.VerseOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Verse   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Verse:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "new verse")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Verse},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; data access goes through the ports.
type Model struct {
	userRef     string
	resolutions resolutionPort
	feedback    feedbackPort

	dashView dashboardview.Model
	resView  resolutionsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(userRef string, resolutions resolutionPort, feedback feedbackPort) Model {
	return Model{
		userRef:     userRef,
		resolutions: resolutions,
		feedback:    feedback,
		dashView:    dashboardview.New(feedback, userRef),
		resView:     resolutionsview.New(resolutionsPortBridge{r: resolutions, f: feedback}, userRef),
		activeTab:   tabDashboard,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.resView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case VaultChangedMsg:
		m.status = "vault changed, reloading"
		return m, m.reloadCmd()

	case progressLoggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("logged: %s now %s / %s %s", msg.res.Title,
			humanize.Commaf(msg.res.Current), humanize.Commaf(msg.res.Target), msg.res.Unit)
		return m, m.reloadCmd()

	case verseLoadedMsg:
		if msg.err != nil {
			m.status = "verse: " + msg.err.Error()
			return m, nil
		}
		m.resView.ShowVerse(msg.verse)
		m.status = "verse: " + msg.verse.Reference
		return m, nil

	// Data messages go to their owning view whichever tab is showing.
	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case resolutionsview.ListLoadedMsg, resolutionsview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.resView, cmd = m.resView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the list when its search filter is active.
		if m.activeTab == tabResolutions && m.resView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open(m.paletteContext()))
			return m, tea.Batch(cmds...)
		case "r":
			m.status = "refreshing"
			return m, m.reloadCmd()
		case "v":
			if m.activeTab == tabResolutions {
				return m, m.verseCmd(m.resView.SelectedCategory())
			}
		}
	}

	// Propagate the message to both views; spinners tick independently.
	var dCmd, rCmd tea.Cmd
	m.dashView, dCmd = m.dashView.Update(msg)
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabResolutions {
		m.resView, rCmd = m.resView.Update(msg)
	}
	cmds = append(cmds, dCmd, rCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabResolutions:
		return m.resView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "faithtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.userRef != "" {
		left = theme.Hot.Render("● "+m.userRef) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.resView.SelectedID()

	switch parts[0] {
	case "log":
		if len(parts) < 2 {
			m.status = "usage: log <amount> [note]"
			return m, nil
		}
		if selected == "" {
			m.status = "no resolution selected"
			return m, nil
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || amount <= 0 {
			m.status = "amount must be a positive number"
			return m, nil
		}
		note := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]+" "+parts[1]))
		return m, m.logProgressCmd(selected, amount, note)

	case "verse":
		m.activeTab = tabResolutions
		return m, m.verseCmd(m.resView.SelectedCategory())

	case "refresh":
		m.status = "refreshing"
		return m, m.reloadCmd()

	case "dashboard":
		m.activeTab = tabDashboard
		m.status = "ready"
		return m, nil

	case "resolutions":
		m.activeTab = tabResolutions
		m.status = "ready"
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) paletteContext() components.PaletteContext {
	title, unit, required, ok := m.resView.Selection()
	if !ok {
		return components.PaletteContext{}
	}
	return components.PaletteContext{Title: title, Unit: unit, RequiredPace: required}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.resView, _ = m.resView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) reloadCmd() tea.Cmd {
	return tea.Batch(m.dashView.Reload(), m.resView.Reload())
}

func (m Model) logProgressCmd(id string, amount float64, note string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.resolutions.LogProgress(context.Background(), id, amount, note)
		return progressLoggedMsg{res: res, err: err}
	}
}

func (m Model) verseCmd(category string) tea.Cmd {
	return func() tea.Msg {
		v, err := m.feedback.Verse(context.Background(), category)
		return verseLoadedMsg{verse: v, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type resolutionsPortBridge struct {
	r resolutionPort
	f feedbackPort
}

func (b resolutionsPortBridge) List(ctx context.Context, userRef string) ([]resdto.ResolutionOutput, error) {
	return b.r.List(ctx, userRef)
}

func (b resolutionsPortBridge) Detail(ctx context.Context, id string) (fbdto.DetailOutput, error) {
	return b.f.Detail(ctx, id)
}
