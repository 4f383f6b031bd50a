package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	fbdto "faithtrack/internal/modules/feedback/dto"
	"faithtrack/internal/ui/theme"
)

type DashboardPort interface {
	Dashboard(ctx context.Context, userRef string) (fbdto.DashboardOutput, error)
}

type LoadedMsg struct {
	Dashboard fbdto.DashboardOutput
	Err       error
}

type Model struct {
	port    DashboardPort
	userRef string
	data    fbdto.DashboardOutput
	err     error
	bar     progress.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port DashboardPort, userRef string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		userRef: userRef,
		bar:     progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)), progress.WithoutPercentage()),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches a fresh dashboard for the current user.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("dashboard unavailable")}
		}
		out, err := m.port.Dashboard(context.Background(), m.userRef)
		return LoadedMsg{Dashboard: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(40, m.width/3))

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	if m.err != nil {
		return theme.Pane.Width(max(m.width-4, 10)).Render(theme.Hot.Render("dashboard: ") + m.err.Error())
	}
	return theme.Pane.Width(max(m.width-4, 10)).Height(max(m.height-4, 1)).Render(m.render())
}

func (m Model) render() string {
	d := m.data
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard") + "\n\n")
	if d.Total == 0 {
		sb.WriteString(theme.Muted.Render("No resolutions yet. Create one with `faithtrack resolution create`."))
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s %d   %s %d%%   %s %d   %s %d\n\n",
		theme.Muted.Render("resolutions"), d.Total,
		theme.Muted.Render("average"), d.AvgProgress,
		theme.Muted.Render("completed"), d.Completed,
		theme.Muted.Render("on pace"), d.OnPace,
	)

	for _, c := range d.Categories {
		fmt.Fprintf(&sb, "%-10s %s %3d%%  %s\n",
			c.Category, m.bar.ViewAs(float64(c.AvgProgress)/100), c.AvgProgress,
			theme.Muted.Render(fmt.Sprintf("(%d)", c.Count)))
	}
	sb.WriteString("\n")

	titleW := 0
	for _, r := range d.Resolutions {
		titleW = max(titleW, len([]rune(r.Title)))
	}
	titleW = min(titleW, 32)
	for _, r := range d.Resolutions {
		title := r.Title
		if runes := []rune(title); len(runes) > titleW {
			title = string(runes[:titleW-1]) + "…"
		}
		fmt.Fprintf(&sb, "%-*s %s %3d%%  %s\n",
			titleW, title, m.bar.ViewAs(float64(r.Percent)/100), r.Percent, theme.Status(r.Status))
	}
	return sb.String()
}
