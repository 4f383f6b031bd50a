package resolutions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	fbdto "faithtrack/internal/modules/feedback/dto"
	resdto "faithtrack/internal/modules/resolution/dto"
	"faithtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ResolutionsPort interface {
	List(ctx context.Context, userRef string) ([]resdto.ResolutionOutput, error)
	Detail(ctx context.Context, resolutionID string) (fbdto.DetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ListLoadedMsg struct {
	Resolutions []resdto.ResolutionOutput
	Err         error
}

type DetailLoadedMsg struct {
	Detail fbdto.DetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type resolutionItem struct {
	res resdto.ResolutionOutput
}

func (i resolutionItem) Title() string { return i.res.Title }
func (i resolutionItem) Description() string {
	return fmt.Sprintf("%s  %s / %s %s", i.res.Category,
		humanize.Commaf(i.res.Current), humanize.Commaf(i.res.Target), i.res.Unit)
}
func (i resolutionItem) FilterValue() string { return i.res.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ResolutionsPort
	userRef string
	list    list.Model
	detail  fbdto.DetailOutput
	errMsg  string
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ResolutionsPort, userRef string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Resolutions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		userRef: userRef,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload re-reads the resolution list; the detail follows the selection.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.List(context.Background(), m.userRef)
		return ListLoadedMsg{Resolutions: items, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ListLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Resolutions: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Resolutions"
		selected, _ := m.SelectedID()
		items := make([]list.Item, len(msg.Resolutions))
		idx := 0
		for i, r := range msg.Resolutions {
			items[i] = resolutionItem{res: r}
			if r.ID == selected {
				idx = i
			}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Resolutions) > 0 {
			m.list.Select(idx)
			cmds = append(cmds, m.loadDetailCmd(msg.Resolutions[idx].ID))
		} else {
			m.detail = fbdto.DetailOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.errMsg = ""
			m.detail = msg.Detail
		}
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(resolutionItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.res.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading resolutions…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.StatusColor(m.detail.Report.Status)).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedID returns the current selection's resolution ID, if any.
func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(resolutionItem); ok {
		return item.res.ID, true
	}
	return "", false
}

// SelectedCategory returns the current selection's category.
func (m Model) SelectedCategory() string {
	if item, ok := m.list.SelectedItem().(resolutionItem); ok {
		return item.res.Category
	}
	return ""
}

// Selection returns the selected resolution's title and unit, plus the
// required daily pace once its detail has loaded.
func (m Model) Selection() (title, unit string, requiredPace float64, ok bool) {
	item, ok := m.list.SelectedItem().(resolutionItem)
	if !ok {
		return "", "", 0, false
	}
	if r := m.detail.Report; r.ResolutionID == item.res.ID && r.Pace != nil {
		requiredPace = r.Pace.RequiredPace
	}
	return item.res.Title, item.res.Unit, requiredPace, true
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ShowVerse swaps the detail pane's verse without refetching the rest.
func (m *Model) ShowVerse(v fbdto.VerseOutput) {
	m.detail.Verse = v
	m.preview.SetContent(m.renderDetail())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	if m.errMsg != "" {
		return theme.Hot.Render("error: ") + m.errMsg
	}
	d := m.detail
	r := d.Report
	if r.ResolutionID == "" {
		return theme.Muted.Render("Select a resolution to see its pace")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Title) + "  " + theme.Status(r.Status) + "\n")
	if d.Description != "" {
		sb.WriteString(theme.Muted.Render(d.Description) + "\n")
	}
	sb.WriteString("\n" + r.Message + "\n\n")

	sb.WriteString(theme.Muted.Render("progress: "))
	fmt.Fprintf(&sb, "%s / %s %s (%d%%)\n",
		humanize.Commaf(d.Progress.Current), humanize.Commaf(d.Progress.Target), r.Unit, r.PercentComplete)
	sb.WriteString(theme.Muted.Render("deadline: ") + d.Deadline.Format("2006-01-02") + "\n")
	if p := r.Pace; p != nil {
		fmt.Fprintf(&sb, "%s%d of %d (%d left)\n", theme.Muted.Render("day:      "), p.DaysElapsed, p.TotalDays, p.DaysLeft)
		fmt.Fprintf(&sb, "%s%.2f %s/day\n", theme.Muted.Render("pace:     "), p.CurrentPace, r.Unit)
		fmt.Fprintf(&sb, "%s%.2f %s/day\n", theme.Muted.Render("needed:   "), p.RequiredPace, r.Unit)
		sb.WriteString(theme.Muted.Render("finish:   ") + p.ProjectedFinish + "\n")
	}

	if len(d.Suggestions) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Suggestions") + "\n")
		for _, s := range d.Suggestions {
			sb.WriteString("• " + s + "\n")
		}
	}

	if d.Verse.Text != "" {
		sb.WriteString("\n" + theme.Verse.Render("“"+d.Verse.Text+"”") + "\n")
		sb.WriteString(theme.Muted.Render("  "+d.Verse.Reference) + "\n")
	}

	if len(d.Progress.Series) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Cumulative") + "\n")
		sb.WriteString(renderSeries(d.Progress.Series, d.Progress.Target, max(m.preview.Width-16, 10)))
	}

	if len(d.Entries) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Log") + "\n")
		for i := len(d.Entries) - 1; i >= 0; i-- {
			e := d.Entries[i]
			line := fmt.Sprintf("%s  +%s", e.Date.Format("2006-01-02"), humanize.Commaf(e.Amount))
			if e.Note != "" {
				line += "  " + theme.Muted.Render(e.Note)
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n" + theme.Muted.Render(":log <amount> [note]  :verse  :refresh"))
	return sb.String()
}

func renderSeries(series []fbdto.PointOutput, target float64, width int) string {
	scale := target
	for _, p := range series {
		scale = max(scale, p.Total)
	}
	if scale <= 0 {
		scale = 1
	}
	bar := lipgloss.NewStyle().Foreground(theme.Sapphire)
	var sb strings.Builder
	for _, p := range series {
		n := int(p.Total / scale * float64(width))
		sb.WriteString(theme.Muted.Render(p.Date.Format("01-02")) + " " + bar.Render(strings.Repeat("█", n)) +
			" " + humanize.Commaf(p.Total) + "\n")
	}
	return sb.String()
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Detail(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
