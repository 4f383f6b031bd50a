package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"faithtrack/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteContext describes the resolution the palette acts on.
type PaletteContext struct {
	Title string
	Unit  string
	// RequiredPace is the per-day amount needed to finish on time; zero
	// when unknown or already completed.
	RequiredPace float64
}

type paletteHint struct {
	usage  string
	fill   string
	detail string
}

const maxHistory = 20

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle   = lipgloss.NewStyle().Foreground(theme.Subtext0)
	detailStyle = lipgloss.NewStyle().Foreground(theme.Surface1).Italic(true)
)

// Palette is the command line for logging progress and switching views.
// tab completes the first matching hint; up/down walk earlier commands.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	target  PaletteContext
	history []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "log <amount> [note]"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette for the given selection and focuses the input.
func (p *Palette) Open(target PaletteContext) tea.Cmd {
	p.visible = true
	p.target = target
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if h, ok := p.completion(); ok {
				p.input.SetValue(h.fill)
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history) {
				p.cursor++
				value := ""
				if p.cursor < len(p.history) {
					value = p.history[p.cursor]
				}
				p.input.SetValue(value)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	header := "Command Palette"
	if p.target.Title != "" {
		header += theme.Muted.Render("  · " + p.target.Title)
	}
	sb.WriteString(theme.Title.Render(header) + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := p.matching(); len(matches) > 0 {
		sb.WriteString("\n")
		for _, h := range matches {
			line := hintStyle.Render("  " + h.usage)
			if h.detail != "" {
				line += "  " + detailStyle.Render(h.detail)
			}
			sb.WriteString(line + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// hints must stay in sync with the switch in app/model.go executePalette.
func (p Palette) hints() []paletteHint {
	var out []paletteHint
	if p.target.Title != "" {
		if p.target.RequiredPace > 0 {
			amount := p.target.RequiredPace
			if p.target.Unit == "chapters" {
				amount = math.Ceil(amount)
			}
			out = append(out, paletteHint{
				usage:  strings.TrimSpace(fmt.Sprintf("log %s %s", humanize.Commaf(amount), p.target.Unit)),
				fill:   "log " + strconv.FormatFloat(amount, 'f', -1, 64) + " ",
				detail: "needed per day to finish on time",
			})
		}
		out = append(out,
			paletteHint{usage: "log <amount> [note]", fill: "log ", detail: "to " + p.target.Title},
			paletteHint{usage: "verse", fill: "verse", detail: "a new verse for this resolution"},
		)
	}
	return append(out,
		paletteHint{usage: "refresh", fill: "refresh"},
		paletteHint{usage: "dashboard", fill: "dashboard"},
		paletteHint{usage: "resolutions", fill: "resolutions"},
	)
}

func (p Palette) matching() []paletteHint {
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []paletteHint
	for _, h := range p.hints() {
		if prefix == "" || strings.HasPrefix(h.fill, prefix) || strings.HasPrefix(prefix, strings.Fields(h.fill)[0]) {
			out = append(out, h)
			if len(out) == 5 {
				break
			}
		}
	}
	return out
}

// completion is the first hint that extends what has been typed so far.
func (p Palette) completion() (paletteHint, bool) {
	typed := strings.ToLower(p.input.Value())
	for _, h := range p.hints() {
		if strings.HasPrefix(h.fill, typed) && h.fill != typed {
			return h, true
		}
	}
	return paletteHint{}, false
}

func (p *Palette) remember(val string) {
	if val == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == val) {
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}
