package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bracket/internal/roots"
)

const (
	defaultWidth = 60
	frameDelay   = 400 * time.Millisecond
	minLogResid  = -17.0
)

type TickMsg time.Time

// Model replays the iterations of one solver run.
type Model struct {
	title   string
	span    roots.Interval
	states  []roots.IterationState
	pos     int
	playing bool
	width   int
	delay   time.Duration
}

// NewReplay builds a replay of states. span is the initial bracket and fixes
// the scale of the number line.
func NewReplay(title string, span roots.Interval, states []roots.IterationState) Model {
	return Model{
		title:  title,
		span:   span.Normalize(),
		states: states,
		width:  defaultWidth,
		delay:  frameDelay,
	}
}

// Position is the index of the iteration on screen.
func (m Model) Position() int { return m.pos }

func (m Model) Playing() bool { return m.playing }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				if m.pos >= len(m.states)-1 {
					m.pos = 0
				}
				return m, m.tick()
			}
		case "right", "n":
			m.playing = false
			m.next()
		case "left", "p":
			m.playing = false
			if m.pos > 0 {
				m.pos--
			}
		case "r":
			m.playing = false
			m.pos = 0
		}
	case tea.WindowSizeMsg:
		m.width = max(20, min(msg.Width-8, 120))
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		if !m.next() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// next advances one iteration and reports whether it moved.
func (m *Model) next() bool {
	if m.pos+1 >= len(m.states) {
		return false
	}
	m.pos++
	return true
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n\n")

	if len(m.states) == 0 {
		s.WriteString("no iterations recorded\n\n")
		s.WriteString(hintStyle.Render("q quit"))
		return panelStyle.Render(s.String())
	}

	st := m.states[m.pos]
	s.WriteString(m.numberLine(st) + "\n")
	s.WriteString(fmt.Sprintf("%-*g%*g\n\n", m.width/2, m.span.Lower, m.width-m.width/2, m.span.Upper))

	s.WriteString(labelStyle.Render("iteration") + valueStyle.Render(fmt.Sprintf("%d / %d", st.Iteration, m.states[len(m.states)-1].Iteration)) + "\n")
	s.WriteString(labelStyle.Render("bracket") + valueStyle.Render(fmt.Sprintf("[%.12g, %.12g]", st.Interval.Lower, st.Interval.Upper)) + "\n")
	s.WriteString(labelStyle.Render("width") + valueStyle.Render(fmt.Sprintf("%.3e", st.Interval.Width())) + "\n")
	s.WriteString(labelStyle.Render("estimate") + valueStyle.Render(fmt.Sprintf("%.15g", st.Estimate)) + "\n")
	s.WriteString(labelStyle.Render("|f(x)|") + valueStyle.Render(fmt.Sprintf("%.3e", st.Residual)) + "\n\n")

	if hist := m.logResiduals(); len(hist) >= 2 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(m.width-10),
			asciigraph.Caption("log10 |f(x)|"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	if m.playing {
		s.WriteString(playingStyle.Render("▶ playing") + "  ")
	} else {
		s.WriteString(pausedStyle.Render("⏸ paused") + "  ")
	}
	s.WriteString(hintStyle.Render("space play  ←/→ step  r reset  q quit"))
	return panelStyle.Render(s.String())
}

// numberLine draws the initial bracket as a line with the current bracket
// and estimate marked on it.
func (m Model) numberLine(st roots.IterationState) string {
	line := []rune(strings.Repeat("─", m.width))
	lo := m.column(st.Interval.Lower)
	hi := m.column(st.Interval.Upper)
	est := m.column(st.Estimate)

	var b strings.Builder
	for i, r := range line {
		switch {
		case i == est:
			b.WriteString(estimateStyle.Render("●"))
		case i == lo && i == hi:
			b.WriteString(bracketStyle.Render("|"))
		case i == lo:
			b.WriteString(bracketStyle.Render("["))
		case i == hi:
			b.WriteString(bracketStyle.Render("]"))
		case i > lo && i < hi:
			b.WriteString(bracketStyle.Render("═"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) column(x float64) int {
	w := m.span.Width()
	if w <= 0 || math.IsNaN(x) {
		return 0
	}
	c := int(math.Round((x - m.span.Lower) / w * float64(m.width-1)))
	return max(0, min(c, m.width-1))
}

func (m Model) logResiduals() []float64 {
	out := make([]float64, 0, m.pos+1)
	for _, st := range m.states[:m.pos+1] {
		r := st.Residual
		switch {
		case math.IsNaN(r), math.IsInf(r, 1):
			continue
		case r <= 0:
			out = append(out, minLogResid)
		default:
			out = append(out, math.Max(math.Log10(r), minLogResid))
		}
	}
	return out
}

// Run replays states in the alternate screen until the user quits.
func Run(title string, span roots.Interval, states []roots.IterationState) error {
	_, err := tea.NewProgram(NewReplay(title, span, states), tea.WithAltScreen()).Run()
	return err
}
