package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/statlab/internal/anneal"
)

const (
	traceWidth      = 60
	traceHeight     = 24
	historyCapacity = 600
	stepsPerTick    = 3
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model animates a Metropolis walker over the landscape.
type Model struct {
	land     *anneal.Landscape
	walker   *anneal.Walker
	gaussian *anneal.GaussianProposal // nil for non-tunable proposals

	samples  int
	steps    int
	running  bool
	accepted int

	positions []anneal.Coord
	tempHist  []float64
	probHist  []float64
}

// NewModel builds the live view. When the proposal is gaussian its sigma
// can be tuned with the arrow keys.
func NewModel(land *anneal.Landscape, walker *anneal.Walker, proposal anneal.Proposal, samples int) Model {
	g, _ := proposal.(*anneal.GaussianProposal)
	return Model{
		land:      land,
		walker:    walker,
		gaussian:  g,
		samples:   samples,
		running:   true,
		positions: []anneal.Coord{walker.Pos()},
		tempHist:  make([]float64, 0, historyCapacity),
		probHist:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			if m.gaussian != nil {
				m.gaussian.Sigma *= 1.05
			}
		case "down", "j":
			if m.gaussian != nil {
				m.gaussian.Sigma *= 0.95
			}
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick && m.steps < m.samples; i++ {
				m.step()
			}
			if m.steps >= m.samples {
				m.running = false
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	s := m.walker.Step()
	m.steps++
	if s.Accepted {
		m.accepted++
	}

	m.positions = append(m.positions, s.Pos)
	m.tempHist = append(m.tempHist, s.Temp)
	m.probHist = append(m.probHist, s.Prob)
	if len(m.positions) > historyCapacity {
		m.positions = m.positions[1:]
	}
	if len(m.tempHist) > historyCapacity {
		m.tempHist = m.tempHist[1:]
	}
	if len(m.probHist) > historyCapacity {
		m.probHist = m.probHist[1:]
	}
}

func (m *Model) reset() {
	m.walker.Reset()
	m.steps = 0
	m.accepted = 0
	m.positions = []anneal.Coord{m.walker.Pos()}
	m.tempHist = m.tempHist[:0]
	m.probHist = m.probHist[:0]
	m.running = true
}

func (m Model) View() string {
	traceView := canvasStyle.Render(TraceWalk(m.land, m.positions, traceWidth, traceHeight))

	var s strings.Builder
	s.WriteString(headerStyle.Render("SIMULATED ANNEALING") + "\n")
	status := "RUNNING"
	if !m.running {
		if m.steps >= m.samples {
			status = "DONE"
		} else {
			status = "PAUSED"
		}
	}
	s.WriteString(status + "\n\n")

	if len(m.tempHist) > 1 {
		chart := asciigraph.Plot(m.tempHist, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Temperature"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	if len(m.probHist) > 1 {
		chart := asciigraph.Plot(m.probHist, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Density"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	pos := m.walker.Pos()
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.steps, m.samples)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%d, %d)", pos[0], pos[1])) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.4f", m.walker.Temp())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.land.EnergyAt(pos))) + "\n")
	if m.steps > 0 {
		rate := float64(m.accepted) / float64(m.steps)
		s.WriteString(labelStyle.Render("Accept rate") + valueStyle.Render(fmt.Sprintf("%.2f", rate)) + "\n")
	}
	if m.gaussian != nil {
		s.WriteString(labelStyle.Render("Sigma") + valueStyle.Render(fmt.Sprintf("%.2f", m.gaussian.Sigma)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\n↑↓:Tune sigma"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, traceView, statsView)
}
