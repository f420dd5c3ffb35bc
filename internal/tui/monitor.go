package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ebalaguer/exoterra/internal/planet"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Iteration is one solver step as shown by the monitor.
type Iteration struct {
	Iter     int
	Residual float64
	Profile  *planet.Profile
}

// SolveDone signals the monitor that the solve finished; Err is nil on
// success.
type SolveDone struct {
	Err error
}

// Monitor is a bubbletea model that renders solver convergence live. It
// reads Iteration and SolveDone values from the events channel; the solver
// side feeds it through an Observer adapter.
type Monitor struct {
	events <-chan tea.Msg

	iter      int
	residual  float64
	residuals []float64
	profile   *planet.Profile
	done      bool
	err       error

	width  int
	height int
}

func NewMonitor(events <-chan tea.Msg) *Monitor {
	return &Monitor{
		events:    events,
		residuals: make([]float64, 0, 64),
		width:     80,
		height:    24,
	}
}

func (m *Monitor) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.events
		if !ok {
			return SolveDone{}
		}
		return msg
	}
}

func (m *Monitor) Init() tea.Cmd { return m.waitForEvent() }

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case Iteration:
		m.iter = msg.Iter
		m.residual = msg.Residual
		m.residuals = append(m.residuals, math.Log10(math.Max(msg.Residual, 1e-16)))
		m.profile = msg.Profile
		return m, m.waitForEvent()
	case SolveDone:
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m *Monitor) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render("exoterra") + dim.Render("  convergence monitor") + "\n\n")

	status := yellow.Render(fmt.Sprintf("iterating  (step %d, residual %.3e)", m.iter, m.residual))
	if m.done {
		if m.err != nil {
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
				Render("failed: " + m.err.Error())
		} else {
			status = green.Render(fmt.Sprintf("converged in %d iterations (residual %.3e)", m.iter, m.residual))
		}
	}
	b.WriteString(status + "\n\n")

	if len(m.residuals) > 1 {
		graph := asciigraph.Plot(m.residuals,
			asciigraph.Height(10),
			asciigraph.Width(min(m.width-10, 70)),
			asciigraph.Caption("log10 density residual"),
		)
		b.WriteString(graph + "\n\n")
	}

	if m.profile != nil {
		p := m.profile
		b.WriteString(dim.Render("current structure") + "\n")
		b.WriteString(white.Render(fmt.Sprintf(
			"  R = %.4f R⊕   P_c = %.4g GPa   T_c = %.0f K   ρ_c = %.0f kg/m³\n",
			p.TotalRadius()/planet.EarthRadius,
			p.Pressure[0]/1e4,
			p.Temperature[0],
			p.Density[0],
		)))
	}

	b.WriteString("\n" + dim.Render("q to quit"))
	return b.String()
}

// ObserverChan adapts the events channel to the solver's Observer interface.
type ObserverChan chan<- tea.Msg

func (c ObserverChan) OnIteration(iter int, residual float64, p *planet.Profile) {
	c <- Iteration{Iter: iter, Residual: residual, Profile: p}
}
