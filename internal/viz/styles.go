package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ebalaguer/exoterra/internal/planet"
	"github.com/ebalaguer/exoterra/internal/structure"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))
)

// Summary renders a converged structure as a styled panel of the bulk
// quantities a run is usually judged by.
func Summary(res *structure.Result) string {
	p := res.Profile
	cmbR, cmbP := p.CoreMantleBoundary()

	rows := []struct {
		label string
		value string
	}{
		{"Mass", fmt.Sprintf("%.4g kg  (%.3f M⊕)", p.TotalMass(), p.TotalMass()/planet.EarthMass)},
		{"Radius", fmt.Sprintf("%.4g m  (%.3f R⊕)", p.TotalRadius(), p.TotalRadius()/planet.EarthRadius)},
		{"Bulk density", fmt.Sprintf("%.1f kg/m³", p.BulkDensity())},
		{"Surface gravity", fmt.Sprintf("%.2f m/s²", p.SurfaceGravity())},
		{"Central pressure", fmt.Sprintf("%.4g GPa", p.Pressure[0]/1e4)},
		{"Central temperature", fmt.Sprintf("%.0f K", p.Temperature[0])},
		{"CMB radius", fmt.Sprintf("%.4g m  (%.2f R)", cmbR, cmbR/p.TotalRadius())},
		{"CMB pressure", fmt.Sprintf("%.4g GPa", cmbP/1e4)},
		{"Iterations", fmt.Sprintf("%d  (residual %.2e)", res.Iterations, res.Residual)},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("interior structure"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			LabelStyle.Width(20).Render(r.label),
			ValueStyle.Render(r.value)))
	}
	return PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// ProgressBar renders a fixed-width convergence bar; fraction is clamped to
// [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if fraction >= 1.0 {
		return ValueStyle.Render(bar)
	}
	return WarnStyle.Render(bar)
}
