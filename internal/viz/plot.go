package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/ebalaguer/exoterra/internal/planet"
)

// ProfileQuantity selects which profile column a plot shows.
type ProfileQuantity string

const (
	PlotDensity     ProfileQuantity = "density"
	PlotGravity     ProfileQuantity = "gravity"
	PlotPressure    ProfileQuantity = "pressure"
	PlotTemperature ProfileQuantity = "temperature"
)

// ProfilePlot renders one quantity against radius as an ASCII graph. The
// abscissa is the layer index, center-outward; the caption carries the
// radial extent so the axis stays readable.
func ProfilePlot(p *planet.Profile, q ProfileQuantity, width, height int) (string, error) {
	var data []float64
	var unit string
	switch q {
	case PlotDensity:
		data, unit = p.Density, "kg/m³"
	case PlotGravity:
		data, unit = p.Gravity, "m/s²"
	case PlotPressure:
		data = make([]float64, len(p.Pressure))
		for i, v := range p.Pressure {
			data[i] = v / 1e4
		}
		unit = "GPa"
	case PlotTemperature:
		data, unit = p.Temperature, "K"
	default:
		return "", fmt.Errorf("viz: unknown profile quantity %q", q)
	}

	caption := fmt.Sprintf("%s [%s], center → surface (R = %.3f R⊕)",
		q, unit, p.TotalRadius()/planet.EarthRadius)
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graph, nil
}

// MassRadiusPoint is one solved planet on a mass-radius curve, in Earth
// units.
type MassRadiusPoint struct {
	MassEarth   float64
	RadiusEarth float64
}

// MassRadiusPlot renders a solved sweep as radius against mass. Points are
// plotted in mass order regardless of completion order.
func MassRadiusPlot(points []MassRadiusPoint, width, height int) string {
	if len(points) == 0 {
		return Subtle.Render("no points")
	}
	sorted := make([]MassRadiusPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MassEarth < sorted[j].MassEarth })

	radii := make([]float64, len(sorted))
	for i, pt := range sorted {
		radii[i] = pt.RadiusEarth
	}
	caption := fmt.Sprintf("radius [R⊕] over mass %.2f–%.2f M⊕",
		sorted[0].MassEarth, sorted[len(sorted)-1].MassEarth)
	return asciigraph.Plot(radii,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// MassRadiusTable renders a sweep as an aligned text table in Earth units.
func MassRadiusTable(points []MassRadiusPoint) string {
	sorted := make([]MassRadiusPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MassEarth < sorted[j].MassEarth })

	var b strings.Builder
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%10s  %10s", "M [M⊕]", "R [R⊕]")))
	b.WriteString("\n")
	for _, pt := range sorted {
		b.WriteString(fmt.Sprintf("%10.4f  %10.4f\n", pt.MassEarth, pt.RadiusEarth))
	}
	return strings.TrimRight(b.String(), "\n")
}
