package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// ChartSeries is the invested-versus-value line chart of one scenario.
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Invested []float64 `json:"total_investment"`
	Value    []float64 `json:"investment_value"`
}

// BuildChartSeries extracts the chart data from the yearly breakdown.
func BuildChartSeries(records []domain.YearRecord) ChartSeries {
	s := ChartSeries{
		Labels:   make([]string, 0, len(records)),
		Invested: make([]float64, 0, len(records)),
		Value:    make([]float64, 0, len(records)),
	}
	for _, r := range records {
		s.Labels = append(s.Labels, fmt.Sprintf("Year %d", r.Year))
		s.Invested = append(s.Invested, r.CumulativeInvested)
		s.Value = append(s.Value, r.ValueAtYearEnd)
	}
	return s
}

// SVG chart geometry.
const (
	chartWidth   = 640.0
	chartHeight  = 320.0
	chartPadding = 40.0
)

// svgPoints maps values onto the chart area as an SVG polyline points list.
func svgPoints(values []float64, maxValue float64) string {
	if len(values) == 0 || maxValue <= 0 {
		return ""
	}
	innerW := chartWidth - 2*chartPadding
	innerH := chartHeight - 2*chartPadding
	step := 0.0
	if len(values) > 1 {
		step = innerW / float64(len(values)-1)
	}
	pts := make([]string, len(values))
	for i, v := range values {
		x := chartPadding + step*float64(i)
		y := chartHeight - chartPadding - innerH*(v/maxValue)
		pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	return strings.Join(pts, " ")
}

// SVG renders the series as a standalone inline SVG line chart.
func (s ChartSeries) SVG() string {
	maxValue := 0.0
	for _, v := range append(append([]float64(nil), s.Invested...), s.Value...) {
		maxValue = math.Max(maxValue, v)
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" class="growth-chart">`, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#999"/>`, chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#999"/>`, chartPadding, chartPadding, chartPadding, chartHeight-chartPadding)
	fmt.Fprintf(&b, `<polyline fill="none" stroke="#667eea" stroke-width="3" points="%s"><title>Total Investment</title></polyline>`, svgPoints(s.Invested, maxValue))
	fmt.Fprintf(&b, `<polyline fill="none" stroke="#764ba2" stroke-width="3" points="%s"><title>Investment Value</title></polyline>`, svgPoints(s.Value, maxValue))
	if n := len(s.Labels); n > 0 {
		fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" font-size="12">%s</text>`, chartPadding, chartHeight-chartPadding/3, s.Labels[0])
		fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" font-size="12" text-anchor="end">%s</text>`, chartWidth-chartPadding, chartHeight-chartPadding/3, s.Labels[n-1])
	}
	b.WriteString(`</svg>`)
	return b.String()
}
