package research

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

// NotStable is written for densities that never settled.
const NotStable = "None"

var csvHeader = []string{"Density", "StableGeneration"}

// WriteCSV writes one row per result under a Density,StableGeneration
// header.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		generation := NotStable
		if r.Stable {
			generation = strconv.Itoa(r.StableGeneration)
		}
		if err := cw.Write([]string{strconv.FormatFloat(r.Density, 'f', -1, 64), generation}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteChart renders stable generation by density as a PNG. Densities
// that never settled are left out of the series.
func WriteChart(w io.Writer, results []Result) error {
	var xs, ys []float64
	for _, r := range results {
		if !r.Stable {
			continue
		}
		xs = append(xs, r.Density)
		ys = append(ys, float64(r.StableGeneration))
	}
	if len(xs) < 2 {
		return fmt.Errorf("chart needs at least two stable densities, got %d", len(xs))
	}

	graph := chart.Chart{
		Title:  "Generations until stable",
		Width:  640,
		Height: 360,
		XAxis: chart.XAxis{
			Name:  "Density",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f", v.(float64))
			},
			Ticks: densityTicks(),
		},
		YAxis: chart.YAxis{
			Name:  "Stable generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "StableGeneration",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.0,
					DotColor:    chart.ColorBlue,
					DotWidth:    3.0,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func densityTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		value := float64(i) / 10
		ticks = append(ticks, chart.Tick{Value: value, Label: fmt.Sprintf("%.1f", value)})
	}
	return ticks
}
