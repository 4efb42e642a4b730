package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"leaddash/internal/metrics"
)

var ErrNoData = errors.New("no data to chart")

var (
	barFill   = drawing.ColorFromHex("87ceeb") // skyblue
	barStroke = drawing.ColorBlack
)

type Options struct {
	Title  string
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{
		Title:  "Distribution of Lead Scores",
		Width:  600,
		Height: 300,
	}
}

// HistogramPNG draws one bar per bin and returns PNG bytes.
func HistogramPNG(bins []metrics.Bin, opts Options) ([]byte, error) {
	if len(bins) == 0 {
		return nil, ErrNoData
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}

	bars := make([]gochart.Value, 0, len(bins))
	maxCount := 0
	for _, b := range bins {
		bars = append(bars, gochart.Value{
			Label: b.Label(),
			Value: float64(b.Count),
			Style: gochart.Style{
				FillColor:   barFill,
				StrokeColor: barStroke,
				StrokeWidth: 1,
			},
		})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	barWidth := (opts.Width - 80) / len(bins)
	if barWidth < 4 {
		barWidth = 4
	}

	bc := gochart.BarChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth:   barWidth * 3 / 4,
		BarSpacing: barWidth / 4,
		YAxis: gochart.YAxis{
			Name:  "Number of Leads",
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}
