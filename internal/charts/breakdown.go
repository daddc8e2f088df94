// Package charts renders the category breakdown as an image.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"expensetracker/internal/core"
	"expensetracker/internal/stats"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("charts: no data")

const (
	width  = 960
	height = 360
	// horizontal room left for bars once the Y axis and padding are drawn
	plotWidth = width - 140
)

// RenderBreakdown draws one bar per category, coloured with the category
// palette, and returns the PNG bytes.
func RenderBreakdown(totals []stats.CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(totals))
	var peak float64
	for _, t := range totals {
		v := t.Amount.InexactFloat64()
		if v > peak {
			peak = v
		}
		color := drawing.ColorFromHex(strings.TrimPrefix(core.CategoryStyle(t.Category).Color, "#"))
		bars = append(bars, chart.Value{
			Label: t.Category,
			Value: v,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
				StrokeWidth: 1,
			},
		})
	}
	if peak == 0 {
		peak = 1
	}

	slot := plotWidth / len(bars)
	barWidth := max(slot*2/3, 4)
	spacing := max(slot-barWidth, 2)

	graph := chart.BarChart{
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{FontSize: 9, FontColor: chart.ColorBlack},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
			Style: chart.Style{FontSize: 9, FontColor: chart.ColorBlack},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render breakdown chart: %w", err)
	}
	return buf.Bytes(), nil
}
