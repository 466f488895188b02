// Package render draws the leaderboard artifact posted to Discord
package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sweeperleader/internal/leaderboard"
)

// ErrNoEntries means there is nothing to draw; the caller announces
// the empty board in text instead
var ErrNoEntries = errors.New("no entries to render")

var (
	background = drawing.Color{R: 24, G: 26, B: 32, A: 255}
	barColor   = drawing.Color{R: 88, G: 166, B: 255, A: 255}
	textColor  = drawing.Color{R: 235, G: 235, B: 235, A: 255}
)

// Leaderboard renders a ranked board as a PNG bar chart, one bar per
// player, K/D as the value and wins in the label
func Leaderboard(ranked []leaderboard.Entry) ([]byte, error) {
	if len(ranked) == 0 {
		return nil, ErrNoEntries
	}

	bars := make([]chart.Value, 0, len(ranked))
	for i, entry := range ranked {
		bars = append(bars, chart.Value{
			Value: entry.KD,
			Label: fmt.Sprintf("#%d %s (%d wins)", i+1, entry.Handle, entry.Wins),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	graph := chart.BarChart{
		Title:      "K/D Leaderboard",
		TitleStyle: chart.Style{FontColor: textColor},
		Background: chart.Style{FillColor: background},
		Canvas:     chart.Style{FillColor: background},
		Width:      900,
		Height:     500,
		BarWidth:   60,
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("could not render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}
