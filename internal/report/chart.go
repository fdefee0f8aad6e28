package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"StockScreener/internal/model"
)

var errTooFewPoints = errors.New("need at least two bars to draw a chart")

// RenderChart draws a symbol's closes with its Bollinger bands as PNG.
func RenderChart(w io.Writer, report model.SymbolReport) error {
	if len(report.Rows) < 2 {
		return fmt.Errorf("chart %s: %w", report.Symbol, errTooFewPoints)
	}

	var dates []time.Time
	var closes []float64
	var bandDates []time.Time
	var upper, middle, lower []float64
	for _, r := range report.Rows {
		dates = append(dates, r.Date)
		closes = append(closes, r.Close)
		if r.UpperBand.Valid && r.LowerBand.Valid && r.MiddleBand.Valid {
			bandDates = append(bandDates, r.Date)
			upper = append(upper, r.UpperBand.Value)
			middle = append(middle, r.MiddleBand.Value)
			lower = append(lower, r.LowerBand.Value)
		}
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Close",
			XValues: dates,
			YValues: closes,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2,
			},
		},
	}
	if len(bandDates) >= 2 {
		band := chart.Style{
			StrokeColor:     chart.ColorRed,
			StrokeDashArray: []float64{5.0, 5.0},
		}
		series = append(series,
			chart.TimeSeries{Name: "Upper", XValues: bandDates, YValues: upper, Style: band},
			chart.TimeSeries{
				Name:    "Middle",
				XValues: bandDates,
				YValues: middle,
				Style:   chart.Style{StrokeColor: chart.ColorOrange},
			},
			chart.TimeSeries{Name: "Lower", XValues: bandDates, YValues: lower, Style: band},
		)
	}

	graph := chart.Chart{
		Title: report.Symbol + " Bollinger Bands",
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart %s: %w", report.Symbol, err)
	}
	return nil
}

// SaveCharts writes <dir>/<SYMBOL>.png for every report with enough rows and
// returns the paths written.
func SaveCharts(dir string, reports []model.SymbolReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	var paths []string
	for _, r := range reports {
		if len(r.Rows) < 2 {
			continue
		}
		path := filepath.Join(dir, r.Symbol+".png")
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("create chart file: %w", err)
		}
		err = RenderChart(f, r)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
