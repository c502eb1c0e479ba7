package present

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/reedmaris/bls-data-service/internal/domain"
)

// ChartKind selects the chart family a view renders as.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// Chart is a renderable chart document.
type Chart interface {
	Render(w io.Writer) error
}

// BuildChart constructs an echarts chart from a formatted view. The view's
// index becomes the x axis and each column becomes one series; nil cells
// render as gaps.
func BuildChart(kind ChartKind, title string, view domain.Table) (Chart, error) {
	switch kind {
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
		line.SetXAxis(view.Index)
		for j, name := range view.Columns {
			data := make([]opts.LineData, len(view.Index))
			for i := range view.Index {
				data[i] = opts.LineData{Value: cellValue(view.Rows[i][j])}
			}
			line.AddSeries(name, data)
		}
		return line, nil

	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
		bar.SetXAxis(view.Index)
		for j, name := range view.Columns {
			data := make([]opts.BarData, len(view.Index))
			for i := range view.Index {
				data[i] = opts.BarData{Value: cellValue(view.Rows[i][j])}
			}
			bar.AddSeries(name, data)
		}
		return bar, nil

	default:
		return nil, fmt.Errorf("unsupported chart kind %q (expected %q or %q)", kind, ChartLine, ChartBar)
	}
}

func cellValue(cell *float64) interface{} {
	if cell == nil {
		return nil
	}
	return *cell
}
