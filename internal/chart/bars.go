package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nao1215/corpusscope/internal/model"
)

// barLayout selects the orientation and grouping of bar-like charts.
// Series are grouped side by side unless stacked.
//
// Design decision: We draw bars as rectangles on a go-chart canvas instead
// of using gochart.BarChart because:
//  1. BarChart is vertical and single-series only
//  2. Horizontal, grouped, stacked and histogram charts then share one
//     layout routine, axis scaling and legend
//  3. Pie and line charts still use the go-chart types directly
type barLayout struct {
	horizontal bool
	stacked    bool
}

// barFill is the share of a category slot covered by its bars.
const barFill = 0.8

func (r *Renderer) renderBars(spec *model.ChartSpec, w io.Writer, layout barLayout) error {
	cats := spec.Categories()
	var series []model.Series
	for _, s := range spec.Series {
		if s.Len() > 0 {
			series = append(series, s)
		}
	}
	if len(cats) == 0 || len(series) == 0 {
		return ErrEmptyChart
	}

	values := make([][]float64, len(cats))
	top := 0.0
	for i, c := range cats {
		values[i] = make([]float64, len(series))
		sum := 0.0
		for j, s := range series {
			v := max(s.ValueOf(c), 0)
			values[i][j] = v
			sum += v
			top = max(top, v)
		}
		if layout.stacked {
			top = max(top, sum)
		}
	}
	top = upper(top)

	n := float64(len(cats))
	catTicks := []gochart.Tick{{Value: -0.5}}
	for i, c := range cats {
		catTicks = append(catTicks, gochart.Tick{Value: float64(i), Label: c})
	}
	catTicks = append(catTicks, gochart.Tick{Value: n - 0.5})
	valueRange := &gochart.ContinuousRange{Min: 0, Max: top}
	formatter := suffixFormatter(spec.YTickSuffix)
	transparent := gochart.Style{
		StrokeColor: drawing.ColorTransparent,
		FillColor:   drawing.ColorTransparent,
	}

	graph := gochart.Chart{
		Title:      spec.Title,
		TitleStyle: titleStyle(r.font),
		Width:      r.width,
		Height:     r.height,
		Font:       r.font,
		Background: background(),
	}
	if layout.horizontal {
		graph.XAxis = gochart.XAxis{Name: spec.XTitle, Range: valueRange, ValueFormatter: formatter}
		graph.YAxis = gochart.YAxis{Name: spec.YTitle, Ticks: catTicks}
		graph.Series = []gochart.Series{gochart.ContinuousSeries{
			Style: transparent, XValues: []float64{0, top}, YValues: []float64{-0.5, n - 0.5},
		}}
	} else {
		graph.XAxis = gochart.XAxis{
			Name:  spec.XTitle,
			Ticks: catTicks,
			Style: gochart.Style{TextRotationDegrees: rotation(len(cats), 0)},
		}
		graph.YAxis = gochart.YAxis{Name: spec.YTitle, Range: valueRange, ValueFormatter: formatter}
		graph.Series = []gochart.Series{gochart.ContinuousSeries{
			Style: transparent, XValues: []float64{-0.5, n - 0.5}, YValues: []float64{0, top},
		}}
	}

	names := make([]string, len(series))
	for j, s := range series {
		names[j] = s.Name
	}
	graph.Elements = []gochart.Renderable{
		func(rd gochart.Renderer, canvas gochart.Box, defaults gochart.Style) {
			drawBars(rd, canvas, values, top, layout)
			if len(series) > 1 {
				drawLegend(rd, canvas, defaults, names)
			}
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return nil
}

// drawBars draws values[category][series] inside canvas. Categories run
// left to right, or bottom to top when horizontal.
func drawBars(r gochart.Renderer, canvas gochart.Box, values [][]float64, top float64, layout barLayout) {
	catAxis, valAxis := float64(canvas.Width()), float64(canvas.Height())
	if layout.horizontal {
		catAxis, valAxis = valAxis, catAxis
	}
	slot := catAxis / float64(len(values))

	for i, row := range values {
		slotStart := float64(i)*slot + slot*(1-barFill)/2
		width := slot * barFill
		if !layout.stacked {
			width /= float64(len(row))
		}

		base := 0.0
		for j, v := range row {
			length := v / top * valAxis
			start := slotStart
			if !layout.stacked {
				start += float64(j) * width
			}

			var box gochart.Box
			if layout.horizontal {
				bottom := canvas.Bottom - int(start)
				box = gochart.Box{
					Left:   canvas.Left + int(base),
					Right:  canvas.Left + int(base+length),
					Top:    bottom - int(width),
					Bottom: bottom,
				}
			} else {
				left := canvas.Left + int(start)
				box = gochart.Box{
					Left:   left,
					Right:  left + int(width),
					Top:    canvas.Bottom - int(base+length),
					Bottom: canvas.Bottom - int(base),
				}
			}
			fillRect(r, box, gochart.GetDefaultColor(j))

			if layout.stacked {
				base += length
			}
		}
	}
}

func drawLegend(r gochart.Renderer, canvas gochart.Box, defaults gochart.Style, names []string) {
	const (
		swatch  = 10
		spacing = 16
	)
	r.SetFont(defaults.GetFont())
	r.SetFontSize(9)
	r.SetFontColor(drawing.ColorBlack)

	widest := 0
	for _, name := range names {
		widest = max(widest, r.MeasureText(name).Width())
	}
	left := canvas.Right - widest - swatch - 12
	y := canvas.Top + 6
	for j, name := range names {
		fillRect(r, gochart.Box{Left: left, Top: y, Right: left + swatch, Bottom: y + swatch}, gochart.GetDefaultColor(j))
		r.SetFontColor(drawing.ColorBlack)
		r.Text(name, left+swatch+4, y+swatch)
		y += spacing
	}
}

func fillRect(r gochart.Renderer, box gochart.Box, c drawing.Color) {
	if box.Right <= box.Left || box.Bottom <= box.Top {
		return
	}
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0.5)
	r.MoveTo(box.Left, box.Top)
	r.LineTo(box.Right, box.Top)
	r.LineTo(box.Right, box.Bottom)
	r.LineTo(box.Left, box.Bottom)
	r.LineTo(box.Left, box.Top)
	r.FillStroke()
}
