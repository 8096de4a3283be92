package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/nao1215/corpusscope/internal/model"
)

var (
	// ErrEmptyChart is returned for a chart without any points.
	ErrEmptyChart = errors.New("chart has no data")

	// ErrUnknownKind is returned for an unsupported chart kind.
	ErrUnknownKind = errors.New("unknown chart kind")
)

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int
	// FontPath is an optional TrueType font used for all chart text.
	FontPath string
}

// Renderer draws chart specifications as PNG.
type Renderer struct {
	width  int
	height int
	font   *truetype.Font
}

// New creates a Renderer. The font, if any, is loaded once.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{width: opts.Width, height: opts.Height}
	if r.width <= 0 {
		r.width = 900
	}
	if r.height <= 0 {
		r.height = 550
	}
	if opts.FontPath != "" {
		f, err := LoadFont(opts.FontPath)
		if err != nil {
			return nil, err
		}
		r.font = f
	}
	return r, nil
}

// LoadFont reads and parses a TrueType font file.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// Render writes spec to w as a PNG image.
func (r *Renderer) Render(spec *model.ChartSpec, w io.Writer) error {
	if spec == nil || spec.Empty() {
		return ErrEmptyChart
	}

	switch spec.Kind {
	case model.ChartPie:
		return r.renderPie(spec, w)
	case model.ChartLine:
		return r.renderLine(spec, w)
	case model.ChartBar, model.ChartHistogram, model.ChartGroupedBar:
		return r.renderBars(spec, w, barLayout{})
	case model.ChartHBar:
		return r.renderBars(spec, w, barLayout{horizontal: true})
	case model.ChartStackedHBar:
		return r.renderBars(spec, w, barLayout{horizontal: true, stacked: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}

func (r *Renderer) renderPie(spec *model.ChartSpec, w io.Writer) error {
	s := spec.Series[0]
	values := make([]gochart.Value, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if s.Values[i] <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: s.Labels[i],
			Value: s.Values[i],
			Style: gochart.Style{FillColor: gochart.GetDefaultColor(i)},
		})
	}
	if len(values) == 0 {
		return ErrEmptyChart
	}

	pie := gochart.PieChart{
		Title:      spec.Title,
		TitleStyle: titleStyle(r.font),
		Width:      r.width,
		Height:     r.height,
		Font:       r.font,
		Values:     values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

func (r *Renderer) renderLine(spec *model.ChartSpec, w io.Writer) error {
	s := spec.Series[0]
	n := s.Len()
	xs := make([]float64, n)
	ys := make([]float64, n)
	maxY := 0.0
	for i := range n {
		xs[i] = float64(i + 1)
		ys[i] = s.Values[i]
		maxY = max(maxY, ys[i])
	}

	graph := gochart.Chart{
		Title:      spec.Title,
		TitleStyle: titleStyle(r.font),
		Width:      r.width,
		Height:     r.height,
		Font:       r.font,
		Background: background(),
		XAxis: gochart.XAxis{
			Name:  spec.XTitle,
			Ticks: lineTicks(s.Labels[:n], spec.XDTick),
			Style: gochart.Style{TextRotationDegrees: rotation(n, spec.XDTick)},
		},
		YAxis: gochart.YAxis{
			Name:           spec.YTitle,
			Range:          &gochart.ContinuousRange{Min: 0, Max: upper(maxY)},
			ValueFormatter: suffixFormatter(spec.YTickSuffix),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: gochart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
			},
		},
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}
	return nil
}

// lineTicks labels every point with its word, or every dtick points with
// the point number. The outer ticks pad the range so a single point
// still spans a non-empty axis.
func lineTicks(labels []string, dtick float64) []gochart.Tick {
	n := len(labels)
	if dtick <= 0 {
		ticks := []gochart.Tick{{Value: 0}}
		for i, l := range labels {
			ticks = append(ticks, gochart.Tick{Value: float64(i + 1), Label: l})
		}
		return append(ticks, gochart.Tick{Value: float64(n + 1)})
	}

	var ticks []gochart.Tick
	v := 0.0
	for ; v < float64(n); v += dtick {
		ticks = append(ticks, gochart.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
	}
	return append(ticks, gochart.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
}

func rotation(n int, dtick float64) float64 {
	if dtick <= 0 && n > 8 {
		return 45
	}
	return 0
}

func titleStyle(f *truetype.Font) gochart.Style {
	s := gochart.Style{FontSize: 14}
	if f != nil {
		s.Font = f
	}
	return s
}

func background() gochart.Style {
	return gochart.Style{
		Padding: gochart.Box{Top: 50, Left: 20, Right: 30, Bottom: 20},
	}
}

// upper returns the top of a value axis that starts at zero.
func upper(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.05
}

func suffixFormatter(suffix string) gochart.ValueFormatter {
	return func(v any) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		return fmt.Sprintf("%g%s", roundTick(f), suffix)
	}
}

func roundTick(f float64) float64 {
	const scale = 100
	if f < 0 {
		return float64(int64(f*scale-0.5)) / scale
	}
	return float64(int64(f*scale+0.5)) / scale
}
