package model

// ChartKind selects how a ChartSpec is drawn.
type ChartKind string

// Supported chart kinds.
const (
	ChartBar         ChartKind = "bar"
	ChartHBar        ChartKind = "hbar"
	ChartGroupedBar  ChartKind = "grouped_bar"
	ChartStackedHBar ChartKind = "stacked_hbar"
	ChartPie         ChartKind = "pie"
	ChartLine        ChartKind = "line"
	ChartHistogram   ChartKind = "histogram"
)

// ChartSpec is a renderer-independent chart description. Each series
// carries its own labels; grouped and stacked kinds align series by label.
type ChartSpec struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XTitle string    `json:"x_title,omitempty"`
	YTitle string    `json:"y_title,omitempty"`
	// XDTick is the spacing between x axis ticks. Zero means one tick per label.
	XDTick      float64  `json:"x_dtick,omitempty"`
	YTickSuffix string   `json:"y_tick_suffix,omitempty"`
	Series      []Series `json:"series"`
}

// Series is one named sequence of values.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points of the series.
func (s Series) Len() int {
	return min(len(s.Labels), len(s.Values))
}

// Empty reports whether the chart has no points to draw.
func (c *ChartSpec) Empty() bool {
	for _, s := range c.Series {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// Categories returns the union of all series labels in first-seen order.
func (c *ChartSpec) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.Series {
		for _, l := range s.Labels {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

// ValueOf returns the value of a series at label, or zero.
func (s Series) ValueOf(label string) float64 {
	for i := 0; i < s.Len(); i++ {
		if s.Labels[i] == label {
			return s.Values[i]
		}
	}
	return 0
}
