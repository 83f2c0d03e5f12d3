// Package chart builds the dashboard's figures.
//
// A Figure serialises to the JSON shape Plotly.js accepts for
// Plotly.react(div, figure), so the browser draws it as-is. All aggregation
// (histogram binning, box quartiles, category counts) happens here, which lets
// Render draw the same figure server-side.
package chart

import "encoding/json"

// Figure is a Plotly figure: traces plus layout. The zero value marshals to
// {}, which clears the graph in the browser.
type Figure struct {
	Data   []Trace `json:"data,omitempty"`
	Layout *Layout `json:"layout,omitempty"`
}

// IsEmpty reports whether the figure has no traces.
func (f *Figure) IsEmpty() bool { return f == nil || len(f.Data) == 0 }

// Title returns the layout title text, or "".
func (f *Figure) Title() string {
	if f == nil || f.Layout == nil || f.Layout.Title == nil {
		return ""
	}
	return f.Layout.Title.Text
}

// Trace types.
const (
	TypeBar       = "bar"
	TypeBox       = "box"
	TypeScatter   = "scatter"
	TypeScatterGL = "scattergl"
)

// Trace is one Plotly trace. Only the attributes the dashboard uses are
// modelled. Box traces carry precomputed statistics.
type Trace struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	LegendGroup string `json:"legendgroup,omitempty"`
	ShowLegend  *bool  `json:"showlegend,omitempty"`
	XAxis       string `json:"xaxis,omitempty"`
	YAxis       string `json:"yaxis,omitempty"`

	X     Values    `json:"x,omitzero"`
	Y     Values    `json:"y,omitzero"`
	Width []float64 `json:"width,omitempty"`

	Text          []string   `json:"text,omitempty"`
	TextPosition  string     `json:"textposition,omitempty"`
	CustomData    [][]string `json:"customdata,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`

	Q1         []float64 `json:"q1,omitempty"`
	Median     []float64 `json:"median,omitempty"`
	Q3         []float64 `json:"q3,omitempty"`
	LowerFence []float64 `json:"lowerfence,omitempty"`
	UpperFence []float64 `json:"upperfence,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
}

// Marker styles the points, bars, or boxes of a trace. Color is either a
// single CSS colour string or a numeric slice mapped through ColorScale.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Size       float64   `json:"size,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// ColorBar labels a continuous colour scale.
type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

// Layout holds the figure-wide display options.
type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	YAxis2       *Axis   `json:"yaxis2,omitempty"`
	BarGap       float64 `json:"bargap,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
}

// Title is a text label.
type Title struct {
	Text string `json:"text"`
}

// Legend configures the legend box.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Axis configures one axis.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	DTick          float64   `json:"dtick,omitempty"`
	CategoryOrder  string    `json:"categoryorder,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	ShowGrid       *bool     `json:"showgrid,omitempty"`
	ShowLine       bool      `json:"showline,omitempty"`
	Ticks          string    `json:"ticks,omitempty"`
	ZeroLine       *bool     `json:"zeroline,omitempty"`
}

// Values is a trace coordinate array, either numeric or categorical.
type Values struct {
	Nums   []float64
	Labels []string
}

// Numbers wraps numeric coordinates.
func Numbers(v ...float64) Values { return Values{Nums: v} }

// Labels wraps categorical coordinates.
func Labels(v ...string) Values { return Values{Labels: v} }

// Len returns the number of coordinates.
func (v Values) Len() int {
	if v.Labels != nil {
		return len(v.Labels)
	}
	return len(v.Nums)
}

// IsZero reports whether no coordinates are set.
func (v Values) IsZero() bool { return v.Nums == nil && v.Labels == nil }

// IsCategorical reports whether the values are labels.
func (v Values) IsCategorical() bool { return v.Labels != nil }

// MarshalJSON emits whichever representation is set.
func (v Values) MarshalJSON() ([]byte, error) {
	if v.Labels != nil {
		return json.Marshal(v.Labels)
	}
	if v.Nums == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Nums)
}

func boolPtr(b bool) *bool { return &b }

// simpleWhite applies a white background with outside ticks and no grid,
// approximating Plotly's simple_white template.
func simpleWhite(l *Layout) *Layout {
	l.PlotBGColor = "white"
	l.PaperBGColor = "white"
	for _, ax := range []*Axis{l.XAxis, l.YAxis} {
		if ax == nil {
			continue
		}
		ax.ShowLine = true
		ax.Ticks = "outside"
		ax.ShowGrid = boolPtr(false)
		ax.ZeroLine = boolPtr(false)
	}
	return l
}
