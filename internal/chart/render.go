package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image formats accepted by Render.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

var (
	// ErrUnsupportedFormat is returned for formats other than svg and png.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrEmptyFigure is returned when a figure has nothing to draw.
	ErrEmptyFigure = errors.New("figure has no data")
)

// ParseFormat returns the canonical name of an image format, ignoring case.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for an image format.
func ContentType(format string) string {
	if strings.EqualFold(format, FormatPNG) {
		return "image/png"
	}
	return "image/svg+xml"
}

// Render draws fig as an image. Histograms, ranked bars, box plots, and
// scatters are supported; ranked bars are drawn vertically, largest first.
func Render(fig *Figure, format string, width, height int, w io.Writer) error {
	provider, err := rendererFor(format)
	if err != nil {
		return err
	}
	if fig.IsEmpty() {
		return ErrEmptyFigure
	}

	var ch gochart.Chart
	switch kind := classify(fig); kind {
	case kindHistogram:
		ch = histogramChart(fig)
	case kindRankedBars:
		ch = rankedBarChart(fig)
	case kindBoxes:
		ch = boxChart(fig)
	case kindScatter:
		ch = scatterChart(fig)
	default:
		return fmt.Errorf("render: %w", ErrEmptyFigure)
	}

	ch.Title = fig.Title()
	ch.Width = width
	ch.Height = height
	ch.Background = gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 24}}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

func rendererFor(format string) (gochart.RendererProvider, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if f == FormatPNG {
		return gochart.PNG, nil
	}
	return gochart.SVG, nil
}

type figureKind int

const (
	kindUnknown figureKind = iota
	kindHistogram
	kindRankedBars
	kindBoxes
	kindScatter
)

// classify picks a drawing strategy from the primary-axis traces.
func classify(fig *Figure) figureKind {
	for _, tr := range fig.Data {
		if tr.YAxis != "" {
			continue
		}
		switch tr.Type {
		case TypeBar:
			if tr.Orientation == "h" {
				return kindRankedBars
			}
			return kindHistogram
		case TypeBox:
			return kindBoxes
		case TypeScatter, TypeScatterGL:
			if tr.X.IsCategorical() {
				continue
			}
			return kindScatter
		}
	}
	return kindUnknown
}

func histogramChart(fig *Figure) gochart.Chart {
	var series []gochart.Series
	lo, hi, top := math.Inf(1), math.Inf(-1), 0.0

	for _, tr := range fig.Data {
		if tr.Type != TypeBar || tr.YAxis != "" {
			continue
		}
		color := markerColor(tr.Marker, colorTeal)
		for i, x := range tr.X.Nums {
			half := 0.5
			if i < len(tr.Width) {
				half = tr.Width[i] / 2
			}
			y := tr.Y.Nums[i]
			series = append(series, barSeries(x-half, x+half, y, color))
			lo = math.Min(lo, x-half)
			hi = math.Max(hi, x+half)
			top = math.Max(top, y)
		}
	}

	return gochart.Chart{
		XAxis: gochart.XAxis{
			Name:  axisTitle(fig.Layout.XAxis),
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: gochart.YAxis{
			Name:  axisTitle(fig.Layout.YAxis),
			Range: &gochart.ContinuousRange{Min: 0, Max: padTop(top)},
		},
		Series: series,
	}
}

func rankedBarChart(fig *Figure) gochart.Chart {
	type bar struct {
		label string
		value float64
		color drawing.Color
	}
	var bars []bar
	for _, tr := range fig.Data {
		if tr.Type != TypeBar || tr.X.Len() == 0 || tr.Y.Len() == 0 {
			continue
		}
		bars = append(bars, bar{label: tr.Y.Labels[0], value: tr.X.Nums[0], color: markerColor(tr.Marker, colorDefault)})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].value > bars[j].value })

	series := make([]gochart.Series, 0, len(bars))
	ticks := make([]gochart.Tick, 0, len(bars))
	top := 0.0
	for i, b := range bars {
		x := float64(i)
		series = append(series, barSeries(x-0.4, x+0.4, b.value, b.color))
		ticks = append(ticks, gochart.Tick{Value: x, Label: b.label})
		top = math.Max(top, b.value)
	}

	return gochart.Chart{
		XAxis: gochart.XAxis{
			Name:      axisTitle(fig.Layout.YAxis),
			Range:     &gochart.ContinuousRange{Min: -0.5, Max: float64(len(bars)) - 0.5},
			Ticks:     ticks,
			TickStyle: gochart.Style{TextRotationDegrees: 45},
		},
		YAxis: gochart.YAxis{
			Name:  axisTitle(fig.Layout.XAxis),
			Range: &gochart.ContinuousRange{Min: 0, Max: padTop(top)},
		},
		Series: series,
	}
}

func boxChart(fig *Figure) gochart.Chart {
	positions := make(map[string]float64)
	var ticks []gochart.Tick
	var series []gochart.Series
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, tr := range fig.Data {
		if tr.Type != TypeBox || tr.X.Len() == 0 || len(tr.Q1) == 0 {
			continue
		}
		name := tr.X.Labels[0]
		x := float64(len(ticks))
		positions[name] = x
		ticks = append(ticks, gochart.Tick{Value: x, Label: name})

		color := markerColor(tr.Marker, colorDefault)
		style := gochart.Style{StrokeColor: color, StrokeWidth: 1.5}
		q1, med, q3 := tr.Q1[0], tr.Median[0], tr.Q3[0]
		lf, uf := tr.LowerFence[0], tr.UpperFence[0]

		series = append(series,
			polyline(style, []float64{x - 0.3, x + 0.3, x + 0.3, x - 0.3, x - 0.3}, []float64{q1, q1, q3, q3, q1}),
			polyline(style, []float64{x - 0.3, x + 0.3}, []float64{med, med}),
			polyline(style, []float64{x, x}, []float64{q3, uf}),
			polyline(style, []float64{x, x}, []float64{q1, lf}),
			polyline(style, []float64{x - 0.15, x + 0.15}, []float64{uf, uf}),
			polyline(style, []float64{x - 0.15, x + 0.15}, []float64{lf, lf}),
		)
		lo = math.Min(lo, lf)
		hi = math.Max(hi, uf)
	}

	for _, tr := range fig.Data {
		if tr.Type != TypeScatter || !tr.X.IsCategorical() || tr.Y.Len() == 0 {
			continue
		}
		x, ok := positions[tr.X.Labels[0]]
		if !ok {
			continue
		}
		xs := make([]float64, tr.Y.Len())
		for i := range xs {
			xs[i] = x
		}
		series = append(series, gochart.ContinuousSeries{
			XValues: xs,
			YValues: tr.Y.Nums,
			Style:   dotStyle(markerColor(tr.Marker, colorDefault), 3),
		})
		for _, y := range tr.Y.Nums {
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}

	return gochart.Chart{
		XAxis: gochart.XAxis{
			Name:  axisTitle(fig.Layout.XAxis),
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(ticks)) - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  axisTitle(fig.Layout.YAxis),
			Range: paddedRange(lo, hi),
		},
		Series: series,
	}
}

func scatterChart(fig *Figure) gochart.Chart {
	var tr Trace
	for _, t := range fig.Data {
		if t.Type == TypeScatter || t.Type == TypeScatterGL {
			tr = t
			break
		}
	}

	xs, ys := tr.X.Nums, tr.Y.Nums
	style := dotStyle(markerColor(tr.Marker, colorDefault), 2)
	if tr.Marker != nil && tr.Marker.ColorScale != "" {
		style.DotColorProvider = func(_, yr gochart.Range, _ int, _, y float64) drawing.Color {
			return gochart.Viridis(y, yr.GetMin(), yr.GetMax())
		}
	}

	return gochart.Chart{
		XAxis: gochart.XAxis{
			Name:  axisTitle(fig.Layout.XAxis),
			Range: paddedRange(minMax(xs)),
		},
		YAxis: gochart.YAxis{
			Name:  axisTitle(fig.Layout.YAxis),
			Range: paddedRange(minMax(ys)),
		},
		Series: []gochart.Series{gochart.ContinuousSeries{XValues: xs, YValues: ys, Style: style}},
	}
}

// barSeries draws a filled bar from zero to height. The fill runs down to the
// bottom of the plot, so the y range must start at zero.
func barSeries(x0, x1, height float64, color drawing.Color) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		XValues: []float64{x0, x0, x1, x1},
		YValues: []float64{0, height, height, 0},
		Style:   gochart.Style{StrokeColor: color, StrokeWidth: 1, FillColor: color},
	}
}

func polyline(style gochart.Style, xs, ys []float64) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{XValues: xs, YValues: ys, Style: style}
}

// dotStyle renders points only, with no connecting line.
func dotStyle(color drawing.Color, size float64) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    size,
		DotColor:    color,
	}
}

func markerColor(m *Marker, fallback string) drawing.Color {
	if m != nil {
		if s, ok := m.Color.(string); ok && s != "" {
			return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
		}
	}
	return drawing.ColorFromHex(strings.TrimPrefix(fallback, "#"))
}

func axisTitle(ax *Axis) string {
	if ax == nil || ax.Title == nil {
		return ""
	}
	return ax.Title.Text
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// paddedRange widens [lo, hi] by 5% on each side and never returns a
// zero-width range.
func paddedRange(lo, hi float64) *gochart.ContinuousRange {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func padTop(top float64) float64 {
	if top <= 0 {
		return 1
	}
	return top * 1.1
}
