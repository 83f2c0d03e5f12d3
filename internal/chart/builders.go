package chart

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// Parameter bounds, matching the dashboard widgets.
const (
	MinBins     = 5
	MaxBins     = 200
	DefaultBins = 50

	MinTopN     = 5
	MaxTopN     = 50
	DefaultTopN = 10

	histogramBarGap = 0.05
)

// Table is the read side of the event table the builders need.
type Table interface {
	Events() []domain.Event
	Regions() []string
}

// ClampBins bounds a requested bin count to the widget range. Zero or negative
// means "choose automatically" and is resolved by MagnitudeDistribution.
func ClampBins(bins int) int {
	if bins <= 0 {
		return 0
	}
	return clamp(bins, MinBins, MaxBins)
}

// ClampTopN bounds a requested place count to the slider range. Zero or
// negative selects DefaultTopN.
func ClampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return clamp(n, MinTopN, MaxTopN)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// MagnitudeDistribution is a histogram of magnitudes with a marginal box plot
// above it.
func MagnitudeDistribution(t Table, bins int) *Figure {
	var mags []float64
	for _, ev := range t.Events() {
		if ev.HasMag() {
			mags = append(mags, ev.Mag)
		}
	}

	layout := simpleWhite(&Layout{
		Title:      &Title{Text: "Earthquake Magnitude Distribution"},
		BarGap:     histogramBarGap,
		ShowLegend: boolPtr(false),
		XAxis:      &Axis{Title: &Title{Text: "Magnitude"}, DTick: 0.5},
		YAxis:      &Axis{Title: &Title{Text: "Number of Earthquakes"}, Domain: []float64{0, 0.74}},
		YAxis2: &Axis{
			Domain:         []float64{0.76, 1},
			Anchor:         "x",
			ShowTickLabels: boolPtr(false),
			ShowGrid:       boolPtr(false),
		},
	})
	fig := &Figure{Layout: layout}
	if len(mags) == 0 {
		return fig
	}

	n := ClampBins(bins)
	if n == 0 {
		n = clamp(sturgesBins(len(mags)), MinBins, MaxBins)
	}
	hist := binValues(mags, n)

	counts := make([]float64, len(hist.Counts))
	widths := make([]float64, len(hist.Counts))
	ranges := make([][]string, len(hist.Counts))
	for i, c := range hist.Counts {
		counts[i] = float64(c)
		widths[i] = hist.Width() * (1 - histogramBarGap)
		ranges[i] = []string{fmt.Sprintf("%.2f–%.2f", hist.Edges[i], hist.Edges[i+1])}
	}

	stats := boxStats(mags)
	fig.Data = []Trace{
		{
			Type:          TypeBar,
			Name:          "mag",
			X:             Numbers(hist.Centers()...),
			Y:             Numbers(counts...),
			Width:         widths,
			CustomData:    ranges,
			HoverTemplate: "Magnitude=%{customdata[0]}<br>count=%{y}<extra></extra>",
			Marker:        &Marker{Color: colorTeal},
		},
		{
			Type:        TypeBox,
			Name:        "mag",
			Orientation: "h",
			YAxis:       "y2",
			Y:           Labels("mag"),
			Q1:          []float64{stats.Q1},
			Median:      []float64{stats.Median},
			Q3:          []float64{stats.Q3},
			LowerFence:  []float64{stats.LowerFence},
			UpperFence:  []float64{stats.UpperFence},
			Marker:      &Marker{Color: colorTeal},
		},
	}
	if len(stats.Outliers) > 0 {
		fig.Data = append(fig.Data, outlierTrace("mag", stats.Outliers, colorTeal, true))
	}
	return fig
}

// MagnitudeVsDepth is a scatter of magnitude against depth, optionally
// coloured by magnitude on a Viridis scale.
func MagnitudeVsDepth(t Table, colorByMag bool) *Figure {
	var depths, mags []float64
	var hover [][]string
	for _, ev := range t.Events() {
		if !ev.HasDepth() || !ev.HasMag() {
			continue
		}
		depths = append(depths, ev.Depth)
		mags = append(mags, ev.Mag)
		hover = append(hover, []string{ev.Place, ev.TimeLabel()})
	}

	marker := &Marker{Size: 4, Color: colorDefault}
	if colorByMag {
		marker.Color = mags
		marker.ColorScale = colorScaleViridis
		marker.ShowScale = true
		marker.ColorBar = &ColorBar{Title: &Title{Text: "mag"}}
	}

	fig := &Figure{
		Layout: simpleWhite(&Layout{
			Title: &Title{Text: "Magnitude vs. Depth"},
			XAxis: &Axis{Title: &Title{Text: "Depth (km)"}},
			YAxis: &Axis{Title: &Title{Text: "Magnitude"}},
		}),
	}
	if len(mags) == 0 {
		return fig
	}

	fig.Data = []Trace{{
		Type:       TypeScatterGL,
		Mode:       "markers",
		X:          Numbers(depths...),
		Y:          Numbers(mags...),
		CustomData: hover,
		HoverTemplate: "depth=%{x}<br>mag=%{y}<br>place=%{customdata[0]}" +
			"<br>time=%{customdata[1]}<extra></extra>",
		Marker: marker,
	}}
	return fig
}

// GapByNetwork draws one box of azimuthal gap per selected network, in the
// order the networks first appear in the table. Networks with no gap values
// are left out.
func GapByNetwork(t Table, nets []string) *Figure {
	selected := make(map[string]bool, len(nets))
	for _, n := range nets {
		selected[n] = true
	}

	var order []string
	gaps := make(map[string][]float64)
	for _, ev := range t.Events() {
		if !selected[ev.Net] || !ev.HasGap() {
			continue
		}
		if _, ok := gaps[ev.Net]; !ok {
			order = append(order, ev.Net)
		}
		gaps[ev.Net] = append(gaps[ev.Net], ev.Gap)
	}

	fig := &Figure{
		Layout: simpleWhite(&Layout{
			Title:  &Title{Text: "Network Contributor vs. Azimuthal Gap"},
			XAxis:  &Axis{Title: &Title{Text: "Network Name"}},
			YAxis:  &Axis{Title: &Title{Text: "Gap (deg.)"}},
			Legend: &Legend{Title: &Title{Text: "net"}},
		}),
	}

	for i, net := range order {
		color := paletteColor(dark24, i)
		stats := boxStats(gaps[net])
		fig.Data = append(fig.Data, Trace{
			Type:        TypeBox,
			Name:        net,
			LegendGroup: net,
			X:           Labels(net),
			Q1:          []float64{stats.Q1},
			Median:      []float64{stats.Median},
			Q3:          []float64{stats.Q3},
			LowerFence:  []float64{stats.LowerFence},
			UpperFence:  []float64{stats.UpperFence},
			Marker:      &Marker{Color: color},
		})
		if len(stats.Outliers) > 0 {
			fig.Data = append(fig.Data, outlierTrace(net, stats.Outliers, color, false))
		}
	}
	return fig
}

// PlaceFrequency is a horizontal bar chart of the topN most frequent regions.
// It derives the region column on first use. Empty regions, such as from a
// blank place or one ending in a comma, are not counted.
func PlaceFrequency(t Table, topN int) *Figure {
	topN = ClampTopN(topN)
	counts := topCounts(t.Regions(), topN)

	fig := &Figure{
		Layout: simpleWhite(&Layout{
			Title:      &Title{Text: fmt.Sprintf("Earthquake Count per Place (Top %d)", topN)},
			XAxis:      &Axis{Title: &Title{Text: "Number of Earthquakes"}},
			YAxis:      &Axis{Title: &Title{Text: "Location"}, CategoryOrder: "total ascending"},
			ShowLegend: boolPtr(false),
		}),
	}

	for i, c := range counts {
		fig.Data = append(fig.Data, Trace{
			Type:          TypeBar,
			Name:          c.Label,
			Orientation:   "h",
			X:             Numbers(float64(c.Value)),
			Y:             Labels(c.Label),
			Text:          []string{strconv.Itoa(c.Value)},
			TextPosition:  "outside",
			HoverTemplate: "Location=%{y}<br>Number of Earthquakes=%{x}<extra></extra>",
			Marker:        &Marker{Color: paletteColor(prism, i)},
		})
	}
	return fig
}

// outlierTrace plots points beyond a box's whiskers. Horizontal boxes put the
// values on x.
func outlierTrace(name string, values []float64, color string, horizontal bool) Trace {
	labels := make([]string, len(values))
	for i := range labels {
		labels[i] = name
	}

	tr := Trace{
		Type:        TypeScatter,
		Mode:        "markers",
		Name:        name,
		LegendGroup: name,
		ShowLegend:  boolPtr(false),
		Marker:      &Marker{Color: color, Size: 4},
	}
	if horizontal {
		tr.X = Numbers(values...)
		tr.Y = Labels(labels...)
		tr.YAxis = "y2"
	} else {
		tr.X = Labels(labels...)
		tr.Y = Numbers(values...)
	}
	return tr
}
