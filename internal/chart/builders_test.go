package chart_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/couchcryptid/quake-dashboard/internal/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../catalog/testdata/quakes.csv"

func loadFixture(t *testing.T) *catalog.Table {
	t.Helper()
	tbl, err := catalog.Load(fixturePath)
	require.NoError(t, err)
	return tbl
}

// stubTable is an in-memory chart.Table for edge cases.
type stubTable struct {
	events []domain.Event
}

func (s stubTable) Events() []domain.Event { return s.events }

func (s stubTable) Regions() []string {
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = domain.Region(ev.Place)
	}
	return out
}

func TestBuildersReturnFigures(t *testing.T) {
	tbl := loadFixture(t)

	figs := map[string]*chart.Figure{
		"mag_dist":     chart.MagnitudeDistribution(tbl, 50),
		"mag_vs_depth": chart.MagnitudeVsDepth(tbl, false),
		"gap_vs_net":   chart.GapByNetwork(tbl, tbl.DefaultNetworks(5)),
		"place_num":    chart.PlaceFrequency(tbl, 10),
	}

	for name, fig := range figs {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, fig)
			assert.False(t, fig.IsEmpty())
			assert.NotEmpty(t, fig.Title())

			body, err := json.Marshal(fig)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"data":[`)
			assert.Contains(t, string(body), `"layout":{`)
		})
	}
}

func TestMagnitudeDistribution(t *testing.T) {
	tbl := loadFixture(t)

	t.Run("histogram counts every magnitude", func(t *testing.T) {
		fig := chart.MagnitudeDistribution(tbl, 10)

		hist := fig.Data[0]
		assert.Equal(t, chart.TypeBar, hist.Type)
		assert.Len(t, hist.X.Nums, 10)
		total := 0.0
		for _, c := range hist.Y.Nums {
			total += c
		}
		assert.Equal(t, float64(tbl.Len()), total)
		assert.Equal(t, "#008080", hist.Marker.Color)

		box := fig.Data[1]
		assert.Equal(t, chart.TypeBox, box.Type)
		assert.Equal(t, "y2", box.YAxis)
		assert.Equal(t, "h", box.Orientation)

		assert.Equal(t, "Earthquake Magnitude Distribution", fig.Title())
		assert.Equal(t, 0.05, fig.Layout.BarGap)
		assert.Equal(t, 0.5, fig.Layout.XAxis.DTick)
		assert.Equal(t, "Magnitude", fig.Layout.XAxis.Title.Text)
		assert.Equal(t, "Number of Earthquakes", fig.Layout.YAxis.Title.Text)
	})

	t.Run("bins are clamped to widget range", func(t *testing.T) {
		assert.Len(t, chart.MagnitudeDistribution(tbl, 1).Data[0].X.Nums, chart.MinBins)
		assert.Len(t, chart.MagnitudeDistribution(tbl, 1000).Data[0].X.Nums, chart.MaxBins)
	})

	t.Run("automatic bins", func(t *testing.T) {
		fig := chart.MagnitudeDistribution(tbl, 0)
		assert.Len(t, fig.Data[0].X.Nums, 5)
	})

	t.Run("no magnitudes", func(t *testing.T) {
		fig := chart.MagnitudeDistribution(stubTable{events: []domain.Event{{Mag: math.NaN()}}}, 50)
		assert.True(t, fig.IsEmpty())
		assert.NotNil(t, fig.Layout)
	})
}

func TestMagnitudeVsDepth(t *testing.T) {
	tbl := loadFixture(t)

	t.Run("plain markers", func(t *testing.T) {
		fig := chart.MagnitudeVsDepth(tbl, false)
		require.Len(t, fig.Data, 1)

		tr := fig.Data[0]
		assert.Equal(t, "markers", tr.Mode)
		assert.Len(t, tr.X.Nums, tbl.Len())
		assert.Equal(t, 4.0, tr.Marker.Size)
		assert.Empty(t, tr.Marker.ColorScale)
		assert.Equal(t, []string{"22 km NW of Willow, Alaska", "2025-06-30T23:50:12.345Z"}, tr.CustomData[0])
		assert.Equal(t, "Depth (km)", fig.Layout.XAxis.Title.Text)
	})

	t.Run("coloured by magnitude", func(t *testing.T) {
		fig := chart.MagnitudeVsDepth(tbl, true)

		m := fig.Data[0].Marker
		assert.Equal(t, "Viridis", m.ColorScale)
		assert.True(t, m.ShowScale)
		assert.Equal(t, fig.Data[0].Y.Nums, m.Color)
	})

	t.Run("skips rows missing depth", func(t *testing.T) {
		events := []domain.Event{
			{Mag: 3, Depth: 10},
			{Mag: 4, Depth: math.NaN()},
		}
		fig := chart.MagnitudeVsDepth(stubTable{events: events}, false)
		assert.Len(t, fig.Data[0].X.Nums, 1)
	})
}

func TestGapByNetwork(t *testing.T) {
	tbl := loadFixture(t)

	t.Run("one box per network in appearance order", func(t *testing.T) {
		fig := chart.GapByNetwork(tbl, []string{"us", "ci", "nc"})

		var names []string
		for _, tr := range fig.Data {
			if tr.Type == chart.TypeBox {
				names = append(names, tr.Name)
			}
		}
		assert.Equal(t, []string{"us", "ci", "nc"}, names)
		assert.Equal(t, "Gap (deg.)", fig.Layout.YAxis.Title.Text)
		assert.Equal(t, "Network Name", fig.Layout.XAxis.Title.Text)
	})

	t.Run("box statistics", func(t *testing.T) {
		fig := chart.GapByNetwork(tbl, []string{"us"})
		require.NotEmpty(t, fig.Data)

		us := fig.Data[0]
		// us gaps: 38, 20, 44, 70
		assert.Equal(t, []float64{33.5}, us.Q1)
		assert.Equal(t, []float64{41}, us.Median)
		assert.Equal(t, []float64{50.5}, us.Q3)
		assert.Equal(t, []float64{20}, us.LowerFence)
		assert.Equal(t, []float64{70}, us.UpperFence)
		assert.Equal(t, "#2E91E5", us.Marker.Color)
	})

	t.Run("network without gaps is omitted", func(t *testing.T) {
		fig := chart.GapByNetwork(tbl, []string{"ak"})
		assert.True(t, fig.IsEmpty())
	})

	t.Run("empty selection", func(t *testing.T) {
		fig := chart.GapByNetwork(tbl, nil)
		assert.True(t, fig.IsEmpty())
		assert.Equal(t, "Network Contributor vs. Azimuthal Gap", fig.Title())
	})
}

func TestPlaceFrequency(t *testing.T) {
	t.Run("top regions largest first", func(t *testing.T) {
		tbl := loadFixture(t)
		fig := chart.PlaceFrequency(tbl, 5)

		require.Len(t, fig.Data, 5)
		assert.Equal(t, "CA", fig.Data[0].Name)
		assert.Equal(t, []float64{3}, fig.Data[0].X.Nums)
		assert.Equal(t, []string{"3"}, fig.Data[0].Text)
		assert.Equal(t, "outside", fig.Data[0].TextPosition)
		assert.Equal(t, "Alaska", fig.Data[1].Name)
		assert.Equal(t, "Fiji Islands region", fig.Data[2].Name)
		assert.Equal(t, "h", fig.Data[0].Orientation)

		assert.Equal(t, "Earthquake Count per Place (Top 5)", fig.Title())
		assert.Equal(t, "total ascending", fig.Layout.YAxis.CategoryOrder)
		assert.False(t, *fig.Layout.ShowLegend)
		assert.True(t, tbl.HasRegions())
	})

	t.Run("top n is clamped", func(t *testing.T) {
		tbl := loadFixture(t)
		assert.Equal(t, "Earthquake Count per Place (Top 50)", chart.PlaceFrequency(tbl, 500).Title())
		assert.Equal(t, "Earthquake Count per Place (Top 10)", chart.PlaceFrequency(tbl, 0).Title())
		assert.Len(t, chart.PlaceFrequency(tbl, 50).Data, 9)
	})

	t.Run("empty regions are not counted", func(t *testing.T) {
		events := []domain.Event{
			{Place: "Somewhere,"}, {Place: ""}, {Place: "  "},
			{Place: "5 km N of Town, Chile"}, {Place: "Somewhere else,"},
		}
		fig := chart.PlaceFrequency(stubTable{events: events}, 10)

		require.Len(t, fig.Data, 1)
		assert.Equal(t, "Chile", fig.Data[0].Name)
		assert.Equal(t, []float64{1}, fig.Data[0].X.Nums)
	})
}

func TestEmptyFigureMarshalsToEmptyObject(t *testing.T) {
	body, err := json.Marshal(&chart.Figure{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(body))
}
