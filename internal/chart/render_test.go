package chart_test

import (
	"bytes"
	"testing"

	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tbl := loadFixture(t)

	figs := map[string]*chart.Figure{
		"histogram":       chart.MagnitudeDistribution(tbl, 20),
		"scatter":         chart.MagnitudeVsDepth(tbl, false),
		"scatter viridis": chart.MagnitudeVsDepth(tbl, true),
		"boxes":           chart.GapByNetwork(tbl, tbl.Networks()),
		"ranked bars":     chart.PlaceFrequency(tbl, 10),
	}

	for name, fig := range figs {
		t.Run(name+" svg", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, chart.Render(fig, chart.FormatSVG, 800, 500, &buf))
			assert.Contains(t, buf.String(), "<svg")
		})
	}

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, chart.Render(figs["histogram"], chart.FormatPNG, 640, 480, &buf))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})
}

func TestRender_Errors(t *testing.T) {
	tbl := loadFixture(t)

	t.Run("unsupported format", func(t *testing.T) {
		err := chart.Render(chart.MagnitudeDistribution(tbl, 10), "gif", 640, 480, &bytes.Buffer{})
		assert.ErrorIs(t, err, chart.ErrUnsupportedFormat)
	})

	t.Run("empty figure", func(t *testing.T) {
		err := chart.Render(chart.GapByNetwork(tbl, nil), chart.FormatSVG, 640, 480, &bytes.Buffer{})
		assert.ErrorIs(t, err, chart.ErrEmptyFigure)
	})

	t.Run("nil figure", func(t *testing.T) {
		err := chart.Render(nil, chart.FormatPNG, 640, 480, &bytes.Buffer{})
		assert.ErrorIs(t, err, chart.ErrEmptyFigure)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", chart.ContentType(chart.FormatPNG))
	assert.Equal(t, "image/png", chart.ContentType("PNG"))
	assert.Equal(t, "image/svg+xml", chart.ContentType(chart.FormatSVG))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"svg", chart.FormatSVG},
		{"SVG", chart.FormatSVG},
		{"png", chart.FormatPNG},
		{"Png", chart.FormatPNG},
	}
	for _, tt := range tests {
		got, err := chart.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, in := range []string{"", "gif", "svgz"} {
		_, err := chart.ParseFormat(in)
		assert.ErrorIs(t, err, chart.ErrUnsupportedFormat, in)
	}
}
