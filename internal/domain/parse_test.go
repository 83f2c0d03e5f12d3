package domain

import (
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{
	"time", "latitude", "longitude", "depth", "mag", "magType", "nst", "gap", "dmin", "rms",
	"net", "id", "updated", "place", "type",
}

func TestNewColumns(t *testing.T) {
	t.Run("indexes header", func(t *testing.T) {
		cols, err := NewColumns(testHeader)
		require.NoError(t, err)
		assert.Equal(t, 0, cols[ColumnTime])
		assert.Equal(t, 4, cols[ColumnMag])
		assert.Equal(t, 13, cols[ColumnPlace])
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		header := append([]string{"\ufefftime"}, testHeader[1:]...)
		cols, err := NewColumns(header)
		require.NoError(t, err)
		assert.Equal(t, 0, cols[ColumnTime])
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := NewColumns([]string{"time", "mag", "depth", "net", "place"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), `"gap"`)
	})
}

func TestParseRecord(t *testing.T) {
	cols, err := NewColumns(testHeader)
	require.NoError(t, err)

	t.Run("complete row", func(t *testing.T) {
		row := []string{
			"2025-06-30T23:50:12.345Z", "33.6", "-116.7", "12.5", "3.1", "ml", "40", "45", "0.02", "0.2",
			"ci", "ci40000001", "2025-07-01T00:10:00.000Z", "10 km SSW of Idyllwild, CA", "earthquake",
		}
		ev, err := ParseRecord(cols, row)
		require.NoError(t, err)

		assert.Equal(t, "ci40000001", ev.ID)
		assert.Equal(t, time.Date(2025, 6, 30, 23, 50, 12, 345_000_000, time.UTC), ev.Time)
		assert.Equal(t, 12.5, ev.Depth)
		assert.Equal(t, 3.1, ev.Mag)
		assert.Equal(t, 45.0, ev.Gap)
		assert.Equal(t, "ci", ev.Net)
		assert.Equal(t, "10 km SSW of Idyllwild, CA", ev.Place)
		assert.Equal(t, "2025-06-30T23:50:12.345Z", ev.TimeLabel())
		assert.True(t, ev.HasMag())
		assert.True(t, ev.HasGap())
	})

	t.Run("empty numeric cells are NaN", func(t *testing.T) {
		row := []string{
			"2025-01-01T00:00:00.000Z", "", "", "", "2.7", "mb", "", "", "", "",
			"us", "us7000abcd", "", "south of the Fiji Islands", "earthquake",
		}
		ev, err := ParseRecord(cols, row)
		require.NoError(t, err)

		assert.True(t, math.IsNaN(ev.Depth))
		assert.True(t, math.IsNaN(ev.Gap))
		assert.False(t, ev.HasDepth())
		assert.False(t, ev.HasGap())
		assert.True(t, ev.HasMag())
	})

	t.Run("unparseable time is zero", func(t *testing.T) {
		row := make([]string, len(testHeader))
		row[0] = "yesterday"
		ev, err := ParseRecord(cols, row)
		require.NoError(t, err)
		assert.True(t, ev.Time.IsZero())
		assert.Empty(t, ev.TimeLabel())
	})

	t.Run("short row", func(t *testing.T) {
		_, err := ParseRecord(cols, []string{"2025-01-01T00:00:00.000Z"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse record")
	})
}

func TestRegion(t *testing.T) {
	tests := []struct {
		name  string
		place string
		want  string
	}{
		{"locality and state", "10 km SSW of Idyllwild, CA", "CA"},
		{"multiple commas", "Kepulauan Talaud, Indonesia, region", "region"},
		{"no comma", "south of the Fiji Islands", "south of the Fiji Islands"},
		{"surrounding whitespace", "  5 km N of Anza,   California  ", "California"},
		{"trailing comma", "Somewhere,", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Region(tt.place))
		})
	}
}

func TestSetClock(t *testing.T) {
	fixed := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	assert.Equal(t, fixed, Now())
}
