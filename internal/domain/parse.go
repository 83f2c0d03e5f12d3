package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the USGS timestamp format.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// ErrMissingColumn is returned when a header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Columns maps header names to their position in a CSV row.
type Columns map[string]int

// NewColumns indexes a CSV header and checks that every required column is
// present.
func NewColumns(header []string) (Columns, error) {
	cols := make(Columns, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

// value returns the trimmed cell for name, or "" if the column is absent.
func (c Columns) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseRecord converts one CSV row into an Event.
func ParseRecord(cols Columns, row []string) (Event, error) {
	if len(row) < len(cols) {
		return Event{}, fmt.Errorf("parse record: expected %d fields, got %d", len(cols), len(row))
	}

	return Event{
		ID:        cols.value(row, ColumnID),
		Time:      parseTime(cols.value(row, ColumnTime)),
		Latitude:  parseFloatOrNaN(cols.value(row, ColumnLatitude)),
		Longitude: parseFloatOrNaN(cols.value(row, ColumnLongitude)),
		Depth:     parseFloatOrNaN(cols.value(row, ColumnDepth)),
		Mag:       parseFloatOrNaN(cols.value(row, ColumnMag)),
		MagType:   cols.value(row, ColumnMagType),
		Gap:       parseFloatOrNaN(cols.value(row, ColumnGap)),
		Net:       cols.value(row, ColumnNet),
		Place:     cols.value(row, ColumnPlace),
		Type:      cols.value(row, ColumnType),
	}, nil
}

// parseFloatOrNaN parses a string as float64, returning NaN for empty or
// unparseable input.
func parseFloatOrNaN(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseTime accepts the USGS layout and plain RFC 3339. Returns the zero time
// when neither matches.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// Region returns the part of a place description after its last comma,
// e.g. "10 km SSW of Idyllwild, CA" -> "CA". A place without a comma is
// returned whole. Surrounding whitespace is removed.
func Region(place string) string {
	if i := strings.LastIndex(place, ","); i >= 0 {
		place = place[i+1:]
	}
	return strings.TrimSpace(place)
}
