package domain

import (
	"math"
	"time"
)

// USGS catalog column names used by the dashboard.
const (
	ColumnTime      = "time"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
	ColumnDepth     = "depth"
	ColumnMag       = "mag"
	ColumnMagType   = "magType"
	ColumnGap       = "gap"
	ColumnNet       = "net"
	ColumnID        = "id"
	ColumnPlace     = "place"
	ColumnType      = "type"

	// ColumnRegion is the derived column holding the trailing part of place.
	ColumnRegion = "region"
)

// RequiredColumns must be present in every catalog file.
var RequiredColumns = []string{ColumnMag, ColumnDepth, ColumnGap, ColumnNet, ColumnPlace, ColumnTime}

// Event is one earthquake record. Numeric fields are NaN when the source cell
// is empty or unparseable.
type Event struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Depth     float64   `json:"depth"`
	Mag       float64   `json:"mag"`
	MagType   string    `json:"mag_type,omitempty"`
	Gap       float64   `json:"gap"`
	Net       string    `json:"net"`
	Place     string    `json:"place"`
	Type      string    `json:"type,omitempty"`
}

// HasMag reports whether the magnitude is present.
func (e Event) HasMag() bool { return !math.IsNaN(e.Mag) }

// HasDepth reports whether the depth is present.
func (e Event) HasDepth() bool { return !math.IsNaN(e.Depth) }

// HasGap reports whether the azimuthal gap is present.
func (e Event) HasGap() bool { return !math.IsNaN(e.Gap) }

// TimeLabel formats the event time the way the source file writes it.
// Returns "" for a zero time.
func (e Event) TimeLabel() string {
	if e.Time.IsZero() {
		return ""
	}
	return e.Time.UTC().Format(TimeLayout)
}
