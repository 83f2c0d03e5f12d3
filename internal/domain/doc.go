// Package domain models USGS earthquake catalog records.
//
// # Data Source
//
// Records come from the USGS Earthquake Hazards Program search API exported as
// CSV (https://earthquake.usgs.gov/earthquakes/search/). The bundled dataset
// covers 2025-01-01 through 2025-06-30, magnitude 2.5 and above, 12,545 rows.
//
// # USGS CSV Conventions
//
// Time format:
//
//	ISO 8601 in UTC with millisecond precision, e.g. "2025-06-30T23:50:12.345Z".
//	The "updated" column uses the same format.
//
// Numeric columns:
//
//	depth  kilometres below the surface; may be negative for events above
//	       the reference ellipsoid.
//	mag    magnitude on the scale named by magType (ml, md, mb, mww, ...).
//	gap    azimuthal gap in degrees, 0-360. Often empty for older networks.
//
//	Empty cells are treated as missing and parsed to NaN, so aggregations
//	skip them the way a dataframe library would.
//
// Network codes:
//
//	The "net" column is the contributing seismic network, e.g. "us" (USGS
//	National Earthquake Information Center), "ak" (Alaska Earthquake Center),
//	"pr" (Puerto Rico Seismic Network).
//
// Place strings:
//
//	Free text written as "<distance> <compass> of <locality>, <region>",
//	e.g. "10 km SSW of Idyllwild, CA". Offshore or remote events often have
//	only a region, e.g. "south of the Fiji Islands". See [Region].
package domain
