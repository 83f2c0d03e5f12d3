// Command validate performs end-to-end integrity checks on a USGS catalog CSV
// before it is served: schema, per-field ranges, the derived region column,
// CSV export round trip, and that every preset chart builds and renders.
//
// Usage:
//
//	go run ./cmd/validate -csv data/earthquake_usgs_2025.csv -min-rows 100
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/couchcryptid/quake-dashboard/internal/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// maxReported bounds how many errors a phase keeps per check.
const maxReported = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the catalog CSV to validate")
	minRows := flag.Int("min-rows", 1, "minimum number of data rows")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *csvPath, *minRows))
}

func run(out io.Writer, csvPath string, minRows int) int {
	fmt.Fprintln(out, "=== Earthquake Catalog Validation ===")
	fmt.Fprintln(out)

	tbl, err := catalog.Load(csvPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(tbl, minRows),
		validateFields(tbl),
		validateRegions(tbl),
		validateExport(tbl),
		validateCharts(tbl),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d rows, %d networks\n", tbl.Len(), len(tbl.Networks()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: schema ──

func validateSchema(tbl *catalog.Table, minRows int) *phase {
	p := &phase{name: "Phase 1: Schema and row count"}

	header := tbl.Header()
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			p.errorf("duplicate column %q", h)
		}
		seen[h] = true
	}
	for _, c := range domain.RequiredColumns {
		if !seen[c] {
			p.errorf("missing column %q", c)
		}
	}
	if seen[domain.ColumnRegion] {
		p.errorf("column %q is derived and must not be in the source file", domain.ColumnRegion)
	}
	if tbl.Len() < minRows {
		p.errorf("got %d rows, want at least %d", tbl.Len(), minRows)
	}
	return p
}

// ── Phase 2: field ranges ──

func validateFields(tbl *catalog.Table) *phase {
	p := &phase{name: "Phase 2: Field ranges"}

	var withMag, withTime int
	for i, ev := range tbl.Events() {
		line := i + 2
		if len(p.errors) >= maxReported {
			p.errorf("stopping after %d errors", maxReported)
			break
		}
		if !ev.Time.IsZero() {
			withTime++
		}
		if ev.HasMag() {
			withMag++
			if ev.Mag < -2 || ev.Mag > 10 {
				p.errorf("line %d: mag %g out of range", line, ev.Mag)
			}
		}
		if ev.HasDepth() && (ev.Depth < -10 || ev.Depth > 800) {
			p.errorf("line %d: depth %g km out of range", line, ev.Depth)
		}
		if ev.HasGap() && (ev.Gap < 0 || ev.Gap > 360) {
			p.errorf("line %d: gap %g deg out of range", line, ev.Gap)
		}
		if ev.Latitude < -90 || ev.Latitude > 90 {
			p.errorf("line %d: latitude %g out of range", line, ev.Latitude)
		}
		if ev.Longitude < -180 || ev.Longitude > 180 {
			p.errorf("line %d: longitude %g out of range", line, ev.Longitude)
		}
		if ev.Net == "" {
			p.errorf("line %d: empty net", line)
		}
	}

	if tbl.Len() > 0 && withMag == 0 {
		p.errorf("no row has a magnitude")
	}
	if tbl.Len() > 0 && withTime == 0 {
		p.errorf("no row has a parseable time")
	}
	return p
}

// ── Phase 3: derived region ──

func validateRegions(tbl *catalog.Table) *phase {
	p := &phase{name: "Phase 3: Derived region column"}

	regions := tbl.Regions()
	if len(regions) != tbl.Len() {
		p.errorf("got %d regions for %d rows", len(regions), tbl.Len())
		return p
	}
	var empty, mismatched int
	for i, ev := range tbl.Events() {
		if ev.Place != "" && regions[i] == "" {
			if empty < maxReported {
				p.errorf("line %d: place %q yields an empty region", i+2, ev.Place)
			}
			empty++
		}
		if regions[i] != domain.Region(ev.Place) {
			if mismatched < maxReported {
				p.errorf("line %d: region %q does not match place %q", i+2, regions[i], ev.Place)
			}
			mismatched++
		}
	}
	if empty > maxReported {
		p.errorf("%d more empty regions not shown", empty-maxReported)
	}
	if mismatched > maxReported {
		p.errorf("%d more mismatched regions not shown", mismatched-maxReported)
	}
	return p
}

// ── Phase 4: export round trip ──

func validateExport(tbl *catalog.Table) *phase {
	p := &phase{name: "Phase 4: CSV export round trip"}

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		p.errorf("export: %v", err)
		return p
	}
	back, err := catalog.Read(&buf)
	if err != nil {
		p.errorf("re-read export: %v", err)
		return p
	}

	if back.Len() != tbl.Len() {
		p.errorf("exported %d rows, read back %d", tbl.Len(), back.Len())
	}
	if tbl.HasRegions() && !slices.Contains(back.Header(), domain.ColumnRegion) {
		p.errorf("export is missing the %q column", domain.ColumnRegion)
	}
	if !slices.Equal(back.Networks(), tbl.Networks()) {
		p.errorf("networks changed: %v -> %v", tbl.Networks(), back.Networks())
	}
	return p
}

// ── Phase 5: charts ──

func validateCharts(tbl *catalog.Table) *phase {
	p := &phase{name: "Phase 5: Preset charts build and render"}

	figures := map[string]*chart.Figure{
		"mag_dist":     chart.MagnitudeDistribution(tbl, chart.DefaultBins),
		"mag_vs_depth": chart.MagnitudeVsDepth(tbl, true),
		"gap_vs_net":   chart.GapByNetwork(tbl, tbl.Networks()),
		"place_num":    chart.PlaceFrequency(tbl, chart.DefaultTopN),
	}
	for _, name := range []string{"mag_dist", "mag_vs_depth", "gap_vs_net", "place_num"} {
		fig := figures[name]
		if fig.IsEmpty() {
			p.errorf("%s: figure has no data", name)
			continue
		}
		if err := chart.Render(fig, chart.FormatSVG, 800, 500, io.Discard); err != nil {
			p.errorf("%s: render svg: %v", name, err)
		}
	}
	return p
}
