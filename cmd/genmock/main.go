// Command genmock writes a synthetic USGS earthquake catalog CSV for local
// runs and demos. The output uses the full USGS column set and is read back
// through the catalog package so it is guaranteed to load in the dashboard.
//
// Usage:
//
//	go run ./cmd/genmock -out data/earthquake_usgs_2025.csv -rows 5000 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
)

// header is the column order of the USGS FDSN CSV export.
var header = []string{
	"time", "latitude", "longitude", "depth", "mag", "magType", "nst", "gap",
	"dmin", "rms", "net", "id", "updated", "place", "type", "horizontalError",
	"depthError", "magError", "magNst", "status", "locationSource", "magSource",
}

type source struct {
	net     string
	weight  int
	magType string
	region  string
	towns   []string
	lat     [2]float64
	lon     [2]float64
	depth   [2]float64
	mag     [2]float64
	gap     [2]float64
	noGap   float64 // fraction of events without a gap value
}

var sources = []source{
	{net: "ak", weight: 30, magType: "ml", region: "Alaska", towns: []string{"Willow", "Anchorage", "Petersville", "Cantwell"},
		lat: [2]float64{58, 64}, lon: [2]float64{-155, -145}, depth: [2]float64{0, 150}, mag: [2]float64{0.5, 4.5}, gap: [2]float64{60, 250}, noGap: 0.9},
	{net: "nc", weight: 20, magType: "md", region: "CA", towns: []string{"The Geysers", "Cobb", "Parkfield"},
		lat: [2]float64{36, 39.5}, lon: [2]float64{-123, -120}, depth: [2]float64{0, 15}, mag: [2]float64{0.2, 3.5}, gap: [2]float64{20, 180}},
	{net: "ci", weight: 18, magType: "ml", region: "CA", towns: []string{"Anza", "Ridgecrest", "Ocotillo Wells", "Borrego Springs"},
		lat: [2]float64{32.5, 36}, lon: [2]float64{-118.5, -115}, depth: [2]float64{0, 20}, mag: [2]float64{0.3, 3.8}, gap: [2]float64{15, 150}},
	{net: "us", weight: 12, magType: "mb", region: "Fiji Islands region", towns: []string{"Ndoi Island", "Levuka"},
		lat: [2]float64{-24, -15}, lon: [2]float64{-180, -175}, depth: [2]float64{10, 650}, mag: [2]float64{4, 6.5}, gap: [2]float64{15, 110}},
	{net: "hv", weight: 8, magType: "ml", region: "Hawaii", towns: []string{"Volcano", "Pāhala", "Naalehu"},
		lat: [2]float64{19, 20}, lon: [2]float64{-156, -155}, depth: [2]float64{0, 40}, mag: [2]float64{1, 3.5}, gap: [2]float64{40, 200}},
	{net: "pr", weight: 6, magType: "md", region: "Puerto Rico", towns: []string{"Indios", "Guánica", "Tallaboa"},
		lat: [2]float64{17.5, 18.5}, lon: [2]float64{-67.5, -65.5}, depth: [2]float64{2, 30}, mag: [2]float64{1.5, 3.5}, gap: [2]float64{100, 300}},
	{net: "nn", weight: 6, magType: "ml", region: "Nevada", towns: []string{"Dayton", "Mina", "Gabbs"},
		lat: [2]float64{37, 41}, lon: [2]float64{-120, -115}, depth: [2]float64{0, 15}, mag: [2]float64{0, 2.8}, gap: [2]float64{50, 250}},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated catalog CSV")
	rows := flag.Int("rows", 1000, "number of events to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *rows <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -rows > 0")
	}

	// Fixed clock so the same seed always yields the same file.
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := generate(f, *rows, rand.New(rand.NewSource(*seed))); err != nil {
		f.Close() //nolint:errcheck // already failing
		return fmt.Errorf("generating catalog: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	tbl, err := catalog.Load(*out)
	if err != nil {
		return fmt.Errorf("reading back %s: %w", *out, err)
	}
	log.Printf("wrote %d events to %s", tbl.Len(), *out)

	printStats(tbl)
	return nil
}

// generate writes n events ending at the package clock's current time, one
// every few minutes going back.
func generate(w io.Writer, n int, rng *rand.Rand) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	total := 0
	for _, s := range sources {
		total += s.weight
	}

	at := domain.Now().UTC()
	for i := range n {
		s := pick(rng, total)
		at = at.Add(-time.Duration(1+rng.Intn(15)) * time.Minute)
		if err := cw.Write(record(rng, s, i, at)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func pick(rng *rand.Rand, total int) source {
	r := rng.Intn(total)
	for _, s := range sources {
		if r < s.weight {
			return s
		}
		r -= s.weight
	}
	return sources[len(sources)-1]
}

func record(rng *rand.Rand, s source, i int, at time.Time) []string {
	between := func(r [2]float64) float64 { return r[0] + rng.Float64()*(r[1]-r[0]) }
	fmtF := func(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

	gap := ""
	if rng.Float64() >= s.noGap {
		gap = fmtF(between(s.gap), 0)
	}
	town := s.towns[rng.Intn(len(s.towns))]
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	place := fmt.Sprintf("%d km %s of %s, %s", 1+rng.Intn(60), dirs[rng.Intn(len(dirs))], town, s.region)

	return []string{
		at.Format(domain.TimeLayout),
		fmtF(between(s.lat), 4),
		fmtF(between(s.lon), 4),
		fmtF(between(s.depth), 2),
		fmtF(between(s.mag), 1),
		s.magType,
		strconv.Itoa(5 + rng.Intn(60)),
		gap,
		fmtF(rng.Float64(), 4),
		fmtF(0.05+rng.Float64()*0.8, 2),
		s.net,
		fmt.Sprintf("%s%08d", s.net, i),
		at.Add(2 * time.Hour).Format(domain.TimeLayout),
		place,
		"earthquake",
		fmtF(0.1+rng.Float64()*5, 2),
		fmtF(0.1+rng.Float64()*3, 2),
		fmtF(rng.Float64()*0.3, 3),
		strconv.Itoa(rng.Intn(40)),
		"reviewed",
		s.net,
		s.net,
	}
}

type labelCount struct {
	label string
	count int
}

func printStats(tbl *catalog.Table) {
	nets := map[string]int{}
	regions := map[string]int{}
	var withGap int
	for _, ev := range tbl.Events() {
		nets[ev.Net]++
		if ev.HasGap() {
			withGap++
		}
	}
	for _, r := range tbl.Regions() {
		regions[r]++
	}

	fmt.Println("\n=== Catalog stats ===")
	fmt.Printf("Total: %d\n", tbl.Len())
	fmt.Printf("With gap: %d\n", withGap)
	fmt.Printf("Networks: %s\n", formatCounts(nets))
	fmt.Printf("Regions: %s\n", formatCounts(regions))
}

func formatCounts(m map[string]int) string {
	counts := make([]labelCount, 0, len(m))
	for k, v := range m {
		counts = append(counts, labelCount{k, v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].label < counts[j].label
	})
	s := ""
	for _, c := range counts {
		s += fmt.Sprintf("%s=%d ", c.label, c.count)
	}
	return s
}
