// Package catalog holds the earthquake event table loaded once at startup.
//
// The table is read-only after loading apart from the derived region column,
// which is computed the first time it is requested and kept for the life of
// the process. All methods are safe for concurrent use.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// ErrMissingColumn is returned when the file header lacks a required column.
var ErrMissingColumn = domain.ErrMissingColumn

// Table is the in-memory event table.
type Table struct {
	source   string
	header   []string
	rows     [][]string
	events   []domain.Event
	loadedAt time.Time

	regionOnce sync.Once
	regions    []string
	derived    atomic.Bool
}

// Load reads the CSV file at path into a Table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	t.source = path
	return t, nil
}

// Read parses CSV from r into a Table. The first record is the header.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read catalog header: empty input")
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	cols, err := domain.NewColumns(header)
	if err != nil {
		return nil, err
	}

	t := &Table{header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		ev, err := domain.ParseRecord(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(t.rows)+1, err)
		}
		t.rows = append(t.rows, row)
		t.events = append(t.events, ev)
	}

	t.loadedAt = domain.Now()
	return t, nil
}

// Source is the path the table was loaded from, or "" when read from a stream.
func (t *Table) Source() string { return t.source }

// LoadedAt is when the table finished loading.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Len returns the number of event rows.
func (t *Table) Len() int { return len(t.events) }

// Events returns the parsed rows. Callers must not modify the slice.
func (t *Table) Events() []domain.Event { return t.events }

// Header returns a copy of the source header.
func (t *Table) Header() []string {
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out
}

// Networks returns the sorted distinct network codes.
func (t *Table) Networks() []string {
	seen := make(map[string]struct{})
	for _, ev := range t.events {
		if ev.Net == "" {
			continue
		}
		seen[ev.Net] = struct{}{}
	}

	nets := make([]string, 0, len(seen))
	for n := range seen {
		nets = append(nets, n)
	}
	sort.Strings(nets)
	return nets
}

// DefaultNetworks returns the first n entries of Networks.
func (t *Table) DefaultNetworks(n int) []string {
	nets := t.Networks()
	if n < 0 {
		n = 0
	}
	if n < len(nets) {
		nets = nets[:n]
	}
	return nets
}

// Regions returns the derived region column, one entry per row. It is
// computed on first call and reused afterwards.
func (t *Table) Regions() []string {
	t.regionOnce.Do(func() {
		regions := make([]string, len(t.events))
		for i, ev := range t.events {
			regions[i] = domain.Region(ev.Place)
		}
		t.regions = regions
		t.derived.Store(true)
	})
	return t.regions
}

// HasRegions reports whether the region column has been derived.
func (t *Table) HasRegions() bool { return t.derived.Load() }

// WriteCSV writes the table as CSV: the source header and rows in their
// original order, plus the region column once it has been derived.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	withRegion := t.HasRegions()
	header := t.header
	if withRegion {
		header = append(t.Header(), domain.ColumnRegion)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.rows {
		if withRegion {
			row = append(append(make([]string, 0, len(row)+1), row...), t.regions[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
