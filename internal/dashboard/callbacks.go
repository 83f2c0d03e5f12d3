// Package dashboard holds the page layout and the callbacks bound to it.
//
// Each callback is a plain function of the current widget values. The page
// script posts those values whenever an input changes and applies the result:
//
//	dropdown                         -> DisplayControls -> block styles
//	dropdown, bins, colour, nets, n  -> UpdateFigure    -> graph figure
//	download clicks                  -> Download        -> CSV file
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// ErrPreventUpdate signals that a callback produced no output and the page
// must be left unchanged.
var ErrPreventUpdate = errors.New("prevent update")

// Table is the event table as the callbacks see it.
type Table interface {
	chart.Table
	NetworkSource
	Len() int
	WriteCSV(w io.Writer) error
}

// Style is an inline CSS style for a control block.
type Style map[string]string

var (
	styleVisible = Style{"display": "block"}
	styleHidden  = Style{"display": "none"}
)

// Visible reports whether the style shows its block.
func (s Style) Visible() bool { return s["display"] != "none" }

// FigureInputs are the widget values UpdateFigure depends on. Nil numbers mean
// the field was left empty.
type FigureInputs struct {
	PlotChoice   ChartKind `json:"plot_choice"`
	Bins         *int      `json:"bins"`
	ColorMag     []string  `json:"color_mag"`
	SelectedNets []string  `json:"selected_nets"`
	TopN         *int      `json:"top_n"`
}

// File is a download payload.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Dashboard binds the callbacks to one loaded table.
type Dashboard struct {
	table          Table
	layout         Layout
	exportFilename string
	logger         *slog.Logger
	metrics        *observability.Metrics
}

// New creates a Dashboard over table.
func New(table Table, defaultNets int, exportFilename string, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	return &Dashboard{
		table:          table,
		layout:         NewLayout(table, defaultNets),
		exportFilename: exportFilename,
		logger:         logger,
		metrics:        metrics,
	}
}

// Layout returns the page widget tree.
func (d *Dashboard) Layout() Layout { return d.layout }

// CheckReadiness returns nil once a table is attached.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if d.table == nil {
		return errors.New("catalog not loaded")
	}
	return nil
}

// DisplayControls shows the parameter block for choice and hides the rest.
// An unknown or empty choice hides every block.
func (d *Dashboard) DisplayControls(choice ChartKind) map[string]Style {
	styles := make(map[string]Style, len(Kinds))
	for _, k := range Kinds {
		if k == choice {
			styles[k.ControlsID()] = styleVisible
		} else {
			styles[k.ControlsID()] = styleHidden
		}
	}
	d.metrics.Callbacks.WithLabelValues("controls", "ok").Inc()
	return styles
}

// UpdateFigure builds the figure for the chosen chart. No or unknown choice
// yields an empty figure, which clears the graph.
func (d *Dashboard) UpdateFigure(in FigureInputs) *chart.Figure {
	fig := d.Figure(in)
	d.metrics.Callbacks.WithLabelValues("figure", "ok").Inc()
	return fig
}

// Figure builds the figure for in without counting a page callback. It backs
// image export.
func (d *Dashboard) Figure(in FigureInputs) *chart.Figure {
	start := time.Now()
	label := string(in.PlotChoice)
	if !in.PlotChoice.Valid() {
		label = "none"
	}
	defer func() {
		d.metrics.FigureBuildDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	switch in.PlotChoice {
	case KindMagDist:
		return chart.MagnitudeDistribution(d.table, derefOr(in.Bins, 0))
	case KindMagVsDepth:
		return chart.MagnitudeVsDepth(d.table, slices.Contains(in.ColorMag, ColorOption))
	case KindGapVsNet:
		return chart.GapByNetwork(d.table, in.SelectedNets)
	case KindPlaceNum:
		return chart.PlaceFrequency(d.table, derefOr(in.TopN, chart.DefaultTopN))
	default:
		d.logger.Debug("no chart selected", "plot_choice", label)
		return &chart.Figure{}
	}
}

// Download exports the whole table as CSV. A nil click count is the page's
// initial state and yields ErrPreventUpdate.
func (d *Dashboard) Download(nClicks *int) (*File, error) {
	if nClicks == nil {
		d.metrics.Callbacks.WithLabelValues("download", "prevented").Inc()
		return nil, ErrPreventUpdate
	}

	var buf bytes.Buffer
	if err := d.table.WriteCSV(&buf); err != nil {
		d.metrics.Callbacks.WithLabelValues("download", "error").Inc()
		return nil, fmt.Errorf("export catalog: %w", err)
	}

	d.metrics.Callbacks.WithLabelValues("download", "ok").Inc()
	d.metrics.Downloads.Inc()
	d.metrics.DownloadBytes.Add(float64(buf.Len()))
	d.logger.Info("catalog exported", "rows", d.table.Len(), "bytes", buf.Len(), "n_clicks", *nClicks)

	return &File{
		Filename:    d.exportFilename,
		ContentType: "text/csv",
		Body:        buf.Bytes(),
	}, nil
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
