package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
)

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := dashboard.WritePage(&buf, s.dashboard.Layout()); err != nil {
		s.logger.Error("page render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "page render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

type controlsRequest struct {
	PlotChoice dashboard.ChartKind `json:"plot_choice"`
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	var req controlsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.DisplayControls(req.PlotChoice))
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	var in dashboard.FigureInputs
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fig := s.dashboard.UpdateFigure(in)
	s.logger.Debug("figure updated", "plot_choice", in.PlotChoice, "traces", len(fig.Data))
	writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	nClicks, err := optionalInt(r.URL.Query(), "n_clicks")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := s.dashboard.Download(nClicks)
	if errors.Is(err, dashboard.ErrPreventUpdate) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.logger.Error("download failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.Write(file.Body) //nolint:errcheck // client went away
}

// handleChartImage serves /charts/{kind}.{svg|png}. Chart parameters use the
// callback field names as query parameters; selected_nets may repeat.
func (s *Server) handleChartImage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	kind := dashboard.ChartKind(strings.TrimSuffix(file, ext))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", kind))
		return
	}

	// The format is checked before the figure is built so a rejected request
	// leaves the table and the figure metrics untouched.
	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		// Keep arbitrary extensions out of the label set.
		s.metrics.ChartRenders.WithLabelValues("unsupported", "error").Inc()
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	in, err := figureInputsFromQuery(kind, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	err = chart.Render(s.dashboard.Figure(in), format, s.size.Width, s.size.Height, &buf)
	switch {
	case errors.Is(err, chart.ErrEmptyFigure):
		s.metrics.ChartRenders.WithLabelValues(format, "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.metrics.ChartRenders.WithLabelValues(format, "error").Inc()
		s.logger.Error("chart render failed", "chart", kind, "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	s.metrics.ChartRenders.WithLabelValues(format, "ok").Inc()
	w.Header().Set("Content-Type", chart.ContentType(format))
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxCallbackBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func figureInputsFromQuery(kind dashboard.ChartKind, q url.Values) (dashboard.FigureInputs, error) {
	bins, err := optionalInt(q, "bins")
	if err != nil {
		return dashboard.FigureInputs{}, err
	}
	topN, err := optionalInt(q, "top_n")
	if err != nil {
		return dashboard.FigureInputs{}, err
	}
	return dashboard.FigureInputs{
		PlotChoice:   kind,
		Bins:         bins,
		ColorMag:     q["color_mag"],
		SelectedNets: q["selected_nets"],
		TopN:         topN,
	}, nil
}

// optionalInt parses q[key]; an absent or empty value yields nil.
func optionalInt(q url.Values, key string) (*int, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, s)
	}
	return &n, nil
}
