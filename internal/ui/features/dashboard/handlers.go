package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/celldash/internal/charts"
	core "github.com/leapstack-labs/celldash/internal/dashboard"
	"github.com/leapstack-labs/celldash/internal/dataset"
	"github.com/leapstack-labs/celldash/internal/ui/features/dashboard/pages"
	"github.com/leapstack-labs/celldash/internal/ui/notifier"
)

// PageTitle is the browser title of the dashboard.
const PageTitle = "Network Performance Dashboard"

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	store        *dataset.Store
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
	rawRowsLimit int
	refreshes    atomic.Int64
}

// Config holds the dependencies of the dashboard handlers.
type Config struct {
	Store        *dataset.Store
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Logger       *slog.Logger
	// RawRowsLimit caps the raw data table. Zero shows every row.
	RawRowsLimit int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg Config) *Handlers {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	notify := cfg.Notifier
	if notify == nil {
		notify = notifier.New()
	}
	return &Handlers{
		store:        cfg.Store,
		sessionStore: cfg.SessionStore,
		notifier:     notify,
		logger:       logger,
		rawRowsLimit: cfg.RawRowsLimit,
	}
}

// Page renders the full dashboard for the session's filter selection.
// A missing required field renders the error panel with status 500.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	table := h.store.Current()
	sess := h.session(r)
	class := core.Classify(table.Schema())
	filters := filtersFrom(sess).Sanitize(class)

	if sess.IsNew {
		if err := h.saveFilters(w, r, sess, filters); err != nil {
			h.logger.Warn("failed to save session", "error", err)
		}
	}

	content, err := h.buildMain(table, filters)
	status := http.StatusOK
	if err != nil {
		h.logger.Error("render failed", "error", err)
		content = pages.MainData{Error: err.Error()}
		status = http.StatusInternalServerError
	}

	signals, err := json.Marshal(signalsFor(filters))
	if err != nil {
		h.logger.Error("failed to encode signals", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	data := pages.PageData{
		Title:   PageTitle,
		Menus:   core.Menus(class),
		Filters: filters,
		Signals: string(signals),
		Main:    content,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.DashboardPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to write page", "error", err)
	}
}

// UpdateFilters stores the posted filter signals in the session and patches the
// content area. Picks not offered by the menus are reset to unset.
func (h *Handlers) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(pages.Main(pages.MainData{Error: "Failed to read signals: " + err.Error()}))
		return
	}

	table := h.store.Current()
	class := core.Classify(table.Schema())
	requested := signals.Selection()
	filters := requested.Sanitize(class)

	sess := h.session(r)
	if err := h.saveFilters(w, r, sess, filters); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
	h.logger.Debug("filters updated",
		slog.String("sid", sessionID(sess)),
		slog.String("category", filters.Category),
		slog.String("size", filters.Size),
		slog.String("row_facet", filters.RowFacet),
		slog.String("col_facet", filters.ColFacet))

	sse := datastar.NewSSE(w, r)

	if filters != requested {
		if err := sse.MarshalAndPatchSignals(signalsFor(filters)); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	content, err := h.buildMain(table, filters)
	if err != nil {
		h.logger.Error("render failed", "error", err)
		content = pages.MainData{Error: err.Error()}
	}
	if err := sse.PatchElementTempl(pages.Main(content)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Updates is the long-lived SSE endpoint. When the dataset is reloaded it asks
// the page to post its current signals again, which re-renders with the new table.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			n := h.refreshes.Add(1)
			if err := sse.PatchElementTempl(pages.RefreshTrigger(n),
				datastar.WithSelectorID(pages.RefreshID),
				datastar.WithModeInner(),
			); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// API returns the render pass as JSON. Query parameters category, size, row and
// col override the session's selection and are validated strictly.
func (h *Handlers) API(w http.ResponseWriter, r *http.Request) {
	table := h.store.Current()
	class := core.Classify(table.Schema())

	filters := filtersFrom(h.session(r)).Sanitize(class)
	q := r.URL.Query()
	for param, dst := range map[string]*string{
		"category": &filters.Category,
		"size":     &filters.Size,
		"row":      &filters.RowFacet,
		"col":      &filters.ColFacet,
	} {
		if q.Has(param) {
			*dst = q.Get(param)
		}
	}
	if err := filters.Validate(class); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := core.Render(table, filters)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrMissingField) {
			status = http.StatusUnprocessableEntity
		}
		writeJSONError(w, status, err)
		return
	}

	panels, grid, err := charts.Scatter(table, snap.Chart, charts.Options{})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	resp := APIResponse{
		Filters:        snap.Filters,
		Classification: snap.Classification,
		Chart:          snap.Chart,
		Scatter:        APIScatter{Grid: grid, Panels: panels},
		Views:          []core.AggregationView{},
		Rows:           table.Len(),
	}
	for _, m := range snap.Metrics {
		resp.Metrics = append(resp.Metrics, apiMetric(m))
	}
	for _, v := range []*core.AggregationView{snap.DurationByEnvironment, snap.CallTypes} {
		if v != nil {
			resp.Views = append(resp.Views, *v)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// buildMain runs one render pass and draws its charts.
func (h *Handlers) buildMain(table *dataset.Table, filters core.FilterSelection) (pages.MainData, error) {
	snap, err := core.Render(table, filters)
	if err != nil {
		return pages.MainData{}, err
	}

	panels, grid, err := charts.Scatter(table, snap.Chart, charts.Options{})
	if err != nil {
		return pages.MainData{}, fmt.Errorf("scatter chart: %w", err)
	}

	content := pages.MainData{
		Tiles:     snap.Tiles,
		Chart:     snap.Chart,
		Grid:      grid,
		Panels:    panels,
		Columns:   snap.Columns(),
		Rows:      snap.RawRows(h.rawRowsLimit),
		TotalRows: table.Len(),
	}

	if v := snap.DurationByEnvironment; v != nil {
		content.HasBar = true
		content.BarTitle = v.Title
		svg, err := charts.Bar(*v, charts.Options{})
		if err != nil && !errors.Is(err, charts.ErrNoData) {
			return pages.MainData{}, fmt.Errorf("bar chart: %w", err)
		}
		content.BarSVG = svg
	}
	if v := snap.CallTypes; v != nil {
		content.HasDonut = true
		content.DonutTitle = v.Title
		svg, err := charts.Donut(*v, charts.Options{})
		if err != nil && !errors.Is(err, charts.ErrNoData) {
			return pages.MainData{}, fmt.Errorf("pie chart: %w", err)
		}
		content.DonutSVG = svg
	}
	return content, nil
}
