package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/leapstack-labs/celldash/internal/dashboard"
	"github.com/leapstack-labs/celldash/internal/dataset"
	"github.com/leapstack-labs/celldash/internal/testutil"
	"github.com/leapstack-labs/celldash/internal/ui/features/dashboard/pages"
	"github.com/leapstack-labs/celldash/internal/ui/notifier"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

type testFixture struct {
	Store    *dataset.Store
	Notifier *notifier.Notifier
}

func setupTestHandlers(t *testing.T) (*Handlers, *testFixture) {
	t.Helper()

	tbl, err := dataset.Load(t.Context(), dataset.Options{
		Path: testutil.FixturePath(t, "train.csv"),
	})
	require.NoError(t, err)
	return setupWithTable(t, tbl)
}

func setupWithTable(t *testing.T, tbl *dataset.Table) (*Handlers, *testFixture) {
	t.Helper()

	fixture := &testFixture{
		Store:    dataset.NewStaticStore(tbl),
		Notifier: notifier.New(),
	}
	h := NewHandlers(Config{
		Store:        fixture.Store,
		SessionStore: sessions.NewCookieStore([]byte("test-secret")),
		Notifier:     fixture.Notifier,
		Logger:       testutil.NewTestLogger(t),
		RawRowsLimit: 3,
	})
	return h, fixture
}

func postFilters(t *testing.T, h *Handlers, signals FilterSignals, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/filters", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.UpdateFilters(rec, req)
	return rec
}

// =============================================================================
// Page Tests
// =============================================================================

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>Network Performance Dashboard</title>",
		"Cellular Network Performance Data Dashboard",
		"data-init",
		"/updates",
		`id="dashboard-main"`,
		"Categorical Filtering",
		"Numerical Filtering",
		"Row Filtering",
		"Column Filtering",
		"Max Signal Strength (dBm)",
		"-78.40",
		"Signal Strength vs. SNR",
		"Average Call Duration by Environment",
		"Call Type Distribution",
		"Show Raw Data",
		"Showing 3 of 8 rows.",
		"<svg",
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}
	assert.NotContains(t, body, "<th>Tower ID</th>")
	assert.Equal(t, 10, strings.Count(body, `class="tile"`))

	// the first visit starts a session
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestPage_ZeroRawRowsLimitShowsEveryRow(t *testing.T) {
	tbl, err := dataset.Load(t.Context(), dataset.Options{Path: testutil.FixturePath(t, "train.csv")})
	require.NoError(t, err)
	h := NewHandlers(Config{
		Store:        dataset.NewStaticStore(tbl),
		SessionStore: sessions.NewCookieStore([]byte("test-secret")),
		Logger:       testutil.NewTestLogger(t),
	})

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	raw := body[strings.Index(body, "Show Raw Data"):]
	assert.Equal(t, 8, strings.Count(raw, "<tr><td>"))
	assert.NotContains(t, body, "Showing ")
}

func TestPage_MissingFieldRendersErrorPanel(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader("Signal Strength (dBm),SNR,Environment\n-80,5,urban\n"))
	require.NoError(t, err)
	h, _ := setupWithTable(t, tbl)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "error-panel")
	assert.Contains(t, body, "Call Duration (s)")
	assert.NotContains(t, body, `class="tile"`)
	assert.NotContains(t, body, "<svg")
}

func TestPage_WithoutOptionalViews(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader(`Signal Strength (dBm),SNR,Call Duration (s),Attenuation,Distance to Tower (km)
-90,10,30,1,0.5
-70,20,60,2,1.5
`))
	require.NoError(t, err)
	h, _ := setupWithTable(t, tbl)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// only the scatter panel is drawn
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<svg"))
}

// =============================================================================
// Filter Tests
// =============================================================================

func TestUpdateFilters_PersistsInSession(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postFilters(t, h, FilterSignals{Category: "Environment", Size: core.FieldAttenuation})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event:")
	assert.Contains(t, body, "dashboard-main")
	assert.Contains(t, body, "urban")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// the same browser sees its selection on the next page load
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	page := httptest.NewRecorder()
	h.Page(page, req)
	assert.Contains(t, page.Body.String(), `<option value="Environment" selected>`)
	assert.Contains(t, page.Body.String(), `<option value="Attenuation" selected>`)

	// a different browser starts unset
	other := httptest.NewRecorder()
	h.Page(other, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, other.Body.String(), `<option value="Environment" selected>`)
	assert.Contains(t, other.Body.String(), `<option value="" selected>None</option>`)
}

func TestUpdateFilters_ResetsInvalidPicks(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postFilters(t, h, FilterSignals{Category: core.FieldSNR, Row: "Environment"})
	body := rec.Body.String()

	// the corrected signals are pushed back to the page
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, "Environment = urban")
}

func TestUpdateFilters_BadBody(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/filters", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.UpdateFilters(rec, req)

	assert.Contains(t, rec.Body.String(), "Failed to read signals")
}

// =============================================================================
// Updates Tests - SSE endpoint for dataset reloads
// =============================================================================

func TestUpdates_SendsRefreshOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return fixture.Notifier.Len() == 1 }, time.Second, 5*time.Millisecond)
	fixture.Notifier.Broadcast()
	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "@post('/filters')")
	assert.Contains(t, body, pages.RefreshID)
	assert.Equal(t, 0, fixture.Notifier.Len())
}

func TestUpdates_NoInitialState(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	h.Updates(rec, req.WithContext(ctx))

	assert.Equal(t, 0, strings.Count(rec.Body.String(), "event:"))
}

// =============================================================================
// API Tests
// =============================================================================

func TestAPI(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(t *testing.T, resp APIResponse)
	}{
		{
			name:       "defaults",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp APIResponse) {
				require.Len(t, resp.Metrics, 5)
				assert.Equal(t, "-78.40", resp.Metrics[0].MaxDisplay)
				assert.Equal(t, core.Unset, resp.Chart.Color)
				assert.Equal(t, []string{"Call Duration (s)", "Attenuation", "Distance to Tower (km)"}, resp.Chart.HoverFields)
				assert.Len(t, resp.Views, 2)
				assert.Equal(t, 8, resp.Rows)
				require.Len(t, resp.Scatter.Panels, 1)
			},
		},
		{
			name:       "color and facet from query",
			query:      "?category=Environment&col=Call+Type",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp APIResponse) {
				assert.Equal(t, "Environment", resp.Chart.Color)
				assert.Equal(t, "Call Type", resp.Chart.FacetCol)
				assert.Len(t, resp.Scatter.Panels, 3)
			},
		},
		{
			name:       "invalid size",
			query:      "?size=Environment",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			rec := httptest.NewRecorder()
			h.API(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.check == nil {
				return
			}
			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.check(t, resp)
		})
	}
}

func TestAPI_MissingField(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader("SNR,Environment\n5,urban\n"))
	require.NoError(t, err)
	h, _ := setupWithTable(t, tbl)

	rec := httptest.NewRecorder()
	h.API(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signal Strength (dBm)")
}
