/*
handlers_test.go - HTTP tests for the API handlers

Tests for:
- Period picker rendering and locale negotiation
- Domain and comparison endpoints
- Record creation, search and reports
- Error status mapping
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/i18n"
	"github.com/warp/period-engine/periods"
	"github.com/warp/period-engine/store/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(periods.NewEngine(periods.DefaultCatalogue(), nil), i18n.NewCatalog(), store)
	h.Now = func() calendar.Instant { return calendar.New(2024, time.December, 2) }
	return NewRouter(h, []string{"*"})
}

func do(t *testing.T, srv http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// PERIODS
// =============================================================================

func TestListPeriods(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/periods?date=2025-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[PeriodOptionsResponse](t, rec)
	assert.Equal(t, "2025-01-01", resp.Reference)
	assert.Equal(t, "en", resp.Locale)
	assert.Equal(t, "ltr", resp.Direction)
	require.NotEmpty(t, resp.Options)
	assert.Equal(t, "this_month", resp.Options[0].ID)
	assert.Equal(t, "January", resp.Options[0].Description)
	assert.Equal(t, "last_year", resp.Options[1].DefaultYearID)
	require.Len(t, resp.Comparisons, 2)
	assert.Equal(t, "Previous Period", resp.Comparisons[0].Description)
}

func TestListPeriods_Locale(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: an Accept-Language header for Arabic
	rec := do(t, srv, http.MethodGet, "/api/periods", nil, "Accept-Language", "ar-EG,ar;q=0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PeriodOptionsResponse](t, rec)
	assert.Equal(t, "rtl", resp.Direction)
	assert.Equal(t, "2024-12-02", resp.Reference)

	// WHEN: the lang parameter asks for French
	rec = do(t, srv, http.MethodGet, "/api/periods?lang=fr", nil, "Accept-Language", "ar")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[PeriodOptionsResponse](t, rec)

	// THEN: the parameter wins
	assert.Equal(t, "ltr", resp.Direction)
	assert.Equal(t, "décembre", resp.Options[0].Description)
	assert.Equal(t, "Période précédente", resp.Comparisons[0].Description)
}

func TestListPeriods_InvalidDate(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/periods?date=02/12/2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildDomain(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/domain", DomainRequest{
		Date:    "2024-12-02",
		Field:   "occurred_on",
		Options: []string{"this_year", "last_7_days"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Domain      []any  `json:"domain"`
		Description string `json:"description"`
		Ranges      []struct {
			Description string `json:"description"`
		} `json:"ranges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Last 7 days", resp.Description)
	assert.Equal(t, []any{
		"&",
		[]any{"occurred_on", ">=", "2024-11-25"},
		[]any{"occurred_on", "<=", "2024-12-02"},
	}, resp.Domain)
	require.Len(t, resp.Ranges, 1)
}

func TestBuildDomain_InfersDateTimeField(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/domain", DomainRequest{
		Date:    "2024-12-02",
		Field:   "created_at",
		Options: []string{"this_year"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2024-12-31 23:59:59"`)
}

func TestBuildDomain_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  DomainRequest
		code string
	}{
		{"unknown option", DomainRequest{Field: "d", Options: []string{"this_decade"}}, "unknown_option"},
		{"unknown comparison", DomainRequest{Field: "d", Options: []string{"this_year"}, Comparison: "next"}, "unknown_comparison"},
		{"bad field type", DomainRequest{Field: "d", FieldType: "timestamp", Options: []string{"this_year"}}, ""},
		{"missing field", DomainRequest{Options: []string{"this_year"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/domain", tt.req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestComparisonParams(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/comparison", ComparisonRequest{
		Date:       "2024-12-02",
		Options:    []string{"this_year", "third_quarter", "fourth_quarter"},
		Comparison: "previous_period",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ComparisonResponse](t, rec)
	assert.Equal(t, calendar.Duration{Quarters: -2}, resp.Offset)
	assert.Len(t, resp.Selection["quarter"], 2)
	assert.Equal(t, 2024, resp.Selection["year"][0].Fields.Year)
}

// =============================================================================
// RECORDS AND REPORTS
// =============================================================================

func seedRecords(t *testing.T, srv http.Handler) {
	t.Helper()
	for _, r := range []CreateRecordRequest{
		{Label: "a", Amount: mustDecimal(t, "100"), OccurredOn: "2024-12-01"},
		{Label: "b", Amount: mustDecimal(t, "20.5"), OccurredOn: "2024-12-02"},
		{Label: "c", Amount: mustDecimal(t, "80"), OccurredOn: "2024-11-10"},
	} {
		rec := do(t, srv, http.MethodPost, "/api/records", r)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestRecords_CreateGetList(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/records", CreateRecordRequest{
		ID: "r-1", Label: "coffee", Amount: mustDecimal(t, "3.20"), OccurredOn: "2024-12-02",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/records/r-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[RecordDTO](t, rec)
	assert.Equal(t, "coffee", got.Label)
	assert.Equal(t, "2024-12-02", got.OccurredOn)
	assert.True(t, mustDecimal(t, "3.2").Equal(got.Amount))

	rec = do(t, srv, http.MethodPost, "/api/records", CreateRecordRequest{
		ID: "r-1", Label: "again", OccurredOn: "2024-12-02",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/records/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/records?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]RecordDTO](t, rec), 1)

	rec = do(t, srv, http.MethodDelete, "/api/records", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/records", nil)
	assert.Empty(t, decode[[]RecordDTO](t, rec))
}

func TestRecords_CreateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/records", CreateRecordRequest{Label: "x", OccurredOn: "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/records", CreateRecordRequest{OccurredOn: "2024-12-02"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRecords(t *testing.T) {
	srv := newTestServer(t)
	seedRecords(t, srv)

	// WHEN: searching by options
	rec := do(t, srv, http.MethodPost, "/api/records/search", SearchRequest{
		Date:    "2024-12-02",
		Options: []string{"this_year", "this_month"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SearchResponse](t, rec)
	assert.Equal(t, "December 2024", resp.Description)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "120.5", resp.Sum.String())

	// WHEN: searching by an explicit domain
	rec = do(t, srv, http.MethodPost, "/api/records/search",
		json.RawMessage(`{"domain": ["&", ["occurred_on", ">=", "2024-11-01"], ["occurred_on", "<=", "2024-11-30"]]}`))
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[SearchResponse](t, rec)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "c", resp.Records[0].Label)

	// WHEN: the domain names a field that is not filterable
	rec = do(t, srv, http.MethodPost, "/api/records/search",
		json.RawMessage(`{"domain": [["label", "=", "c"]]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareReport(t *testing.T) {
	srv := newTestServer(t)
	seedRecords(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/reports/compare", CompareRequest{
		Date:    "2024-12-02",
		Options: []string{"this_year", "this_month"},
		Lang:    "fr",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ReportDTO](t, rec)
	assert.Equal(t, "décembre 2024", resp.Current.Description)
	assert.Equal(t, "novembre 2024", resp.Previous.Description)
	assert.Equal(t, "40.5", resp.Delta.String())
	require.NotNil(t, resp.ChangePercent)
	assert.Equal(t, "50.63", resp.ChangePercent.String())

	rec = do(t, srv, http.MethodPost, "/api/reports/compare", CompareRequest{
		Field: "label", Options: []string{"this_year"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPost, "/api/domain", DomainRequest{Field: "d", Options: []string{"this_year"}})

	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `periods_http_requests_total{method="POST",path="/api/domain",status="200"}`)

	rec = do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
