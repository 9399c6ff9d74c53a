/*
handlers.go - HTTP API handlers for the period engine

PURPOSE:
  Exposes the period engine, the record store and the comparison report via
  REST API. Handles HTTP request/response, JSON serialization, locale
  negotiation, and delegates to the engine.

ENDPOINTS:
  Periods:
    GET    /api/periods              Period picker (?date=YYYY-MM-DD&lang=fr)
    POST   /api/domain               Selected options -> filter domain
    POST   /api/comparison           Selected options -> comparison offset

  Records:
    GET    /api/records              Latest records (?limit=50)
    POST   /api/records              Create record
    DELETE /api/records              Clear all records (dev only)
    GET    /api/records/{id}         Get record
    POST   /api/records/search       Records matching a domain or options

  Reports:
    POST   /api/reports/compare      Period-over-period totals

LOCALE:
  The "lang" query or body field wins, then the Accept-Language header,
  then the server default locale.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Unknown option, unknown field, malformed date or domain
  - 404: Record not found
  - 409: Duplicate record id
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/domain"
	"github.com/warp/period-engine/i18n"
	"github.com/warp/period-engine/metrics"
	"github.com/warp/period-engine/periods"
	"github.com/warp/period-engine/report"
	"github.com/warp/period-engine/store/sqlite"
	"golang.org/x/text/language"
)

// ErrInvalidDate is returned for reference dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *periods.Engine
	Locales *i18n.Catalog
	Store   *sqlite.Store
	Reports *report.Service

	// DefaultLocale is used when the request names no language.
	DefaultLocale language.Tag

	// Now returns the reference instant for requests without a date.
	Now func() calendar.Instant
}

// NewHandler creates a new handler over the engine and store.
func NewHandler(engine *periods.Engine, locales *i18n.Catalog, store *sqlite.Store) *Handler {
	return &Handler{
		Engine:        engine,
		Locales:       locales,
		Store:         store,
		Reports:       report.NewService(engine, store),
		DefaultLocale: language.English,
		Now:           calendar.Now,
	}
}

// engineFor returns the engine bound to the request locale.
func (h *Handler) engineFor(r *http.Request, lang string) (*periods.Engine, language.Tag) {
	tag := h.DefaultLocale
	switch {
	case lang != "":
		tag = h.Locales.Match(lang)
	case r.Header.Get("Accept-Language") != "":
		tag = h.Locales.Match(r.Header.Get("Accept-Language"))
	}
	return h.Engine.WithLocalizer(h.Locales.Localizer(tag)), tag
}

func (h *Handler) reference(date string) (calendar.Instant, error) {
	if date == "" {
		return h.Now(), nil
	}
	ref, err := calendar.ParseDate(date)
	if err != nil {
		return calendar.Instant{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return ref, nil
}

// fieldType resolves the type of field: explicit, from the record store
// schema, or date.
func fieldType(field, explicit string) (periods.FieldType, error) {
	if explicit != "" {
		return periods.ParseFieldType(explicit)
	}
	if kind, ok := sqlite.Fields[field]; ok {
		return periods.ParseFieldType(kind)
	}
	return periods.FieldDate, nil
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ListPeriods returns the period picker for a reference date.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ref, err := h.reference(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	engine, tag := h.engineFor(r, r.URL.Query().Get("lang"))

	opts, err := engine.PeriodOptions(ref)
	if err != nil {
		metrics.EngineErrorsTotal.WithLabelValues("period_options").Inc()
		writeEngineError(w, "Failed to list period options", err)
		return
	}

	resp := PeriodOptionsResponse{
		Reference: calendar.SerializeDate(ref),
		Locale:    tag.String(),
		Direction: string(engine.Localizer().Direction()),
		Options:   make([]PeriodOptionDTO, len(opts)),
	}
	for i, o := range opts {
		resp.Options[i] = PeriodOptionDTO{
			ID:            o.ID,
			GroupNumber:   o.GroupNumber,
			Description:   o.Description,
			DefaultYearID: o.DefaultYearID,
		}
	}
	for _, c := range engine.Catalogue().Comparisons() {
		resp.Comparisons = append(resp.Comparisons, ComparisonOptionDTO{
			ID:          c.ID,
			Description: engine.Localizer().T(c.Description),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// BuildDomain turns selected options into a filter domain.
func (h *Handler) BuildDomain(w http.ResponseWriter, r *http.Request) {
	var req DomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Field == "" {
		writeError(w, http.StatusBadRequest, "Field is required", nil)
		return
	}
	ref, err := h.reference(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	ft, err := fieldType(req.Field, req.FieldType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid field type", err)
		return
	}
	engine, _ := h.engineFor(r, req.Lang)

	res, err := engine.ConstructDomain(ref, req.Field, ft, req.Options, req.Comparison)
	if err != nil {
		metrics.EngineErrorsTotal.WithLabelValues("construct_domain").Inc()
		writeEngineError(w, "Failed to build domain", err)
		return
	}
	metrics.ObserveDomain(req.Comparison != "", len(res.Ranges))

	resp := DomainResponse{
		Domain:      res.Domain,
		Description: res.Description,
		Ranges:      make([]RangeDTO, len(res.Ranges)),
	}
	for i, rg := range res.Ranges {
		resp.Ranges[i] = RangeDTO{
			Domain:      rg.Domain,
			Description: rg.Description,
			Start:       rg.Bounds.Start.Time,
			End:         rg.Bounds.End.Time,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ComparisonParams returns the comparison offset of a selection.
func (h *Handler) ComparisonParams(w http.ResponseWriter, r *http.Request) {
	var req ComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ref, err := h.reference(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	offset, sel, err := h.Engine.ComparisonParams(ref, req.Options, req.Comparison)
	if err != nil {
		metrics.EngineErrorsTotal.WithLabelValues("comparison_params").Inc()
		writeEngineError(w, "Failed to compute comparison", err)
		return
	}

	resp := ComparisonResponse{Offset: offset, Selection: make(map[string][]PickDTO, len(sel))}
	for unit, picks := range sel {
		dtos := make([]PickDTO, len(picks))
		for i, p := range picks {
			dtos[i] = PickDTO{Fields: p.Fields, Global: p.Subtract.Global, LeftOnly: p.Subtract.Left}
		}
		resp.Selection[string(unit)] = dtos
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns the latest records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	records, err := h.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTOs(records))
}

// CreateRecord stores a new record.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	on, err := calendar.ParseDate(req.OccurredOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid occurred_on", err)
		return
	}

	saved, err := h.Store.Save(r.Context(), sqlite.Record{
		ID:         req.ID,
		Label:      req.Label,
		Category:   req.Category,
		Amount:     req.Amount,
		OccurredOn: on.Time,
	})
	switch {
	case errors.Is(err, sqlite.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, "Invalid record", err)
		return
	case errors.Is(err, sqlite.ErrDuplicateRecord):
		writeError(w, http.StatusConflict, "Record already exists", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	log.Printf("[api] record %s created (request %s)", saved.ID, middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusCreated, toRecordDTO(saved))
}

// GetRecord returns a record by id.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Record not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get record", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(*rec))
}

// SearchRecords returns the records matching a domain, or the domain built
// from period options.
func (h *Handler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp := SearchResponse{Domain: req.Domain}
	if len(req.Options) > 0 {
		if req.Field == "" {
			req.Field = report.DefaultField
		}
		ref, err := h.reference(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		ft, err := fieldType(req.Field, "")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid field type", err)
			return
		}
		engine, _ := h.engineFor(r, req.Lang)
		res, err := engine.ConstructDomain(ref, req.Field, ft, req.Options, req.Comparison)
		if err != nil {
			metrics.EngineErrorsTotal.WithLabelValues("construct_domain").Inc()
			writeEngineError(w, "Failed to build domain", err)
			return
		}
		metrics.ObserveDomain(req.Comparison != "", len(res.Ranges))
		resp.Domain, resp.Description = res.Domain, res.Description
	}

	records, err := h.Store.Search(r.Context(), resp.Domain)
	if errors.Is(err, domain.ErrUnknownField) || errors.Is(err, domain.ErrMalformed) {
		writeError(w, http.StatusBadRequest, "Invalid domain", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search records", err)
		return
	}

	resp.Records = toRecordDTOs(records)
	resp.Count = len(records)
	for _, rec := range records {
		resp.Sum = resp.Sum.Add(rec.Amount)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetRecords deletes every record.
func (h *Handler) ResetRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset records", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// CompareReport returns current vs comparison period totals.
func (h *Handler) CompareReport(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ref, err := h.reference(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	engine, _ := h.engineFor(r, req.Lang)

	rep, err := h.Reports.WithEngine(engine).Compare(r.Context(), report.Request{
		Reference:    ref,
		Field:        req.Field,
		OptionIDs:    req.Options,
		ComparisonID: req.Comparison,
	})
	if err != nil {
		if report.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid report request", err)
			return
		}
		metrics.EngineErrorsTotal.WithLabelValues("compare_report").Inc()
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, ReportDTO{
		Current:       toTotalsDTO(rep.Current),
		Previous:      toTotalsDTO(rep.Previous),
		Delta:         rep.Delta,
		ChangePercent: rep.ChangePercent,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors to 400 for caller mistakes and 500
// for catalogue misconfiguration.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message, Details: err.Error()}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, periods.ErrUnknownOption):
		resp.Code, status = "unknown_option", http.StatusBadRequest
	case errors.Is(err, periods.ErrUnknownComparison):
		resp.Code, status = "unknown_comparison", http.StatusBadRequest
	case errors.Is(err, periods.ErrInvalidFieldType):
		resp.Code, status = "invalid_field_type", http.StatusBadRequest
	case errors.Is(err, periods.ErrNoDefaultYear):
		resp.Code = "no_default_year"
	}
	writeJSON(w, status, resp)
}

func toRecordDTO(r sqlite.Record) RecordDTO {
	return RecordDTO{
		ID:         r.ID,
		Label:      r.Label,
		Category:   r.Category,
		Amount:     r.Amount,
		OccurredOn: r.OccurredOn.Format(calendar.DateLayout),
		CreatedAt:  r.CreatedAt.UTC().Format(calendar.DateTimeLayout),
	}
}

func toRecordDTOs(records []sqlite.Record) []RecordDTO {
	dtos := make([]RecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toRecordDTO(r)
	}
	return dtos
}

func toTotalsDTO(t report.PeriodTotals) PeriodTotalsDTO {
	return PeriodTotalsDTO{
		Description: t.Description,
		Domain:      t.Domain,
		Count:       t.Count,
		Sum:         t.Sum,
	}
}
