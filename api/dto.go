/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine and store types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

DATES:
  Reference dates are "YYYY-MM-DD" strings; an empty date means today.
  Amounts are decimal strings ("12.50").

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/domain"
)

// =============================================================================
// PERIOD TYPES
// =============================================================================

// PeriodOptionDTO is one option of the period picker.
type PeriodOptionDTO struct {
	ID            string `json:"id"`
	GroupNumber   int    `json:"group_number"`
	Description   string `json:"description"`
	DefaultYearID string `json:"default_year_id"`
}

// ComparisonOptionDTO is one comparison choice.
type ComparisonOptionDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// PeriodOptionsResponse is the rendered picker for a reference date.
type PeriodOptionsResponse struct {
	Reference   string                `json:"reference"`
	Locale      string                `json:"locale"`
	Direction   string                `json:"direction"`
	Options     []PeriodOptionDTO     `json:"options"`
	Comparisons []ComparisonOptionDTO `json:"comparisons"`
}

// DomainRequest selects options to turn into a filter.
type DomainRequest struct {
	Date       string   `json:"date,omitempty"`
	Field      string   `json:"field"`
	FieldType  string   `json:"field_type,omitempty"` // date or datetime, inferred for record fields
	Options    []string `json:"options"`
	Comparison string   `json:"comparison,omitempty"`
	Lang       string   `json:"lang,omitempty"`
}

// RangeDTO is one period of a domain.
type RangeDTO struct {
	Domain      domain.Expr `json:"domain"`
	Description string      `json:"description"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
}

// DomainResponse is the constructed filter.
type DomainResponse struct {
	Domain      domain.Expr `json:"domain"`
	Description string      `json:"description"`
	Ranges      []RangeDTO  `json:"ranges"`
}

// ComparisonRequest asks for the comparison offset of a selection.
type ComparisonRequest struct {
	Date       string   `json:"date,omitempty"`
	Options    []string `json:"options"`
	Comparison string   `json:"comparison"`
}

// PickDTO is one resolved option of a selection.
type PickDTO struct {
	Fields   calendar.Fields   `json:"fields"`
	Global   calendar.Duration `json:"subtract_global"`
	LeftOnly calendar.Duration `json:"subtract_left"`
}

// ComparisonResponse is the offset and the selection it applies to.
type ComparisonResponse struct {
	Offset    calendar.Duration    `json:"offset"`
	Selection map[string][]PickDTO `json:"selection"`
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// RecordDTO represents a record in API responses.
type RecordDTO struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Category   string          `json:"category,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredOn string          `json:"occurred_on"`
	CreatedAt  string          `json:"created_at"`
}

// CreateRecordRequest is the body of POST /api/records.
type CreateRecordRequest struct {
	ID         string          `json:"id,omitempty"`
	Label      string          `json:"label"`
	Category   string          `json:"category,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredOn string          `json:"occurred_on"`
}

// SearchRequest filters records either by an explicit domain or by period
// options. Options win when both are given.
type SearchRequest struct {
	Domain     domain.Expr `json:"domain"`
	Date       string      `json:"date,omitempty"`
	Field      string      `json:"field,omitempty"`
	Options    []string    `json:"options,omitempty"`
	Comparison string      `json:"comparison,omitempty"`
	Lang       string      `json:"lang,omitempty"`
}

// SearchResponse lists the matching records with their totals.
type SearchResponse struct {
	Domain      domain.Expr     `json:"domain"`
	Description string          `json:"description,omitempty"`
	Records     []RecordDTO     `json:"records"`
	Count       int             `json:"count"`
	Sum         decimal.Decimal `json:"sum"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// CompareRequest is the body of POST /api/reports/compare.
type CompareRequest struct {
	Date       string   `json:"date,omitempty"`
	Field      string   `json:"field,omitempty"`
	Options    []string `json:"options"`
	Comparison string   `json:"comparison,omitempty"`
	Lang       string   `json:"lang,omitempty"`
}

// PeriodTotalsDTO is one side of a comparison report.
type PeriodTotalsDTO struct {
	Description string          `json:"description"`
	Domain      domain.Expr     `json:"domain"`
	Count       int             `json:"count"`
	Sum         decimal.Decimal `json:"sum"`
}

// ReportDTO is the period-over-period comparison.
type ReportDTO struct {
	Current       PeriodTotalsDTO  `json:"current"`
	Previous      PeriodTotalsDTO  `json:"previous"`
	Delta         decimal.Decimal  `json:"delta"`
	ChangePercent *decimal.Decimal `json:"change_percent"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
