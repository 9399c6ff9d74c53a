/*
Package report compares record totals between a period and its comparison period.

PURPOSE:
  Answers "how much this period vs. the previous one": the selection is
  resolved twice by the period engine (as is, then shifted by the comparison
  option) and both domains are aggregated in the record store.

CALCULATION:
  Delta         = Current.Sum - Previous.Sum
  ChangePercent = Delta / Previous.Sum * 100, rounded to 2 places
                  nil when Previous.Sum is zero

USAGE:
  svc := report.NewService(engine, store)
  rep, err := svc.Compare(ctx, report.Request{
      Reference: calendar.Now(),
      OptionIDs: []string{"this_year", "this_month"},
  })

SEE ALSO:
  - periods: domain construction and comparison offsets
  - store/sqlite: Aggregate
*/
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/domain"
	"github.com/warp/period-engine/periods"
	"github.com/warp/period-engine/store/sqlite"
)

const (
	DefaultField      = "occurred_on"
	DefaultComparison = "previous_period"
)

// ErrUnknownField is returned for a field the record store cannot filter.
var ErrUnknownField = errors.New("unknown record field")

// Aggregator sums the records matching a domain.
type Aggregator interface {
	Aggregate(ctx context.Context, expr domain.Expr) (sqlite.Totals, error)
}

// Request selects the periods to compare.
type Request struct {
	Reference    calendar.Instant
	Field        string
	OptionIDs    []string
	ComparisonID string
}

// PeriodTotals is the aggregate of one side of the comparison.
type PeriodTotals struct {
	Description string
	Domain      domain.Expr
	Count       int
	Sum         decimal.Decimal
}

// Report is the period-over-period comparison.
type Report struct {
	Current       PeriodTotals
	Previous      PeriodTotals
	Delta         decimal.Decimal
	ChangePercent *decimal.Decimal
}

// Service builds comparison reports.
type Service struct {
	engine *periods.Engine
	store  Aggregator
}

// NewService creates a report service.
func NewService(engine *periods.Engine, store Aggregator) *Service {
	return &Service{engine: engine, store: store}
}

// WithEngine returns a copy of the service using another engine, typically
// one bound to the caller's locale.
func (s *Service) WithEngine(engine *periods.Engine) *Service {
	return &Service{engine: engine, store: s.store}
}

// Compare aggregates the selected period and its comparison period.
func (s *Service) Compare(ctx context.Context, req Request) (*Report, error) {
	if req.Field == "" {
		req.Field = DefaultField
	}
	if req.ComparisonID == "" {
		req.ComparisonID = DefaultComparison
	}
	kind, ok := sqlite.Fields[req.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, req.Field)
	}
	fieldType, err := periods.ParseFieldType(kind)
	if err != nil {
		return nil, err
	}

	current, err := s.totals(ctx, req, fieldType, "")
	if err != nil {
		return nil, fmt.Errorf("current period: %w", err)
	}
	previous, err := s.totals(ctx, req, fieldType, req.ComparisonID)
	if err != nil {
		return nil, fmt.Errorf("comparison period: %w", err)
	}

	rep := &Report{
		Current:  current,
		Previous: previous,
		Delta:    current.Sum.Sub(previous.Sum),
	}
	if !previous.Sum.IsZero() {
		pct := rep.Delta.Div(previous.Sum).Mul(decimal.NewFromInt(100)).Round(2)
		rep.ChangePercent = &pct
	}
	return rep, nil
}

func (s *Service) totals(ctx context.Context, req Request, fieldType periods.FieldType, comparisonID string) (PeriodTotals, error) {
	res, err := s.engine.ConstructDomain(req.Reference, req.Field, fieldType, req.OptionIDs, comparisonID)
	if err != nil {
		return PeriodTotals{}, err
	}
	t, err := s.store.Aggregate(ctx, res.Domain)
	if err != nil {
		return PeriodTotals{}, err
	}
	return PeriodTotals{
		Description: res.Description,
		Domain:      res.Domain,
		Count:       t.Count,
		Sum:         t.Sum,
	}, nil
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownField) || periods.IsClientError(err)
}
