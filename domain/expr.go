/*
Package domain provides the boolean filter expression produced by the period engine.

PURPOSE:
  A domain is a list of terms in prefix (Polish) notation: operators "&"
  and "|" followed by their operands, leaves being [field, operator, value]
  triples. This is the wire format search front-ends already speak:

    ["|",
      "&", ["date", ">=", "2024-01-01"], ["date", "<=", "2024-03-31"],
      "&", ["date", ">=", "2024-04-01"], ["date", "<=", "2024-06-30"]]

COMBINING:
  And/Or skip empty operands and prepend n-1 operators in front of the
  concatenated operands. An empty domain matches everything.

RENDERING:
  - MarshalJSON / UnmarshalJSON: the list form above
  - SQL: parameterised WHERE clause (see sql.go)
*/
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operator is a comparison operator on a leaf.
type Operator string

const (
	Eq  Operator = "="
	Neq Operator = "!="
	Lt  Operator = "<"
	Lte Operator = "<="
	Gt  Operator = ">"
	Gte Operator = ">="
)

func (o Operator) Valid() bool {
	switch o {
	case Eq, Neq, Lt, Lte, Gt, Gte:
		return true
	}
	return false
}

const (
	opAnd = "&"
	opOr  = "|"
)

// ErrMalformed is returned when a domain list cannot be parsed.
var ErrMalformed = errors.New("malformed domain")

// Condition is a single [field, operator, value] leaf.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

type term struct {
	op   string
	cond *Condition
}

// Expr is an immutable domain expression.
type Expr struct {
	terms []term
}

// Leaf builds a single-condition expression.
func Leaf(field string, op Operator, value any) Expr {
	return Expr{terms: []term{{cond: &Condition{Field: field, Operator: op, Value: value}}}}
}

// And combines expressions with logical AND.
func And(exprs ...Expr) Expr { return combine(opAnd, exprs) }

// Or combines expressions with logical OR.
func Or(exprs ...Expr) Expr { return combine(opOr, exprs) }

func combine(op string, exprs []Expr) Expr {
	var operands []Expr
	for _, e := range exprs {
		if !e.IsEmpty() {
			operands = append(operands, e)
		}
	}
	if len(operands) == 0 {
		return Expr{}
	}
	if len(operands) == 1 {
		return operands[0]
	}

	var terms []term
	for i := 0; i < len(operands)-1; i++ {
		terms = append(terms, term{op: op})
	}
	for _, e := range operands {
		terms = append(terms, e.terms...)
	}
	return Expr{terms: terms}
}

// IsEmpty reports whether the expression has no terms (matches everything).
func (e Expr) IsEmpty() bool { return len(e.terms) == 0 }

// Conditions returns the leaves in order.
func (e Expr) Conditions() []Condition {
	var conds []Condition
	for _, t := range e.terms {
		if t.cond != nil {
			conds = append(conds, *t.cond)
		}
	}
	return conds
}

// List returns the prefix list form, as marshalled to JSON.
func (e Expr) List() []any {
	list := make([]any, 0, len(e.terms))
	for _, t := range e.terms {
		if t.cond == nil {
			list = append(list, t.op)
			continue
		}
		list = append(list, []any{t.cond.Field, string(t.cond.Operator), t.cond.Value})
	}
	return list
}

func (e Expr) String() string {
	b, err := json.Marshal(e.List())
	if err != nil {
		return fmt.Sprintf("%v", e.List())
	}
	return string(b)
}

func (e Expr) MarshalJSON() ([]byte, error) { return json.Marshal(e.List()) }

func (e *Expr) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	terms := make([]term, 0, len(raw))
	for i, item := range raw {
		var op string
		if err := json.Unmarshal(item, &op); err == nil {
			if op != opAnd && op != opOr {
				return fmt.Errorf("%w: unknown operator %q at %d", ErrMalformed, op, i)
			}
			terms = append(terms, term{op: op})
			continue
		}

		var leaf []any
		if err := json.Unmarshal(item, &leaf); err != nil || len(leaf) != 3 {
			return fmt.Errorf("%w: term %d is not a [field, operator, value] triple", ErrMalformed, i)
		}
		field, ok1 := leaf[0].(string)
		operator, ok2 := leaf[1].(string)
		if !ok1 || !ok2 || !Operator(operator).Valid() {
			return fmt.Errorf("%w: invalid leaf at %d", ErrMalformed, i)
		}
		terms = append(terms, term{cond: &Condition{Field: field, Operator: Operator(operator), Value: leaf[2]}})
	}

	parsed := Expr{terms: terms}
	if _, err := parsed.tree(); err != nil {
		return err
	}
	*e = parsed
	return nil
}
