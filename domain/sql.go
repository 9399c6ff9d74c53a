package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned by SQL when a leaf names a field outside the allow-list.
var ErrUnknownField = errors.New("unknown domain field")

type node struct {
	op          string
	left, right *node
	cond        *Condition
}

// tree parses the prefix terms. Consecutive top-level expressions are
// joined with an implicit AND.
func (e Expr) tree() (*node, error) {
	if e.IsEmpty() {
		return nil, nil
	}

	var root *node
	for pos := 0; pos < len(e.terms); {
		n, next, err := parse(e.terms, pos)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = n
		} else {
			root = &node{op: opAnd, left: root, right: n}
		}
		pos = next
	}
	return root, nil
}

func parse(terms []term, pos int) (*node, int, error) {
	if pos >= len(terms) {
		return nil, pos, fmt.Errorf("%w: operator is missing an operand", ErrMalformed)
	}
	t := terms[pos]
	if t.cond != nil {
		return &node{cond: t.cond}, pos + 1, nil
	}

	left, pos, err := parse(terms, pos+1)
	if err != nil {
		return nil, pos, err
	}
	right, pos, err := parse(terms, pos)
	if err != nil {
		return nil, pos, err
	}
	return &node{op: t.op, left: left, right: right}, pos, nil
}

// SQL renders the expression as a parameterised WHERE clause. columns maps
// domain field names to column names; any other field is rejected. An
// empty expression renders as "1=1".
func (e Expr) SQL(columns map[string]string) (string, []any, error) {
	root, err := e.tree()
	if err != nil {
		return "", nil, err
	}
	if root == nil {
		return "1=1", nil, nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	if err := root.writeSQL(&sb, &args, columns); err != nil {
		return "", nil, err
	}
	return sb.String(), args, nil
}

func (n *node) writeSQL(sb *strings.Builder, args *[]any, columns map[string]string) error {
	if n.cond != nil {
		col, ok := columns[n.cond.Field]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, n.cond.Field)
		}
		sb.WriteString(col)
		sb.WriteString(" ")
		sb.WriteString(string(n.cond.Operator))
		sb.WriteString(" ?")
		*args = append(*args, n.cond.Value)
		return nil
	}

	joiner := " AND "
	if n.op == opOr {
		joiner = " OR "
	}
	sb.WriteString("(")
	if err := n.left.writeSQL(sb, args, columns); err != nil {
		return err
	}
	sb.WriteString(joiner)
	if err := n.right.writeSQL(sb, args, columns); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}
