package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/period-engine/domain"
)

func between(field, from, to string) domain.Expr {
	return domain.And(
		domain.Leaf(field, domain.Gte, from),
		domain.Leaf(field, domain.Lte, to),
	)
}

func TestAnd_PrefixForm(t *testing.T) {
	e := between("date_field", "2024-01-01", "2024-12-31")

	assert.Equal(t, `["&",["date_field",">=","2024-01-01"],["date_field","<=","2024-12-31"]]`, e.String())
	assert.Equal(t, []any{
		"&",
		[]any{"date_field", ">=", "2024-01-01"},
		[]any{"date_field", "<=", "2024-12-31"},
	}, e.List())
}

func TestOr_PrependsOperators(t *testing.T) {
	q1 := between("d", "2024-01-01", "2024-03-31")
	q2 := between("d", "2024-04-01", "2024-06-30")
	q3 := between("d", "2024-07-01", "2024-09-30")

	e := domain.Or(q1, q2, q3)
	list := e.List()

	require.Len(t, list, 11)
	assert.Equal(t, "|", list[0])
	assert.Equal(t, "|", list[1])
	assert.Equal(t, "&", list[2])
	assert.Len(t, e.Conditions(), 6)
}

func TestCombine_SkipsEmpty(t *testing.T) {
	assert.True(t, domain.Or().IsEmpty())
	assert.True(t, domain.Or(domain.Expr{}, domain.Expr{}).IsEmpty())

	leaf := domain.Leaf("d", domain.Eq, "2024-01-01")
	assert.Equal(t, leaf, domain.Or(domain.Expr{}, leaf))
}

func TestJSON_RoundTrip(t *testing.T) {
	e := domain.Or(between("d", "2023-01-01", "2023-12-31"), between("d", "2024-01-01", "2024-12-31"))

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded domain.Expr
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e.List(), decoded.List())
}

func TestUnmarshal_RejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"not a list":        `{"a": 1}`,
		"unknown operator":  `["!", ["d", "=", 1]]`,
		"bad triple":        `[["d", "="]]`,
		"bad comparison":    `[["d", "like", "x"]]`,
		"dangling operator": `["&", ["d", "=", 1]]`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var e domain.Expr
			err := json.Unmarshal([]byte(input), &e)
			assert.ErrorIs(t, err, domain.ErrMalformed)
		})
	}
}

func TestSQL(t *testing.T) {
	columns := map[string]string{"date_field": "occurred_on"}
	e := domain.Or(
		between("date_field", "2024-01-01", "2024-01-31"),
		between("date_field", "2024-03-01", "2024-03-31"),
	)

	where, args, err := e.SQL(columns)
	require.NoError(t, err)
	assert.Equal(t,
		"((occurred_on >= ? AND occurred_on <= ?) OR (occurred_on >= ? AND occurred_on <= ?))",
		where)
	assert.Equal(t, []any{"2024-01-01", "2024-01-31", "2024-03-01", "2024-03-31"}, args)
}

func TestSQL_ImplicitAnd(t *testing.T) {
	var e domain.Expr
	require.NoError(t, json.Unmarshal([]byte(`[["d", ">=", "a"], ["d", "<", "b"]]`), &e))

	where, _, err := e.SQL(map[string]string{"d": "d"})
	require.NoError(t, err)
	assert.Equal(t, "(d >= ? AND d < ?)", where)
}

func TestSQL_EmptyAndUnknownField(t *testing.T) {
	where, args, err := domain.Expr{}.SQL(nil)
	require.NoError(t, err)
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)

	_, _, err = domain.Leaf("password", domain.Eq, "x").SQL(map[string]string{"d": "d"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}
