package query

import "strings"

// Condition represents a WHERE clause condition.
// next hands out the bind marker for each argument the condition adds.
type Condition interface {
	SQL(next func() string) (string, []any)
}

type eqCondition struct {
	field string
	value any
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("sku", "AMSKJ") generates "sku = $1"
func Eq(field string, value any) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(next func() string) (string, []any) {
	return c.field + " = " + next(), []any{c.value}
}

type betweenCondition struct {
	field  string
	lo, hi any
}

// Between matches lo <= field <= hi.
func Between(field string, lo, hi any) Condition {
	return &betweenCondition{field: field, lo: lo, hi: hi}
}

func (c *betweenCondition) SQL(next func() string) (string, []any) {
	lo := next()
	hi := next()
	return c.field + " BETWEEN " + lo + " AND " + hi, []any{c.lo, c.hi}
}

type containsFoldCondition struct {
	field string
	value string
}

// ContainsFold matches rows whose field contains value, ignoring case.
// LIKE wildcards in value are matched literally.
func ContainsFold(field, value string) Condition {
	return &containsFoldCondition{field: field, value: value}
}

func (c *containsFoldCondition) SQL(next func() string) (string, []any) {
	pattern := "%" + EscapeLike(c.value) + "%"
	return "LOWER(" + c.field + ") LIKE LOWER(" + next() + ") ESCAPE '!'", []any{pattern}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike escapes LIKE wildcards using '!' as the escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
