package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

type orderBy struct {
	column    string
	direction Direction
}

// Builder constructs SQL SELECT statements with positional bind parameters.
// Every method returns a new Builder; the receiver is never modified.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderBys     []orderBy
	limitVal     int64
	hasLimit     bool
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy appends a sort column; earlier calls take precedence.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBys = append(nb.orderBys, orderBy{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return. Negative values are
// treated as zero.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = max(limit, 0)
	nb.hasLimit = true
	return nb
}

// Offset sets the number of rows to skip. Negative values skip nothing.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = max(offset, 0)
	return nb
}

// Count returns a builder for COUNT(*) over the same table and conditions.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orderBys = nil
	nb.hasLimit = false
	nb.limitVal = 0
	nb.offsetVal = 0
	return nb
}

// Build renders the statement. placeholder returns the marker for the n-th
// (1-based) argument, e.g. "$n" for Postgres or "?" for MySQL and SQLite.
func (b *Builder) Build(placeholder func(n int) string) (string, []any) {
	var sql strings.Builder
	var args []any

	n := 0
	next := func() string {
		n++
		return placeholder(n)
	}

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.whereClauses) > 0 {
		parts := make([]string, 0, len(b.whereClauses))
		for _, c := range b.whereClauses {
			fragment, condArgs := c.SQL(next)
			parts = append(parts, fragment)
			args = append(args, condArgs...)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderBys) > 0 {
		parts := make([]string, 0, len(b.orderBys))
		for _, o := range b.orderBys {
			if o.direction == Desc {
				parts = append(parts, o.column+" DESC")
			} else {
				parts = append(parts, o.column+" ASC")
			}
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	// MySQL and SQLite only accept OFFSET after a LIMIT.
	if b.hasLimit || b.offsetVal > 0 {
		limit := int64(math.MaxInt64)
		if b.hasLimit {
			limit = b.limitVal
		}
		sql.WriteString(" LIMIT ")
		sql.WriteString(next())
		args = append(args, limit)
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET ")
		sql.WriteString(next())
		args = append(args, b.offsetVal)
	}

	return sql.String(), args
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	sql, args := b.Build(func(n int) string { return "$" + strconv.Itoa(n) })
	return fmt.Sprintf("SQL: %s\nArgs: %v", sql, args)
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.selectCols = append([]string(nil), b.selectCols...)
	nb.whereClauses = append([]Condition(nil), b.whereClauses...)
	nb.orderBys = append([]orderBy(nil), b.orderBys...)
	return &nb
}
