// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, with $n placeholders numbered in argument order.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// Condition is one predicate of a WHERE clause. Multiple conditions are
// joined with AND.
type Condition interface {
	write(w *writer)
}

// writer accumulates SQL text and the positional arguments bound to it.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) text(s ...string) {
	for _, part := range s {
		w.sql.WriteString(part)
	}
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// raw copies expr, binding each '?' to the next value of vals.
// Extra '?' are kept literally.
func (w *writer) raw(expr string, vals []any) {
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && len(vals) > 0 {
			w.bind(vals[0])
			vals = vals[1:]
			continue
		}
		w.sql.WriteByte(expr[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.write(w)
	}
}

func (w *writer) result() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) write(w *writer) {
	w.text(c.column, " = ")
	w.bind(c.value)
}

type in struct {
	column string
	values []any
}

// In matches any of values. An empty list matches nothing.
func In(column string, values []any) Condition {
	return in{column: column, values: values}
}

func (c in) write(w *writer) {
	if len(c.values) == 0 {
		w.text("1=0")
		return
	}
	w.text(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.text(", ")
		}
		w.bind(v)
	}
	w.text(")")
}

type or []Condition

// Or groups conditions in parentheses joined by OR.
func Or(conditions ...Condition) Condition {
	return or(conditions)
}

func (c or) write(w *writer) {
	if len(c) == 0 {
		w.text("1=0")
		return
	}
	w.text("(")
	for i, part := range c {
		if i > 0 {
			w.text(" OR ")
		}
		part.write(w)
	}
	w.text(")")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("querybuilder: select needs columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("querybuilder: select needs a table")
	}

	var w writer
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	return w.result()
}

type assignment struct {
	column string
	value  any
	expr   string
	raw    bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; '?' in expr binds args in order.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: args, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an UPDATE without conditions so a bad call cannot rewrite
// every row.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("querybuilder: update needs a table")
	case len(b.sets) == 0:
		return "", nil, errors.New("querybuilder: update needs at least one assignment")
	case len(b.where) == 0:
		return "", nil, errors.New("querybuilder: update needs at least one condition")
	}

	var w writer
	w.text("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.text(", ")
		}
		w.text(s.column, " = ")
		if s.raw {
			args, _ := s.value.([]any)
			w.raw(s.expr, args)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	return w.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional DELETE.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("querybuilder: delete needs a table")
	case len(b.where) == 0:
		return "", nil, errors.New("querybuilder: delete needs at least one condition")
	}

	var w writer
	w.text("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}
