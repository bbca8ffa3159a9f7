package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/domain/filter"
)

// Builder returns a squirrel builder with PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Columns is a whitelist mapping filter field names to SQL expressions.
type Columns map[string]string

// ColumnsOf whitelists cols under their own names, qualified with alias when set.
func ColumnsOf(alias string, cols ...string) Columns {
	out := make(Columns, len(cols))
	for _, c := range cols {
		if alias != "" {
			out[c] = alias + "." + c
		} else {
			out[c] = c
		}
	}
	return out
}

// ApplyConditions adds filter items to q. Fields outside the whitelist are rejected.
func ApplyConditions(q squirrel.SelectBuilder, items []filter.Item, cols Columns) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		col, ok := cols[item.Field]
		if !ok {
			return q, apperror.NewValidation("invalid filter field").WithDetail("field", item.Field)
		}

		switch item.Operator {
		case filter.Equal, filter.InList:
			q = q.Where(squirrel.Eq{col: item.Value})
		case filter.NotEqual, filter.NotInList:
			q = q.Where(squirrel.NotEq{col: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{col: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{col: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{col: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{col: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{col: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{col: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{col: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{col: fmt.Sprintf("%%%v%%", item.Value)})
		default:
			return q, apperror.NewValidation("invalid filter operator").
				WithDetail("field", item.Field).
				WithDetail("operator", string(item.Operator))
		}
	}
	return q, nil
}

// Search matches pattern as a case-insensitive substring of any of cols.
func Search(q squirrel.SelectBuilder, pattern string, cols ...string) squirrel.SelectBuilder {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || len(cols) == 0 {
		return q
	}
	or := make(squirrel.Or, len(cols))
	for i, c := range cols {
		or[i] = squirrel.ILike{c: "%" + pattern + "%"}
	}
	return q.Where(or)
}

// OrderBy parses "field" or "-field" against the whitelist.
func OrderBy(orderBy, fallback string, cols Columns) (string, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return fallback, nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	col, ok := cols[strings.TrimSpace(field)]
	if !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	return col + " " + direction, nil
}

// Page applies limit and offset.
func Page(q squirrel.SelectBuilder, limit, offset int) squirrel.SelectBuilder {
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}
