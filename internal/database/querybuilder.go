package database

import (
	"fmt"
	"strings"
)

// OrderTerm is one column of an ORDER BY clause.
type OrderTerm struct {
	Column     string
	Descending bool
}

// BuildPaginationQuery adds LIMIT and OFFSET clauses to a query.
func BuildPaginationQuery(baseQuery string, limit, offset int) string {
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", baseQuery, limit, offset)
}

// BuildOrderByQuery adds an ORDER BY clause to a query. Column names must come from trusted input.
func BuildOrderByQuery(baseQuery string, terms ...OrderTerm) string {
	if len(terms) == 0 {
		return baseQuery
	}
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		direction := "ASC"
		if term.Descending {
			direction = "DESC"
		}
		parts = append(parts, term.Column+" "+direction)
	}
	return baseQuery + " ORDER BY " + strings.Join(parts, ", ")
}

// BuildWhereClause joins conditions with AND, returning an empty string when there are none.
func BuildWhereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
