package workflow

import (
	"strings"
)

// Table describes how an entity maps onto its SQL table.
type Table struct {
	// Name is the SQL table name.
	Name string
	// Entity is the logical name used in logs, metrics and the audit trail.
	Entity string
	// KeyColumns are the primary key columns, in key order.
	KeyColumns []string
	// PayloadColumns are the business columns a maker may change.
	PayloadColumns []string
	// SearchColumns are matched with LIKE against the search term.
	SearchColumns []string
	// FilterColumns maps query filter names to columns matched with equality.
	FilterColumns map[string]string
	// SortColumns maps sort names to columns.
	SortColumns map[string]string
}

func (t Table) allColumns() []string {
	cols := make([]string, 0, len(t.KeyColumns)+len(t.PayloadColumns)+len(stateColumns))
	cols = append(cols, t.KeyColumns...)
	cols = append(cols, t.PayloadColumns...)
	return append(cols, stateColumns...)
}

func (t Table) keyCondition() string {
	parts := make([]string, len(t.KeyColumns))
	for i, col := range t.KeyColumns {
		parts[i] = col + " = ?"
	}
	return strings.Join(parts, " AND ")
}

func (t Table) namedKeyCondition() string {
	parts := make([]string, len(t.KeyColumns))
	for i, col := range t.KeyColumns {
		parts[i] = col + " = :" + col
	}
	return strings.Join(parts, " AND ")
}

func (t Table) hasColumn(column string) bool {
	for _, col := range t.KeyColumns {
		if col == column {
			return true
		}
	}
	for _, col := range t.PayloadColumns {
		if col == column {
			return true
		}
	}
	return false
}
