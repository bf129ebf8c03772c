package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/jmoiron/sqlx"
)

// Key is a business key. Args returns the key values in Table.KeyColumns order.
type Key interface {
	comparable
	Validate() error
	Args() []any
	String() string
}

// Record is implemented by a pointer to an entity row that embeds a key struct,
// a payload struct and State.
type Record[K Key, P any, T any] interface {
	*T
	RecordKey() K
	Payload() *P
	WorkflowState() *State
}

// ErrRecordNotFound is returned by the store when no row holds the key.
var ErrRecordNotFound = errors.New("record not found")

// Store persists entity rows of one table.
type Store[K Key, P any, T any, PT Record[K, P, T]] struct {
	table   Table
	dialect string

	queryGet          database.DBQuery
	queryGetForUpdate database.DBQuery
	queryInsert       database.DBQuery
	querySave         database.DBQuery
	queryExists       database.DBQuery
	selectColumns     string
}

// NewStore builds the queries for table using the dialect of db.
func NewStore[K Key, P any, T any, PT Record[K, P, T]](db *database.DB, table Table) *Store[K, P, T, PT] {
	cols := table.allColumns()
	selectColumns := strings.Join(cols, ", ")

	getQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s", selectColumns, table.Name, table.keyCondition())

	named := make([]string, len(cols))
	for i, col := range cols {
		named[i] = ":" + col
	}

	sets := make([]string, 0, len(table.PayloadColumns)+len(stateColumns))
	for _, col := range append(append([]string{}, table.PayloadColumns...), stateColumns...) {
		if col == "ROW_VERSION" {
			continue
		}
		sets = append(sets, col+" = :"+col)
	}

	return &Store[K, P, T, PT]{
		table:   table,
		dialect: db.Dialect(),
		queryGet: database.DBQuery{
			ID:    table.Entity + "-get",
			Query: getQuery,
		},
		queryGetForUpdate: database.DBQuery{
			ID:          table.Entity + "-get-for-update",
			Query:       getQuery + " FOR UPDATE",
			SQLiteQuery: getQuery,
		},
		queryInsert: database.DBQuery{
			ID: table.Entity + "-insert",
			Query: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				table.Name, selectColumns, strings.Join(named, ", ")),
		},
		querySave: database.DBQuery{
			ID: table.Entity + "-save",
			Query: fmt.Sprintf("UPDATE %s SET %s, ROW_VERSION = ROW_VERSION + 1 WHERE %s AND ROW_VERSION = :ROW_VERSION",
				table.Name, strings.Join(sets, ", "), table.namedKeyCondition()),
		},
		queryExists: database.DBQuery{
			ID: table.Entity + "-exists",
			Query: fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s AND %s",
				table.Name, table.keyCondition(), liveCondition),
		},
		selectColumns: selectColumns,
	}
}

// Table returns the table definition.
func (s *Store[K, P, T, PT]) Table() Table {
	return s.table
}

// Get loads the row for key in any workflow state.
func (s *Store[K, P, T, PT]) Get(ctx context.Context, q sqlx.QueryerContext, key K) (PT, error) {
	return s.get(ctx, q, s.queryGet, key)
}

// GetForUpdate loads the row for key and locks it for the rest of the transaction.
func (s *Store[K, P, T, PT]) GetForUpdate(ctx context.Context, q sqlx.QueryerContext, key K) (PT, error) {
	return s.get(ctx, q, s.queryGetForUpdate, key)
}

func (s *Store[K, P, T, PT]) get(ctx context.Context, q sqlx.QueryerContext, query database.DBQuery, key K) (PT, error) {
	var row T
	if err := sqlx.GetContext(ctx, q, &row, query.GetQuery(s.dialect), key.Args()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", s.table.Entity, key.String(), err)
	}
	return PT(&row), nil
}

// Insert writes a new row.
func (s *Store[K, P, T, PT]) Insert(ctx context.Context, e sqlx.ExtContext, rec PT) error {
	rec.WorkflowState().RowVersion = 1
	if _, err := sqlx.NamedExecContext(ctx, e, s.queryInsert.GetQuery(s.dialect), rec); err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", s.table.Entity, rec.RecordKey().String(), err)
	}
	return nil
}

// Save writes payload and workflow columns of an existing row. The write only succeeds
// when the stored row version matches the one the record was read with.
func (s *Store[K, P, T, PT]) Save(ctx context.Context, e sqlx.ExtContext, rec PT) error {
	result, err := sqlx.NamedExecContext(ctx, e, s.querySave.GetQuery(s.dialect), rec)
	if err != nil {
		return fmt.Errorf("failed to save %s %s: %w", s.table.Entity, rec.RecordKey().String(), err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save %s %s: %w", s.table.Entity, rec.RecordKey().String(), err)
	}
	if rows == 0 {
		return serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			fmt.Sprintf("%s %s was modified concurrently", s.table.Entity, rec.RecordKey().String()))
	}

	rec.WorkflowState().RowVersion++
	return nil
}

// Exists reports whether a live row holds key.
func (s *Store[K, P, T, PT]) Exists(ctx context.Context, q sqlx.QueryerContext, key K) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, s.queryExists.GetQuery(s.dialect), key.Args()...); err != nil {
		return false, fmt.Errorf("failed to check %s %s: %w", s.table.Entity, key.String(), err)
	}
	return count > 0, nil
}

// FindBy returns every row whose column equals value, in key order, regardless of workflow state.
func (s *Store[K, P, T, PT]) FindBy(ctx context.Context, q sqlx.QueryerContext, column string, value any) ([]PT, error) {
	if !s.table.hasColumn(column) {
		return nil, fmt.Errorf("unknown column %s on %s", column, s.table.Name)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", s.selectColumns, s.table.Name, column)
	query = database.BuildOrderByQuery(query, s.keyOrder()...)

	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, query, value); err != nil {
		return nil, fmt.Errorf("failed to find %s by %s: %w", s.table.Entity, column, err)
	}
	return toPointers[T, PT](rows), nil
}

// Count returns the number of rows in the given view matching lq. Paging is ignored.
func (s *Store[K, P, T, PT]) Count(ctx context.Context, q sqlx.QueryerContext, view View, lq ListQuery) (int, error) {
	where, args := s.buildConditions(view, lq)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.table.Name, where)
	if err := sqlx.GetContext(ctx, q, &total, countQuery, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.table.Entity, err)
	}
	return total, nil
}

// List returns one page of rows in the given view along with the total match count.
func (s *Store[K, P, T, PT]) List(ctx context.Context, q sqlx.QueryerContext, view View, lq ListQuery) ([]PT, int, error) {
	total, err := s.Count(ctx, q, view, lq)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []PT{}, 0, nil
	}

	where, args := s.buildConditions(view, lq)

	query := fmt.Sprintf("SELECT %s FROM %s%s", s.selectColumns, s.table.Name, where)
	query = database.BuildOrderByQuery(query, s.orderTerms(lq)...)
	query = database.BuildPaginationQuery(query, lq.PageSize, (lq.PageNumber-1)*lq.PageSize)

	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", s.table.Entity, err)
	}
	return toPointers[T, PT](rows), total, nil
}

func (s *Store[K, P, T, PT]) buildConditions(view View, lq ListQuery) (string, []any) {
	var conditions []string
	var args []any

	if view.Workflow {
		conditions = append(conditions, "IS_AUTH = ?")
		args = append(args, int(view.IsAuth))
	} else {
		conditions = append(conditions, liveCondition)
	}

	if lq.SearchTerm != "" && len(s.table.SearchColumns) > 0 {
		likes := make([]string, len(s.table.SearchColumns))
		pattern := "%" + escapeLike(lq.SearchTerm) + "%"
		for i, col := range s.table.SearchColumns {
			likes[i] = col + " LIKE ? ESCAPE '!'"
			args = append(args, pattern)
		}
		conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
	}

	for _, name := range sortedKeys(lq.Filters) {
		conditions = append(conditions, s.table.FilterColumns[name]+" = ?")
		args = append(args, lq.Filters[name])
	}

	return database.BuildWhereClause(conditions), args
}

func (s *Store[K, P, T, PT]) keyOrder() []database.OrderTerm {
	terms := make([]database.OrderTerm, len(s.table.KeyColumns))
	for i, col := range s.table.KeyColumns {
		terms[i] = database.OrderTerm{Column: col}
	}
	return terms
}

func (s *Store[K, P, T, PT]) orderTerms(lq ListQuery) []database.OrderTerm {
	keys := s.keyOrder()
	if lq.SortColumn == "" {
		if lq.SortDirection == SortDesc {
			for i := range keys {
				keys[i].Descending = true
			}
		}
		return keys
	}

	column := s.table.SortColumns[lq.SortColumn]
	terms := []database.OrderTerm{{Column: column, Descending: lq.SortDirection == SortDesc}}
	for _, k := range keys {
		if k.Column != column {
			terms = append(terms, k)
		}
	}
	return terms
}

func toPointers[T any, PT interface{ *T }](rows []T) []PT {
	out := make([]PT, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out
}

func escapeLike(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(term)
}
