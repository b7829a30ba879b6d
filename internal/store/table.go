package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/filmdb/movies-api/internal/common"
)

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how an entity of type T maps onto a table with an
// auto-generated id column.
type Table[T any] struct {
	Name string
	// Columns lists the mutable columns in insert/update order. The id column is implicit.
	Columns []string
	// OrderBy is appended to List when set, e.g. "id ASC".
	OrderBy string
	// Scan reads id followed by Columns.
	Scan func(s Scanner) (T, error)
	// Values returns the values for Columns.
	Values func(v T) []any
	// WithID returns v carrying the generated id.
	WithID func(v T, id int64) T
}

// Store is the CRUD primitive for one table. Update and Delete report the
// number of affected rows; a missing id is 0, not an error.
type Store[T any] struct {
	db      DBTX
	table   Table[T]
	listSQL string
	getSQL  string
	insSQL  string
	updSQL  string
	delSQL  string
	unique  func(error) bool
}

func NewStore[T any](db DBTX, d Dialect, t Table[T]) *Store[T] {
	cols := "id, " + strings.Join(t.Columns, ", ")

	list := fmt.Sprintf("SELECT %s FROM %s", cols, t.Name)
	if t.OrderBy != "" {
		list += " ORDER BY " + t.OrderBy
	}

	params := make([]string, len(t.Columns))
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		params[i] = fmt.Sprintf("$%d", i+1)
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}

	return &Store[T]{
		db:      db,
		table:   t,
		listSQL: d.Rebind(list),
		getSQL:  d.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", cols, t.Name)),
		insSQL: d.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			t.Name, strings.Join(t.Columns, ", "), strings.Join(params, ", "))),
		updSQL: d.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
			t.Name, strings.Join(sets, ", "), len(t.Columns)+1)),
		delSQL: d.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.Name)),
		unique: d.IsUniqueViolation,
	}
}

func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.listSQL)
	if err != nil {
		return nil, s.fail("list", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		v, err := s.table.Scan(rows)
		if err != nil {
			return nil, s.fail("list", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list", err)
	}
	return items, nil
}

// Get returns common.ErrNotFound when no row has the id.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	v, err := s.table.Scan(s.db.QueryRowContext(ctx, s.getSQL, id))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, common.ErrNotFound
		}
		return zero, s.fail("get", err)
	}
	return v, nil
}

func (s *Store[T]) Insert(ctx context.Context, v T) (T, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx, s.insSQL, s.table.Values(v)...).Scan(&id); err != nil {
		var zero T
		if s.unique(err) {
			return zero, common.WrapError(common.ErrConflict, fmt.Sprintf("%s: record already exists", s.table.Name), err)
		}
		return zero, s.fail("insert", err)
	}
	return s.table.WithID(v, id), nil
}

func (s *Store[T]) Update(ctx context.Context, id int64, v T) (int64, error) {
	args := append(s.table.Values(v), id)
	res, err := s.db.ExecContext(ctx, s.updSQL, args...)
	if err != nil {
		return 0, s.fail("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, s.fail("update", err)
	}
	return n, nil
}

func (s *Store[T]) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.delSQL, id)
	if err != nil {
		return 0, s.fail("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, s.fail("delete", err)
	}
	return n, nil
}

func (s *Store[T]) fail(op string, err error) error {
	return common.WrapError(common.ErrStorage, fmt.Sprintf("failed to %s %s", op, s.table.Name), err)
}
