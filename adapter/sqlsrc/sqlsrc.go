// Package sqlsrc turns SQL query results into a pull source for groupkit.
//
// To group rows, order the query by the grouping column,
// and feed the Iterator to groupkit.FromPullIter.
package sqlsrc

import (
	"context"
	"database/sql"
	"io"

	"go.llib.dev/groupkit/pkg/errorkit"
	"go.llib.dev/groupkit/pkg/logging"
)

const ErrQuery errorkit.Error = "sqlsrc: query failed"

// FromRows allow you to use the PullIter pattern with sql.Rows structure.
func FromRows[T any](rows Rows, mapper Mapper[T]) *Iterator[T] {
	return &Iterator[T]{Rows: rows, Mapper: mapper}
}

// Iterator is a PullIter over the rows of a query result.
// Each row is mapped into a T with the Mapper.
type Iterator[T any] struct {
	Rows   Rows
	Mapper Mapper[T]

	value  T
	err    error
	closed bool
}

func (i *Iterator[T]) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	return i.Rows.Close()
}

func (i *Iterator[T]) Next() bool {
	if i.err != nil || i.closed {
		return false
	}
	if !i.Rows.Next() {
		return false
	}
	v, err := i.Mapper.Map(i.Rows)
	if err != nil {
		i.err = err
		return false
	}
	i.value = v
	return true
}

func (i *Iterator[T]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Rows.Err()
}

func (i *Iterator[T]) Value() T {
	return i.value
}

type Scanner interface {
	Scan(...any) error
}

type Mapper[T any] interface {
	Map(s Scanner) (T, error)
}

type MapperFunc[T any] func(Scanner) (T, error)

func (fn MapperFunc[T]) Map(s Scanner) (T, error) { return fn(s) }

type Rows interface {
	io.Closer
	Next() bool
	Err() error
	Scan(dest ...any) error
}

// Queryable is the part of *sql.DB, *sql.Conn and *sql.Tx that Query needs.
type Queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query executes the query and returns an Iterator over its rows.
func Query[T any](ctx context.Context, db Queryable, mapper Mapper[T], query string, args ...any) (*Iterator[T], error) {
	logging.Debug(ctx, "sqlsrc: executing query", logging.Field("query", query))
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		logging.Warn(ctx, "sqlsrc: query failed", logging.Field("query", query), logging.ErrField(err))
		return nil, ErrQuery.Wrap(err)
	}
	return FromRows[T](rows, mapper), nil
}
