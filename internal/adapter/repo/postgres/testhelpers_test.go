package postgres_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// rowStub implements pgx.Row
type rowStub struct{ scan func(dest ...any) error }

func (r rowStub) Scan(dest ...any) error { return r.scan(dest...) }

// poolStub implements postgres.PgxPool for tests. Shared across *_test.go
// files so repos can be exercised without a database.
type poolStub struct {
	execTag  pgconn.CommandTag
	execErr  error
	execSQL  string
	execArgs []any
	row      rowStub
	queryErr error
	rows     *rowsStub
	querySQL string
}

func (p *poolStub) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = sql
	p.execArgs = args
	return p.execTag, p.execErr
}

func (p *poolStub) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	p.querySQL = sql
	if p.row.scan == nil {
		return rowStub{scan: func(_ ...any) error { return errors.New("no row configured") }}
	}
	return p.row
}

func (p *poolStub) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	p.querySQL = sql
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	if p.rows == nil {
		return &rowsStub{}, nil
	}
	return p.rows, nil
}

// rowsStub implements pgx.Rows over a fixed set of scan funcs.
type rowsStub struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (r *rowsStub) Close()                                       {}
func (r *rowsStub) Err() error                                   { return r.err }
func (r *rowsStub) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rowsStub) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rowsStub) Next() bool {
	if r.idx < len(r.scans) {
		r.idx++
		return true
	}
	return false
}
func (r *rowsStub) Scan(dest ...any) error      { return r.scans[r.idx-1](dest...) }
func (r *rowsStub) Values() ([]any, error)      { return nil, nil }
func (r *rowsStub) RawValues() [][]byte         { return nil }
func (r *rowsStub) Conn() *pgx.Conn             { return nil }
