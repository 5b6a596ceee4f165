//go:build unit

package repository_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockDBTX is only passed through to the mocked queries; repositories must
// never run SQL on it themselves.
type mockDBTX struct{}

func (m *mockDBTX) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("mockDBTX.Exec called; route the statement through the query mock")
}

func (m *mockDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("mockDBTX.Query called; route the statement through the query mock")
}

func (m *mockDBTX) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("mockDBTX.QueryRow called; route the statement through the query mock")
}
