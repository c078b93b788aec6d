package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the read side shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
