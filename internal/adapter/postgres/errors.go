package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/idiomset/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with the table
// being read. Context errors are wrapped but not mapped.
func MapError(err error, table string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", table, err)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("table %s: %w", table, domain.ErrNotFound)
		case "42703": // undefined_column
			return fmt.Errorf("%s: %s: %w", table, pgErr.Message, domain.ErrNotFound)
		case "42501", "25006": // insufficient_privilege, read_only_sql_transaction
			return fmt.Errorf("%s: %w", table, domain.ErrPermission)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", table, err)
}
