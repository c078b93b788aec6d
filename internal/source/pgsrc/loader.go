// Package pgsrc reads raw records from a PostgreSQL table. It only reads;
// nothing is written back.
package pgsrc

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/idiomset/internal/adapter/postgres"
	"github.com/heartmarshall/idiomset/internal/domain"
)

// Query selects the key and value columns of a table.
type Query struct {
	// Table may be schema-qualified ("public.phrases").
	Table       string
	KeyColumn   string
	ValueColumn string
	// OrderBy is a column name; empty keeps the table's physical order.
	OrderBy string
}

// SQL builds the SELECT statement. All identifiers are quoted.
func (q Query) SQL() (string, []any, error) {
	if q.Table == "" || q.KeyColumn == "" || q.ValueColumn == "" {
		return "", nil, fmt.Errorf("table, key column and value column are required")
	}

	b := squirrel.
		Select(ident(q.KeyColumn), ident(q.ValueColumn)).
		From(ident(q.Table)).
		PlaceholderFormat(squirrel.Dollar)
	if q.OrderBy != "" {
		b = b.OrderBy(ident(q.OrderBy))
	}
	return b.ToSql()
}

func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// Load runs q and returns one record per row in result order. NULL columns
// become empty strings, which the merge step reports as missing fields.
func Load(ctx context.Context, db postgres.Querier, q Query) ([]domain.Record, error) {
	query, args, err := q.SQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, q.Table)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var key, value *string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records)+1, err)
		}
		records = append(records, domain.Record{
			Key:      deref(key),
			Value:    deref(value),
			Position: len(records) + 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, q.Table)
	}

	return records, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
