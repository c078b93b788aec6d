package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Phrase is one row to seed. A nil field is stored as NULL.
type Phrase struct {
	Chinese *string
	English *string
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }

// CreatePhraseTable creates a fresh table shaped like phrases and returns its
// name, so parallel tests never see each other's rows. It is dropped via t.Cleanup.
func CreatePhraseTable(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()

	name := "phrases_" + uniqueSuffix()
	ident := pgx.Identifier{name}.Sanitize()

	if _, err := pool.Exec(ctx, `CREATE TABLE `+ident+` (LIKE phrases INCLUDING ALL)`); err != nil {
		t.Fatalf("testhelper: CreatePhraseTable: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS `+ident)
	})

	return name
}

// SeedPhrases inserts rows into table in order.
func SeedPhrases(t *testing.T, pool *pgxpool.Pool, table string, rows []Phrase) {
	t.Helper()
	ctx := context.Background()

	query := `INSERT INTO ` + pgx.Identifier{table}.Sanitize() + ` (chinese, english) VALUES ($1, $2)`
	for i, r := range rows {
		if _, err := pool.Exec(ctx, query, r.Chinese, r.English); err != nil {
			t.Fatalf("testhelper: SeedPhrases row %d: %v", i+1, err)
		}
	}
}
