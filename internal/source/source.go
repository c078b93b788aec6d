// Package source loads raw records from a configured input and reports
// failures as *domain.LoadError.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/idiomset/internal/adapter/postgres"
	"github.com/heartmarshall/idiomset/internal/config"
	"github.com/heartmarshall/idiomset/internal/domain"
	"github.com/heartmarshall/idiomset/internal/source/csvsrc"
	"github.com/heartmarshall/idiomset/internal/source/jsonsrc"
	"github.com/heartmarshall/idiomset/internal/source/pgsrc"
)

// ErrNoDatabase is returned for a postgres source when no connection is available.
var ErrNoDatabase = errors.New("no database connection configured")

// Load reads every record of src in source order. db is only used by
// postgres sources and may be nil otherwise.
func Load(ctx context.Context, src config.SourceConfig, db postgres.Querier) ([]domain.Record, error) {
	var (
		records []domain.Record
		err     error
	)

	switch src.Kind {
	case config.KindJSON:
		records, err = jsonsrc.Parse(src.Path, src.KeyField, src.ValueField)
	case config.KindCSV:
		records, err = csvsrc.Parse(src.Path, src.KeyField, src.ValueField)
	case config.KindPostgres:
		if db == nil {
			return nil, domain.NewLoadError(src.Name, src.Table, ErrNoDatabase)
		}
		records, err = pgsrc.Load(ctx, db, pgsrc.Query{
			Table:       src.Table,
			KeyColumn:   src.KeyField,
			ValueColumn: src.ValueField,
			OrderBy:     src.OrderBy,
		})
		if err != nil {
			return nil, domain.NewLoadError(src.Name, src.Table, err)
		}
		return records, nil
	default:
		err = fmt.Errorf("unknown source kind %q", src.Kind)
	}

	if err != nil {
		return nil, domain.NewLoadError(src.Name, src.Path, err)
	}
	return records, nil
}
