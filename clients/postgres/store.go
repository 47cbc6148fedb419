package postgres

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/omni-data/gridline/clients/postgres/dialect"
	"github.com/omni-data/gridline/clients/shared"
	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/db"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
	sqllib "github.com/omni-data/gridline/lib/sql"
)

// describeNameCol is the column holding column names in the describe response.
const describeNameCol = "column_name"

type Store struct {
	db.Store
	cfg     config.Config
	dialect dialect.PostgresDialect
}

func (s Store) GetConfig() config.Config {
	return s.cfg
}

func (s Store) Dialect() sqllib.Dialect {
	return s.dialect
}

func (s Store) IdentifierFor(table config.Table) sqllib.TableIdentifier {
	return dialect.NewTableIdentifier(table.Schema, table.Table)
}

func (s Store) Fetch(ctx context.Context, table config.Table, limit int) (*rowset.RowSet, error) {
	return shared.Fetch(ctx, s, table, limit)
}

func (s Store) Merge(ctx context.Context, table config.Table, rows *rowset.RowSet) (destination.MergeResult, error) {
	return shared.Merge(ctx, s, table, rows)
}

func (s Store) Insert(ctx context.Context, table config.Table, row rowset.Row) error {
	return shared.Insert(ctx, s, table, row)
}

func (s Store) DescribeTable(ctx context.Context, table config.Table) ([]string, error) {
	return shared.DescribeTable(ctx, s, table, describeNameCol)
}

func (s Store) SweepStagingTables(ctx context.Context) error {
	return shared.Sweep(ctx, s)
}

func LoadStore(ctx context.Context, cfg config.Config, _store *db.Store) (Store, error) {
	if _store != nil {
		// Used for tests.
		return Store{Store: *_store, cfg: cfg, dialect: dialect.NewPostgresDialect(false)}, nil
	}

	store, err := db.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		return Store{}, err
	}

	version, err := db.RetrieveVersion(ctx, store)
	if err != nil {
		return Store{}, fmt.Errorf("failed to retrieve the postgres version: %w", err)
	}

	// MERGE shipped in Postgres 15, older servers get UPDATE + INSERT instead.
	return Store{Store: store, cfg: cfg, dialect: dialect.NewPostgresDialect(version.MajorVersion < 15)}, nil
}
