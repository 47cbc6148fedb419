package snowflake

import (
	"context"
	"fmt"

	"github.com/snowflakedb/gosnowflake"

	"github.com/omni-data/gridline/clients/shared"
	"github.com/omni-data/gridline/clients/snowflake/dialect"
	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/db"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
	sqllib "github.com/omni-data/gridline/lib/sql"
)

// describeNameCol is the column holding column names in the output of DESC TABLE.
const describeNameCol = "name"

type Store struct {
	db.Store
	cfg config.Config
}

func (s Store) GetConfig() config.Config {
	return s.cfg
}

func (s Store) Dialect() sqllib.Dialect {
	return dialect.SnowflakeDialect{}
}

func (s Store) IdentifierFor(table config.Table) sqllib.TableIdentifier {
	return dialect.NewTableIdentifier(table.Database, table.Schema, table.Table)
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

func LoadStore(cfg config.Config, _store *db.Store) (Store, error) {
	if _store != nil {
		// Used for tests.
		return Store{Store: *_store, cfg: cfg}, nil
	}

	snowflakeCfg, err := cfg.Snowflake.ToConfig()
	if err != nil {
		return Store{}, fmt.Errorf("failed to build snowflake config: %w", err)
	}

	dsn, err := gosnowflake.DSN(snowflakeCfg)
	if err != nil {
		return Store{}, fmt.Errorf("failed to get snowflake dsn: %w", err)
	}

	store, err := db.Open("snowflake", dsn)
	if err != nil {
		return Store{}, err
	}

	return Store{Store: store, cfg: cfg}, nil
}
