package destination

import (
	"context"
	"database/sql"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/rowset"
	sqllib "github.com/omni-data/gridline/lib/sql"
)

// SQLExecutor is the slice of [db.Store] that query helpers need.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Warehouse is the interface every destination implements.
type Warehouse interface {
	GetConfig() config.Config
	Dialect() sqllib.Dialect
	IdentifierFor(table config.Table) sqllib.TableIdentifier
	IsRetryableError(err error) bool

	// Fetch returns up to limit rows from the target table, preserving column order.
	Fetch(ctx context.Context, table config.Table, limit int) (*rowset.RowSet, error)
	// Merge stages the rows into a uniquely named staging table and merges them into the target.
	Merge(ctx context.Context, table config.Table, rows *rowset.RowSet) (MergeResult, error)
	// Insert writes a single row directly into the target table.
	Insert(ctx context.Context, table config.Table, row rowset.Row) error
	// DescribeTable returns the target table's column names in ordinal order.
	DescribeTable(ctx context.Context, table config.Table) ([]string, error)
	// SweepStagingTables drops expired staging tables left behind by prior runs.
	SweepStagingTables(ctx context.Context) error

	SQLExecutor
}
