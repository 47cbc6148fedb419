package shared

import (
	"context"
	"fmt"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
	"github.com/omni-data/gridline/lib/typing"
)

// DescribeTable returns the target table's column names in ordinal order.
// columnNameLabel is the name of the describe response column that carries
// the column name, which differs per destination.
func DescribeTable(ctx context.Context, warehouse destination.Warehouse, table config.Table, columnNameLabel string) ([]string, error) {
	tableID := warehouse.IdentifierFor(table)
	query, args, err := warehouse.Dialect().BuildDescribeTableQuery(tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to build describe table query: %w", err)
	}

	rows, err := warehouse.QueryContext(ctx, query, args...)
	if err != nil {
		if warehouse.Dialect().IsTableDoesNotExistErr(err) {
			return nil, fmt.Errorf("table %q does not exist: %w", tableID.FullyQualifiedName(), err)
		}

		return nil, fmt.Errorf("failed to describe table: %w", err)
	}

	describedRows, err := rowset.FromSQLRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read the describe response: %w", err)
	}

	var columns []string
	for _, row := range describedRows.Rows() {
		columnName, err := typing.AssertType[string](row[columnNameLabel])
		if err != nil {
			return nil, fmt.Errorf("failed to read %q from the describe response: %w", columnNameLabel, err)
		}

		columns = append(columns, columnName)
	}

	// Postgres does not error on a missing table, the describe query just comes back empty.
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q does not exist", tableID.FullyQualifiedName())
	}

	return columns, nil
}
