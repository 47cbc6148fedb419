package shared

import (
	"context"
	"fmt"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
)

// Fetch materializes up to limit rows from the target table, preserving the
// table's column order.
func Fetch(ctx context.Context, warehouse destination.Warehouse, table config.Table, limit int) (*rowset.RowSet, error) {
	tableID := warehouse.IdentifierFor(table)
	rows, err := warehouse.QueryContext(ctx, warehouse.Dialect().BuildSelectRowsQuery(tableID, limit))
	if err != nil {
		if warehouse.Dialect().IsTableDoesNotExistErr(err) {
			return nil, fmt.Errorf("table %q does not exist: %w", tableID.FullyQualifiedName(), err)
		}

		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	return rowset.FromSQLRows(rows)
}
