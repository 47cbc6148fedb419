package shared

import (
	"context"
	"fmt"
	"slices"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
	sqllib "github.com/omni-data/gridline/lib/sql"
)

// Insert writes a single row straight into the target table. Empty form values
// bind as SQL NULL, key columns must carry a value.
func Insert(ctx context.Context, warehouse destination.Warehouse, table config.Table, row rowset.Row) error {
	columns, err := warehouse.DescribeTable(ctx, table)
	if err != nil {
		return err
	}

	insertColumns := columns
	if len(table.InsertColumns) > 0 {
		for _, column := range table.InsertColumns {
			if !slices.Contains(columns, column) {
				return destination.UnknownColumnError{Column: column}
			}
		}

		insertColumns = table.InsertColumns
	}

	for column := range row {
		if !slices.Contains(insertColumns, column) {
			return destination.UnknownColumnError{Column: column}
		}
	}

	for _, keyColumn := range table.KeyColumns {
		if rowset.NormalizeValue(row[keyColumn]) == nil {
			return destination.MissingKeyError{Row: 0, Column: keyColumn}
		}
	}

	query := sqllib.BuildInsertQuery(warehouse.Dialect(), warehouse.IdentifierFor(table), insertColumns, 1)
	args := rowset.New(insertColumns, []rowset.Row{row}).Args(insertColumns)
	if _, err = warehouse.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}

	return nil
}
