package shared

import (
	"context"
	"fmt"
	"slices"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/db"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/destination/ddl"
	"github.com/omni-data/gridline/lib/rowset"
	sqllib "github.com/omni-data/gridline/lib/sql"
)

// stagingBatchSize is the number of rows per staging INSERT statement. Both
// warehouses cap how many bind parameters a single statement may carry.
const stagingBatchSize = 500

type mergePlan struct {
	joinColumns   []string
	updateColumns []string
	insertColumns []string
}

// buildMergePlan resolves which submitted columns participate in the merge.
// Configured update and insert columns win; otherwise the submitted rows decide.
func buildMergePlan(table config.Table, rows *rowset.RowSet) (mergePlan, error) {
	columns := rows.Columns()
	for rowIdx, row := range rows.Rows() {
		for _, keyColumn := range table.KeyColumns {
			if rowset.NormalizeValue(row[keyColumn]) == nil {
				return mergePlan{}, destination.MissingKeyError{Row: rowIdx, Column: keyColumn}
			}
		}
	}

	updateColumns := table.UpdateColumns
	if len(updateColumns) == 0 {
		for _, column := range columns {
			if !table.IsKeyColumn(column) {
				updateColumns = append(updateColumns, column)
			}
		}
	} else {
		for _, column := range updateColumns {
			if !slices.Contains(columns, column) {
				return mergePlan{}, destination.UnknownColumnError{Column: column}
			}
		}
	}

	insertColumns := table.InsertColumns
	if len(insertColumns) == 0 {
		insertColumns = columns
	} else {
		for _, column := range insertColumns {
			if !slices.Contains(columns, column) {
				return mergePlan{}, destination.UnknownColumnError{Column: column}
			}
		}
	}

	return mergePlan{
		joinColumns:   table.KeyColumns,
		updateColumns: updateColumns,
		insertColumns: insertColumns,
	}, nil
}

// Merge stages the submitted rows into a uniquely named staging table and
// merges them into the target. The staging load and the merge run inside one
// transaction; the staging DDL does not since both warehouses autocommit DDL.
func Merge(ctx context.Context, warehouse destination.Warehouse, table config.Table, rows *rowset.RowSet) (destination.MergeResult, error) {
	if rows.NumRows() == 0 {
		return destination.MergeResult{Skipped: true}, nil
	}

	plan, err := buildMergePlan(table, rows)
	if err != nil {
		return destination.MergeResult{}, err
	}

	// Column names arrive from the grid form, so they only become identifiers
	// after the target table has vouched for them.
	tableColumns, err := warehouse.DescribeTable(ctx, table)
	if err != nil {
		return destination.MergeResult{}, err
	}

	for _, column := range rows.Columns() {
		if !slices.Contains(tableColumns, column) {
			return destination.MergeResult{}, destination.UnknownColumnError{Column: column}
		}
	}

	dialect := warehouse.Dialect()
	targetTableID := warehouse.IdentifierFor(table)
	stagingTableID := StagingTableID(targetTableID)

	if _, err = warehouse.ExecContext(ctx, dialect.BuildCreateStagingTableQuery(stagingTableID, targetTableID)); err != nil {
		if dialect.IsTableDoesNotExistErr(err) {
			return destination.MergeResult{}, fmt.Errorf("table %q does not exist: %w", targetTableID.FullyQualifiedName(), err)
		}

		return destination.MergeResult{}, fmt.Errorf("failed to create staging table: %w", err)
	}

	// The staging table is dropped no matter how the merge went. If the drop
	// is missed (crash, network), the name's expiry lets the sweeper catch it.
	defer func() {
		_ = ddl.DropTemporaryTable(ctx, warehouse, stagingTableID.FullyQualifiedName(), false)
	}()

	columns := rows.Columns()
	var statements []db.Statement
	for chunk := range slices.Chunk(rows.Rows(), stagingBatchSize) {
		chunkSet := rowset.New(columns, chunk)
		statements = append(statements, db.Statement{
			Query: sqllib.BuildInsertQuery(dialect, stagingTableID, columns, len(chunk)),
			Args:  chunkSet.Args(columns),
		})
	}

	mergeQueries, err := dialect.BuildMergeQueries(targetTableID, stagingTableID, plan.joinColumns, plan.updateColumns, plan.insertColumns)
	if err != nil {
		return destination.MergeResult{}, fmt.Errorf("failed to build merge queries: %w", err)
	}

	for _, mergeQuery := range mergeQueries {
		statements = append(statements, db.Statement{Query: mergeQuery})
	}

	if err = db.ExecStatements(ctx, warehouse, statements); err != nil {
		return destination.MergeResult{}, fmt.Errorf("failed to merge: %w", err)
	}

	return destination.MergeResult{
		RowsStaged:   rows.NumRows(),
		StagingTable: stagingTableID.FullyQualifiedName(),
	}, nil
}
