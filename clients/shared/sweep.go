package shared

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/destination/ddl"
)

// Sweep drops expired staging tables that earlier runs left behind in the
// schemas the configured tables live in.
func Sweep(ctx context.Context, warehouse destination.Warehouse) error {
	slog.Info("Looking to see if there are any dangling staging tables to delete...")
	for _, dbAndSchemaPair := range config.GetUniqueDatabaseAndSchemaPairs(warehouse.GetConfig().Tables) {
		query, args := warehouse.Dialect().BuildSweepQuery(dbAndSchemaPair.Database, dbAndSchemaPair.Schema)
		rows, err := warehouse.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to query for staging tables: %w", err)
		}

		var tablesToDrop []config.Table
		for rows.Next() {
			var tableSchema, tableName string
			if err = rows.Scan(&tableSchema, &tableName); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan staging table name: %w", err)
			}

			if ddl.ShouldDeleteFromName(tableName) {
				tablesToDrop = append(tablesToDrop, config.Table{
					Database: dbAndSchemaPair.Database,
					Schema:   tableSchema,
					Table:    tableName,
				})
			}
		}

		if err = rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate over staging tables: %w", err)
		}

		rows.Close()

		for _, tableToDrop := range tablesToDrop {
			tableID := warehouse.IdentifierFor(tableToDrop)
			if err = ddl.DropTemporaryTable(ctx, warehouse, tableID.FullyQualifiedName(), true); err != nil {
				return err
			}
		}
	}

	return nil
}
