package dialect

import (
	"fmt"
	"strings"

	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/sql"
)

type SnowflakeDialect struct{}

func (sd SnowflakeDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(strings.ToUpper(identifier), `"`, `""`))
}

func (SnowflakeDialect) Placeholder(_ int) string {
	return "?"
}

// IsTableDoesNotExistErr will check if the resulting error message looks like this
// Table 'DATABASE.SCHEMA.TABLE' does not exist or not authorized. (resulting error message from DESC table)
func (SnowflakeDialect) IsTableDoesNotExistErr(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "does not exist or not authorized")
}

func (SnowflakeDialect) BuildSelectRowsQuery(tableID sql.TableIdentifier, limit int) string {
	return sql.DefaultBuildSelectRowsQuery(tableID, limit)
}

func (SnowflakeDialect) BuildDescribeTableQuery(tableID sql.TableIdentifier) (string, []any, error) {
	return fmt.Sprintf("DESC TABLE %s", tableID.FullyQualifiedName()), nil, nil
}

func (SnowflakeDialect) BuildCreateStagingTableQuery(stagingTableID, targetTableID sql.TableIdentifier) string {
	return fmt.Sprintf("CREATE TABLE %s LIKE %s", stagingTableID.FullyQualifiedName(), targetTableID.FullyQualifiedName())
}

func (SnowflakeDialect) BuildDropTableQuery(tableID sql.TableIdentifier) string {
	return sql.DefaultBuildDropTableQuery(tableID)
}

func (sd SnowflakeDialect) BuildMergeQueries(
	targetTableID sql.TableIdentifier,
	stagingTableID sql.TableIdentifier,
	joinColumns []string,
	updateColumns []string,
	insertColumns []string,
) ([]string, error) {
	equalitySQLParts := sql.BuildColumnComparisons(joinColumns, constants.TargetAlias, constants.StagingAlias, sd)
	baseQuery := fmt.Sprintf(`
MERGE INTO %s %s USING %s AS %s ON %s`,
		targetTableID.FullyQualifiedName(), constants.TargetAlias, stagingTableID.FullyQualifiedName(), constants.StagingAlias, strings.Join(equalitySQLParts, " AND "),
	)

	insertQuery := fmt.Sprintf(`
WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s);`,
		strings.Join(sql.QuoteIdentifiers(insertColumns, sd), ","),
		strings.Join(sql.QuoteTableAliasColumns(constants.StagingAlias, insertColumns, sd), ","),
	)

	if len(updateColumns) == 0 {
		// Every submitted column is a key column, so a matched row has nothing to update.
		return []string{baseQuery + insertQuery}, nil
	}

	return []string{baseQuery + fmt.Sprintf(`
WHEN MATCHED THEN UPDATE SET %s`,
		sql.BuildColumnsUpdateFragment(updateColumns, constants.StagingAlias, sd),
	) + insertQuery}, nil
}

func (SnowflakeDialect) BuildSweepQuery(dbName, schemaName string) (string, []any) {
	// ILIKE is used to be case-insensitive since Snowflake stores all the tables in UPPER.
	query := fmt.Sprintf(`
SELECT
    table_schema, table_name
FROM
    %s.information_schema.tables
WHERE
    UPPER(table_schema) = UPPER(?) AND table_name ILIKE ?`, dbName)

	return strings.TrimSpace(query), []any{schemaName, "%" + constants.GridlinePrefix + "%"}
}
