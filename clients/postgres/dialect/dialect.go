package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/sql"
	"github.com/omni-data/gridline/lib/typing"
)

const describeTableQuery = `
SELECT
    c.column_name
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position;`

type PostgresDialect struct {
	disableMerge bool
}

// NewPostgresDialect returns a dialect for the given server capabilities.
// MERGE was added in Postgres 15, older servers get UPDATE + INSERT instead.
func NewPostgresDialect(disableMerge bool) PostgresDialect {
	return PostgresDialect{disableMerge: disableMerge}
}

func (PostgresDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(identifier, `"`, `""`))
}

func (PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (PostgresDialect) IsTableDoesNotExistErr(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// https://www.postgresql.org/docs/current/errcodes-appendix.html#:~:text=undefined_function-,42P01,-undefined_table
		return pgErr.Code == "42P01"
	}

	return false
}

func (PostgresDialect) BuildSelectRowsQuery(tableID sql.TableIdentifier, limit int) string {
	return sql.DefaultBuildSelectRowsQuery(tableID, limit)
}

func (PostgresDialect) BuildDescribeTableQuery(tableID sql.TableIdentifier) (string, []any, error) {
	castedTableID, err := typing.AssertType[TableIdentifier](tableID)
	if err != nil {
		return "", nil, err
	}

	return describeTableQuery, []any{castedTableID.Schema(), castedTableID.Table()}, nil
}

func (PostgresDialect) BuildCreateStagingTableQuery(stagingTableID, targetTableID sql.TableIdentifier) string {
	// Staging tables are not session scoped temporary tables, those would not
	// survive our connection pooling.
	return fmt.Sprintf("CREATE TABLE %s (LIKE %s)", stagingTableID.FullyQualifiedName(), targetTableID.FullyQualifiedName())
}

func (PostgresDialect) BuildDropTableQuery(tableID sql.TableIdentifier) string {
	return sql.DefaultBuildDropTableQuery(tableID)
}

func (pd PostgresDialect) BuildMergeQueries(
	targetTableID sql.TableIdentifier,
	stagingTableID sql.TableIdentifier,
	joinColumns []string,
	updateColumns []string,
	insertColumns []string,
) ([]string, error) {
	if pd.disableMerge {
		return pd.buildNoMergeQueries(targetTableID, stagingTableID, joinColumns, updateColumns, insertColumns), nil
	}

	joinCondition := strings.Join(sql.BuildColumnComparisons(joinColumns, constants.TargetAlias, constants.StagingAlias, pd), " AND ")
	baseQuery := fmt.Sprintf(`
MERGE INTO %s AS %s USING %s AS %s ON %s`,
		targetTableID.FullyQualifiedName(), constants.TargetAlias, stagingTableID.FullyQualifiedName(), constants.StagingAlias, joinCondition,
	)

	insertQuery := fmt.Sprintf(`
WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s);`,
		strings.Join(sql.QuoteIdentifiers(insertColumns, pd), ","),
		strings.Join(sql.QuoteTableAliasColumns(constants.StagingAlias, insertColumns, pd), ","),
	)

	if len(updateColumns) == 0 {
		// Every submitted column is a key column, so a matched row has nothing to update.
		return []string{baseQuery + insertQuery}, nil
	}

	return []string{baseQuery + fmt.Sprintf(`
WHEN MATCHED THEN UPDATE SET %s`,
		sql.BuildColumnsUpdateFragment(updateColumns, constants.StagingAlias, pd),
	) + insertQuery}, nil
}

// buildNoMergeQueries builds separate UPDATE and INSERT queries for PostgreSQL
// versions that don't support the MERGE statement (prior to PostgreSQL 15).
func (pd PostgresDialect) buildNoMergeQueries(
	targetTableID sql.TableIdentifier,
	stagingTableID sql.TableIdentifier,
	joinColumns []string,
	updateColumns []string,
	insertColumns []string,
) []string {
	joinClauses := sql.BuildColumnComparisons(joinColumns, constants.TargetAlias, constants.StagingAlias, pd)

	var parts []string
	if len(updateColumns) > 0 {
		parts = append(parts, fmt.Sprintf(`UPDATE %s AS %s SET %s FROM %s AS %s WHERE %s;`,
			targetTableID.FullyQualifiedName(), constants.TargetAlias, sql.BuildColumnsUpdateFragment(updateColumns, constants.StagingAlias, pd),
			stagingTableID.FullyQualifiedName(), constants.StagingAlias, strings.Join(joinClauses, " AND "),
		))
	}

	whereClause := fmt.Sprintf("%s IS NULL", sql.QuoteTableAliasColumn(constants.TargetAlias, joinColumns[0], pd))
	parts = append(parts, fmt.Sprintf(`INSERT INTO %s (%s) SELECT %s FROM %s AS %s LEFT JOIN %s AS %s ON %s WHERE %s;`,
		targetTableID.FullyQualifiedName(), strings.Join(sql.QuoteIdentifiers(insertColumns, pd), ","),
		strings.Join(sql.QuoteTableAliasColumns(constants.StagingAlias, insertColumns, pd), ","), stagingTableID.FullyQualifiedName(), constants.StagingAlias,
		targetTableID.FullyQualifiedName(), constants.TargetAlias, strings.Join(joinClauses, " AND "),
		whereClause,
	))

	return parts
}

func (PostgresDialect) BuildSweepQuery(_ string, schemaName string) (string, []any) {
	query := `
SELECT
    table_schema, table_name
FROM
    information_schema.tables
WHERE
    table_schema = $1 AND table_name LIKE $2`

	return strings.TrimSpace(query), []any{schemaName, "%" + constants.GridlinePrefix + "%"}
}
