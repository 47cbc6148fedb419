package sql

type TableIdentifier interface {
	EscapedTable() string
	Table() string
	WithTable(table string) TableIdentifier
	FullyQualifiedName() string
}

type Dialect interface {
	QuoteIdentifier(identifier string) string
	// Placeholder returns the bind variable for a 1-based argument position.
	Placeholder(position int) string
	IsTableDoesNotExistErr(err error) bool
	BuildSelectRowsQuery(tableID TableIdentifier, limit int) string
	BuildDescribeTableQuery(tableID TableIdentifier) (string, []any, error)
	// BuildCreateStagingTableQuery builds a staging table with the same shape as the target table.
	// Staging tables are regular tables, not session-scoped temporary tables, since we rely on connection pooling.
	BuildCreateStagingTableQuery(stagingTableID, targetTableID TableIdentifier) string
	BuildDropTableQuery(tableID TableIdentifier) string
	BuildMergeQueries(targetTableID, stagingTableID TableIdentifier, joinColumns, updateColumns, insertColumns []string) ([]string, error)
	BuildSweepQuery(dbName, schemaName string) (string, []any)
}
