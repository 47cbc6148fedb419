package sql

import (
	"fmt"
	"strings"
)

// DefaultBuildDropTableQuery returns the standard DROP TABLE IF EXISTS query.
// All current dialects use this exact format.
func DefaultBuildDropTableQuery(tableID TableIdentifier) string {
	return "DROP TABLE IF EXISTS " + tableID.FullyQualifiedName()
}

// DefaultBuildSelectRowsQuery returns the standard SELECT * ... LIMIT query.
// All current dialects use this exact format.
func DefaultBuildSelectRowsQuery(tableID TableIdentifier, limit int) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", tableID.FullyQualifiedName(), limit)
}

// BuildInsertQuery returns a multi-row INSERT with one bind variable per value.
func BuildInsertQuery(dialect Dialect, tableID TableIdentifier, columns []string, rowCount int) string {
	valueRows := make([]string, rowCount)
	position := 1
	for i := range rowCount {
		placeholders := make([]string, len(columns))
		for j := range columns {
			placeholders[j] = dialect.Placeholder(position)
			position++
		}

		valueRows[i] = fmt.Sprintf("(%s)", strings.Join(placeholders, ","))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		tableID.FullyQualifiedName(),
		strings.Join(QuoteIdentifiers(columns, dialect), ","),
		strings.Join(valueRows, ","),
	)
}
