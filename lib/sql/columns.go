package sql

import (
	"fmt"
	"strings"

	"github.com/omni-data/gridline/lib/config/constants"
)

func QuoteIdentifiers(identifiers []string, dialect Dialect) []string {
	result := make([]string, len(identifiers))
	for i, identifier := range identifiers {
		result[i] = dialect.QuoteIdentifier(identifier)
	}
	return result
}

func QuoteTableAliasColumn(tableAlias constants.TableAlias, column string, dialect Dialect) string {
	return fmt.Sprintf("%s.%s", tableAlias, dialect.QuoteIdentifier(column))
}

func QuoteTableAliasColumns(tableAlias constants.TableAlias, columns []string, dialect Dialect) []string {
	result := make([]string, len(columns))
	for i, column := range columns {
		result[i] = QuoteTableAliasColumn(tableAlias, column, dialect)
	}
	return result
}

// BuildColumnComparisons builds a list of `tgt."col" = stg."col"` fragments, one per column.
func BuildColumnComparisons(columns []string, targetAlias, stagingAlias constants.TableAlias, dialect Dialect) []string {
	result := make([]string, len(columns))
	for i, column := range columns {
		result[i] = fmt.Sprintf(
			"%s = %s",
			QuoteTableAliasColumn(targetAlias, column, dialect),
			QuoteTableAliasColumn(stagingAlias, column, dialect),
		)
	}
	return result
}

// BuildColumnsUpdateFragment returns a fragment like: "first_name"=stg."first_name","last_name"=stg."last_name".
// The left hand side is not qualified because MERGE ... UPDATE SET rejects qualified columns.
func BuildColumnsUpdateFragment(columns []string, stagingAlias constants.TableAlias, dialect Dialect) string {
	cols := make([]string, len(columns))
	for i, column := range columns {
		cols[i] = fmt.Sprintf("%s=%s", dialect.QuoteIdentifier(column), QuoteTableAliasColumn(stagingAlias, column, dialect))
	}

	return strings.Join(cols, ",")
}
