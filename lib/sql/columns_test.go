package sql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omni-data/gridline/lib/config/constants"
)

type testDialect struct{}

func (testDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf("%q", identifier)
}

func (testDialect) Placeholder(int) string {
	return "?"
}

func (testDialect) IsTableDoesNotExistErr(error) bool {
	return false
}

func (testDialect) BuildSelectRowsQuery(tableID TableIdentifier, limit int) string {
	return DefaultBuildSelectRowsQuery(tableID, limit)
}

func (testDialect) BuildDescribeTableQuery(TableIdentifier) (string, []any, error) {
	return "", nil, nil
}

func (testDialect) BuildCreateStagingTableQuery(_, _ TableIdentifier) string {
	return ""
}

func (testDialect) BuildDropTableQuery(tableID TableIdentifier) string {
	return DefaultBuildDropTableQuery(tableID)
}

func (testDialect) BuildMergeQueries(_, _ TableIdentifier, _, _, _ []string) ([]string, error) {
	return nil, nil
}

func (testDialect) BuildSweepQuery(string, string) (string, []any) {
	return "", nil
}

type testTableID struct {
	table string
}

func (t testTableID) EscapedTable() string {
	return fmt.Sprintf("%q", t.table)
}

func (t testTableID) Table() string {
	return t.table
}

func (t testTableID) WithTable(table string) TableIdentifier {
	return testTableID{table: table}
}

func (t testTableID) FullyQualifiedName() string {
	return "db.schema." + t.EscapedTable()
}

func TestQuoteIdentifiers(t *testing.T) {
	assert.Empty(t, QuoteIdentifiers([]string{}, testDialect{}))
	assert.Equal(t, []string{`"a"`, `"b"`, `"c"`}, QuoteIdentifiers([]string{"a", "b", "c"}, testDialect{}))
}

func TestQuoteTableAliasColumn(t *testing.T) {
	assert.Equal(t, `tgt."name"`, QuoteTableAliasColumn(constants.TargetAlias, "name", testDialect{}))
	assert.Equal(t, `stg."name"`, QuoteTableAliasColumn(constants.StagingAlias, "name", testDialect{}))
}

func TestBuildColumnComparisons(t *testing.T) {
	actual := BuildColumnComparisons([]string{"order_id", "region"}, constants.TargetAlias, constants.StagingAlias, testDialect{})
	assert.Equal(t, []string{
		`tgt."order_id" = stg."order_id"`,
		`tgt."region" = stg."region"`,
	}, actual)
}

func TestBuildColumnsUpdateFragment(t *testing.T) {
	{
		// Single column
		actual := BuildColumnsUpdateFragment([]string{"name"}, constants.StagingAlias, testDialect{})
		assert.Equal(t, `"name"=stg."name"`, actual)
	}
	{
		// Multiple columns
		actual := BuildColumnsUpdateFragment([]string{"name", "address"}, constants.StagingAlias, testDialect{})
		assert.Equal(t, `"name"=stg."name","address"=stg."address"`, actual)
	}
}
