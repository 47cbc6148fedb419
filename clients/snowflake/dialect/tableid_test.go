package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableIdentifier_EscapedTable(t *testing.T) {
	tableID := NewTableIdentifier("database", "schema", "table")
	assert.Equal(t, `"TABLE"`, tableID.EscapedTable())
}

func TestTableIdentifier_Table(t *testing.T) {
	tableID := NewTableIdentifier("database", "schema", "table")
	assert.Equal(t, "table", tableID.Table())
}

func TestTableIdentifier_WithTable(t *testing.T) {
	tableID := NewTableIdentifier("database", "schema", "table")
	tableID2 := tableID.WithTable("table2")
	typedTableID2, ok := tableID2.(TableIdentifier)
	assert.True(t, ok)
	assert.Equal(t, "database", typedTableID2.Database())
	assert.Equal(t, "schema", typedTableID2.Schema())
	assert.Equal(t, "table2", typedTableID2.Table())
}

func TestTableIdentifier_FullyQualifiedName(t *testing.T) {
	// Table name that is not a reserved word
	assert.Equal(t, `"DATABASE"."SCHEMA"."FOO"`, NewTableIdentifier("database", "schema", "foo").FullyQualifiedName())

	// Table name that is a reserved word
	assert.Equal(t, `"DATABASE"."SCHEMA"."TABLE"`, NewTableIdentifier("database", "schema", "table").FullyQualifiedName())

	// Mixed casing is normalized to upper
	assert.Equal(t, `"DATABASE"."SCHEMA"."ORDERS"`, NewTableIdentifier("database", "schema", "oRdErS").FullyQualifiedName())
}
