package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Validate(t *testing.T) {
	{
		// Empty table
		assert.ErrorContains(t, Table{}.Validate(), "table is empty")
	}
	{
		// Missing schema
		table := Table{Name: "customers", Table: "dim_customer", KeyColumns: []string{"c_custkey"}}
		assert.ErrorContains(t, table.Validate(), `table "customers" does not have a schema set`)
	}
	{
		// Missing key columns
		table := Table{Name: "customers", Table: "dim_customer", Schema: "public"}
		assert.ErrorContains(t, table.Validate(), "does not have any key columns")
	}
	{
		// Empty key column
		table := Table{Name: "customers", Table: "dim_customer", Schema: "public", KeyColumns: []string{"c_custkey", ""}}
		assert.ErrorContains(t, table.Validate(), "has an empty key column")
	}
	{
		// Key column also listed as an update column
		table := Table{
			Name:          "customers",
			Table:         "dim_customer",
			Schema:        "public",
			KeyColumns:    []string{"c_custkey"},
			UpdateColumns: []string{"c_name", "c_custkey"},
		}
		assert.ErrorContains(t, table.Validate(), `has key column "c_custkey" in updateColumns`)
	}
	{
		// Insert columns that leave out a key column
		table := Table{
			Name:          "customers",
			Table:         "dim_customer",
			Schema:        "public",
			KeyColumns:    []string{"c_custkey", "c_nationkey"},
			InsertColumns: []string{"c_custkey", "c_name"},
		}
		assert.ErrorContains(t, table.Validate(), `is missing key column "c_nationkey" in insertColumns`)
	}
	{
		// Insert columns that carry every key column
		table := Table{
			Name:          "customers",
			Table:         "dim_customer",
			Schema:        "public",
			KeyColumns:    []string{"c_custkey"},
			InsertColumns: []string{"c_custkey", "c_name"},
		}
		assert.NoError(t, table.Validate())
	}
	{
		// Valid
		table := Table{Name: "customers", Table: "dim_customer", Schema: "public", KeyColumns: []string{"c_custkey"}}
		assert.NoError(t, table.Validate())
	}
}

func TestTable_IsKeyColumn(t *testing.T) {
	table := Table{KeyColumns: []string{"c_custkey", "c_nationkey"}}
	assert.True(t, table.IsKeyColumn("c_custkey"))
	assert.True(t, table.IsKeyColumn("c_nationkey"))
	assert.False(t, table.IsKeyColumn("c_name"))
}

func TestGetUniqueDatabaseAndSchemaPairs(t *testing.T) {
	tables := []Table{
		{Database: "shop", Schema: "public", Table: "dim_customer"},
		{Database: "shop", Schema: "public", Table: "dim_supplier"},
		{Database: "shop", Schema: "audit", Table: "events"},
	}

	pairs := GetUniqueDatabaseAndSchemaPairs(tables)
	assert.Len(t, pairs, 2)
	assert.ElementsMatch(t, []DatabaseAndSchemaPair{
		{Database: "shop", Schema: "public"},
		{Database: "shop", Schema: "audit"},
	}, pairs)
}
