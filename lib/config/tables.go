package config

import (
	"fmt"
	"maps"
	"slices"
)

// Table describes one destination table the grid can read and write.
// KeyColumns drive the merge join. Update and insert columns are optional
// overrides; when they are not set, the submitted rows decide.
type Table struct {
	// Name is the handle the web layer uses to address this table, defaults to the table name.
	Name     string `yaml:"name,omitempty"`
	Database string `yaml:"database,omitempty"`
	Schema   string `yaml:"schema,omitempty"`
	Table    string `yaml:"table"`

	KeyColumns    []string `yaml:"keyColumns"`
	UpdateColumns []string `yaml:"updateColumns,omitempty"`
	InsertColumns []string `yaml:"insertColumns,omitempty"`
}

func (t Table) Validate() error {
	if t.Table == "" {
		return fmt.Errorf("table is empty")
	}

	if t.Schema == "" {
		return fmt.Errorf("table %q does not have a schema set", t.Name)
	}

	if len(t.KeyColumns) == 0 {
		return fmt.Errorf("table %q does not have any key columns", t.Name)
	}

	for _, keyColumn := range t.KeyColumns {
		if keyColumn == "" {
			return fmt.Errorf("table %q has an empty key column", t.Name)
		}
	}

	// Key columns drive the merge join, so they cannot also be updated.
	for _, updateColumn := range t.UpdateColumns {
		if t.IsKeyColumn(updateColumn) {
			return fmt.Errorf("table %q has key column %q in updateColumns", t.Name, updateColumn)
		}
	}

	// The NOT MATCHED branch inserts the insert columns, leaving a key out
	// would write rows no later merge can ever match.
	if len(t.InsertColumns) > 0 {
		for _, keyColumn := range t.KeyColumns {
			if !slices.Contains(t.InsertColumns, keyColumn) {
				return fmt.Errorf("table %q is missing key column %q in insertColumns", t.Name, keyColumn)
			}
		}
	}

	return nil
}

// IsKeyColumn returns whether the column participates in the merge join.
func (t Table) IsKeyColumn(column string) bool {
	return slices.Contains(t.KeyColumns, column)
}

func (t Table) String() string {
	return fmt.Sprintf("db=%s, schema=%s, table=%s, keyColumns=%v", t.Database, t.Schema, t.Table, t.KeyColumns)
}

type DatabaseAndSchemaPair struct {
	Database string
	Schema   string
}

func GetUniqueDatabaseAndSchemaPairs(tables []Table) []DatabaseAndSchemaPair {
	seenMap := make(map[DatabaseAndSchemaPair]bool)
	for _, table := range tables {
		seenMap[DatabaseAndSchemaPair{Database: table.Database, Schema: table.Schema}] = true
	}

	return slices.Collect(maps.Keys(seenMap))
}
