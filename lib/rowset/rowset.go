package rowset

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/omni-data/gridline/lib/numbers"
)

// Row is a single table row keyed by column name.
type Row map[string]any

// RowSet is a fully materialized result set that preserves column order.
type RowSet struct {
	columns []string
	rows    []Row
}

func New(columns []string, rows []Row) *RowSet {
	return &RowSet{columns: columns, rows: rows}
}

// FromSQLRows drains and closes rows.
func FromSQLRows(rows *sql.Rows) (*RowSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var parsedRows []Row
	for rows.Next() {
		row := make([]any, len(columns))
		rowPointers := make([]any, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err = rows.Scan(rowPointers...); err != nil {
			return nil, err
		}

		parsedRow := make(Row)
		for i, column := range columns {
			parsedRow[column] = row[i]
		}

		parsedRows = append(parsedRows, parsedRow)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return New(columns, parsedRows), nil
}

func (r *RowSet) Columns() []string {
	return r.columns
}

func (r *RowSet) Rows() []Row {
	return r.rows
}

func (r *RowSet) NumRows() int {
	return len(r.rows)
}

// Args flattens the rows into row-major bind arguments for the given columns.
// A missing or empty column value binds as nil so the destination stores SQL NULL.
func (r *RowSet) Args(columns []string) []any {
	args := make([]any, 0, len(r.rows)*len(columns))
	for _, row := range r.rows {
		for _, column := range columns {
			args = append(args, NormalizeValue(row[column]))
		}
	}
	return args
}

// StringRows renders every row in column order, for CSV exports and grids.
func (r *RowSet) StringRows() [][]string {
	stringRows := make([][]string, len(r.rows))
	for i, row := range r.rows {
		stringRow := make([]string, len(r.columns))
		for j, column := range r.columns {
			stringRow[j] = FormatValue(row[column])
		}
		stringRows[i] = stringRow
	}
	return stringRows
}

// NormalizeValue maps empty form values to nil so they bind as SQL NULL.
func NormalizeValue(value any) any {
	if value == nil {
		return nil
	}

	if castedValue, ok := value.(string); ok && castedValue == "" {
		return nil
	}

	return value
}

func FormatValue(value any) string {
	switch castedValue := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(castedValue)
	case time.Time:
		return castedValue.Format(time.RFC3339)
	case float64:
		return numbers.Float64ToString(castedValue)
	default:
		return fmt.Sprint(castedValue)
	}
}
