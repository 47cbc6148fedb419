package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/omni-data/gridline/lib/rowset"
)

// decodeGridSelection rebuilds a RowSet from the grid form: repeated `column`
// fields carry the column order, `selected` carries the checked row indices,
// and each cell posts as `row.<index>.<column>`. Unselected rows are ignored.
func decodeGridSelection(form url.Values) (*rowset.RowSet, error) {
	columns := form["column"]
	if len(columns) == 0 {
		return nil, fmt.Errorf("the grid did not submit any columns")
	}

	var rows []rowset.Row
	for _, rawIndex := range form["selected"] {
		index, err := strconv.Atoi(rawIndex)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q", rawIndex)
		}

		row := make(rowset.Row, len(columns))
		for _, column := range columns {
			row[column] = form.Get(fmt.Sprintf("row.%d.%s", index, column))
		}

		rows = append(rows, row)
	}

	return rowset.New(columns, rows), nil
}

// decodeInsertRow gathers the `field.<column>` inputs of the insert form.
func decodeInsertRow(form url.Values) rowset.Row {
	row := make(rowset.Row)
	for key, values := range form {
		if column, ok := strings.CutPrefix(key, "field."); ok && len(values) > 0 {
			row[column] = values[0]
		}
	}

	return row
}

func formPage(rawPage string) int {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		return 1
	}

	return page
}
