package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omni-data/gridline/lib/rowset"
)

func TestDecodeGridSelection(t *testing.T) {
	{
		// No columns submitted.
		_, err := decodeGridSelection(url.Values{})
		assert.ErrorContains(t, err, "did not submit any columns")
	}
	{
		// A row index that is not a number.
		form := url.Values{
			"column":   []string{"id"},
			"selected": []string{"abc"},
		}

		_, err := decodeGridSelection(form)
		assert.ErrorContains(t, err, `invalid row index "abc"`)
	}
	{
		// Only the checked rows come back, in the order they were checked.
		form := url.Values{
			"column":       []string{"id", "status"},
			"selected":     []string{"2", "0"},
			"row.0.id":     []string{"a"},
			"row.0.status": []string{"new"},
			"row.1.id":     []string{"b"},
			"row.1.status": []string{"ignored"},
			"row.2.id":     []string{"c"},
			"row.2.status": []string{"shipped"},
		}

		rows, err := decodeGridSelection(form)
		assert.NoError(t, err)
		assert.Equal(t, []string{"id", "status"}, rows.Columns())
		assert.Equal(t, 2, rows.NumRows())
		assert.Equal(t, rowset.Row{"id": "c", "status": "shipped"}, rows.Rows()[0])
		assert.Equal(t, rowset.Row{"id": "a", "status": "new"}, rows.Rows()[1])
	}
	{
		// Nothing checked is not an error, the batch is just empty.
		rows, err := decodeGridSelection(url.Values{"column": []string{"id"}})
		assert.NoError(t, err)
		assert.Equal(t, 0, rows.NumRows())
	}
	{
		// A cell that never posted decodes as an empty string.
		form := url.Values{
			"column":   []string{"id", "status"},
			"selected": []string{"0"},
			"row.0.id": []string{"a"},
		}

		rows, err := decodeGridSelection(form)
		assert.NoError(t, err)
		assert.Equal(t, rowset.Row{"id": "a", "status": ""}, rows.Rows()[0])
	}
}

func TestDecodeInsertRow(t *testing.T) {
	{
		// No field inputs at all.
		assert.Empty(t, decodeInsertRow(url.Values{"table": []string{"orders"}}))
	}
	{
		form := url.Values{
			"table":        []string{"orders"},
			"field.id":     []string{"1"},
			"field.status": []string{""},
		}

		assert.Equal(t, rowset.Row{"id": "1", "status": ""}, decodeInsertRow(form))
	}
}

func TestFormPage(t *testing.T) {
	assert.Equal(t, 1, formPage(""))
	assert.Equal(t, 1, formPage("abc"))
	assert.Equal(t, 1, formPage("0"))
	assert.Equal(t, 1, formPage("-3"))
	assert.Equal(t, 7, formPage("7"))
}
