package rowset

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func queryMockedRows(t *testing.T, mockRows *sqlmock.Rows) *sql.Rows {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT").WillReturnRows(mockRows)
	rows, err := db.Query("SELECT * FROM customers")
	assert.NoError(t, err)
	return rows
}

func TestFromSQLRows(t *testing.T) {
	{
		// Empty result set keeps the column order.
		rs, err := FromSQLRows(queryMockedRows(t, sqlmock.NewRows([]string{"C_CUSTKEY", "C_NAME"})))
		assert.NoError(t, err)
		assert.Equal(t, []string{"C_CUSTKEY", "C_NAME"}, rs.Columns())
		assert.Zero(t, rs.NumRows())
	}
	{
		// Rows materialize in order with values keyed by column.
		mockRows := sqlmock.NewRows([]string{"C_CUSTKEY", "C_NAME"}).
			AddRow(int64(1), "Customer#001").
			AddRow(int64(2), nil)

		rs, err := FromSQLRows(queryMockedRows(t, mockRows))
		assert.NoError(t, err)
		assert.Equal(t, 2, rs.NumRows())
		assert.Equal(t, int64(1), rs.Rows()[0]["C_CUSTKEY"])
		assert.Equal(t, "Customer#001", rs.Rows()[0]["C_NAME"])
		assert.Nil(t, rs.Rows()[1]["C_NAME"])
	}
}

func TestRowSet_Args(t *testing.T) {
	rs := New([]string{"C_CUSTKEY", "C_NAME", "C_COMMENT"}, []Row{
		{"C_CUSTKEY": int64(1), "C_NAME": "Customer#001", "C_COMMENT": ""},
		{"C_CUSTKEY": int64(2), "C_NAME": "Customer#002"},
	})

	// Row major, empty and missing values bind as nil.
	assert.Equal(t, []any{
		int64(1), "Customer#001", nil,
		int64(2), "Customer#002", nil,
	}, rs.Args([]string{"C_CUSTKEY", "C_NAME", "C_COMMENT"}))

	// Column subset and ordering follows the argument, not the row set.
	assert.Equal(t, []any{
		"Customer#001", int64(1),
		"Customer#002", int64(2),
	}, rs.Args([]string{"C_NAME", "C_CUSTKEY"}))
}

func TestRowSet_StringRows(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	rs := New([]string{"C_CUSTKEY", "C_NAME", "SYSTEM_UPDATE_DATE"}, []Row{
		{"C_CUSTKEY": int64(1), "C_NAME": []byte("Customer#001"), "SYSTEM_UPDATE_DATE": ts},
		{"C_CUSTKEY": int64(2), "C_NAME": nil, "SYSTEM_UPDATE_DATE": nil},
	})

	assert.Equal(t, [][]string{
		{"1", "Customer#001", "2024-01-15T09:30:00Z"},
		{"2", "", ""},
	}, rs.StringRows())
}

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, NormalizeValue(nil))
	assert.Nil(t, NormalizeValue(""))
	assert.Equal(t, "foo", NormalizeValue("foo"))
	assert.Equal(t, int64(0), NormalizeValue(int64(0)))
}
