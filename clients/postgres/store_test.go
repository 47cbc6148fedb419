package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/db"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
)

func ordersTable() config.Table {
	return config.Table{
		Name:       "orders",
		Database:   "db",
		Schema:     "public",
		Table:      "orders",
		KeyColumns: []string{"order_id"},
	}
}

func newTestStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	var cfg config.Config
	cfg.Output = constants.Postgres
	cfg.Tables = []config.Table{ordersTable()}

	injected := db.WrapForTest(mockDB)
	store, err := LoadStore(context.Background(), cfg, &injected)
	assert.NoError(t, err)
	return store, mock
}

func TestStore_Fetch(t *testing.T) {
	store, mock := newTestStore(t)
	{
		// Happy path.
		mock.ExpectQuery(`SELECT \* FROM "public"\."orders" LIMIT 5`).
			WillReturnRows(sqlmock.NewRows([]string{"order_id", "status"}).AddRow("1", "shipped"))

		rows, err := store.Fetch(context.Background(), ordersTable(), 5)
		assert.NoError(t, err)
		assert.Equal(t, []string{"order_id", "status"}, rows.Columns())
		assert.Equal(t, 1, rows.NumRows())
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// An undefined table maps to a friendlier error.
		mock.ExpectQuery(`SELECT \* FROM "public"\."orders" LIMIT 5`).
			WillReturnError(&pgconn.PgError{Code: "42P01"})

		_, err := store.Fetch(context.Background(), ordersTable(), 5)
		assert.ErrorContains(t, err, "does not exist")
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestStore_DescribeTable(t *testing.T) {
	store, mock := newTestStore(t)
	{
		mock.ExpectQuery(`information_schema\.columns`).
			WithArgs("public", "orders").
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
				AddRow("order_id").
				AddRow("status"))

		columns, err := store.DescribeTable(context.Background(), ordersTable())
		assert.NoError(t, err)
		assert.Equal(t, []string{"order_id", "status"}, columns)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// Postgres does not error on a missing table, the response is just empty.
		mock.ExpectQuery(`information_schema\.columns`).
			WithArgs("public", "orders").
			WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

		_, err := store.DescribeTable(context.Background(), ordersTable())
		assert.ErrorContains(t, err, "does not exist")
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestStore_Merge(t *testing.T) {
	store, mock := newTestStore(t)
	rows := rowset.New([]string{"order_id", "status"}, []rowset.Row{
		{"order_id": "1", "status": "shipped"},
		{"order_id": "2", "status": "pending"},
	})

	mock.ExpectQuery(`information_schema\.columns`).
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("order_id").
			AddRow("status"))
	mock.ExpectExec(`CREATE TABLE "public"\."orders___gridline_\w+_\d+" \(LIKE "public"\."orders"\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "public"\."orders___gridline_\w+_\d+" \("order_id","status"\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs("1", "shipped", "2", "pending").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`MERGE INTO "public"\."orders" AS tgt USING "public"\."orders___gridline_\w+_\d+" AS stg ON tgt\."order_id" = stg\."order_id"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectExec(`DROP TABLE IF EXISTS "public"\."orders___gridline_\w+_\d+"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := store.Merge(context.Background(), ordersTable(), rows)
	assert.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.RowsStaged)
	assert.Contains(t, result.StagingTable, "orders___gridline_")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Merge_RejectsUnknownColumns(t *testing.T) {
	store, mock := newTestStore(t)

	// A column the target table does not have never becomes an identifier.
	rows := rowset.New([]string{"order_id", `status"); drop table orders; --`}, []rowset.Row{
		{"order_id": "1", `status"); drop table orders; --`: "x"},
	})

	mock.ExpectQuery(`information_schema\.columns`).
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("order_id").
			AddRow("status"))

	_, err := store.Merge(context.Background(), ordersTable(), rows)
	var unknownColumnErr destination.UnknownColumnError
	assert.ErrorAs(t, err, &unknownColumnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Insert(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectQuery(`information_schema\.columns`).
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("order_id").
			AddRow("status"))
	mock.ExpectExec(`INSERT INTO "public"\."orders" \("order_id","status"\) VALUES \(\$1,\$2\)`).
		WithArgs("3", "new").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), ordersTable(), rowset.Row{"order_id": "3", "status": "new"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SweepStagingTables(t *testing.T) {
	store, mock := newTestStore(t)
	expiredTable := fmt.Sprintf("orders___gridline_abcde_%d", time.Now().Add(-1*time.Hour).Unix())

	mock.ExpectQuery(`information_schema\.tables`).
		WithArgs("public", "%__gridline%").
		WillReturnRows(sqlmock.NewRows([]string{"table_schema", "table_name"}).
			AddRow("public", expiredTable))
	mock.ExpectExec(`DROP TABLE IF EXISTS "public"\."orders___gridline_abcde_\d+"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.SweepStagingTables(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_IdentifierFor(t *testing.T) {
	store, _ := newTestStore(t)
	tableID := store.IdentifierFor(ordersTable())
	assert.Equal(t, `"public"."orders"`, tableID.FullyQualifiedName())
}
