package db

import (
	"context"
	"fmt"
	"log/slog"
)

// Statement is one parameter bound query.
type Statement struct {
	Query string
	Args  []any
}

// ExecStatements runs every statement inside a single transaction so partially
// applied work rolls back together.
func ExecStatements(ctx context.Context, store Store, statements []Statement) error {
	if len(statements) == 0 {
		return fmt.Errorf("statements is empty")
	}

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start tx: %w", err)
	}

	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Warn("Unable to rollback", slog.Any("err", rollbackErr))
			}
		}
	}()

	for _, statement := range statements {
		slog.Debug("Executing...", slog.String("query", statement.Query), slog.Int("numArgs", len(statement.Args)))
		if _, err = tx.ExecContext(ctx, statement.Query, statement.Args...); err != nil {
			return fmt.Errorf("failed to execute statement: %q, err: %w", statement.Query, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit statements: %w", err)
	}

	committed = true
	return nil
}
