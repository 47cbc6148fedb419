package ddl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/destination"
)

// ShouldDeleteFromName reports whether a staging table has expired.
// Staging tables encode their expiry as a trailing unix timestamp in the table name.
func ShouldDeleteFromName(name string) bool {
	nameParts := strings.Split(name, "_")
	if len(nameParts) < 2 {
		return false
	}

	unixString := nameParts[len(nameParts)-1]
	unix, err := strconv.Atoi(unixString)
	if err != nil {
		slog.Error("Failed to parse unix string", slog.Any("err", err), slog.String("tableName", name), slog.String("unixString", unixString))
		return false
	}

	ts := time.Unix(int64(unix), 0)
	return time.Now().UTC().After(ts)
}

// DropTemporaryTable drops a staging table by its fully qualified name. It has
// a safety check that the name carries the staging prefix, anything else is
// skipped. Merge defers pass shouldReturnErr=false, a failed drop must not
// mask the merge outcome.
func DropTemporaryTable(ctx context.Context, executor destination.SQLExecutor, fqTableName string, shouldReturnErr bool) error {
	if !strings.Contains(strings.ToLower(fqTableName), constants.GridlinePrefix) {
		slog.Warn(fmt.Sprintf("Skipped dropping table: %s because it does not contain the staging prefix", fqTableName))
		return nil
	}

	if _, err := executor.ExecContext(ctx, "DROP TABLE IF EXISTS "+fqTableName); err != nil {
		slog.Warn("Failed to drop staging table, it will get swept by the TTL later...", slog.Any("err", err), slog.String("tableName", fqTableName))
		if shouldReturnErr {
			return fmt.Errorf("failed to drop staging table: %w", err)
		}
	}

	return nil
}
