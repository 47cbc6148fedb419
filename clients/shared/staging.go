package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/sql"
	"github.com/omni-data/gridline/lib/stringutil"
)

// StagingTableID returns a per call unique staging table identifier next to the
// target table. The trailing unix timestamp is the expiry the sweeper checks.
func StagingTableID(tableID sql.TableIdentifier) sql.TableIdentifier {
	return StagingTableIDWithSuffix(tableID, strings.ToLower(stringutil.Random(5)))
}

func StagingTableIDWithSuffix(tableID sql.TableIdentifier, suffix string) sql.TableIdentifier {
	stagingTable := fmt.Sprintf(
		"%s_%s_%s_%d",
		tableID.Table(),
		constants.GridlinePrefix,
		suffix,
		time.Now().Add(constants.StagingTableTTL).Unix(),
	)
	return tableID.WithTable(stagingTable)
}
