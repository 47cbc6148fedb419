package constants

import "time"

const (
	// GridlinePrefix is embedded in every staging table name so that sweeps
	// can tell our scratch tables apart from customer tables.
	GridlinePrefix = "__gridline"

	// StagingTableTTL is how long a staging table may live before a sweep
	// is allowed to drop it. The expiry is encoded in the table name.
	StagingTableTTL = 6 * time.Hour
)

// ExporterKind is used for the telemetry package.
type ExporterKind string

const (
	Datadog ExporterKind = "datadog"
)

// TableAlias qualifies columns when a query references more than one table.
type TableAlias string

const (
	TargetAlias  TableAlias = "tgt"
	StagingAlias TableAlias = "stg"
)

type DestinationKind string

const (
	Snowflake DestinationKind = "snowflake"
	Postgres  DestinationKind = "postgres"
)

var validDestinations = []DestinationKind{
	Snowflake,
	Postgres,
}

func IsValidDestination(destination DestinationKind) bool {
	for _, validDest := range validDestinations {
		if destination == validDest {
			return true
		}
	}

	return false
}
