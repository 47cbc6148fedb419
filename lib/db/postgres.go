package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type Version struct {
	MajorVersion int
	MinorVersion int
}

func RetrieveVersion(ctx context.Context, store Store) (Version, error) {
	rows, err := store.QueryContext(ctx, "SELECT version()")
	if err != nil {
		return Version{}, fmt.Errorf("failed to query version: %w", err)
	}

	defer rows.Close()

	if !rows.Next() {
		return Version{}, fmt.Errorf("version query returned no rows")
	}

	var version string
	if err = rows.Scan(&version); err != nil {
		return Version{}, fmt.Errorf("failed to scan version: %w", err)
	}

	if err = rows.Err(); err != nil {
		return Version{}, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return parseVersion(version)
}

func parseVersion(versionString string) (Version, error) {
	parts := strings.Split(versionString, " ")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("invalid version string: %s", versionString)
	}

	if parts[0] != "PostgreSQL" {
		return Version{}, fmt.Errorf("invalid version string: %s", versionString)
	}

	versionParts := strings.Split(parts[1], ".")
	if len(versionParts) < 2 {
		return Version{}, fmt.Errorf("invalid version string: %s", versionString)
	}

	majorVersion, err := strconv.Atoi(versionParts[0])
	if err != nil {
		return Version{}, fmt.Errorf("failed to parse major version: %w", err)
	}

	minorVersion, err := strconv.Atoi(versionParts[1])
	if err != nil {
		return Version{}, fmt.Errorf("failed to parse minor version: %w", err)
	}

	return Version{
		MajorVersion: majorVersion,
		MinorVersion: minorVersion,
	}, nil
}
