package config

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/numbers"
)

const (
	defaultBindAddress = ":8080"
	defaultFetchLimit  = 10
	defaultPageSize    = 25

	fetchLimitStart = 1
	// Keeping the page bounded means the grid and CSV export never buffer more
	// than one modest result set in memory.
	fetchLimitEnd = 10_000

	// defaultWritesPerMinute bounds how many upsert and insert requests the web
	// process will forward to the warehouse.
	defaultWritesPerMinute = 60
)

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Web struct {
	BindAddress string `yaml:"bindAddress"`
	// FetchLimit caps how many rows a grid load pulls from the destination.
	FetchLimit int `yaml:"fetchLimit"`
	// PageSize is how many of the fetched rows one grid page shows.
	PageSize        int `yaml:"pageSize"`
	WritesPerMinute int `yaml:"writesPerMinute"`
}

type Config struct {
	Output constants.DestinationKind `yaml:"output"`

	Snowflake *Snowflake `yaml:"snowflake,omitempty"`
	Postgres  *Postgres  `yaml:"postgres,omitempty"`

	Tables []Table `yaml:"tables"`

	Web Web `yaml:"web"`

	Reporting struct {
		Sentry *Sentry `yaml:"sentry"`
	}

	Telemetry struct {
		Metrics struct {
			Provider constants.ExporterKind `yaml:"provider"`
			Settings map[string]any         `yaml:"settings,omitempty"`
		}
	}
}

func readFileToConfig(pathToConfig string) (*Config, error) {
	file, err := os.Open(pathToConfig)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return nil, err
	}

	if config.Web.BindAddress == "" {
		config.Web.BindAddress = defaultBindAddress
	}

	if config.Web.FetchLimit == 0 {
		config.Web.FetchLimit = defaultFetchLimit
	}

	if config.Web.PageSize == 0 {
		config.Web.PageSize = defaultPageSize
	}

	if config.Web.WritesPerMinute == 0 {
		config.Web.WritesPerMinute = defaultWritesPerMinute
	}

	// Tables inherit their location from the destination block so the common
	// single-schema setup only spells it out once.
	for i, table := range config.Tables {
		switch config.Output {
		case constants.Snowflake:
			if config.Snowflake != nil {
				table.Database = cmp.Or(table.Database, config.Snowflake.Database)
				table.Schema = cmp.Or(table.Schema, config.Snowflake.Schema)
			}
		case constants.Postgres:
			if config.Postgres != nil {
				table.Database = cmp.Or(table.Database, config.Postgres.Database)
				table.Schema = cmp.Or(table.Schema, "public")
			}
		}

		table.Name = cmp.Or(table.Name, table.Table)
		config.Tables[i] = table
	}

	return &config, nil
}

// Validate checks the destination settings and every configured table.
// The destination connection itself is only checked once we dial it.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if !constants.IsValidDestination(c.Output) {
		return fmt.Errorf("invalid destination: %q", c.Output)
	}

	switch c.Output {
	case constants.Snowflake:
		if c.Snowflake == nil {
			return fmt.Errorf("snowflake config is nil")
		}

		if err := c.Snowflake.Validate(); err != nil {
			return fmt.Errorf("failed to validate snowflake config: %w", err)
		}
	case constants.Postgres:
		if c.Postgres == nil {
			return fmt.Errorf("postgres config is nil")
		}

		if err := c.Postgres.Validate(); err != nil {
			return fmt.Errorf("failed to validate postgres config: %w", err)
		}
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("no tables are configured")
	}

	seenTableNames := make(map[string]bool)
	for _, table := range c.Tables {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("failed to validate table config: %w", err)
		}

		if c.Output == constants.Snowflake && table.Database == "" {
			return fmt.Errorf("table %q does not have a database set", table.Name)
		}

		if seenTableNames[table.Name] {
			return fmt.Errorf("table name %q is configured more than once", table.Name)
		}

		seenTableNames[table.Name] = true
	}

	if !numbers.BetweenEq(fetchLimitStart, fetchLimitEnd, c.Web.FetchLimit) {
		return fmt.Errorf("fetch limit is outside of our range: %v, expected start: %v, end: %v",
			c.Web.FetchLimit, fetchLimitStart, fetchLimitEnd)
	}

	if c.Web.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %v", c.Web.PageSize)
	}

	if c.Web.WritesPerMinute <= 0 {
		return fmt.Errorf("writes per minute must be positive, got: %v", c.Web.WritesPerMinute)
	}

	return nil
}

// Table returns the configured table for a grid handle.
func (c Config) Table(name string) (Table, error) {
	for _, table := range c.Tables {
		if table.Name == name {
			return table, nil
		}
	}

	return Table{}, fmt.Errorf("table %q is not configured", name)
}
