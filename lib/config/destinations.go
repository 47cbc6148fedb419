package config

import (
	"fmt"
	"log/slog"

	"github.com/snowflakedb/gosnowflake"

	"github.com/omni-data/gridline/lib/cryptography"
	"github.com/omni-data/gridline/lib/typing"
)

func (p Postgres) DSN() string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", p.Username, p.Password, p.Host, p.Port, p.Database)
	if p.DisableSSL {
		dsn = fmt.Sprintf("%s?sslmode=disable", dsn)
	}

	return dsn
}

func (s Snowflake) ToConfig() (*gosnowflake.Config, error) {
	cfg := &gosnowflake.Config{
		Account:     s.AccountID,
		User:        s.Username,
		Warehouse:   s.Warehouse,
		Database:    s.Database,
		Schema:      s.Schema,
		Role:        s.Role,
		Region:      s.Region,
		Application: s.Application,
		Params: map[string]*string{
			// This parameter will cancel in-progress queries if connectivity is lost.
			// https://docs.snowflake.com/en/sql-reference/parameters#abort-detached-query
			"ABORT_DETACHED_QUERY": typing.ToPtr("true"),
			// This parameter must be set to prevent the auth token from expiring after 4 hours.
			// https://docs.snowflake.com/en/user-guide/session-policies#considerations
			"CLIENT_SESSION_KEEP_ALIVE": typing.ToPtr("true"),
		},
	}

	for key, value := range s.AdditionalParameters {
		cfg.Params[key] = &value
		slog.Info("Setting additional parameters for Snowflake", slog.String("key", key), slog.String("value", value))
	}

	if s.PathToPrivateKey != "" {
		key, err := cryptography.LoadRSAKey(s.PathToPrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}

		cfg.PrivateKey = key
		cfg.Authenticator = gosnowflake.AuthTypeJwt
	} else {
		cfg.Password = s.Password
	}

	if s.Host != "" {
		// If the host is specified
		cfg.Host = s.Host
		cfg.Region = ""
	}

	return cfg, nil
}
