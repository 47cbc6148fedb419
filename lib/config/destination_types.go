package config

import "fmt"

type Snowflake struct {
	AccountID string `yaml:"account"`
	Username  string `yaml:"username"`
	// If pathToPrivateKey is specified, the password field will be ignored
	PathToPrivateKey string `yaml:"pathToPrivateKey,omitempty"`
	Password         string `yaml:"password,omitempty"`

	Warehouse   string `yaml:"warehouse"`
	Database    string `yaml:"database"`
	Schema      string `yaml:"schema"`
	Role        string `yaml:"role,omitempty"`
	Region      string `yaml:"region,omitempty"`
	Host        string `yaml:"host,omitempty"`
	Application string `yaml:"application,omitempty"`

	// AdditionalParameters are passed through as Snowflake session parameters.
	AdditionalParameters map[string]string `yaml:"additionalParameters,omitempty"`
}

func (s Snowflake) Validate() error {
	if s.AccountID == "" && s.Host == "" {
		return fmt.Errorf("one of account or host must be set")
	}

	if s.Username == "" {
		return fmt.Errorf("username is empty")
	}

	if s.Password == "" && s.PathToPrivateKey == "" {
		return fmt.Errorf("one of password or pathToPrivateKey must be set")
	}

	if s.Database == "" || s.Schema == "" {
		return fmt.Errorf("database and schema must be set")
	}

	return nil
}

type Postgres struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Database   string `yaml:"database"`
	DisableSSL bool   `yaml:"disableSSL,omitempty"`
}

func (p Postgres) Validate() error {
	if p.Host == "" || p.Port == 0 {
		return fmt.Errorf("host and port must be set")
	}

	if p.Username == "" || p.Database == "" {
		return fmt.Errorf("username and database must be set")
	}

	return nil
}
