package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"gin_mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"db_driver"`
	PostgresURL string `mapstructure:"postgres_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	LogMode     bool   `mapstructure:"db_log_mode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"auth_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type SeedConfig struct {
	StatementTimeout time.Duration `mapstructure:"seed_statement_timeout"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	Seed     SeedConfig     `mapstructure:",squash"`
	LogLevel string         `mapstructure:"log_level"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var defaults = map[string]interface{}{
	"port":                   8080,
	"gin_mode":               "",
	"cors_origins":           "http://localhost:3000",
	"db_driver":              DriverPostgres,
	"postgres_url":           "",
	"sqlite_path":            "./data/dashboard.db",
	"db_log_mode":            false,
	"auto_migrate":           true,
	"auth_secret":            "",
	"session_ttl":            "24h",
	"bcrypt_cost":            10,
	"seed_statement_timeout": "60s",
	"log_level":              "info",
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Server.CORSOrigins = splitList(v.GetString("cors_origins"))

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL environment variable is not defined")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET environment variable is not defined")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
