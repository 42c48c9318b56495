package db

import (
	"fmt"
	"os"
	"strconv"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoadPostgresConfig reads the store credentials from the environment.
// The service refuses to start without them, so missing values are an
// error here rather than a zero-value config.
func LoadPostgresConfig() (PostgresConfig, error) {
	cfg := PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     5432,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return PostgresConfig{}, fmt.Errorf("DB_PORT %q is not a number", v)
		}
		cfg.Port = p
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.Host == "" || cfg.User == "" || cfg.DBName == "" {
		return PostgresConfig{}, fmt.Errorf("DB_HOST, DB_USER and DB_NAME must be set")
	}
	return cfg, nil
}
