package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseSettings holds connection and pool parameters, sourced from
// DB_-prefixed environment variables.
type DatabaseSettings struct {
	User            string
	Password        string
	Host            string
	Port            int
	Name            string
	SSLMode         string
	PoolSize        int
	MaxOverflow     int
	PoolRecycle     time.Duration
	Echo            bool
	DropTablesFirst bool
}

// DSN builds a lib/pq connection string from the settings.
func (d DatabaseSettings) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// AuthSettings holds token signing parameters, sourced from AUTH_-prefixed
// environment variables.
type AuthSettings struct {
	SigningKey []byte
	Algorithm  string
	Expiration time.Duration
}

type Config struct {
	ServerAddr     string
	AllowedOrigins []string
	Database       DatabaseSettings
	Auth           AuthSettings
}

func decodeSigningSecret(base64Secret string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64Secret)
}

func NewConfig(serverAddr string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}

	db, err := databaseSettingsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("database settings: %w", err)
	}

	auth, err := authSettingsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("auth settings: %w", err)
	}

	return &Config{
		ServerAddr:     serverAddr,
		AllowedOrigins: allowedOrigins,
		Database:       db,
		Auth:           auth,
	}, nil
}

func databaseSettingsFromEnv() (DatabaseSettings, error) {
	var s DatabaseSettings

	s.User = os.Getenv("DB_USER")
	if s.User == "" {
		return s, fmt.Errorf("DB_USER is required")
	}
	s.Password = os.Getenv("DB_PASSWORD")
	if s.Password == "" {
		return s, fmt.Errorf("DB_PASSWORD is required")
	}

	s.Host = envString("DB_HOST", "localhost")
	s.Name = envString("DB_NAME", "lostfound")
	s.SSLMode = envString("DB_SSLMODE", "disable")

	var err error
	if s.Port, err = envInt("DB_PORT", 5432); err != nil {
		return s, err
	}
	if s.PoolSize, err = envInt("DB_POOL_SIZE", 10); err != nil {
		return s, err
	}
	if s.MaxOverflow, err = envInt("DB_MAX_OVERFLOW", 10); err != nil {
		return s, err
	}

	recycleSecs, err := envInt("DB_POOL_RECYCLE", 3600)
	if err != nil {
		return s, err
	}
	s.PoolRecycle = time.Duration(recycleSecs) * time.Second

	if s.Echo, err = envBool("DB_ECHO", false); err != nil {
		return s, err
	}
	if s.DropTablesFirst, err = envBool("DB_DROP_TABLES_FIRST", false); err != nil {
		return s, err
	}

	return s, nil
}

func authSettingsFromEnv() (AuthSettings, error) {
	var s AuthSettings

	base64Secret := os.Getenv("AUTH_JWT_SECRET_KEY")
	if base64Secret == "" {
		return s, fmt.Errorf("AUTH_JWT_SECRET_KEY is required")
	}

	key, err := decodeSigningSecret(base64Secret)
	if err != nil {
		return s, fmt.Errorf("decode signing secret: %w", err)
	}
	s.SigningKey = key

	s.Algorithm = envString("AUTH_JWT_ALGORITHM", "HS256")
	if s.Algorithm != "HS256" {
		return s, fmt.Errorf("unsupported signing algorithm %q", s.Algorithm)
	}

	expMinutes, err := envInt("AUTH_JWT_EXPIRATION_TIME", 3600)
	if err != nil {
		return s, err
	}
	s.Expiration = time.Duration(expMinutes) * time.Minute

	return s, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
