package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("AUTH_JWT_SECRET_KEY", "c29tZV9zZWNyZXQ=")
}

func TestNewConfig(t *testing.T) {
	setRequiredEnv(t)

	config, err := NewConfig("localhost:8080", []string{"http://localhost:3000"})
	assert.NoError(t, err)

	assert.Equal(t, "localhost:8080", config.ServerAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, config.AllowedOrigins)
	assert.Equal(t, []byte("some_secret"), config.Auth.SigningKey)
	assert.Equal(t, "HS256", config.Auth.Algorithm)
}

func TestNewConfig_emptyAddr(t *testing.T) {
	setRequiredEnv(t)

	_, err := NewConfig("", nil)
	assert.Error(t, err)
}

func TestDatabaseSettingsFromEnv_defaults(t *testing.T) {
	setRequiredEnv(t)

	s, err := databaseSettingsFromEnv()
	assert.NoError(t, err)

	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 5432, s.Port)
	assert.Equal(t, "lostfound", s.Name)
	assert.Equal(t, "disable", s.SSLMode)
	assert.Equal(t, 10, s.PoolSize)
	assert.Equal(t, 10, s.MaxOverflow)
	assert.Equal(t, time.Hour, s.PoolRecycle)
	assert.False(t, s.Echo)
	assert.False(t, s.DropTablesFirst)
}

func TestDatabaseSettingsFromEnv(t *testing.T) {
	tcases := []struct {
		name string
		env  map[string]string
		err  bool
	}{
		{
			name: "valid overrides",
			env: map[string]string{
				"DB_HOST":              "db.internal",
				"DB_PORT":              "6432",
				"DB_POOL_SIZE":         "5",
				"DB_DROP_TABLES_FIRST": "true",
			},
			err: false,
		},
		{
			name: "missing user",
			env:  map[string]string{"DB_USER": ""},
			err:  true,
		},
		{
			name: "missing password",
			env:  map[string]string{"DB_PASSWORD": ""},
			err:  true,
		},
		{
			name: "invalid port",
			env:  map[string]string{"DB_PORT": "not-a-port"},
			err:  true,
		},
		{
			name: "invalid drop flag",
			env:  map[string]string{"DB_DROP_TABLES_FIRST": "maybe"},
			err:  true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			s, err := databaseSettingsFromEnv()
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			assert.Equal(t, "db.internal", s.Host)
			assert.Equal(t, 6432, s.Port)
			assert.Equal(t, 5, s.PoolSize)
			assert.True(t, s.DropTablesFirst)
		})
	}
}

func TestAuthSettingsFromEnv(t *testing.T) {
	tcases := []struct {
		name string
		env  map[string]string
		err  bool
	}{
		{
			name: "valid settings",
			env:  map[string]string{"AUTH_JWT_EXPIRATION_TIME": "60"},
			err:  false,
		},
		{
			name: "missing secret",
			env:  map[string]string{"AUTH_JWT_SECRET_KEY": ""},
			err:  true,
		},
		{
			name: "invalid base64 secret",
			env:  map[string]string{"AUTH_JWT_SECRET_KEY": "not_base64!"},
			err:  true,
		},
		{
			name: "unsupported algorithm",
			env:  map[string]string{"AUTH_JWT_ALGORITHM": "RS256"},
			err:  true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			s, err := authSettingsFromEnv()
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			assert.Equal(t, []byte("some_secret"), s.SigningKey)
			assert.Equal(t, time.Hour, s.Expiration)
		})
	}
}

func TestDSN(t *testing.T) {
	s := DatabaseSettings{
		User:     "postgres",
		Password: "secret",
		Host:     "localhost",
		Port:     5432,
		Name:     "lostfound",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=lostfound sslmode=disable",
		s.DSN())
}
