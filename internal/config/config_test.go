package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNRoundTrip(t *testing.T) {
	cfg := DBConfig{Host: "db.local", Port: "3307", User: "viewer", Password: "p@ss:word", Name: "redbus"}

	parsed, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)

	assert.Equal(t, "viewer", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3307", parsed.Addr)
	assert.Equal(t, "redbus", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, DefaultDBConfig.Host, env.DB.Host)
	assert.Equal(t, DefaultDBConfig.Name, env.DB.Name)
	assert.Empty(t, env.CORSAllowedOrigins)
	assert.Equal(t, 10.0, env.RateLimitRPS)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_HOST", "10.0.0.5")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("RATE_LIMIT_BURST", "3")

	env := LoadEnv()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, "10.0.0.5", env.DB.Host)
	assert.Equal(t, "", env.DB.Password)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, env.CORSAllowedOrigins)
	assert.Equal(t, 3, env.RateLimitBurst)
}

func TestEnsureDBWithoutConnection(t *testing.T) {
	DB = nil
	err := EnsureDB(context.Background())
	assert.ErrorIs(t, err, ErrDBNotConnected)
}

func TestEnsureDBPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	DB = db
	t.Cleanup(func() { DB = nil; db.Close() })

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("gone away"))

	assert.NoError(t, EnsureDB(context.Background()))
	assert.EqualError(t, EnsureDB(context.Background()), "gone away")
	assert.NoError(t, mock.ExpectationsWereMet())
}
