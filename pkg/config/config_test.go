package config

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost, http://localhost:5173 ,")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("APP_ENV", "Production")

	cfg := New()

	assert.Equal(t, []string{"http://localhost", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.IsProduction())
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "filasling", SSLMode: "disable", ConnectTimeout: 5}
	assert.Equal(t, "postgres://u:p@db:5433/filasling?connect_timeout=5&sslmode=disable", p.DSN())
}

func TestPostgresConfig_DSNEscapesCredentials(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "fila user", Password: "p@ss/w#rd:1?", Name: "filasling", SSLMode: "disable", ConnectTimeout: 10}

	parsed, err := pgxpool.ParseConfig(p.DSN())
	require.NoError(t, err)
	assert.Equal(t, "db", parsed.ConnConfig.Host)
	assert.Equal(t, uint16(5432), parsed.ConnConfig.Port)
	assert.Equal(t, "fila user", parsed.ConnConfig.User)
	assert.Equal(t, "p@ss/w#rd:1?", parsed.ConnConfig.Password)
	assert.Equal(t, "filasling", parsed.ConnConfig.Database)
}
