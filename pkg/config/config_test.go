package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "almacen-api", cfg.App.Name)
	assert.Equal(t, "almacen", cfg.DB.DBName)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvVarsTienenPrioridad(t *testing.T) {
	t.Setenv("DB_HOST", "db.interna")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.interna", cfg.DB.Host)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	// La contraseña con caracteres especiales queda URL-encoded en el DSN.
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
	assert.Contains(t, cfg.DB.DSN(), "db.interna")
}

func TestDBConfig_DatabaseURLGana(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@host:5432/db",
		Host:        "ignorado",
	}
	assert.Equal(t, "postgres://u:p@host:5432/db", cfg.ConnectionString())
}
