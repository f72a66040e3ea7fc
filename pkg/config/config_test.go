package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/pkg/config"
)

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword", "la contraseña va codificada en la URL")
}

func TestLoad_DatabaseURLTienePrioridad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/cosmetics?sslmode=require")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/cosmetics?sslmode=require", cfg.DB.ConnectionString())
}

func TestLoad_SinJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("APP_STORAGE", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}
