package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":3000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.True(t, cfg.DBReset)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.MetricsEnabled)
}

func TestPortNormalisation(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"APP_PORT": "8080"}))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
}

func TestProductionRequiresSecret(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"APP_ENV": "production"}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	cfg, err := fromViper(newViper(map[string]any{"APP_ENV": "Production", "JWT_SECRET": "s3cret"}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestInvalidSettings(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"DB_DRIVER": "mongo"}))
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	_, err = fromViper(newViper(map[string]any{"TOKEN_TTL": "0s"}))
	assert.ErrorContains(t, err, "TOKEN_TTL")
}
