package postgres

import (
	"testing"
	"time"

	"payment-portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:            "db.internal",
		Port:            5433,
		User:            "portal",
		Password:        "secret",
		DBName:          "payment_portal",
		SSLMode:         "disable",
		MaxConns:        20,
		MinConns:        5,
		ConnMaxLifetime: 30 * time.Minute,
	}

	poolCfg, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolCfg.MaxConns)
	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, "db.internal", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolCfg.ConnConfig.Port)
	assert.Equal(t, "payment_portal", poolCfg.ConnConfig.Database)
	assert.Equal(t, "portal", poolCfg.ConnConfig.User)
}

func TestPoolConfig_ZeroValuesKeepPgxDefaults(t *testing.T) {
	poolCfg, err := PoolConfig(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", DBName: "d", SSLMode: "disable"})
	require.NoError(t, err)
	assert.Positive(t, poolCfg.MaxConns)
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := PoolConfig(config.DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "not-a-mode"})
	assert.Error(t, err)
}
