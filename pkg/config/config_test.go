package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.StorageDriver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 2*time.Second, cfg.Inventory.NotifierTimeout)
	assert.Equal(t, 10, cfg.Inventory.LowThreshold)
	assert.Equal(t, 5, cfg.Inventory.CriticalThreshold)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Empty(t, cfg.JWT.Secret)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("KAFKA_ENABLED", "true")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	v.Set("NOTIFIER_TIMEOUT", "500ms")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.StorageDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 500*time.Millisecond, cfg.Inventory.NotifierTimeout)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_UmbralesInconsistentes(t *testing.T) {
	v := viper.New()
	v.Set("STOCK_CRITICAL_THRESHOLD", 20)
	v.Set("STOCK_LOW_THRESHOLD", 10)
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/estoque?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
