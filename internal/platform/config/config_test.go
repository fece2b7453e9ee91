package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Documents.Required)
	assert.Equal(t, 10*time.Second, cfg.Documents.Timeout)
	assert.True(t, cfg.Notification.EmailEnabled)
	assert.True(t, cfg.Notification.SMSEnabled)
	assert.Equal(t, TransportLog, cfg.Notification.Transport)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Notification.KafkaBrokers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORE_DRIVER", "bogus")
	t.Setenv("DOCUMENT_REQUIRED", "true")
	t.Setenv("NOTIFY_TIMEOUT", "250ms")
	t.Setenv("NOTIFY_TRANSPORT", "KAFKA")
	t.Setenv("NOTIFY_WORKERS", "0")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("S3_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.True(t, cfg.Documents.Required)
	assert.Equal(t, 250*time.Millisecond, cfg.Notification.Timeout)
	assert.Equal(t, TransportKafka, cfg.Notification.Transport)
	assert.Equal(t, 1, cfg.Notification.Workers)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notification.KafkaBrokers)
	assert.False(t, cfg.S3.Enabled, "bucket missing should disable S3")
}
