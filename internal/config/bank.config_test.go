package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8041", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "vbank.audit.events", cfg.AuditTopic)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "Vbank", cfg.BankName)
	assert.True(t, cfg.MaxTransfer.Equal(getEnvDecimal("", "10000.00")))
	assert.Equal(t, 4, cfg.PinLength)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("MAX_TRANSFER_AMOUNT", "2500.50")
	t.Setenv("TRANSACTION_PIN_LENGTH", "6")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.MaxTransfer.Equal(getEnvDecimal("", "2500.50")))
	assert.Equal(t, 6, cfg.PinLength)
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("TRANSACTION_PIN_LENGTH", "four")
	t.Setenv("MAX_TRANSFER_AMOUNT", "lots")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 4, cfg.PinLength)
	assert.True(t, cfg.MaxTransfer.Equal(getEnvDecimal("", "10000.00")))
}
