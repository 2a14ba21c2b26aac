package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 50, cfg.Recency.GlobalCapacity)
	assert.Equal(t, 10, cfg.Recency.CategoryCapacity)
	assert.Equal(t, 3*time.Second, cfg.Persistence.Timeout)
	assert.False(t, cfg.Events.NatsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECENCY_GLOBAL_CAPACITY", "20")
	t.Setenv("PERSIST_TIMEOUT", "750ms")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("DURABLE_STORE", "postgres")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 20, cfg.Recency.GlobalCapacity)
	assert.Equal(t, 750*time.Millisecond, cfg.Persistence.Timeout)
	assert.True(t, cfg.Events.NatsEnabled)
	assert.Equal(t, "postgres", cfg.Persistence.DurableStore)
	assert.True(t, cfg.IsProduction())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RECENCY_CATEGORY_CAPACITY", "ten")
	t.Setenv("OTEL_ENABLED", "maybe")
	t.Setenv("PERSIST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.Recency.CategoryCapacity)
	assert.False(t, cfg.App.OtelEnabled)
	assert.Equal(t, 3*time.Second, cfg.Persistence.Timeout)
}
