package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampHoldDuration(t *testing.T) {
	holds := HoldConfig{
		DefaultDuration: 5 * time.Minute,
		MinDuration:     30 * time.Second,
		MaxDuration:     30 * time.Minute,
	}

	assert.Equal(t, 5*time.Minute, holds.ClampHoldDuration(0))
	assert.Equal(t, 5*time.Minute, holds.ClampHoldDuration(-time.Second))
	assert.Equal(t, 30*time.Second, holds.ClampHoldDuration(time.Second))
	assert.Equal(t, 30*time.Minute, holds.ClampHoldDuration(2*time.Hour))
	assert.Equal(t, 10*time.Minute, holds.ClampHoldDuration(10*time.Minute))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, ":"+cfg.Port, cfg.GetServerAddress())
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.NotEmpty(t, cfg.Redis.Addr)
	assert.Greater(t, cfg.Holds.MaxBatchSize, 0)
	assert.Greater(t, cfg.Sweep.BatchSize, 0)
}
