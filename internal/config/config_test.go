package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Zero(t, cfg.Redis.TTL)
	assert.Equal(t, []string{"localhost:9042"}, cfg.Cassandra.Hosts)
	assert.Equal(t, 5*time.Second, cfg.Cassandra.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Game.FrameInterval)
	assert.Equal(t, 20*time.Second, cfg.Game.AutosaveInterval)
	assert.Equal(t, time.Second, cfg.Game.StreamInterval)
	assert.Equal(t, 20.0, cfg.Game.ClickRate)
	assert.Equal(t, 40, cfg.Game.ClickBurst)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/forge.db")
	t.Setenv("CASSANDRA_HOSTS", " a:9042 , ,b:9042")
	t.Setenv("SAVE_TTL_SECONDS", "3600")
	t.Setenv("FRAME_MS", "50")
	t.Setenv("CLICK_RATE", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/tmp/forge.db", cfg.SQLitePath)
	assert.Equal(t, []string{"a:9042", "b:9042"}, cfg.Cassandra.Hosts)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.FrameInterval)
	assert.Equal(t, 7.5, cfg.Game.ClickRate)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "STORE_BACKEND", value: "postgres"},
		{key: "REDIS_DB", value: "one"},
		{key: "FRAME_MS", value: "0"},
		{key: "AUTOSAVE_SECONDS", value: "-5"},
		{key: "CLICK_RATE", value: "fast"},
		{key: "CLICK_BURST", value: "x"},
		{key: "LOG_DEBUG", value: "maybe"},
		{key: "CASSANDRA_TIMEOUT_SECONDS", value: "soon"},
		{key: "CASSANDRA_TIMEOUT_SECONDS", value: "0"},
		{key: "CASSANDRA_TIMEOUT_SECONDS", value: "-2"},
		{key: "SAVE_TTL_SECONDS", value: "-1"},
		{key: "SAVE_TTL_SECONDS", value: "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
