package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CONFIRM_TIMEOUT", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, "ferre_", cfg.Store.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2*time.Minute, cfg.Session.ConfirmTimeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"bad ttl", map[string]string{"SESSION_TTL": "forever"}},
		{"negative confirm timeout", map[string]string{"CONFIRM_TIMEOUT": "-1s"}},
		{"postgres without db", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "", "DB_USER": "", "DB_NAME": ""}},
		{"production default secret", map[string]string{"ENV": "production", "JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_StorageOptions(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://ferre@localhost/ferre")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.StorageOptions()
	assert.Equal(t, "postgres", opts.Driver)
	assert.Equal(t, "postgres://ferre@localhost/ferre", opts.DB.URL)
	assert.Equal(t, 2, opts.RedisDB)
}
