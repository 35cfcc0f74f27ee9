package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg, _ := Load("")
	cfg.App.Environment = "test"

	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := validConfig()

	require.NoError(t, cfg.Validate())
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing app name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: "app.name is required",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantErr: "app.environment must be one of",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be at most",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level must be one of",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format must be one of",
		},
		{
			name:    "unknown store driver",
			mutate:  func(c *Config) { c.Store.Driver = "postgres" },
			wantErr: "store.driver must be one of",
		},
		{
			name:    "zero word length",
			mutate:  func(c *Config) { c.Words.MaxLength = 0 },
			wantErr: "words.maxlength is required",
		},
		{
			name:    "zero batch cap",
			mutate:  func(c *Config) { c.Words.MaxBatch = 0 },
			wantErr: "words.maxbatch is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DriverSpecificRules(t *testing.T) {
	t.Run("sqlite requires a DSN", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Driver = "sqlite"
		cfg.Store.SQLite.DSN = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.sqlite.dsn")
	})

	t.Run("blob requires bucket and key", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Driver = "blob"
		cfg.Store.Blob.Bucket = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.blob.bucket")

		cfg.Store.Blob.Bucket = "wordwall"
		cfg.Store.Blob.Key = ""

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.blob.key")
	})

	t.Run("memory needs nothing extra", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Driver = "memory"
		cfg.Store.SQLite.DSN = ""
		cfg.Store.Blob.Bucket = ""

		require.NoError(t, cfg.Validate())
	})
}
