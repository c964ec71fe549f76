package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "STORAGE_DRIVER", "STORAGE_KEY", "DATA_DIR", "DB_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "books", cfg.StorageKey)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 3*time.Second, cfg.DBTimeout)
	assert.True(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/shelf.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	t.Setenv("DB_TIMEOUT", "750ms")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "/tmp/shelf.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 750*time.Millisecond, cfg.DBTimeout)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "redis"}},
		{name: "postgres without dsn", env: map[string]string{"STORAGE_DRIVER": "postgres", "DB_DSN": ""}},
		{name: "negative rate", env: map[string]string{"RATE_LIMIT_RPS": "-1"}},
		{name: "blank key", env: map[string]string{"STORAGE_KEY": " "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("unparsable duration", func(t *testing.T) {
		t.Setenv("DB_TIMEOUT", "soon")
		_, err := Parse()
		assert.Error(t, err)
	})
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("STORAGE_KEY=from_file\nDATA_DIR=from_file\n"), 0644))

	t.Setenv("STORAGE_KEY", "from_env")
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("DATA_DIR")

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("STORAGE_KEY"))
	assert.Equal(t, "from_file", os.Getenv("DATA_DIR"))
}
