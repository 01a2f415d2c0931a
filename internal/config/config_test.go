package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/biocframe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := config.NewConfig()

	assert.False(t, cfg.LazyValidation)
	assert.Equal(t, 3, cfg.DisplayRows)
	assert.Equal(t, "%s (%d)", cfg.RenameFormat)
	assert.Equal(t, "left", cfg.DefaultJoin)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogEncoding)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validation(t *testing.T) {
	valid := config.NewConfig()

	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:   "valid config",
			mutate: func(*config.Config) {},
		},
		{
			name:          "non-positive display rows",
			mutate:        func(c *config.Config) { c.DisplayRows = 0 },
			expectedError: "DisplayRows must be positive, got 0",
		},
		{
			name:          "rename format without ordinal",
			mutate:        func(c *config.Config) { c.RenameFormat = "%s_dup" },
			expectedError: `RenameFormat must format a name (string) then an ordinal (int), got "%s_dup"`,
		},
		{
			name:          "rename format with swapped verbs",
			mutate:        func(c *config.Config) { c.RenameFormat = "%d (%s)" },
			expectedError: `RenameFormat must format a name (string) then an ordinal (int), got "%d (%s)"`,
		},
		{
			name:          "rename format ignoring the ordinal",
			mutate:        func(c *config.Config) { c.RenameFormat = "%[1]s_dup" },
			expectedError: `RenameFormat must format a name (string) then an ordinal (int), got "%[1]s_dup"`,
		},
		{
			name:   "rename format with explicit indexes",
			mutate: func(c *config.Config) { c.RenameFormat = "%[2]d:%[1]s" },
		},
		{
			name:          "unknown join",
			mutate:        func(c *config.Config) { c.DefaultJoin = "cross" },
			expectedError: `DefaultJoin must be one of [inner left right outer], got "cross"`,
		},
		{
			name:          "unknown log level",
			mutate:        func(c *config.Config) { c.LogLevel = "trace" },
			expectedError: `LogLevel must be one of [debug info warn error], got "trace"`,
		},
		{
			name:          "unknown encoding",
			mutate:        func(c *config.Config) { c.LogEncoding = "xml" },
			expectedError: `LogEncoding must be one of [console json], got "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectedError)
			}
		})
	}
}

func TestConfig_LoadFromJSON(t *testing.T) {
	jsonData := `{
		"lazy_validation": true,
		"display_rows": 5,
		"default_join": "outer"
	}`

	cfg, err := config.LoadFromJSON([]byte(jsonData))
	require.NoError(t, err)

	assert.True(t, cfg.LazyValidation)
	assert.Equal(t, 5, cfg.DisplayRows)
	assert.Equal(t, "outer", cfg.DefaultJoin)
	assert.Equal(t, "%s (%d)", cfg.RenameFormat)
	assert.Equal(t, "warn", cfg.LogLevel)

	_, err = config.LoadFromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "biocframe.yaml")
		content := "display_rows: 10\nrename_format: \"%s.%d\"\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := config.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.DisplayRows)
		assert.Equal(t, "%s.%d", cfg.RenameFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "left", cfg.DefaultJoin)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "biocframe.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log_encoding": "json"}`), 0o600))

		cfg, err := config.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogEncoding)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "biocframe.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

		_, err := config.LoadFromFile(path)
		assert.EqualError(t, err, "unsupported config file format: .toml")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("BIOCFRAME_LAZY_VALIDATION", "true")
	t.Setenv("BIOCFRAME_DISPLAY_ROWS", "7")
	t.Setenv("BIOCFRAME_DEFAULT_JOIN", "INNER")
	t.Setenv("BIOCFRAME_LOG_LEVEL", "Info")
	t.Setenv("BIOCFRAME_RENAME_FORMAT", "%s_%d")

	cfg := config.LoadFromEnv()
	assert.True(t, cfg.LazyValidation)
	assert.Equal(t, 7, cfg.DisplayRows)
	assert.Equal(t, "inner", cfg.DefaultJoin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "%s_%d", cfg.RenameFormat)
	assert.Equal(t, "console", cfg.LogEncoding)
}

func TestConfig_LoadFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("BIOCFRAME_DISPLAY_ROWS", "many")
	t.Setenv("BIOCFRAME_LAZY_VALIDATION", "perhaps")

	cfg := config.LoadFromEnv()
	assert.Equal(t, 3, cfg.DisplayRows)
	assert.False(t, cfg.LazyValidation)
}

func TestGlobalConfig(t *testing.T) {
	original := config.GetGlobalConfig()
	t.Cleanup(func() { config.SetGlobalConfig(original) })

	cfg := config.NewConfig()
	cfg.DisplayRows = 9
	config.SetGlobalConfig(cfg)

	assert.Equal(t, 9, config.GetGlobalConfig().DisplayRows)
}
