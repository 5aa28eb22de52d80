package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears the variables Load reads and restores them after the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "LOG_FILE", "DATA_PATH", "CORPUS_PATH",
		"CORPUS_ENCODING", "STORE_DRIVER", "SEARCH_ENABLED", "SEARCH_PERSIST",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HOME", t.TempDir())
}

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{Path: "/some/path"},
		Corpus: CorpusConfig{Path: "/some/bible.txt", Encoding: "latin1"},
		Store:  StoreConfig{Driver: StoreBadger},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"staging", func(c *Config) { c.App.Environment = "staging" }, true},
		{"production", func(c *Config) { c.App.Environment = "production" }, true},
		{"unknown env", func(c *Config) { c.App.Environment = "test" }, false},
		{"empty env", func(c *Config) { c.App.Environment = "" }, false},
		{"env is case sensitive", func(c *Config) { c.App.Environment = "DEVELOPMENT" }, false},
		{"debug level", func(c *Config) { c.Logger.Level = "debug" }, true},
		{"level case insensitive", func(c *Config) { c.Logger.Level = "WARN" }, true},
		{"unknown level", func(c *Config) { c.Logger.Level = "trace" }, false},
		{"empty data path", func(c *Config) { c.Data.Path = "" }, false},
		{"empty corpus path", func(c *Config) { c.Corpus.Path = "" }, false},
		{"windows-1252", func(c *Config) { c.Corpus.Encoding = "windows-1252" }, true},
		{"utf-8", func(c *Config) { c.Corpus.Encoding = "utf-8" }, true},
		{"unknown encoding", func(c *Config) { c.Corpus.Encoding = "ebcdic" }, false},
		{"sqlite", func(c *Config) { c.Store.Driver = StoreSQLite }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)
	home := os.Getenv("HOME")

	cfg, err := Load([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "read", cfg.App.Command)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(home, "versepace"), cfg.Data.Path)
	assert.Equal(t, filepath.Join(home, "versepace", "versepace.log"), cfg.Logger.File)
	assert.Equal(t, "bíblia sagrada.txt", filepath.Base(cfg.Corpus.Path))
	assert.True(t, filepath.IsAbs(cfg.Corpus.Path))
	assert.Equal(t, "latin1", cfg.Corpus.Encoding)
	assert.Equal(t, StoreBadger, cfg.Store.Driver)
	assert.True(t, cfg.Search.Enabled)
	assert.False(t, cfg.Search.Persist)
	assert.Empty(t, cfg.SearchPath())
	assert.Equal(t, filepath.Join(home, "versepace", "badger"), cfg.BadgerPath())
	assert.Equal(t, filepath.Join(home, "versepace", "versepace.db"), cfg.SQLitePath())
}

func TestLoad_Precedence(t *testing.T) {
	isolateEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# local overrides\n" +
		"LOG_LEVEL=debug\n" +
		"STORE_DRIVER=sqlite\n" +
		"CORPUS_ENCODING=\"utf-8\"\n" +
		"SEARCH_ENABLED=false\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Environment beats .env; flags beat both.
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load([]string{"-env-file", envFile, "-store", "badger", "-data-path", "~/notes", "status"})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, StoreBadger, cfg.Store.Driver)
	assert.Equal(t, "utf-8", cfg.Corpus.Encoding)
	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "notes"), cfg.Data.Path)
	assert.Equal(t, "status", cfg.App.Command)
}

func TestLoad_SearchPersist(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load([]string{"-env-file", "", "-search-persist", "yes", "-data-path", "/var/lib/versepace"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/lib/versepace", "search"), cfg.SearchPath())
}

func TestLoad_InvalidValues(t *testing.T) {
	isolateEnv(t)

	_, err := Load([]string{"-env-file", "", "-store", "postgres"})
	assert.Error(t, err)

	_, err = Load([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	isolateEnv(t)
	home := os.Getenv("HOME")

	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("~/books", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), got)

	got, err = expandPath("/a/b/../c", "")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)

	got, err = expandPath("relative", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("VERSEPACE_TEST_BOOL", "YES")
	assert.True(t, getBoolConfigValue("", "VERSEPACE_TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "VERSEPACE_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "VERSEPACE_TEST_UNSET", true))
}
