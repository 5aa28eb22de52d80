// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/versepace/versepace/internal/corpus"
)

// Store drivers.
const (
	StoreBadger = "badger"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Corpus CorpusConfig
	Store  StoreConfig
	Search SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	// Command is the first non-flag argument ("read" when absent).
	Command string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
	// File receives log output while the terminal UI owns the screen
	// (default: {data}/versepace.log).
	File string
}

// DataConfig holds the location of persisted state.
type DataConfig struct {
	Path string // default: ~/versepace
}

// CorpusConfig describes the scripture source file.
type CorpusConfig struct {
	Path     string
	Encoding string // latin1 (default), windows-1252, utf-8
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Driver string // badger (default) or sqlite
}

// SearchConfig controls the verse search index.
type SearchConfig struct {
	Enabled bool // default: true
	// Persist keeps the index under {data}/search so restarts skip reindexing
	// (default: false, index lives in memory).
	Persist bool
}

// BadgerPath is the directory of the Badger database.
func (c *Config) BadgerPath() string {
	return filepath.Join(c.Data.Path, "badger")
}

// SQLitePath is the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Data.Path, "versepace.db")
}

// SearchPath is the directory of the persisted search index, or empty for
// an in-memory index.
func (c *Config) SearchPath() string {
	if !c.Search.Persist {
		return ""
	}
	return filepath.Join(c.Data.Path, "search")
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds the configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("versepace", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Log file used while the terminal UI runs")
	dataPath := fs.String("data-path", "", "Directory for saved progress (default: ~/versepace)")
	corpusPath := fs.String("corpus", "", "Path to the scripture text file")
	corpusEncoding := fs.String("encoding", "", "Corpus encoding (latin1, windows-1252, utf-8)")
	storeDriver := fs.String("store", "", "Storage backend (badger, sqlite)")
	searchEnabled := fs.String("search", "", "Enable verse search (default: true)")
	searchPersist := fs.String("search-persist", "", "Keep the search index on disk (default: false)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists. godotenv never overrides variables that
	// are already set, so real environment variables keep precedence.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			Command:     "read",
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			File:  getConfigValue(*logFile, "LOG_FILE", ""),
		},
		Data: DataConfig{
			Path: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Corpus: CorpusConfig{
			Path:     getConfigValue(*corpusPath, "CORPUS_PATH", "bíblia sagrada.txt"),
			Encoding: getConfigValue(*corpusEncoding, "CORPUS_ENCODING", corpus.EncodingLatin1),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getConfigValue(*storeDriver, "STORE_DRIVER", StoreBadger)),
		},
		Search: SearchConfig{
			Enabled: getBoolConfigValue(*searchEnabled, "SEARCH_ENABLED", true),
			Persist: getBoolConfigValue(*searchPersist, "SEARCH_PERSIST", false),
		},
	}
	if rest := fs.Args(); len(rest) > 0 {
		cfg.App.Command = rest[0]
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if cfg.Corpus.Path != "" {
		expanded, err := expandPath(cfg.Corpus.Path, "")
		if err != nil {
			return nil, fmt.Errorf("invalid corpus path: %w", err)
		}
		cfg.Corpus.Path = expanded
	}

	logPath, err := expandPath(cfg.Logger.File, filepath.Join(cfg.Data.Path, "versepace.log"))
	if err != nil {
		return nil, fmt.Errorf("invalid log file: %w", err)
	}
	cfg.Logger.File = logPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Path == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Corpus.Path == "" {
		return errors.New("corpus path is required")
	}

	if !corpus.ValidEncoding(c.Corpus.Encoding) {
		return fmt.Errorf("invalid corpus encoding: %s (must be latin1, windows-1252, or utf-8)", c.Corpus.Encoding)
	}

	if c.Store.Driver != StoreBadger && c.Store.Driver != StoreSQLite {
		return fmt.Errorf("invalid store driver: %s (must be badger or sqlite)", c.Store.Driver)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath applies the ~/versepace default and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Data.Path, filepath.Join(homeDir, "versepace"))
	if err != nil {
		return err
	}
	c.Data.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}
