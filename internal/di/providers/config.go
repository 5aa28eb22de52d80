// Package providers contains dependency injection providers for versepace.
package providers

import (
	"io"
	"os"

	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/config"
	"github.com/versepace/versepace/internal/logger"
)

// CommandRead is the command that runs the terminal UI.
const CommandRead = "read"

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// LogOutputHandle owns the writer the logger writes to.
type LogOutputHandle struct {
	io.Writer
	closer io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *LogOutputHandle) Shutdown() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// ProvideLogOutput routes logs to the configured log file while the terminal
// UI owns the screen, and to stderr for every other command.
func ProvideLogOutput(i do.Injector) (*LogOutputHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	if cfg.App.Command != CommandRead {
		return &LogOutputHandle{Writer: os.Stderr}, nil
	}

	f, err := logger.OpenFile(cfg.Logger.File)
	if err != nil {
		return nil, err
	}
	return &LogOutputHandle{Writer: f, closer: f}, nil
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	out := do.MustInvoke[*LogOutputHandle](i)

	log := logger.New(logger.Config{
		Writer:      out.Writer,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
		NoColor:     out.closer != nil,
	})

	log.Info("Starting versepace",
		"environment", cfg.App.Environment,
		"command", cfg.App.Command,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.Path,
		"corpus_path", cfg.Corpus.Path,
	)

	return log, nil
}
