// Package main provides the entry point for versepace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/config"
	"github.com/versepace/versepace/internal/di"
	"github.com/versepace/versepace/internal/di/providers"
	"github.com/versepace/versepace/internal/logger"
	"github.com/versepace/versepace/internal/service"
	"github.com/versepace/versepace/internal/tui"
)

const (
	commandStatus = "status"
	commandReset  = "reset"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		injector.Shutdown()
		fmt.Fprintf(os.Stderr, "Failed to start versepace: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, injector, cfg.App.Command)
	stop()

	log.Info("Shutting down...")

	// The container closes the store and the search index in reverse order
	if report := injector.Shutdown(); report != nil && len(report.Errors) > 0 {
		log.Error("Shutdown error", "error", report)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "versepace: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, injector do.Injector, command string) error {
	svc := do.MustInvoke[*service.ReadingService](injector)

	sess, err := svc.Start(ctx)
	if err != nil {
		return err
	}

	switch command {
	case providers.CommandRead:
		var opts []tui.Option
		if index := do.MustInvoke[*providers.SearchIndexHandle](injector); index.Enabled() {
			opts = append(opts, tui.WithSearcher(index.VerseIndex))
		}
		return tui.Run(ctx, tui.New(ctx, svc, sess, opts...))
	case commandStatus:
		return writeStatus(os.Stdout, svc.Summary(sess), svc.Books(sess))
	case commandReset:
		return resetProgress(ctx, svc, sess, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q (must be %s, %s or %s)", command, providers.CommandRead, commandStatus, commandReset)
	}
}
