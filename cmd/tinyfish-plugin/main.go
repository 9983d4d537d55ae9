package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/example/action-plugins/internal/adapters/common"
	"github.com/example/action-plugins/internal/adapters/tinyfish"
	"github.com/example/action-plugins/internal/config"
	"github.com/example/action-plugins/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadTinyfish()
	if err != nil {
		fail(err)
	}

	baseLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	log := baseLogger.With().
		Str("plugin", tinyfish.PluginName).
		Str("invocation_id", uuid.NewString()).
		Logger()

	adapter := tinyfish.NewAdapter(cfg, log.With().Str("component", "adapter").Logger())
	dispatcher := common.NewDispatcher(cfg.Timeout, log.With().Str("component", "dispatcher").Logger())
	runner := common.NewRunner(adapter, dispatcher, log.With().Str("component", "runner").Logger())

	os.Exit(runner.Run(ctx))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "tinyfish plugin %v\n", err)
	os.Exit(1)
}
