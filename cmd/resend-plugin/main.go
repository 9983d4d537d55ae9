package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/example/action-plugins/internal/adapters/common"
	"github.com/example/action-plugins/internal/adapters/resend"
	"github.com/example/action-plugins/internal/config"
	"github.com/example/action-plugins/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadResend()
	if err != nil {
		fail(err)
	}

	baseLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	log := baseLogger.With().
		Str("plugin", resend.PluginName).
		Str("invocation_id", uuid.NewString()).
		Logger()

	adapter := resend.NewAdapter(cfg, log.With().Str("component", "adapter").Logger())
	dispatcher := common.NewDispatcher(cfg.Timeout, log.With().Str("component", "dispatcher").Logger())
	runner := common.NewRunner(adapter, dispatcher, log.With().Str("component", "runner").Logger())

	os.Exit(runner.Run(ctx))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "resend plugin %v\n", err)
	os.Exit(1)
}
