// Command restake reconciles stake and unstake events into staking periods
// and measures how long they overlapped high-yield reference windows.
//
// Usage:
//
//	restake --config restake.yaml
//	restake --dataset events.yaml [--asof 1663600000] [--format json]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vadiminshakov/restake/config"
	"github.com/vadiminshakov/restake/internal/app"
	"github.com/vadiminshakov/restake/internal/report"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	settings, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summaries, err := app.Run(ctx, logger, settings.Datasets)
	if err != nil {
		logger.Fatal("failed to reconcile datasets", zap.Error(err))
	}

	if err := report.Render(os.Stdout, summaries, settings.Format); err != nil {
		logger.Fatal("failed to render report", zap.Error(err))
	}
}
