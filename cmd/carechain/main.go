package main

import (
	"context"
	"os"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/config"
	"github.com/Vinamra-Agarwal/CareChain/internal/consensus"
	"github.com/Vinamra-Agarwal/CareChain/internal/handlers/cli"
	"github.com/Vinamra-Agarwal/CareChain/internal/infra/messaging/redis"
	"github.com/Vinamra-Agarwal/CareChain/internal/node"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/resilience/retry"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		reportStartupError(ctx, "failed to load configuration", err)
		os.Exit(1)
	}

	shutdownTelemetry := telemetry.ShutdownFunc(telemetry.Noop)
	if cfg.TelemetryEnabled {
		if shutdownTelemetry, err = telemetry.Init(ctx, cfg.ServiceName); err != nil {
			reportStartupError(ctx, "failed to initialize telemetry", err)
			os.Exit(1)
		}
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		reportStartupError(ctx, "failed to initialize logger", err)
		os.Exit(1)
	}

	err = run(ctx, cfg)

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := shutdownTelemetry(flushCtx); err != nil {
		logger.Error(ctx, "failed to flush telemetry", "error", err)
	}
	cancel()

	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// reportStartupError logs err before the configured logger exists. Init is a
// no-op once the logger is set up; otherwise it installs the default
// info-level JSON logger.
func reportStartupError(ctx context.Context, msg string, err error) {
	_ = logger.Init()
	logger.Error(ctx, msg, "error", err)
	_ = logger.Sync()
}

func run(ctx context.Context, cfg config.Config) error {
	core, err := chain.New(cfg.Validators)
	if err != nil {
		logger.Error(ctx, "failed to create chain", "error", err)
		return err
	}

	var closers []func() error
	defer func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Error(ctx, "failed to close resource", "error", err)
			}
		}
	}()

	newNode := func(ctx context.Context) (node.Service, error) {
		bus, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		closers = append(closers, bus.Close)

		return node.New(core, bus, bus,
			node.WithIdempotencyGuard(bus, cfg.EventClaimTTL),
			node.WithRateLimit(cfg.IngestRateLimit),
			node.WithRetry(retry.New(
				retry.WithAttempts(cfg.PublishRetryAttempts),
				retry.WithDelay(cfg.PublishRetryDelay),
			)),
			node.WithDefaultValidator(cfg.Validators[0]),
			node.WithAutoPurge(cfg.PurgeAfterRejections),
		), nil
	}

	logger.Debug(ctx, "chain initialized",
		"chain.validators", cfg.Validators,
		"chain.quorum_threshold", consensus.QuorumThreshold(len(cfg.Validators)),
	)

	if err := cli.Run(ctx, core, newNode); err != nil {
		logger.Error(ctx, "command failed", "error", err)
		return err
	}

	return nil
}
