// cmd/worker runs the invariant auditor on a schedule: a read-only job
// that recomputes the counter-equals-history and cap-respect properties
// for the current business date and logs any drift. It never mutates
// routing state; corrections, if any are ever needed, are a human
// decision made outside this process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/orris-inc/leadrouter/internal/application/audit"
	"github.com/orris-inc/leadrouter/internal/infrastructure/config"
	"github.com/orris-inc/leadrouter/internal/infrastructure/database"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, "")
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting invariant auditor worker", "environment", env)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	auditor := audit.NewAuditor(database.Get(), log.With("component", "audit.auditor"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() {
		runCtx, runCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer runCancel()

		if _, err := auditor.Run(runCtx); err != nil {
			log.Errorw("invariant audit run failed", "error", err)
		}
	}

	log.Infow("running initial invariant audit")
	runOnce()

	spec := cfg.Worker.AuditCronSpec
	if spec == "" {
		spec = "*/15 * * * *"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, runOnce); err != nil {
		log.Fatalw("failed to schedule invariant audit", "spec", spec, "error", err)
	}
	c.Start()
	defer c.Stop()

	log.Infow("invariant auditor worker started", "schedule", spec)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
}
