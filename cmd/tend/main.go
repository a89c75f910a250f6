package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/adapter/cli/habit"
	"github.com/tendhq/tend/adapter/cli/journal"
	"github.com/tendhq/tend/internal/app"
	"github.com/tendhq/tend/pkg/config"
	"github.com/tendhq/tend/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// In server mode the worker usually drains the outbox; the CLI
		// only does it when told to.
		if cfg.OutboxProcessorEnabled && !cfg.UsesPostgres() {
			container.StartOutboxProcessor(ctx)
		}

		cliApp = &cli.App{
			CreateHabitHandler:      container.CreateHabitHandler,
			SetStatusHandler:        container.SetStatusHandler,
			UpdateReminderHandler:   container.UpdateReminderHandler,
			ArchiveHabitHandler:     container.ArchiveHabitHandler,
			ListHabitsHandler:       container.ListHabitsHandler,
			GetHabitHandler:         container.GetHabitHandler,
			AddGoalHandler:          container.AddGoalHandler,
			CompleteGoalHandler:     container.CompleteGoalHandler,
			RecordDeedHandler:       container.RecordDeedHandler,
			WriteReflectionHandler:  container.WriteReflectionHandler,
			GetHabitStatsHandler:    container.GetHabitStatsHandler,
			GetPeriodSummaryHandler: container.GetPeriodSummaryHandler,
		}

		ownerID, err := uuid.Parse(cfg.OwnerID)
		if err != nil {
			logger.Error("invalid TEND_OWNER_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentOwnerID(ownerID)
	}

	cli.SetApp(cliApp)

	cli.AddCommand(habit.Cmd)
	cli.AddCommand(journal.GoalCmd)
	cli.AddCommand(journal.DeedCmd)
	cli.AddCommand(journal.ReflectCmd)

	cli.Execute()
}
