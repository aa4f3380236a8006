// @title			TaskProof API
// @version		1.0
// @description	Evidence-based task compliance service for multi-branch operations.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/taskproof/taskproof/internal/config"
	"github.com/taskproof/taskproof/internal/database"
	"github.com/taskproof/taskproof/internal/handler"
	"github.com/taskproof/taskproof/internal/logger"
	"github.com/taskproof/taskproof/internal/repository"
	"github.com/taskproof/taskproof/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; all settings have flag and environment forms.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "taskproof",
		Usage: "Evidence-based task compliance service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "sweep-schedule",
						Value:   config.DefaultSweepSchedule,
						Usage:   "Cron schedule for the overdue sweep",
						EnvVars: []string{"SWEEP_SCHEDULE"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "check-overdue",
				Usage:  "Run the overdue sweep once and exit",
				Action: runCheckOverdue,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	sweeper := service.NewOverdueSweeper(
		repository.NewBranchRepository(db.Pool()),
		repository.NewTaskRepository(db.Pool()),
	)

	schedule := c.String("sweep-schedule")
	if schedule == "" {
		schedule = config.DefaultSweepSchedule
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, func() {
		if _, err := sweeper.Sweep(context.Background(), time.Now()); err != nil {
			slog.Error("overdue sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule overdue sweep: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runCheckOverdue(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	sweeper := service.NewOverdueSweeper(
		repository.NewBranchRepository(db.Pool()),
		repository.NewTaskRepository(db.Pool()),
	)

	overdue, err := sweeper.Sweep(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("overdue sweep failed: %w", err)
	}

	for _, task := range overdue {
		slog.Warn("task overdue",
			"task_id", task.TaskID,
			"title", task.Title,
			"branch", task.BranchName,
			"deadline", task.Deadline,
			"assignee", task.Assignee,
		)
	}
	slog.Info("overdue sweep finished", "late_tasks", len(overdue))

	return nil
}
