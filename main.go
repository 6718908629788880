package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"athletrack/internal/config"
	"athletrack/internal/database"
	"athletrack/internal/logger"
	"athletrack/internal/metrics"
	"athletrack/internal/server"
	"athletrack/internal/services"
	"athletrack/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	auditQueue      = "athletrack.audit"
)

// runtime is what every subcommand gets after config and logger are set up.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "athletrack",
		Short:         "Training log API for athletes and coaches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			rt.cfg, rt.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}

	var seed bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.serve(cmd.Context(), seed)
		},
	}
	serveCmd.Flags().BoolVar(&seed, "seed", false, "insert demo users, workouts and goals after migrating")

	var reset bool
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.openDB(reset)
			if err != nil {
				return err
			}
			defer db.close()
			rt.log.Info("schema migrated", zap.String("driver", rt.cfg.DBDriver), zap.Bool("reset", reset))
			return nil
		},
	}
	migrateCmd.Flags().BoolVar(&reset, "reset", false, "drop every table first, destroying all data")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, workouts and goals into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.openDB(false)
			if err != nil {
				return err
			}
			defer db.close()
			if err := database.Seed(cmd.Context(), db.repos.Users, db.repos.Workouts, db.repos.Goals); err != nil {
				return err
			}
			rt.log.Info("database seeded", zap.String("password", database.SeedPassword))
			return nil
		},
	}

	root.AddCommand(serveCmd, migrateCmd, seedCmd)
	return root
}

type store struct {
	repos server.Repositories
	close func()
}

// openDB connects to the SQL database and migrates it. The memory driver has no
// schema to manage.
func (rt *runtime) openDB(reset bool) (*store, error) {
	if rt.cfg.DBDriver == config.DriverMemory {
		return nil, errors.New("DB_DRIVER=memory keeps no database to manage")
	}
	db, err := database.Open(rt.cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, reset); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &store{
		repos: server.NewGORMRepositories(db),
		close: func() { _ = sqlDB.Close() },
	}, nil
}

func (rt *runtime) serve(ctx context.Context, seed bool) error {
	var repos server.Repositories
	if rt.cfg.DBDriver == config.DriverMemory {
		repos = server.NewMemoryRepositories()
	} else {
		db, err := rt.openDB(rt.cfg.DBReset)
		if err != nil {
			return err
		}
		defer db.close()
		repos = db.repos
		if rt.cfg.DBReset {
			rt.log.Warn("database schema was reset", zap.String("driver", rt.cfg.DBDriver))
		}
	}

	if seed {
		if err := database.Seed(ctx, repos.Users, repos.Workouts, repos.Goals); err != nil {
			return err
		}
		rt.log.Info("database seeded")
	}

	var events services.EventPublisher
	if rt.cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rt.cfg.RabbitMQURL, Exchange: rt.cfg.RabbitMQExchange})
		if err != nil {
			rt.log.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			events = mqClient
			if rt.cfg.ConsumeEvents {
				if err := mqClient.ConsumeEvents(ctx, auditQueue, "#", rt.logEvent); err != nil {
					rt.log.Warn("event consumer not started", zap.Error(err))
				}
			}
		}
	}

	var collector *metrics.Collector
	if rt.cfg.MetricsEnabled {
		var err error
		if collector, err = metrics.New(); err != nil {
			return err
		}
	}

	app, err := server.New(server.Options{
		Config:    rt.cfg,
		Log:       rt.log,
		Repos:     repos,
		Events:    events,
		Metrics:   collector,
		AccessLog: !rt.cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("server listening", zap.String("addr", rt.cfg.Port), zap.String("env", rt.cfg.Env))
		errCh <- app.Listen(rt.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	rt.log.Info("server gracefully stopped")
	return nil
}

func (rt *runtime) logEvent(e rabbitmq.Event) error {
	rt.log.Info("event received",
		zap.String("type", e.Type),
		zap.Time("occurred_at", e.OccurredAt),
		zap.ByteString("data", e.Data),
	)
	return nil
}
