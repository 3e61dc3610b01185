// Package servecmder provides the serve command running the routine backend
// and skill API.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/api"
	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/config"
)

type serveCommander struct {
	listen           string
	storageDriver    string
	sqlitePath       string
	postgresDSN      string
	firestoreProject string
	kafkaBrokers     string
	kafkaTopic       string
	exerciseURL      string
	yogaBase         string

	env    *app.Env
	logger *zap.Logger
}

// serveFlags lists the registry keys bound by the serve command.
var serveFlags = []string{
	config.FlagAPIListen,
	config.FlagStorageDriver,
	config.FlagSQLite,
	config.FlagPostgresDSN,
	config.FlagFirestoreProject,
	config.FlagKafkaBrokers,
	config.FlagKafkaTopic,
	config.FlagExerciseURL,
	config.FlagYogaBase,
}

const serveLongDesc string = `Run the RockSolid API server.

The server hosts the routine backend (/routines), the skill search API
(/v1/skills), the yoga pass-through (/v1/yoga) and the MCP endpoint (/mcp).

Routines are stored with the driver selected by --storage or storage.driver:
  inmemory    Nothing is persisted
  sqlite      Local database file (default: routines.db in .rocksolid/)
  postgres    Requires --postgres-dsn
  firestore   Requires --firestore-project or GOOGLE_CLOUD_PROJECT

Routine lifecycle events are published to Kafka when --kafka-brokers is set.

Examples:
  rocksolid serve
  rocksolid serve --listen :9000 --storage inmemory
  rocksolid serve --storage postgres --postgres-dsn postgres://localhost/rocksolid`

const serveShortDesc string = "Run the RockSolid API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.env, err = app.NewEnv(cmd, serveFlags...)
			if err != nil {
				return err
			}
			defer cmder.env.Close()
			cmder.logger = cmder.env.Logger

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageDriver, &cmder.storageDriver)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagPostgresDSN, &cmder.postgresDSN)
	config.AddStringFlag(cmd, config.Flags, config.FlagFirestoreProject, &cmder.firestoreProject)
	config.AddStringFlag(cmd, config.Flags, config.FlagKafkaBrokers, &cmder.kafkaBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagKafkaTopic, &cmder.kafkaTopic)
	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	server, cleanup, err := c.newServer(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

// newServer opens storage and the publisher and assembles the API server.
// cleanup closes both.
func (c *serveCommander) newServer(ctx context.Context) (*api.Server, func(), error) {
	driver, err := c.env.StorageDriver(ctx)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := c.env.Publisher()
	if err != nil {
		driver.Close()
		return nil, nil, fmt.Errorf("creating event publisher: %w", err)
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			c.logger.Warn("closing event publisher", zap.Error(err))
		}
		if err := driver.Close(); err != nil {
			c.logger.Warn("closing storage driver", zap.Error(err))
		}
	}

	server, err := api.NewServer(api.Config{
		ListenAddr: c.env.Viper.GetString("api.listen"),
		Searcher:   c.env.Searcher(),
		Yoga:       c.env.Yoga(),
		Publisher:  publisher,
	}, driver, c.logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("creating API server: %w", err)
	}

	return server, cleanup, nil
}
