// Package app wires configuration into the components a rocksolid command
// needs: upstream sources, the catalog, local collections, the routine
// storage driver and the event publisher.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/catalog"
	"github.com/rocksolid/rocksolid/pkg/cloudsync"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/dotdir"
	"github.com/rocksolid/rocksolid/pkg/eventstream"
	"github.com/rocksolid/rocksolid/pkg/eventstream/kafka"
	"github.com/rocksolid/rocksolid/pkg/eventstream/nop"
	"github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/resolver"
	"github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/source"
	"github.com/rocksolid/rocksolid/pkg/storage"
	"github.com/rocksolid/rocksolid/pkg/storage/firestore"
	"github.com/rocksolid/rocksolid/pkg/storage/inmemory"
	"github.com/rocksolid/rocksolid/pkg/storage/postgres"
	"github.com/rocksolid/rocksolid/pkg/storage/sqlite"
)

// Env is the resolved runtime of one command invocation. Components are
// created on first use and shared afterwards.
type Env struct {
	ConfigDir string
	Viper     *viper.Viper
	Logger    *zap.Logger

	ddm *dotdir.Manager

	once     sync.Once
	exercise *source.ExerciseCatalog
	yoga     *source.YogaClient
	catalog  *catalog.Catalog
	resolver *resolver.Resolver

	store *collection.FileStore
}

// NewEnv reads the persistent --config-dir and --debug flags of cmd,
// initializes viper and binds the given flag registry keys.
func NewEnv(cmd *cobra.Command, flagKeys ...string) (*Env, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	debug, _ := cmd.Flags().GetBool("debug")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	return &Env{
		ConfigDir: configDir,
		Viper:     v,
		Logger:    logger.NewLogger(debug),
		ddm:       dotdir.NewManager(),
	}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	_ = e.Logger.Sync()
}

func (e *Env) initSources() {
	e.once.Do(func() {
		e.exercise = source.NewExerciseCatalog(source.ExerciseCatalogConfig{
			Location: e.Viper.GetString("sources.exercise_url"),
		})
		e.yoga = source.NewYogaClient(source.YogaClientConfig{
			BaseURL: e.Viper.GetString("sources.yoga_base"),
		})
		e.catalog = catalog.New(catalog.Config{
			Exercises: e.exercise,
			Yoga:      e.yoga,
			Logger:    e.Logger,
		})
		e.resolver = resolver.New(resolver.Config{
			Exercises: e.exercise,
			Yoga:      e.yoga,
			Logger:    e.Logger,
		})
	})
}

// Yoga returns the yoga pose client.
func (e *Env) Yoga() *source.YogaClient {
	e.initSources()
	return e.yoga
}

// Catalog returns the (unbuilt) skill catalog.
func (e *Env) Catalog() *catalog.Catalog {
	e.initSources()
	return e.catalog
}

// Resolver returns the skill reference resolver.
func (e *Env) Resolver() *resolver.Resolver {
	e.initSources()
	return e.resolver
}

// SearchLimit returns the configured display cap.
func (e *Env) SearchLimit() int {
	return int(e.Viper.GetUint("search.limit"))
}

// Searcher returns a Searcher over the catalog and resolver.
func (e *Env) Searcher() *apisearch.Searcher {
	return apisearch.NewSearcher(e.Catalog(), e.Resolver(), search.Config{
		Limit: e.SearchLimit(),
	}, e.Logger)
}

func (e *Env) fileStore() (*collection.FileStore, error) {
	if e.store != nil {
		return e.store, nil
	}

	dir, err := e.ddm.CollectionsDir(e.ConfigDir)
	if err != nil {
		return nil, err
	}

	store, err := collection.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening collections: %w", err)
	}
	e.store = store
	return store, nil
}

// MySkills opens the local My Skills collection.
func (e *Env) MySkills() (*collection.MySkills, error) {
	store, err := e.fileStore()
	if err != nil {
		return nil, err
	}
	return collection.NewMySkills(store), nil
}

// Routines opens the local routine collection.
func (e *Env) Routines() (*collection.Routines, error) {
	store, err := e.fileStore()
	if err != nil {
		return nil, err
	}
	return collection.NewRoutines(store), nil
}

// CloudClient returns a client for the configured routine backend.
func (e *Env) CloudClient() *cloudsync.Client {
	return cloudsync.NewClient(cloudsync.ClientConfig{
		Target: e.Viper.GetString("client.api_target"),
	})
}

// Syncer returns a Syncer between the local routines and the backend.
func (e *Env) Syncer() (*cloudsync.Syncer, error) {
	routines, err := e.Routines()
	if err != nil {
		return nil, err
	}
	return cloudsync.NewSyncer(e.CloudClient(), routines, e.Logger), nil
}

// StorageDriver opens the routine backend driver named by storage.driver.
func (e *Env) StorageDriver(ctx context.Context) (storage.Driver, error) {
	name := e.Viper.GetString("storage.driver")

	switch name {
	case config.StorageDriverMemory:
		e.Logger.Info("using in-memory storage")
		return inmemory.NewDriver(), nil

	case config.StorageDriverSQLite, "":
		path := e.Viper.GetString("storage.sqlite_path")
		if path == "" {
			var err error
			path, err = e.ddm.SQLitePath(e.ConfigDir)
			if err != nil {
				return nil, err
			}
		}

		driver, err := sqlite.NewSQLiteDriver(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite driver: %w", err)
		}
		e.Logger.Info("using SQLite storage", zap.String("path", path))
		return driver, nil

	case config.StorageDriverPostgres:
		dsn := e.Viper.GetString("storage.postgres_dsn")
		if dsn == "" {
			return nil, errors.New("storage.postgres_dsn is required for the postgres driver")
		}

		driver, err := postgres.NewDriver(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL driver: %w", err)
		}
		e.Logger.Info("using PostgreSQL storage")
		return driver, nil

	case config.StorageDriverFirestore:
		project := e.Viper.GetString("storage.firestore_project")
		driver, err := firestore.NewDriver(ctx, project)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore driver: %w", err)
		}
		e.Logger.Info("using Firestore storage", zap.String("project", project))
		return driver, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", name)
	}
}

// Publisher returns a Kafka publisher when brokers are configured, and a
// no-op publisher otherwise.
func (e *Env) Publisher() (eventstream.Publisher, error) {
	brokers := config.KafkaBrokers(e.Viper)
	if len(brokers) == 0 {
		return nop.NewPublisher(), nil
	}

	pub, err := kafka.NewPublisher(kafka.Config{
		Brokers: brokers,
		Topic:   e.Viper.GetString("eventstream.kafka_topic"),
	})
	if err != nil {
		return nil, err
	}

	e.Logger.Info("publishing routine events to kafka",
		zap.Strings("brokers", brokers),
		zap.String("topic", pub.Topic()),
	)
	return pub, nil
}
