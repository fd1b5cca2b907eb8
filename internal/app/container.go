package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-formation/internal/config"
	"team-formation/internal/database"
	"team-formation/internal/database/migration"
	dbpostgres "team-formation/internal/database/postgres"
	"team-formation/internal/domain/matching"
	"team-formation/internal/infrastructure/cache"
	"team-formation/internal/repository"
	"team-formation/internal/repository/filestore"
	"team-formation/internal/repository/pgstore"
	"team-formation/internal/repository/sqlitestore"
	"team-formation/internal/usecase"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies shared by the server and the CLI.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	SQLite *sqlitestore.Store
	Store  repository.RecordStore
	Cache  *cache.Redis

	Runtime   *usecase.Runtime
	Records   *usecase.Records
	Teams     *usecase.TeamFormation
	Lifecycle *usecase.ProjectLifecycle
}

// NewContainer opens the configured store and builds the usecases. events may
// be nil.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger, events usecase.EventPublisher) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Container{Config: cfg, Log: log}

	if err := c.openStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Cache = cache.NewRedis(cfg.Redis, log)

	c.Runtime = usecase.NewRuntime(usecase.Deps{
		Repos:  repository.NewRepositories(c.Store, log.Named("repository")),
		Cache:  c.Cache,
		Events: events,
		Policy: matching.Policy{
			EmptyRequirementScore: cfg.Scoring.EmptyRequirementScore,
			SumDuplicatePairs:     cfg.Scoring.SumDuplicatePairs,
			DefaultPairRate:       cfg.Scoring.DefaultPairRate,
		},
		CacheTTL: cfg.Redis.RecommendationTTL,
		Logger:   log.Named("usecase"),
	})
	c.Records = usecase.NewRecordsUsecase(c.Runtime)
	c.Teams = usecase.NewTeamFormationUsecase(c.Runtime)
	c.Lifecycle = usecase.NewProjectLifecycleUsecase(c.Runtime)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Config.Store.Backend {
	case config.StoreBackendPostgres:
		timeout := c.Config.Database.ConnectTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		runner := migration.Runner{Dir: c.Config.Database.MigrationsDir, Log: c.Log.Named("migration")}
		if err := runner.Run(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		c.Store = pgstore.New(db, c.Log)
	case config.StoreBackendSQLite:
		store, err := sqlitestore.Open(ctx, c.Config.Store.SQLitePath, c.Log)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		c.SQLite = store
		c.Store = store
	default:
		store, err := filestore.New(c.Config.Store.DataDir, c.Log)
		if err != nil {
			return fmt.Errorf("open data dir: %w", err)
		}
		c.Log.Debug("file store opened", zap.String("dir", store.Dir()))
		c.Store = store
	}
	c.Log.Info("record store ready", zap.String("backend", c.Config.Store.Backend))
	return nil
}

// Ping checks the record store backend.
func (c *Container) Ping(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Ping(ctx)
	}
	if c.SQLite != nil {
		return c.SQLite.Ping(ctx)
	}
	if c.Store == nil {
		return errors.New("store not initialised")
	}
	_, err := c.Store.LoadAll(ctx, repository.CollectionProjects)
	return err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.SQLite != nil {
		errs = append(errs, c.SQLite.Close())
	}
	return errors.Join(errs...)
}
