package container

import (
	"context"
	"fmt"

	"coolpc/catalog/internal/catalog"
	"coolpc/catalog/internal/client"
	"coolpc/catalog/internal/config"
	"coolpc/catalog/internal/query"
	"coolpc/catalog/internal/repository"
	"coolpc/catalog/internal/server"
	"coolpc/catalog/internal/service"
	"coolpc/catalog/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Service *service.Service
	Store   *catalog.Store
	Engine  *query.Engine
	Server  *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. Postgres
// and Redis are optional, they only back the refresh pipeline.
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	var snapshotRepo repository.SnapshotRepository
	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		snapshotRepo = repository.NewSnapshotRepository(db)
	}

	var stateManager state.StateManager
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		stateManager = state.NewRedisStateManager(rdb)
	}

	coolpcClient := client.NewCoolPCClient(cfg.CoolPC)
	parser := client.NewPriceListParser()

	container.Service = service.NewService(
		coolpcClient,
		parser,
		snapshotRepo,
		stateManager,
		cfg.Catalog.Path,
		cfg.Fetch.MinInterval,
	)

	return container, nil
}

// Run refreshes the catalog document when configured to, loads the snapshot
// and serves the query tools over stdio until the client disconnects.
func (c *Container) Run(ctx context.Context) error {
	if c.Config.Fetch.RefreshOnStart {
		if err := c.Service.Refresh(ctx); err != nil {
			log.Errorf("❌ Catalog refresh failed, serving the existing document: %v", err)
		}
	}

	c.Store = catalog.LoadFile(c.Config.Catalog.Path)
	c.Engine = query.NewEngine(c.Store)
	c.Server = server.New(c.Config.Server.Name, c.Config.Server.Version, c.Engine)

	log.Infof("🚀 Serving catalog tools over stdio as %s %s",
		c.Config.Server.Name, c.Config.Server.Version)
	return c.Server.ServeStdio()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
