package bootstrap

import (
	"context"
	"log"
	"time"

	"asset-selector-be/internal/config"
	"asset-selector-be/internal/controller"
	"asset-selector-be/internal/pkg/logger"
	"asset-selector-be/internal/repository/implementation"
	"asset-selector-be/internal/service"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/matcher"
	pktNats "asset-selector-be/pkg/nats"
	"asset-selector-be/pkg/persistence"
	"asset-selector-be/pkg/recency"
	"asset-selector-be/pkg/selector"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const initTimeout = 10 * time.Second

type Container struct {
	AssetController controller.IAssetController

	SelectionService service.ISelectionService
	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

// NewContainer wires the engine and its infrastructure. db may be nil when
// neither the catalog nor the durable tier lives in Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 1. Matching
	tables := matcher.DefaultTables()
	if cfg.Catalog.MatcherTablesPath != "" {
		loaded, err := matcher.LoadTables(cfg.Catalog.MatcherTablesPath)
		if err != nil {
			log.Printf("[WARN] Failed to load matcher tables from %s: %v. Using built-in tables", cfg.Catalog.MatcherTablesPath, err)
		} else {
			tables = loaded
		}
	}
	assetMatcher := matcher.New(tables)
	assetSelector := selector.New()
	tracker := recency.NewTracker(cfg.Recency.GlobalCapacity, cfg.Recency.CategoryCapacity)

	// 2. Persistence
	fast := persistence.NewLocalStore(cfg.Persistence.LocalStateDir, cfg.Persistence.StateTTL)

	var durable persistence.Store
	switch cfg.Persistence.DurableStore {
	case "redis":
		c.rdb = persistence.NewRedisClient(cfg.Persistence.RedisURL)
		if _, err := c.rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		durable = persistence.NewRedisStore(c.rdb, cfg.Persistence.StateKey, cfg.Persistence.StateTTL)
		log.Printf("[INFO] Using durable state store: REDIS")
	case "postgres":
		if db == nil {
			log.Printf("[WARN] DURABLE_STORE=postgres without a database connection, durable tier disabled")
			break
		}
		durable = persistence.NewGormStore(implementation.NewRecencySnapshotRepository(db), cfg.Persistence.StateKey)
		log.Printf("[INFO] Using durable state store: POSTGRES")
	default:
		log.Printf("[INFO] Durable state store disabled")
	}

	var persistLogger logger.ILogger = sysLogger
	if cfg.Persistence.LogFilePath != "" {
		persistLogger = logger.NewIsolatedLogger(cfg.Persistence.LogFilePath)
	}
	adapter := persistence.NewAdapter(fast, durable, cfg.Persistence.Timeout, persistLogger)

	// 3. Event Bus
	c.pubSub = gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	var forwarder service.EventForwarder
	if cfg.Events.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			c.natsPub = natsPub
			forwarder = natsPub
		}
	}

	publisherService := service.NewPublisherService(cfg.Events.Topic, c.pubSub)
	c.ConsumerService = service.NewConsumerService(c.pubSub, cfg.Events.Topic, forwarder, sysLogger)

	// 4. Engine
	selectionService := service.NewSelectionService(
		assetMatcher,
		assetSelector,
		tracker,
		adapter,
		publisherService,
		sysLogger,
		cfg.Catalog.AssetLocalDir,
	)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := selectionService.Initialize(ctx, catalogSource(cfg, db)); err != nil {
		log.Printf("[WARN] Catalog source failed, serving built-in catalog: %v", err)
	}

	c.SelectionService = selectionService
	c.AssetController = controller.NewAssetController(selectionService)

	return c
}

func catalogSource(cfg *config.Config, db *gorm.DB) catalog.Source {
	switch cfg.Catalog.Source {
	case "file":
		log.Printf("[INFO] Using catalog source: FILE (%s)", cfg.Catalog.ManifestPath)
		return catalog.NewFileSource(cfg.Catalog.ManifestPath)
	case "postgres":
		if db != nil {
			log.Printf("[INFO] Using catalog source: POSTGRES")
			return catalog.NewRepositorySource(implementation.NewMediaAssetRepository(db))
		}
		log.Printf("[WARN] CATALOG_SOURCE=postgres without a database connection, using built-in catalog")
	}
	return catalog.StaticSource(nil)
}

// NeedsDatabase reports whether cfg puts anything in Postgres.
func NeedsDatabase(cfg *config.Config) bool {
	return cfg.Catalog.Source == "postgres" || cfg.Persistence.DurableStore == "postgres"
}

// Close waits for pending state writes, then releases connections.
func (c *Container) Close(ctx context.Context) error {
	flushErr := c.SelectionService.Flush(ctx)

	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			log.Printf("[WARN] Failed to close Redis client: %v", err)
		}
	}
	_ = c.Logger.Sync()

	return flushErr
}
