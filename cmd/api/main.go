package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/api/handlers"
	"github.com/gemma3n-site/backend/internal/cache"
	"github.com/gemma3n-site/backend/internal/cache/memory"
	"github.com/gemma3n-site/backend/internal/cache/redis"
	"github.com/gemma3n-site/backend/internal/cache/sqlite"
	"github.com/gemma3n-site/backend/internal/chat"
	"github.com/gemma3n-site/backend/internal/i18n"
	"github.com/gemma3n-site/backend/internal/metrics"
	"github.com/gemma3n-site/backend/internal/middleware/gateway"
	"github.com/gemma3n-site/backend/internal/middleware/ratelimit"
	"github.com/gemma3n-site/backend/internal/middleware/security"
	"github.com/gemma3n-site/backend/internal/middleware/validation"
	"github.com/gemma3n-site/backend/internal/offline"
	"github.com/gemma3n-site/backend/internal/recommend"
	"github.com/gemma3n-site/backend/pkg/config"
	appLogger "github.com/gemma3n-site/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Gemma 3n site backend")

	metrics.Init()

	store, cleanup, err := newStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer cleanup()

	fetcher, err := offline.NewUpstreamFetcher(cfg.Upstream.Origin, time.Duration(cfg.Upstream.TimeoutSec)*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to create upstream fetcher", zap.Error(err))
	}

	controller := offline.New(offline.Config{
		StaticNamespace:  "gemma3n-static-" + cfg.Cache.Version,
		DynamicNamespace: "gemma3n-dynamic-" + cfg.Cache.Version,
		GeneralNamespace: "gemma3n-" + cfg.Cache.Version,
		CoreAssets:       cfg.Cache.CoreAssets,
		OfflinePath:      cfg.Cache.OfflinePath,
		APIPrefix:        cfg.Cache.APIPrefix,
	}, store, fetcher)

	if err := controller.Install(context.Background()); err != nil {
		appLogger.Fatal("Failed to install offline controller", zap.Error(err))
	}
	if err := controller.Activate(context.Background()); err != nil {
		appLogger.Fatal("Failed to activate offline controller", zap.Error(err))
	}

	go controller.Warmup(context.Background(), cfg.Cache.PrecachePages)

	engine := recommend.NewEngine(recommend.DefaultCatalog())

	translator, err := i18n.NewTranslator()
	if err != nil {
		appLogger.Fatal("Failed to load locales", zap.Error(err))
	}
	routes := i18n.DefaultRouteMapping()

	generator := chat.NewClient(cfg.Chat, chat.NewSimulator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		UpstreamOrigin: cfg.Upstream.Origin,
		IsDevelopment:  cfg.Logging.Level == "debug",
	}))

	limiter := ratelimit.New(ratelimit.Config{
		Logger: appLogger.GetLogger(),
	})
	defer limiter.Stop()

	recommendHandler := handlers.NewRecommendHandler(engine)
	chatHandler := handlers.NewChatHandler(generator)
	wsHandler := handlers.NewWebSocketHandler(generator)
	cacheHandler := handlers.NewCacheHandler(controller)
	i18nHandler := handlers.NewI18nHandler(translator, routes)

	api := app.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(validation.Middleware(validation.Config{
		Logger: appLogger.GetLogger(),
	}))

	api.Post("/recommend", recommendHandler.HandleRecommend)
	api.Get("/models", recommendHandler.GetModels)
	api.Get("/models/:id", recommendHandler.GetModel)
	api.Get("/profiles", recommendHandler.GetProfiles)

	api.Post("/generate", chatHandler.HandleGenerate)

	api.Post("/cache/message", cacheHandler.HandleMessage)
	api.Get("/cache/status", cacheHandler.GetStatus)

	api.Get("/i18n/:lang", i18nHandler.GetTable)
	api.Get("/i18n/routes/resolve", i18nHandler.GetRoute)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/ws/chat", websocket.New(wsHandler.HandleConnection))

	app.Get("/metrics", metrics.MetricsHandler())

	app.Use(gateway.Handler(gateway.Config{
		Controller:   controller,
		SkipPrefixes: []string{"/api/v1", "/metrics", "/ws"},
	}))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

func newStore(cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := redis.NewStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}
