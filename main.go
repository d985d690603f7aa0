package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/database"
	"github.com/Ananth-NQI/storebot-backend/internal/config"
	"github.com/Ananth-NQI/storebot-backend/internal/handlers"
	"github.com/Ananth-NQI/storebot-backend/internal/logger"
	"github.com/Ananth-NQI/storebot-backend/internal/routes"
	"github.com/Ananth-NQI/storebot-backend/internal/services"
	"github.com/Ananth-NQI/storebot-backend/internal/storage"
	"github.com/Ananth-NQI/storebot-backend/pkg/closer"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	dotenv := config.LoadDotEnv(".env", "environments/.env.development")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if !dotenv {
		log.Info("⚠️  No .env file found - checking environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	ctx := context.Background()
	cl := closer.New(5 * time.Second)

	// Initialize storage
	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	cl.Add(store.Close)

	// Wizard sessions
	checks := map[string]handlers.Pinger{}
	var sessions services.SessionRegistry
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		cl.Add(func(ctx context.Context) error { return client.Close() })

		registry := services.NewRedisSessionRegistry(client, cfg.Redis.SessionTTL)
		checks["redis"] = registry
		sessions = registry
		log.Info("✅ Wizard sessions stored in Redis")
	} else {
		sessions = services.NewMemorySessionRegistry()
		log.Info("⚠️  Wizard sessions kept in memory")
	}

	// Telegram
	telegram, err := services.NewTelegramService(cfg.Bot.Token)
	if err != nil {
		return err
	}
	log.Infof("🤖 Authorized as @%s", telegram.Username())

	notifier := services.MultiNotifier{services.NewTelegramNotifier(telegram, cfg.Bot.AdminID)}
	if cfg.Twilio.Enabled() {
		twilioService, err := services.NewTwilioService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom)
		if err != nil {
			return err
		}
		notifier = append(notifier, services.NewWhatsAppNotifier(twilioService, cfg.Twilio.AdminWhatsApp))
		log.Info("📱 Order notifications mirrored to WhatsApp")
	}

	wizard := services.NewAdminWizard(cfg.Bot.AdminID, sessions, store, telegram, log)
	ordering := services.NewOrderingWorkflow(services.OrderingDeps{
		Catalog:    store,
		Cart:       store,
		Orders:     store,
		Messenger:  telegram,
		Notifier:   notifier,
		MiniAppURL: cfg.Bot.MiniAppURL,
		Log:        log,
	})
	dispatcher := services.NewDispatcher(wizard, ordering, log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Storebot Backend v" + version,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Webhook:       handlers.NewWebhookHandler(dispatcher, log),
		Products:      handlers.NewProductHandler(store, telegram, log),
		Health:        handlers.NewHealthHandler(version, store, checks),
		WebhookSecret: cfg.Bot.WebhookSecret,
	})
	cl.Add(func(ctx context.Context) error { return app.ShutdownWithContext(ctx) })

	if cfg.Bot.WebhookURL != "" {
		url := cfg.Bot.WebhookURL + "/webhook"
		if err := telegram.SetWebhook(url, cfg.Bot.WebhookSecret); err != nil {
			return err
		}
		log.Infof("🔗 Webhook set to %s", url)
	} else {
		log.Warn("⚠️  WEBHOOK_URL not set - webhook not registered")
	}

	// Handle graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Info("🛑 Gracefully shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := cl.Close(shutdownCtx); err != nil {
			log.Errorf("❌ Shutdown: %v", err)
		}
	}()

	log.Info("========================================")
	log.Infof("🚀 Storebot Backend starting on port %s", cfg.HTTP.Port)
	log.Infof("📊 Storage: %s", cfg.Store.Driver)
	log.Infof("🌍 Environment: %s", cfg.Env)
	log.Info("========================================")

	return app.Listen(":" + cfg.HTTP.Port)
}

func openStore(ctx context.Context, cfg *config.StoreCfg, log *zap.SugaredLogger) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		log.Info("📦 Connecting to PostgreSQL database...")
		db, err := database.Connect(cfg.URL)
		if err != nil {
			return nil, err
		}
		if err := storage.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("✅ Database migrations completed")
		return storage.NewDatabaseStore(db), nil

	case config.DriverMongo:
		log.Info("📦 Connecting to MongoDB...")
		client, dbName, err := database.ConnectMongo(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewMongoStore(ctx, client, dbName)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Infof("✅ Connected to MongoDB database %s", dbName)
		return store, nil

	default:
		log.Warn("⚠️  Using in-memory storage (not for production!)")
		return storage.NewMemoryStore(), nil
	}
}
