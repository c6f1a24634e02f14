package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"returns-bridge/core/config"
	"returns-bridge/core/database"
	"returns-bridge/core/loader"
	"returns-bridge/core/logger"
	"returns-bridge/core/middleware/auth"
	"returns-bridge/core/middleware/rayid"
	"returns-bridge/core/reconcile"
	"returns-bridge/core/storage"

	"returns-bridge/feature/catalog"
	"returns-bridge/feature/integrity"
	"returns-bridge/feature/lineitems"
	"returns-bridge/feature/promoter"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "returns-bridge/docs/swagger"
)

// @title Returns Bridge API
// @version 1.0
// @description HTTP bridge between the Base44 returns app and the order database.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the returns bridge server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connection Provider (connects lazily on first use)
		provider := database.NewProvider(cfg.Database, logg)

		// 4. Report archive storage (optional)
		client, err := newArchiveClient(cfg)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app, err := newServer(cfg, logg, provider, client)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		if err := provider.Close(); err != nil {
			logg.Warn("Failed to close database", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newArchiveClient returns nil when the report archive is disabled.
func newArchiveClient(cfg *config.Config) (storage.Client, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	return storage.NewClient(cfg.Storage)
}

// newServer builds the Fiber app with middleware and every feature registered.
func newServer(cfg *config.Config, logg *zap.Logger, db database.Getter, client storage.Client) (*fiber.App, error) {
	policy, err := reconcile.ParsePolicy(cfg.Reconcile.Policy)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	// Middleware Registration
	// 1. RayID (Must be first to trace everything)
	app.Use(rayid.New())

	// 2. Request logging with the ray id attached
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Info("Request completed",
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	})

	// 3. CORS for the browser client
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.Origins(),
		AllowHeaders: "Origin, Content-Type, Accept, " + auth.Header + ", " + rayid.Header,
	}))

	// 4. Swagger Documentation (Public)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// 5. Auth (Protect API)
	app.Use(auth.New(auth.Config{
		ApiKey:         cfg.Server.ApiKey,
		PublicPrefixes: []string{"/", "/health", "/swagger"},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Returns bridge is running")
	})
	app.Get("/health", healthHandler(db, logg))

	var archive lineitems.Archiver
	if client != nil {
		archive = storage.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	}

	// 6. Features
	mgr := loader.NewManager(logg)
	mgr.Register(lineitems.NewFeature(db, lineitems.Options{
		Policy:              policy,
		OrderItemsProcedure: cfg.Procedures.OrderItems,
	}, archive, logg))
	mgr.Register(promoter.NewFeature(db, cfg.Procedures.Settlements, logg))
	mgr.Register(catalog.NewFeature(db, cfg.Procedures.Products, cfg.Catalog, logg))
	mgr.Register(integrity.NewFeature(db, client, cfg.Storage.Bucket, cfg.Storage.Region, logg))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

// healthHandler reports whether the provider can hand out a live connection.
func healthHandler(db database.Getter, logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := db.Get(c.Context()); err != nil {
			logger.WithRayID(logg, c).Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success":  false,
				"database": "unavailable",
			})
		}
		return c.JSON(fiber.Map{
			"success":  true,
			"database": "ok",
		})
	}
}
