package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"photobooth/internal/config"
	"photobooth/internal/handler"
	"photobooth/internal/middleware"
	"photobooth/internal/repository"
	"photobooth/internal/service"
	"photobooth/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (dashboard stats will not be cached)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	blobs := newBlobStore(cfg)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, blobs, cfg)
	handlers := handler.NewHandlers(services, db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler:      middleware.ErrorHandler,
		StreamRequestBody: true,
		// Keep fasthttp from pre-parsing the multipart form, which would
		// leave RequestBodyStream() nil for the streaming upload handler.
		DisablePreParseMultipartForm: true,
		// Leave headroom above the file cap for multipart framing.
		BodyLimit: int(cfg.MaxFileBytes()) + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	if cfg.StorageBackend == "local" {
		app.Static("/uploads", cfg.UploadsDir)
	}

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newBlobStore(cfg *config.Config) storage.BlobStore {
	switch cfg.StorageBackend {
	case "local":
		store, err := storage.NewLocalStore(cfg.UploadsDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to prepare uploads directory: %v", err)
		}
		return store
	default:
		minioClient, err := config.NewMinIOClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to connect to MinIO: %v (photo upload will not work)", err)
			return nil
		}
		return storage.NewMinIOStore(minioClient, cfg)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", h.Health.Live)

	api := app.Group("/api")
	api.Get("/health/db", h.Health.Database)

	photos := api.Group("/photos")
	photos.Post("/upload", h.Photo.Upload)
	photos.Get("/list", h.Photo.List)
	photos.Get("/:photoId", h.Photo.Get)

	admin := app.Group("/admin", middleware.BasicAuth(cfg))
	admin.Get("/", h.Admin.Dashboard)
	admin.Get("/photos", h.Admin.Photos)
	admin.Get("/photos/:photoId/download", h.Admin.Download)
	admin.Post("/photos/:photoId/delete", h.Admin.Delete)
	admin.Delete("/photos", h.Admin.CleanupLegacy)
}
