package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"armabazar/internal/adapter/api"
	"armabazar/internal/adapter/api/handler"
	apimiddleware "armabazar/internal/adapter/api/middleware"
	"armabazar/internal/adapter/api/router"
	"armabazar/internal/adapter/repository"
	"armabazar/internal/infrastructure/auth"
	"armabazar/internal/infrastructure/cache"
	"armabazar/internal/infrastructure/database"
	"armabazar/internal/infrastructure/storage"
	"armabazar/internal/usecase"
	"armabazar/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	var cacheClient cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cacheClient = redisCache
	} else {
		log.Printf("REDIS_ADDR not set, using in-memory cache")
		cacheClient = cache.NewMemoryCache()
	}

	storageClient, err := storage.NewLocalStorageClient(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	userRepo := repository.NewPostgresUserRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)
	conversationRepo := repository.NewPostgresConversationRepository(db)
	serviceRepo := repository.NewPostgresServiceRepository(db)
	reportRepo := repository.NewPostgresReportRepository(db)

	productUseCase := usecase.NewProductUseCase(productRepo, storageClient, cacheClient, cfg.ListingCacheTTL)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, productRepo)
	serviceUseCase := usecase.NewServiceUseCase(serviceRepo, storageClient)
	reportUseCase := usecase.NewReportUseCase(reportRepo)
	adminUseCase := usecase.NewAdminUseCase(userRepo, productRepo, serviceRepo, reportRepo, conversationRepo, cacheClient)

	handler.Setup(conversationUseCase, productUseCase, serviceUseCase, reportUseCase, adminUseCase)
	handler.SetupHealthHandler(db)
	handler.SetupDevTokenHandler(tokenManager, userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenManager)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, authMiddleware, adminMiddleware, cfg.Environment)

	e.Static("/uploads", storageClient.BaseDir())

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
