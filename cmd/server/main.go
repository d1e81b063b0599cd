package main

import (
	"context"
	"net/http"
	"os"

	_ "tapcard/docs" // swagger docs

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"tapcard/internal/auth"
	"tapcard/internal/cache"
	"tapcard/internal/config"
	"tapcard/internal/db"
	"tapcard/internal/handler"
	"tapcard/internal/model"
	"tapcard/internal/repository"
	"tapcard/internal/router"
	"tapcard/internal/service"
	"tapcard/internal/storage"
)

// @title Tapcard API
// @version 1.0
// @description Digital business card API: profiles, links and QR-shareable public pages, with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Link{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
		logger.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Link{},
	); err != nil {
		logger.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploader, err := buildStorage(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}
	if cfg.S3Bucket == "" {
		logger.Warn("S3_BUCKET not set, avatar uploads will fail")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	linkRepo := repository.NewLinkRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, uploader, cacheClient)
	linkService := service.NewLinkService(userRepo, linkRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	linkHandler := handler.NewLinkHandler(linkService)

	// Register routes
	router.Register(e, cfg, authHandler, profileHandler, linkHandler)

	addr := ":" + cfg.ServerPort
	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	logger.Infof("listening on %s, swagger at %s/swagger/index.html", addr, swaggerHost)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server start: %v", err)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (storage.Uploader, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return storage.NewS3Service(client, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint, cfg.S3KeyPrefix), nil
}
