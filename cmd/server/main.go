package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/config"
	_ "github.com/Voyagetechsolutions/lasting-impressions-sub000/docs"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/cache"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/handlers"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity/hashing"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity/token"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/router"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/database"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Lasting Impressions API
// @Version 1.0
// @Description Магазин, запись на занятия и индивидуальные заказы
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	shopDB := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(shopDB, log)

	identityDB := shopDB
	if cfg.IdentityDB.Config != cfg.DB.Config {
		identityDB = database.ConnectDB(&cfg.IdentityDB.Config, log)
		defer database.CloseDB(identityDB, log)
	}

	health := map[string]handlers.Pinger{}
	if sqlDB, err := shopDB.DB(); err == nil {
		health["db"] = sqlDB
	}

	var profileCache identity.ProfileCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		profileCache = redisClient
		health["redis"] = redisClient
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled")
	}

	var emails service.EmailProducer
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer p.Close()
		emails = p
		log.Info("Kafka email producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		emails = producer.NewLogProducer(log)
		log.Info("Kafka disabled, email events go to log")
	}

	accounts := identity.NewService(
		identity.NewStore(repository.NewIdentity(identityDB)),
		hashing.NewBcrypt(0),
		token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
		profileCache,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		cfg.JWT.AccessExp,
		log,
	)

	store := service.NewStore(repository.New(shopDB))
	notifier := service.NewEmailNotifier(emails, cfg.AdminEmail, log)

	r := router.Router(router.Services{
		Identity:       accounts,
		Catalog:        service.NewCatalogService(store, log),
		Bookings:       service.NewBookingService(store, notifier, log),
		Orders:         service.NewOrderService(store, notifier, cfg.ShippingRates, log),
		CustomRequests: service.NewCustomRequestService(store, notifier, log),
		Contact:        service.NewContactService(store, notifier, log),
		Uploads:        service.NewUploadService(store, cfg.PublicBaseURL, cfg.UploadMaxBytes, log),
	}, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		UploadMaxBytes: cfg.UploadMaxBytes,
		HealthDeps:     health,
		Swagger:        true,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
