package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/handlers"
	"mewayz/internal/middleware"
	"mewayz/internal/models"
	"mewayz/internal/repositories/mongodb"
	"mewayz/internal/services"
	"mewayz/pkg/cache"
	"mewayz/pkg/database"
	"mewayz/pkg/email"
	"mewayz/pkg/logger"
	"mewayz/pkg/oauth"
	"mewayz/pkg/payment"
	"mewayz/pkg/push"
	"mewayz/pkg/sms"
	"mewayz/pkg/storage"
	"mewayz/pkg/websocket"
	"mewayz/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Data stores
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, db.Database); err != nil {
		cancelIndexes()
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndexes()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, redisCache)
	programRepo := mongodb.NewProgramRepository(db.Database, redisCache)
	codeRepo := mongodb.NewCodeRepository(db.Database, redisCache)
	clickRepo := mongodb.NewClickRepository(db.Database)
	conversionRepo := mongodb.NewConversionRepository(db.Database)
	payoutRepo := mongodb.NewPayoutRepository(db.Database)

	// Outbound providers
	payoutProviders := buildPayoutProviders(cfg)
	pushProvider := buildPushProvider(cfg, appLogger)
	smsProvider := buildSMSProvider(cfg, appLogger)
	emailProvider := buildEmailProvider(cfg)
	storageProvider := buildStorageProvider(cfg, appLogger)
	googleOAuth := oauth.NewGoogleProvider(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleRedirectURL,
	)

	wsHandler := websocket.NewHandler()

	// Services
	fraudService := services.NewFraudService(clickRepo, appLogger)
	notificationService := services.NewNotificationService(userRepo, pushProvider, smsProvider, emailProvider, appLogger)
	programService := services.NewProgramService(programRepo, appLogger)
	referralService := services.NewReferralService(
		codeRepo, programRepo, clickRepo, userRepo, conversionRepo,
		fraudService, redisCache, wsHandler, cfg, appLogger,
	)
	conversionService := services.NewConversionService(
		conversionRepo, codeRepo, programRepo, clickRepo, userRepo, payoutRepo,
		db, payoutProviders, notificationService, wsHandler, cfg, appLogger,
	)
	analyticsService := services.NewAnalyticsService(codeRepo, conversionRepo, payoutRepo, programRepo, appLogger)
	authService := services.NewAuthService(userRepo, googleOAuth, cfg, appLogger)
	reportService := services.NewReportService(conversionRepo, storageProvider, cfg, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	referralHandler := handlers.NewReferralHandler(referralService, conversionService, analyticsService, cfg)
	adminHandler := handlers.NewAdminHandler(programService, referralService, conversionService, analyticsService, reportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	v1 := router.Group("/api/v1")
	routes.SetupAuthRoutes(v1, authHandler, redisCache, cfg.Security.JWTSecret)
	routes.SetupReferralRoutes(router, v1, referralHandler, adminHandler, wsHandler, redisCache, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		mongoOK := db.Ping() == nil
		if !mongoOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  map[bool]string{true: "healthy", false: "degraded"}[mongoOK],
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func buildPayoutProviders(cfg *config.Config) map[models.PayoutMethod]payment.PayoutProvider {
	providers := make(map[models.PayoutMethod]payment.PayoutProvider)

	if cfg.Payment.Stripe.SecretKey != "" {
		providers[models.PayoutMethodStripe] = payment.NewStripeProvider(
			cfg.Payment.Stripe.SecretKey,
			cfg.Payment.Stripe.WebhookSecret,
		)
	}
	if cfg.Payment.Razorpay.KeyID != "" {
		providers[models.PayoutMethodRazorpay] = payment.NewRazorpayProvider(
			cfg.Payment.Razorpay.KeyID,
			cfg.Payment.Razorpay.KeySecret,
			cfg.Payment.Razorpay.WebhookSecret,
		)
	}
	if cfg.Payment.PayPal.ClientID != "" {
		providers[models.PayoutMethodPayPal] = payment.NewPayPalProvider(
			cfg.Payment.PayPal.ClientID,
			cfg.Payment.PayPal.ClientSecret,
			cfg.Payment.PayPal.Mode,
		)
	}

	return providers
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.SMTP.Host == "" {
		return nil
	}

	return email.NewSMTPProvider(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
	)
}

func buildPushProvider(cfg *config.Config, log *logger.Logger) push.Provider {
	switch cfg.Push.Provider {
	case "fcm":
		if cfg.Push.FCMCredentials == "" {
			return nil
		}
		provider, err := push.NewFCMProvider(cfg.Push.FCMCredentials)
		if err != nil {
			log.WithError(err).Warn("FCM unavailable, push notifications disabled")
			return nil
		}
		return provider
	case "apns":
		provider, err := push.NewAPNSProvider(
			cfg.Push.APNSKeyFile,
			cfg.Push.APNSKeyID,
			cfg.Push.APNSTeamID,
			cfg.Push.APNSTopic,
			cfg.Push.APNSProduction,
		)
		if err != nil {
			log.WithError(err).Warn("APNs unavailable, push notifications disabled")
			return nil
		}
		return provider
	default:
		return nil
	}
}

func buildSMSProvider(cfg *config.Config, log *logger.Logger) sms.Provider {
	switch cfg.SMS.Provider {
	case "twilio":
		if cfg.SMS.Twilio.AccountSID == "" {
			return nil
		}
		return sms.NewTwilioProvider(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.Twilio.FromNumber,
		)
	case "sns":
		provider, err := sms.NewAWSSNSProvider(cfg.SMS.SNS.Region)
		if err != nil {
			log.WithError(err).Warn("SNS unavailable, SMS disabled")
			return nil
		}
		return provider
	default:
		return nil
	}
}

func buildStorageProvider(cfg *config.Config, log *logger.Logger) storage.Provider {
	switch cfg.Storage.Provider {
	case "s3":
		provider, err := storage.NewAWSS3Storage(cfg.Storage.S3Region, cfg.Storage.S3Bucket)
		if err != nil {
			log.WithError(err).Warn("S3 unavailable, report export disabled")
			return nil
		}
		return provider
	case "gcs":
		provider, err := storage.NewGCPStorage(cfg.Storage.GCSBucket, cfg.Storage.GCSCreds)
		if err != nil {
			log.WithError(err).Warn("GCS unavailable, report export disabled")
			return nil
		}
		return provider
	case "local":
		provider, err := storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.App.BaseURL+"/exports")
		if err != nil {
			log.WithError(err).Warn("Local storage unavailable, report export disabled")
			return nil
		}
		return provider
	default:
		return nil
	}
}
