package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountingapp "github.com/pinehillfarm/backend/internal/application/accounting"
	announcementapp "github.com/pinehillfarm/backend/internal/application/announcement"
	catalogapp "github.com/pinehillfarm/backend/internal/application/catalog"
	channelsyncapp "github.com/pinehillfarm/backend/internal/application/channelsync"
	identityapp "github.com/pinehillfarm/backend/internal/application/identity"
	purchaseapp "github.com/pinehillfarm/backend/internal/application/purchase"
	scheduleapp "github.com/pinehillfarm/backend/internal/application/schedule"
	shippingapp "github.com/pinehillfarm/backend/internal/application/shipping"
	trainingapp "github.com/pinehillfarm/backend/internal/application/training"
	videoapp "github.com/pinehillfarm/backend/internal/application/video"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/infrastructure/auth"
	"github.com/pinehillfarm/backend/internal/infrastructure/channels"
	"github.com/pinehillfarm/backend/internal/infrastructure/config"
	"github.com/pinehillfarm/backend/internal/infrastructure/event"
	"github.com/pinehillfarm/backend/internal/infrastructure/logger"
	"github.com/pinehillfarm/backend/internal/infrastructure/mailer"
	"github.com/pinehillfarm/backend/internal/infrastructure/openaitts"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence"
	"github.com/pinehillfarm/backend/internal/infrastructure/piapi"
	"github.com/pinehillfarm/backend/internal/infrastructure/render"
	"github.com/pinehillfarm/backend/internal/infrastructure/scheduler"
	"github.com/pinehillfarm/backend/internal/infrastructure/shippo"
	"github.com/pinehillfarm/backend/internal/infrastructure/storage"
	"github.com/pinehillfarm/backend/internal/infrastructure/telemetry"
	"github.com/pinehillfarm/backend/internal/interfaces/http/handler"
	"github.com/pinehillfarm/backend/internal/interfaces/http/middleware"
	"github.com/pinehillfarm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

//	@title			Pine Hill Farm Operations API
//	@version		1.0
//	@description	Multi-tenant operations backend: scheduling, training, inventory, channel sync, accounting and marketing video generation.

//	@contact.name	API Support
//	@contact.email	support@pinehillfarm.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Pine Hill Farm backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing (optional)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis when reachable
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, token revocation falls back to process memory", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	pingCancel()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	shiftRepo := persistence.NewGormShiftRepository(db.DB)
	timeOffRepo := persistence.NewGormTimeOffRepository(db.DB)
	moduleRepo := persistence.NewGormModuleRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)
	accountingConfigRepo := persistence.NewGormAccountingConfigRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	videoRepo := persistence.NewGormVideoRepository(db.DB)

	// Channel adapters; a blank credential leaves that platform unregistered
	// and both schedulers skip it silently
	registry := channels.NewPlatformRegistry()
	if cfg.Integrations.CloverMerchant != "" && cfg.Integrations.CloverAPIToken != "" {
		cloverCfg := channels.NewCloverConfig(cfg.Integrations.CloverMerchant, cfg.Integrations.CloverAPIToken)
		cloverCfg.BaseURL = cfg.Integrations.CloverBaseURL
		cloverAdapter, err := channels.NewCloverAdapter(cloverCfg)
		if err != nil {
			log.Fatal("Failed to build Clover adapter", zap.Error(err))
		}
		registry.Register(cloverAdapter)
		log.Info("Clover channel registered")
	}
	if cfg.Integrations.BigCommerceStoreHash != "" && cfg.Integrations.BigCommerceToken != "" {
		bcCfg := channels.NewBigCommerceConfig(cfg.Integrations.BigCommerceStoreHash, cfg.Integrations.BigCommerceToken)
		bcCfg.BaseURL = cfg.Integrations.BigCommerceBaseURL
		bcAdapter, err := channels.NewBigCommerceAdapter(bcCfg)
		if err != nil {
			log.Fatal("Failed to build BigCommerce adapter", zap.Error(err))
		}
		registry.Register(bcAdapter)
		log.Info("BigCommerce channel registered")
	}
	if cfg.Integrations.AmazonSellerID != "" && cfg.Integrations.AmazonRefreshToken != "" {
		amzCfg := channels.NewAmazonConfig(
			cfg.Integrations.AmazonSellerID,
			cfg.Integrations.AmazonClientID,
			cfg.Integrations.AmazonClientSecret,
			cfg.Integrations.AmazonRefreshToken,
		)
		amzCfg.BaseURL = cfg.Integrations.AmazonBaseURL
		amzCfg.AuthURL = cfg.Integrations.AmazonAuthURL
		amzAdapter, err := channels.NewAmazonAdapter(amzCfg)
		if err != nil {
			log.Fatal("Failed to build Amazon adapter", zap.Error(err))
		}
		registry.Register(amzAdapter)
		log.Info("Amazon channel registered")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, log)
	scheduleService := scheduleapp.NewService(shiftRepo, timeOffRepo, log)
	trainingService := trainingapp.NewService(moduleRepo, enrollmentRepo, log)
	announcementService := announcementapp.NewService(announcementRepo, log)
	catalogService := catalogapp.NewService(itemRepo, log)
	syncService := channelsyncapp.NewSyncService(registry, orderRepo, syncRunRepo, itemRepo, channelsyncapp.SyncServiceConfig{
		Lookback: cfg.Sync.Lookback,
	}, log)
	accountingService := accountingapp.NewService(orderRepo, itemRepo, accountingConfigRepo, log)
	purchaseService := purchaseapp.NewService(purchaseRepo, itemRepo, purchaseapp.DefaultServiceConfig(), log)

	// Event bus with the sync failure alert subscriber
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Mail.Enabled {
		sendGridMailer, err := mailer.NewSendGridMailer(cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to build SendGrid mailer", zap.Error(err))
		}
		alertHandler := mailer.NewSyncAlertHandler(sendGridMailer, log)
		eventBus.Subscribe(alertHandler)
		log.Info("Sync alert mail enabled", zap.Strings("events", alertHandler.EventTypes()))
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	scheduleService.SetEventPublisher(eventBus)
	trainingService.SetEventPublisher(eventBus)
	syncService.SetEventPublisher(eventBus)

	// Shipping (optional, requires a Shippo token)
	var shippingService *shippingapp.Service
	if cfg.Integrations.ShippoToken != "" {
		shippoCfg := shippo.NewConfig(cfg.Integrations.ShippoToken)
		shippoCfg.BaseURL = cfg.Integrations.ShippoBaseURL
		shippoAdapter, err := shippo.NewAdapter(shippoCfg)
		if err != nil {
			log.Fatal("Failed to build Shippo adapter", zap.Error(err))
		}
		shippingService = shippingapp.NewService(shippoAdapter, log)
		log.Info("Shippo shipping enabled")
	} else {
		log.Warn("Shippo token not configured, shipping routes disabled")
	}

	// Video generation pipeline (optional, requires PiAPI and OpenAI keys)
	var (
		videoProjectService  *videoapp.ProjectService
		videoPipelineService *videoapp.PipelineService
	)
	if cfg.Integrations.PiAPIKey != "" && cfg.Integrations.OpenAIKey != "" && cfg.Video.RenderEndpoint != "" {
		piapiCfg := piapi.NewConfig(cfg.Integrations.PiAPIKey)
		piapiCfg.BaseURL = cfg.Integrations.PiAPIBaseURL
		piapiCfg.PollInterval = cfg.Video.PollInterval
		piapiCfg.MaxPollAttempts = cfg.Video.MaxPollAttempt
		generator, err := piapi.NewGenerator(piapiCfg, piapi.NewModelRegistry())
		if err != nil {
			log.Fatal("Failed to build PiAPI generator", zap.Error(err))
		}
		synthesizer, err := openaitts.NewSynthesizer(&openaitts.Config{
			APIKey:  cfg.Integrations.OpenAIKey,
			BaseURL: cfg.Integrations.OpenAIBaseURL,
			Model:   cfg.Integrations.OpenAITTSModel,
			Voice:   cfg.Integrations.OpenAITTSVoice,
		})
		if err != nil {
			log.Fatal("Failed to build speech synthesizer", zap.Error(err))
		}
		renderer, err := render.NewRemoteRenderer(&render.RemoteConfig{Endpoint: cfg.Video.RenderEndpoint})
		if err != nil {
			log.Fatal("Failed to build remote renderer", zap.Error(err))
		}
		concatenator := render.NewConcatenator(cfg.Video.FFmpegPath, cfg.Video.WorkDir)

		var objectStorage videoapp.ObjectStorage
		if cfg.Storage.Bucket != "" {
			s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
			if err != nil {
				log.Fatal("Failed to build S3 object storage", zap.Error(err))
			}
			objectStorage = s3Storage
		} else {
			log.Warn("Storage bucket not configured, final videos are held in memory")
			objectStorage = storage.NewStubObjectStorage("")
		}

		videoProjectService = videoapp.NewProjectService(videoRepo, generator, log)
		pipelineCfg := videoapp.DefaultPipelineConfig()
		pipelineCfg.ChunkSeconds = cfg.Video.ChunkSeconds
		pipelineCfg.Voice = cfg.Integrations.OpenAITTSVoice
		pipelineCfg.DownloadTTL = cfg.Storage.PresignExpiry
		videoPipelineService = videoapp.NewPipelineService(
			videoRepo, generator, synthesizer, renderer, concatenator, objectStorage, pipelineCfg, log,
		)
		log.Info("Video generation pipeline enabled")
	} else {
		log.Warn("Video generation not configured, video routes disabled")
	}

	// Background channel sync loops
	if cfg.Sync.Enabled {
		syncScheduler := scheduler.NewSyncScheduler(scheduler.Config{
			OrderInterval:     cfg.Sync.OrderInterval,
			InventoryInterval: cfg.Sync.InventoryInterval,
			WindowStartHour:   cfg.Sync.WindowStartHour,
			WindowEndHour:     cfg.Sync.WindowEndHour,
			Lookback:          cfg.Sync.Lookback,
		}, syncService, syncService, tenantRepo, log)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		defer func() {
			if err := syncScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Channel sync scheduler started",
			zap.Duration("order_interval", cfg.Sync.OrderInterval),
			zap.Duration("inventory_interval", cfg.Sync.InventoryInterval),
		)
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	trainingHandler := handler.NewTrainingHandler(trainingService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	channelSyncHandler := handler.NewChannelSyncHandler(syncService)
	accountingHandler := handler.NewAccountingHandler(accountingService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	systemHandler := handler.NewSystemHandler(db.DB, appVersion)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(rateLimiter.RateLimit())
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health lives outside API versioning for load balancer probes
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
		},
	}))

	manager := middleware.RequireRole(identity.RoleManager)
	admin := middleware.RequireRole(identity.RoleAdmin)

	// Authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.PUT("/password", authHandler.ChangePassword)
	authRoutes.GET("/me", authHandler.Me)

	// Tenant administration, platform admin only
	tenantRoutes := router.NewDomainGroup("tenants", "/tenants")
	tenantRoutes.Use(admin)
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/:id", tenantHandler.Get)
	tenantRoutes.PUT("/:id", tenantHandler.Update)
	tenantRoutes.POST("/:id/suspend", tenantHandler.Suspend)
	tenantRoutes.POST("/:id/activate", tenantHandler.Activate)

	// Staff account management
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(manager)
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.PUT("/:id/role", userHandler.AssignRole)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)

	// Shifts and time off
	scheduleRoutes := router.NewDomainGroup("schedule", "/schedule")
	scheduleRoutes.POST("/shifts", manager, scheduleHandler.CreateShift)
	scheduleRoutes.GET("/shifts", scheduleHandler.GetSchedule)
	scheduleRoutes.PUT("/shifts/:id", manager, scheduleHandler.UpdateShift)
	scheduleRoutes.PUT("/shifts/:id/times", manager, scheduleHandler.RescheduleShift)
	scheduleRoutes.POST("/shifts/:id/publish", manager, scheduleHandler.PublishShift)
	scheduleRoutes.DELETE("/shifts/:id", manager, scheduleHandler.DeleteShift)
	scheduleRoutes.POST("/time-off", scheduleHandler.RequestTimeOff)
	scheduleRoutes.GET("/time-off", scheduleHandler.ListTimeOff)
	scheduleRoutes.POST("/time-off/:id/review", manager, scheduleHandler.ReviewTimeOff)
	scheduleRoutes.POST("/time-off/:id/cancel", scheduleHandler.CancelTimeOff)

	// Training modules and enrollments
	trainingRoutes := router.NewDomainGroup("training", "/training")
	trainingRoutes.POST("/modules", manager, trainingHandler.CreateModule)
	trainingRoutes.GET("/modules", trainingHandler.ListModules)
	trainingRoutes.GET("/modules/:id/stats", manager, trainingHandler.GetModuleStats)
	trainingRoutes.PUT("/modules/:id", manager, trainingHandler.UpdateModule)
	trainingRoutes.POST("/modules/:id/activate", manager, trainingHandler.ActivateModule)
	trainingRoutes.POST("/modules/:id/deactivate", manager, trainingHandler.DeactivateModule)
	trainingRoutes.POST("/modules/:id/enroll", trainingHandler.Enroll)
	trainingRoutes.GET("/modules/:id/enrollments", manager, trainingHandler.ListModuleEnrollments)
	trainingRoutes.GET("/enrollments", trainingHandler.MyEnrollments)
	trainingRoutes.PUT("/enrollments/:id/progress", trainingHandler.UpdateProgress)
	trainingRoutes.POST("/enrollments/:id/complete", trainingHandler.CompleteEnrollment)

	// Announcements
	announcementRoutes := router.NewDomainGroup("announcements", "/announcements")
	announcementRoutes.POST("", manager, announcementHandler.Create)
	announcementRoutes.GET("", manager, announcementHandler.List)
	announcementRoutes.GET("/feed", announcementHandler.Feed)
	announcementRoutes.PUT("/:id", manager, announcementHandler.Update)
	announcementRoutes.POST("/:id/publish", manager, announcementHandler.Publish)
	announcementRoutes.POST("/:id/archive", manager, announcementHandler.Archive)
	announcementRoutes.DELETE("/:id", manager, announcementHandler.Delete)

	// Inventory catalog
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/items", manager, catalogHandler.CreateItem)
	catalogRoutes.GET("/items", catalogHandler.ListItems)
	catalogRoutes.GET("/items/low-stock", manager, catalogHandler.ListLowStock)
	catalogRoutes.GET("/items/sku/:sku", catalogHandler.GetItemBySKU)
	catalogRoutes.GET("/items/:id", catalogHandler.GetItem)
	catalogRoutes.PUT("/items/:id", manager, catalogHandler.UpdateItem)
	catalogRoutes.PUT("/items/:id/listings", manager, catalogHandler.SetListings)
	catalogRoutes.POST("/items/:id/adjust", manager, catalogHandler.AdjustQuantity)
	catalogRoutes.POST("/items/:id/activate", manager, catalogHandler.ActivateItem)
	catalogRoutes.POST("/items/:id/deactivate", manager, catalogHandler.DeactivateItem)
	catalogRoutes.DELETE("/items/:id", manager, catalogHandler.DeleteItem)

	// Channel sync and imported orders
	channelRoutes := router.NewDomainGroup("channels", "/channels")
	channelRoutes.Use(manager)
	channelRoutes.POST("/sync", channelSyncHandler.SyncNow)
	channelRoutes.POST("/:platform/push-inventory", channelSyncHandler.PushInventory)
	channelRoutes.GET("/runs", channelSyncHandler.ListRuns)
	channelRoutes.GET("/orders", channelSyncHandler.ListOrders)
	channelRoutes.GET("/orders/:id", channelSyncHandler.GetOrder)

	// Accounting
	accountingRoutes := router.NewDomainGroup("accounting", "/accounting")
	accountingRoutes.Use(manager)
	accountingRoutes.GET("/config", accountingHandler.GetConfig)
	accountingRoutes.PUT("/config", accountingHandler.SaveConfig)
	accountingRoutes.GET("/summary", accountingHandler.Summary)
	accountingRoutes.GET("/trend", accountingHandler.Trend)
	accountingRoutes.GET("/top-items", accountingHandler.TopItems)

	// Employee purchases
	purchaseRoutes := router.NewDomainGroup("purchases", "/purchases")
	purchaseRoutes.POST("", purchaseHandler.Create)
	purchaseRoutes.GET("", purchaseHandler.List)
	purchaseRoutes.GET("/:id", purchaseHandler.Get)
	purchaseRoutes.POST("/:id/approve", manager, purchaseHandler.Approve)
	purchaseRoutes.POST("/:id/complete", manager, purchaseHandler.Complete)
	purchaseRoutes.POST("/:id/cancel", purchaseHandler.Cancel)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(tenantRoutes).
		Register(userRoutes).
		Register(scheduleRoutes).
		Register(trainingRoutes).
		Register(announcementRoutes).
		Register(catalogRoutes).
		Register(channelRoutes).
		Register(accountingRoutes).
		Register(purchaseRoutes).
		Register(systemRoutes)

	if shippingService != nil {
		shippingHandler := handler.NewShippingHandler(shippingService)
		shippingRoutes := router.NewDomainGroup("shipping", "/shipping")
		shippingRoutes.POST("/rates", shippingHandler.GetRates)
		shippingRoutes.POST("/labels", shippingHandler.PurchaseLabel)
		shippingRoutes.GET("/track", shippingHandler.Track)
		r.Register(shippingRoutes)
	}

	if videoProjectService != nil {
		videoHandler := handler.NewVideoHandler(videoProjectService, videoPipelineService)
		videoRoutes := router.NewDomainGroup("videos", "/videos")
		videoRoutes.Use(manager)
		videoRoutes.GET("/models", videoHandler.ListModels)
		videoRoutes.POST("", videoHandler.CreateProject)
		videoRoutes.GET("", videoHandler.ListProjects)
		videoRoutes.GET("/:id", videoHandler.GetProject)
		videoRoutes.DELETE("/:id", videoHandler.DeleteProject)
		videoRoutes.POST("/:id/scenes", videoHandler.AddScene)
		videoRoutes.PUT("/:id/scenes/:scene_id", videoHandler.UpdateScene)
		videoRoutes.DELETE("/:id/scenes/:scene_id", videoHandler.RemoveScene)
		videoRoutes.PUT("/:id/scenes", videoHandler.ReorderScenes)
		videoRoutes.POST("/:id/generate", videoHandler.Generate)
		videoRoutes.GET("/:id/status", videoHandler.Status)
		videoRoutes.GET("/:id/download", videoHandler.DownloadLink)
		r.Register(videoRoutes)
	}

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
