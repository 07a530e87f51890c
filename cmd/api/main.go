// @title QBank API
// @version 1.0
// @description Taxonomy-filtered question selection, counting and custom quiz generation.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"qbank/internal/adapter"
	"qbank/internal/cache"
	"qbank/internal/config"
	"qbank/internal/database"
	"qbank/internal/handler"
	"qbank/internal/logger"
	"qbank/internal/metrics"
	"qbank/internal/middleware"
	"qbank/internal/repository"
	"qbank/internal/service"

	_ "qbank/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")

	// Repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	taxonomyRepository := repository.NewSQLXTaxonomyRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	customQuizRepository := repository.NewSQLXCustomQuizRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	bookmarkRepository := repository.NewSQLXBookmarkRepository(db)

	// Redis-backed adapters
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	counter := adapter.NewRedisAggregateCounter(redisClient)
	runLock := adapter.NewRedisRunLock(redisClient)

	// Services
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	countingService := service.NewCountingService(counter, questionRepository, cfg.Engine)
	hierarchy := service.NewHierarchyBuilder(taxonomyRepository, cacheAdapter, cfg.Engine.RebuildRetryDelay)
	historyIndex := service.NewHistoryIndex(sessionRepository, cfg.Engine.HistorySessionLimit)
	resolver := service.NewFilterResolver(taxonomyRepository, questionRepository, bookmarkRepository, historyIndex, countingService)
	sampler := service.NewQuizSampler(cfg.Engine.MaxQuestions, nil)

	customQuizService := service.NewCustomQuizService(txManager, customQuizRepository, sessionRepository, resolver, sampler)
	taxonomyService := service.NewTaxonomyService(txManager, taxonomyRepository, customQuizRepository, countingService, hierarchy)
	questionService := service.NewQuestionService(taxonomyRepository, questionRepository, countingService)
	migrationRunner := service.NewMigrationRunner(
		service.NewMigrationSteps(questionRepository, taxonomyRepository),
		runLock,
		cacheAdapter,
		cfg.Migration,
	)
	appLogger.Info("Services initialized")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go hierarchy.Run(ctx)

	// Handlers
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)
	questionHandler := handler.NewQuestionHandler(resolver, questionService)
	customQuizHandler := handler.NewCustomQuizHandler(customQuizService)
	adminHandler := handler.NewAdminHandler(migrationRunner, taxonomyService)
	validator := middleware.NewValidationMiddleware()

	metrics.Init()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	apiGroup := app.Group("/api", middleware.Protected(authService), validator.RequireJSON())

	apiGroup.Get("/taxonomy", taxonomyHandler.GetHierarchy)

	questionGroup := apiGroup.Group("/questions")
	questionGroup.Post("/count", questionHandler.CountQuestions)
	questionGroup.Post("/resolve", questionHandler.ResolveQuestions)

	quizGroup := apiGroup.Group("/quizzes/custom")
	quizGroup.Post("/", customQuizHandler.CreateCustomQuiz)
	quizGroup.Get("/:id", validator.ValidateIDParam("id"), customQuizHandler.GetCustomQuiz)
	quizGroup.Delete("/:id", validator.ValidateIDParam("id"), customQuizHandler.DeleteCustomQuiz)

	adminGroup := apiGroup.Group("/admin", middleware.AdminOnly())
	adminGroup.Post("/taxonomy/nodes", taxonomyHandler.CreateNode)
	adminGroup.Put("/taxonomy/nodes/:id", validator.ValidateIDParam("id"), taxonomyHandler.RenameNode)
	adminGroup.Delete("/taxonomy/nodes/:id", validator.ValidateIDParam("id"), taxonomyHandler.DeleteNode)
	adminGroup.Post("/questions", questionHandler.CreateQuestion)
	adminGroup.Delete("/questions/:id", validator.ValidateIDParam("id"), questionHandler.DeleteQuestion)
	adminGroup.Post("/migrations", adminHandler.StartMigration)
	adminGroup.Get("/migrations/:id", validator.ValidateIDParam("id"), adminHandler.MigrationStatus)
	adminGroup.Delete("/migrations/:id", validator.ValidateIDParam("id"), adminHandler.CancelMigration)
	adminGroup.Post("/counters/reconcile", adminHandler.ReconcileCounter)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
