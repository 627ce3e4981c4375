package main

import (
	"database/sql"
	stdlog "log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/cleberrangel/studyplan-api/internal/config"
	"github.com/cleberrangel/studyplan-api/internal/database"
	"github.com/cleberrangel/studyplan-api/internal/handler"
	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/middleware"
	"github.com/cleberrangel/studyplan-api/internal/migration"
	"github.com/cleberrangel/studyplan-api/internal/repository"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/cleberrangel/studyplan-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Msg("StudyPlan API iniciando")

	// Banco de dados é opcional; sem ele o histórico fica desabilitado
	var historyRepo *repository.HistoryRepository
	db := connectDatabase(cfg)
	if db != nil {
		defer database.Close(db)
		historyRepo = repository.NewHistoryRepository(db)
	}

	// Banco de questões e resultados persistidos em CSV
	bank, err := repository.LoadQuestionBank(cfg.QuizDataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.QuizDataPath).Msg("Erro ao carregar banco de questões")
	}

	store, err := repository.OpenResultsStore(cfg.ResultsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ResultsPath).Msg("Erro ao abrir armazenamento de resultados")
	}

	// Inicializa serviços
	plannerService := service.NewPlannerService(cfg.SolverMaxNodes)
	exporter := service.NewPlanExporter()
	leaderboardService := service.NewLeaderboardService(store)
	quizService := service.NewQuizService(bank)
	reviewService := service.NewReviewService()
	insightsService := service.NewInsightsService(store)
	gradebookService := service.NewGradebookService()

	// Hub WebSocket para broadcast do ranking
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Inicializa handlers
	planHandler := handler.NewPlanHandler(plannerService, exporter, historyRepo)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	quizHandler := handler.NewQuizHandler(quizService, leaderboardService, wsHub)
	reviewHandler := handler.NewReviewHandler(reviewService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	gradebookHandler := handler.NewGradebookHandler(gradebookService)
	healthHandler := handler.NewHealthHandler(db, wsHub, Version)

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	// Inicializa router
	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(gin.Recovery())

	// Health check (público)
	r.GET("/health", healthHandler.HealthCheck)

	// Debug memory endpoint (público)
	r.GET("/debug/memory", healthHandler.MemoryInfo)

	// Force GC endpoint (público)
	r.POST("/debug/gc", func(c *gin.Context) {
		runtime.GC()
		debug.FreeOSMemory()
		c.JSON(200, gin.H{"status": "gc_completed"})
	})

	// Ranking em tempo real (público)
	r.GET("/ws/leaderboard", wsHub.ServeWS)

	// Grupo de rotas protegidas
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(middleware.AuthConfig{
		TokenAPI:     cfg.TokenAPI,
		TokenAPIHash: cfg.TokenAPIHash,
	}))
	api.Use(rateLimiter.Handler())
	{
		api.POST("/plans", planHandler.GeneratePlan)
		api.POST("/plans/export", planHandler.ExportPlan)
		api.GET("/plans/history", planHandler.History)

		api.GET("/leaderboard", leaderboardHandler.Standings)
		api.POST("/leaderboard/train", leaderboardHandler.Train)

		api.POST("/quizzes/sample", quizHandler.Sample)
		api.POST("/quizzes/results", quizHandler.SubmitResult)

		api.POST("/reviews", reviewHandler.PlanReviews)
		api.POST("/insights", insightsHandler.Report)
		api.POST("/gradebook/analyze", gradebookHandler.Analyze)
	}

	// Inicia servidor
	port := cfg.Port
	log.Info().Str("port", port).Msg("Servidor iniciando")

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
		os.Exit(1)
	}
}

// connectDatabase conecta ao Postgres e roda as migrações quando configurado
func connectDatabase(cfg *config.Config) *sql.DB {
	log := logger.Global()

	if !cfg.DatabaseEnabled() {
		log.Info().Msg("Banco de dados não configurado, histórico de planos desabilitado")
		return nil
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao conectar ao banco de dados")
	}

	if err := migration.NewMigrator(db).Run(); err != nil {
		log.Fatal().Err(err).Msg("Erro ao executar migrações")
	}

	return db
}
