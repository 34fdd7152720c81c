package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medassist/docfinder/internal/adapters/cache"
	"github.com/medassist/docfinder/internal/adapters/database"
	"github.com/medassist/docfinder/internal/api/handlers"
	"github.com/medassist/docfinder/internal/api/middleware"
	"github.com/medassist/docfinder/internal/api/routes"
	"github.com/medassist/docfinder/internal/application/services"
	"github.com/medassist/docfinder/internal/domain/providers"
	"github.com/medassist/docfinder/internal/domain/repositories"
	"github.com/medassist/docfinder/internal/infrastructure/clients/openai"
	"github.com/medassist/docfinder/internal/infrastructure/clients/redis"
	"github.com/medassist/docfinder/internal/infrastructure/clients/sqlite"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
	"github.com/medassist/docfinder/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Dataset store
	dbClient, err := sqlite.NewClient(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open doctors database")
	}
	defer dbClient.Close()
	logger.Info().Str("path", cfg.Database.Path).Msg("doctors database opened")

	// Cache: Redis when enabled, in-process fallback otherwise. The fallback
	// keeps sessions working but loses them on restart.
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, using in-process cache")
			cacheProvider = cache.NewMemoryAdapter()
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("redis connected")
		}
	} else {
		cacheProvider = cache.NewMemoryAdapter()
	}

	// Repository: cached wrapper only makes sense over a shared cache
	baseAdapter := database.NewDoctorAdapter(dbClient)
	var doctorRepo repositories.DoctorRepository
	if cfg.Redis.Enabled {
		doctorRepo = database.NewCachedDoctorAdapter(baseAdapter, cacheProvider)
	} else {
		doctorRepo = baseAdapter
	}

	// Response composer; without an API key every recommendation reply
	// degrades to the plain listing
	var responder providers.ResponseProvider
	if cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; replies degrade to plain listings")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize OpenAI client")
		} else {
			responder = openaiClient
		}
	}

	// Services
	rankingCfg := services.DefaultRankingConfig()
	rankingCfg.MaxResults = cfg.Chat.MaxDoctors
	ranking := services.NewRankingService(rankingCfg)

	mapper := services.NewSymptomMapperService(services.DefaultSymptomMapConfig())
	interpreter := services.NewQueryInterpreterService(services.DefaultInterpreterConfig(), mapper)
	emergency := services.NewEmergencyService(services.DefaultEmergencyConfig())
	transcripts := services.NewTranscriptService(cacheProvider, cfg.Chat.MaxHistory, cfg.Chat.TranscriptTTL)

	chatService := services.NewChatService(doctorRepo, interpreter, emergency, ranking, transcripts, responder)
	doctorService := services.NewDoctorService(doctorRepo, ranking)

	// Pre-populate the shared cache with the searches every session hits
	if cfg.Redis.Enabled {
		warming := services.NewCacheWarmingService(doctorRepo)
		go warming.StartPeriodicWarming(ctx, 10*time.Minute)
	}

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService, metrics)
	doctorHandler := handlers.NewDoctorHandler(doctorService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cfg.Redis.Enabled {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(chatHandler, doctorHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
