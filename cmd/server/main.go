package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/config"
	"github.com/benvon/day-planner/internal/handlers"
	"github.com/benvon/day-planner/internal/logger"
	"github.com/benvon/day-planner/internal/middleware"
	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/planner/agents"
	"github.com/benvon/day-planner/internal/profiles"
	"github.com/benvon/day-planner/internal/queue"
	"github.com/benvon/day-planner/internal/services/ai"
	"github.com/benvon/day-planner/internal/store"
	"github.com/benvon/day-planner/internal/telemetry"
	"github.com/benvon/day-planner/internal/workflow"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry tracing (optional)
	otelActive := false
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			shutdownTracing, err := telemetry.Setup(context.Background(), "day-planner-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				otelActive = true
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := shutdownTracing(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Profile store seeded with the embedded demo profiles
	seed, err := profiles.Seed()
	if err != nil {
		zapLogger.Fatal("failed_to_load_profile_seed", zap.Error(err))
	}
	profileStore := store.NewMemoryProfileStore(seed)
	zapLogger.Info("profiles_seeded", zap.Int("count", len(seed)))

	// Plan store: Postgres when configured, in-memory otherwise
	var planStore store.PlanStore
	if cfg.PlansDBURL != "" {
		pgStore, err := store.NewPostgresPlanStore(cfg.PlansDBURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		defer func() {
			if err := pgStore.Close(); err != nil {
				zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
			}
		}()
		planStore = pgStore
		zapLogger.Info("connected_to_database")
	} else {
		planStore = store.NewMemoryPlanStore()
		zapLogger.Info("using_in_memory_plan_store")
	}

	// Redis-backed rate limiting when configured
	var redisClient *redis.Client
	var rateLimitMW func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("invalid_redis_url", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		rateLimitMW, err = middleware.RateLimit(redisClient, cfg.RateLimit)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
		zapLogger.Info("connected_to_redis", zap.String("rate", cfg.RateLimit))
	}

	// Invite delivery: queue-backed when RabbitMQ is configured, otherwise
	// the logging stub delivers inline
	var messenger collab.Messenger = collab.NewStubMessenger(zapLogger)
	var jobQueue queue.JobQueue
	if cfg.RabbitMQURL != "" {
		jobQueue = connectRabbitMQ(cfg.RabbitMQURL, zapLogger)
		defer func() {
			if err := jobQueue.Close(); err != nil {
				zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
			}
		}()
		messenger = queue.NewQueueMessenger(jobQueue, zapLogger)
	}

	// AI provider (optional)
	var provider ai.Provider
	if cfg.OpenAIKey != "" {
		provider = ai.NewOpenAIProviderWithLogger(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zapLogger, debugMode)
		zapLogger.Info("ai_provider_configured", zap.String("model", cfg.AIModel))
	} else {
		zapLogger.Warn("ai_provider_not_configured_using_deterministic_fallbacks")
	}
	var bullets agents.BulletSource = provider

	calendar := collab.NewDemoCalendar()
	ctxEngine := planner.NewContextEngine(calendar)
	engine := workflow.NewEngine(calendar, messenger, provider, zapLogger)

	// Handlers
	healthChecker := handlers.NewHealthChecker(planStore, jobQueue, redisClient)
	profileHandler := handlers.NewProfileHandler(profileStore)
	dayPlanHandler := handlers.NewDayPlanHandler(profileStore, ctxEngine, bullets, zapLogger)
	agentHandler := handlers.NewAgentHandler(profileStore, ctxEngine)
	eventHandler := handlers.NewEventHandler(planStore, profileStore, engine)
	nlHandler := handlers.NewNLHandler(planStore, profileStore, engine, ctxEngine, provider)

	// Router and middleware. gorilla/mux runs middleware in registration
	// order, outermost first.
	r := mux.NewRouter()
	if otelActive {
		r.Use(otelmux.Middleware("day-planner-api"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Audit(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Public routes
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	if rateLimitMW != nil {
		apiRouter.Use(rateLimitMW)
	}

	// The SSE stream skips the timeout wrapper so the response writer stays
	// flushable
	apiRouter.HandleFunc("/plan/day/stream", dayPlanHandler.StreamDay).Methods("GET")

	timeoutMW := middleware.Timeout(middleware.DefaultRequestTimeout)

	profilesRouter := apiRouter.PathPrefix("/profiles").Subrouter()
	profilesRouter.Use(timeoutMW)
	profileHandler.RegisterRoutes(profilesRouter)

	planRouter := apiRouter.PathPrefix("/plan").Subrouter()
	planRouter.Use(timeoutMW)
	dayPlanHandler.RegisterRoutes(planRouter)

	agentsRouter := apiRouter.PathPrefix("/agents").Subrouter()
	agentsRouter.Use(timeoutMW)
	agentHandler.RegisterRoutes(agentsRouter)

	eventsRouter := apiRouter.PathPrefix("/events").Subrouter()
	eventsRouter.Use(timeoutMW)
	eventHandler.RegisterRoutes(eventsRouter)

	nlRouter := apiRouter.PathPrefix("").Subrouter()
	nlRouter.Use(timeoutMW)
	nlHandler.RegisterRoutes(nlRouter)

	// Catch-all OPTIONS handler so preflight requests get a response even on
	// method-restricted routes; the CORS middleware sets the headers
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// connectRabbitMQ retries the connection with exponential backoff to cover
// broker startup delays
func connectRabbitMQ(amqpURL string, zapLogger *zap.Logger) queue.JobQueue {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
		zap.Int("max_retries", maxRetries),
		zap.Error(lastErr),
	)
	return nil
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
