// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/config"
	"github.com/qorax-ai/sales-agent-platform/internal/crm"
	"github.com/qorax-ai/sales-agent-platform/internal/dialogue"
	"github.com/qorax-ai/sales-agent-platform/internal/events"
	"github.com/qorax-ai/sales-agent-platform/internal/handler"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/llm"
	"github.com/qorax-ai/sales-agent-platform/internal/middleware"
	"github.com/qorax-ai/sales-agent-platform/internal/notify"
	"github.com/qorax-ai/sales-agent-platform/internal/profile"
	"github.com/qorax-ai/sales-agent-platform/internal/response"
	"github.com/qorax-ai/sales-agent-platform/internal/service"
	"github.com/qorax-ai/sales-agent-platform/internal/session"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
	"github.com/qorax-ai/sales-agent-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "sales-agent-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Event bus: NATS JetStream when enabled, otherwise a noop bus.
	var bus events.Bus = events.NewNoop()
	if cfg.NATSEnabled {
		natsBus, err := events.ConnectNATS(ctx, events.NATSConfig{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		bus = natsBus
	}
	defer bus.Close()

	// CRM
	leadSink, err := crm.OpenSQLite(cfg.CRMPath)
	if err != nil {
		log.Error("failed to open CRM database", zap.Error(err))
		os.Exit(1)
	}
	defer leadSink.Close()

	// Notifications: SMTP when a relay is configured, otherwise log only.
	var notifier notify.Notifier = notify.NewLog(log)
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTP(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			From:      cfg.SMTPFrom,
			SalesTeam: cfg.SalesTeamMail,
		})
	}

	// LLM client (optional)
	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" {
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, LLM replies disabled", zap.Error(err))
		}
	} else if cfg.OpenAIAPIKey != "" {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client, LLM replies disabled", zap.Error(err))
		}
	}

	// Core components
	store := session.NewStore(cfg.SessionTTL, log)
	defer store.Close()

	inter := interpret.NewInterpreter()
	profiler := profile.NewProfiler()
	cat := catalog.New()
	selector := response.NewSelector(cat, inter)

	agentSvc := service.NewAgentService(
		service.AgentConfig{
			UseLLM:   cfg.UseLLM && llmClient != nil,
			LLMModel: cfg.LLMModel,
		},
		store, inter, profiler,
		dialogue.NewLadder(),
		selector, llmClient,
		leadSink, notifier, bus, log,
	)
	copilotSvc := service.NewCopilotService(store, inter, profiler, cat, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(bus)
	sessionHandler := handler.NewSessionHandler(agentSvc, log)
	copilotHandler := handler.NewCopilotHandler(copilotSvc, log)
	leadHandler := handler.NewLeadHandler(leadSink, log)
	productHandler := handler.NewProductHandler(cat)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Public chat surface
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Start)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", sessionHandler.End)
				r.Post("/messages", sessionHandler.SendMessage)
				r.Get("/messages", sessionHandler.History)
				r.Get("/summary", sessionHandler.Summary)
				r.Get("/profile", sessionHandler.Profile)
				r.Post("/reset", sessionHandler.Reset)
			})
		})

		// Products are public: the chat widget renders them.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		// Internal surfaces require a JWT.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Post("/copilot/{session}/analyze", copilotHandler.Analyze)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", leadHandler.List)
				r.Get("/{id}", leadHandler.Get)
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
