package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intake-platform/internal/auth"
	"intake-platform/internal/config"
	"intake-platform/internal/httpapi"
	"intake-platform/internal/intake"
	"intake-platform/internal/intent"
	"intake-platform/internal/lead"
	"intake-platform/internal/qualify"
	"intake-platform/internal/ratelimit"
	"intake-platform/internal/reporting"
	"intake-platform/internal/schedule"
	"intake-platform/internal/speech"
	"intake-platform/pkg/logger"
	"intake-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	var limiter ratelimit.Limiter
	policy := ratelimit.Policy{Window: cfg.RateLimit.Window, MaxRequests: cfg.RateLimit.MaxRequests}
	if cfg.RateLimit.Backend == "redis" {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter = ratelimit.NewRedisLimiter(rdb, policy)
	} else {
		limiter = ratelimit.NewMemoryLimiter(policy)
	}

	catalog, err := schedule.LoadCatalog(cfg.Intake.SlotCatalogPath)
	if err != nil {
		log.Error("slot catalog load failed", "err", err)
		os.Exit(1)
	}
	pack, err := intent.LoadKnowledgePack(cfg.Intake.KnowledgePackPath)
	if err != nil {
		log.Error("knowledge pack load failed", "err", err)
		os.Exit(1)
	}

	gen := speech.NewGeminiGenerator(speech.GeminiConfig{
		APIKey: cfg.Speech.GeminiAPIKey,
		Model:  cfg.Speech.GeminiModel,
	})
	replier := speech.NewReplyGenerator(gen, pack)
	replier.Timeout = cfg.Speech.GenerateTimeout

	chain := speech.NewChain(
		speech.NewElevenLabsSynthesizer(speech.ElevenLabsConfig{
			APIKey:  cfg.Speech.ElevenLabsAPIKey,
			VoiceID: cfg.Speech.ElevenLabsVoiceID,
		}),
		speech.NewGoogleTTSSynthesizer(speech.GoogleTTSConfig{
			Lang: cfg.Speech.FallbackTTSLang,
		}),
	)
	chain.PerProviderTimeout = cfg.Speech.SynthesizeTimeout

	leadRepo := lead.NewPostgresRepo(db)
	leadService := lead.NewService(leadRepo)

	orchestrator := intake.NewOrchestrator(
		limiter,
		intent.NewClassifier(pack),
		qualify.NewEngine(qualify.Config{
			EntryMax: cfg.Intake.QualifyEntryMax,
			MidMax:   cfg.Intake.QualifyMidMax,
		}),
		schedule.NewScheduler(catalog, cfg.Intake.InPersonHours),
		replier,
		chain,
		leadService,
		log,
	)

	handlers := httpapi.Handlers{
		Auth:         authManager,
		OperatorKey:  cfg.Auth.OperatorKey,
		Orchestrator: orchestrator,
		Leads:        leadService,
		Reports:      reporting.NewService(leadRepo),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, handlers, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "limiter", cfg.RateLimit.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
