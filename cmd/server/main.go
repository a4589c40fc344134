package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/adapter/handler"
	"github.com/Pilot202/skylit-logistic-backend/internal/adapter/llm"
	"github.com/Pilot202/skylit-logistic-backend/internal/adapter/messaging"
	"github.com/Pilot202/skylit-logistic-backend/internal/adapter/storage"
	"github.com/Pilot202/skylit-logistic-backend/internal/config"
	"github.com/Pilot202/skylit-logistic-backend/internal/core/nlp"
	"github.com/Pilot202/skylit-logistic-backend/internal/core/service"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL is the system of record; refuse to start without it.
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	// Redis carries the dashboard broadcast and the summary cache, both
	// best-effort: run without them if it is down.
	var (
		broadcaster  port.Broadcaster
		summaryCache port.SummaryCache
	)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, dashboard broadcast disabled", zap.Error(err))
		rdb.Close()
		rdb = nil
	} else {
		redisAdapter := storage.NewRedisAdapter(rdb)
		broadcaster = redisAdapter
		summaryCache = redisAdapter
		logger.Info("connected to redis")
	}

	// The model is optional: without a key the slow path degrades to its
	// static fallbacks and replies stay templated.
	var llmClient port.LLMClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			logger.Warn("gemini client init failed, running without model", zap.Error(err))
		} else {
			llmClient = gemini
			logger.Info("gemini client ready", zap.String("model", cfg.GeminiModel))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, running without model")
	}

	repo := storage.NewMySQLAdapter(db)
	inventory := service.NewInventoryService(repo, summaryCache, logger)
	slowPath := nlp.NewSlowPath(llmClient, logger)
	replies := service.NewReplyFormatter(llmClient, logger)
	messenger := messaging.NewTwilioMessenger(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	pipeline := service.NewMessagePipeline(repo, inventory, slowPath, replies, messenger, broadcaster, logger)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	httpHandler := handler.NewHTTPHandler(pipeline, inventory, logger)
	httpHandler.RegisterRoutes(engine)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}
	db.Close()
	logger.Info("connections closed")
}
