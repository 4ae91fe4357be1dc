package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/johnsosoka/jscom-contact-services/internal/config"
	"github.com/johnsosoka/jscom-contact-services/internal/handler"
	"github.com/johnsosoka/jscom-contact-services/internal/logging"
	"github.com/johnsosoka/jscom-contact-services/internal/queue"
	"github.com/johnsosoka/jscom-contact-services/internal/repository"
	"github.com/johnsosoka/jscom-contact-services/internal/service"
	"log/slog"
)

func main() {
	_ = godotenv.Load()
	logging.Setup("listener")
	cfg := config.Parse()

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	nc, js, err := queue.Connect(cfg.NATSURL)
	if err != nil {
		logging.Fatal("failed to connect to nats", "error", err)
	}
	defer nc.Close()

	submissionQueue, err := queue.NewNatsQueue(js, cfg.SubmissionStream, cfg.SubmissionSubject)
	if err != nil {
		logging.Fatal("failed to provision submission queue", "error", err)
	}

	messageRepo := repository.NewPgMessageRepository(pool)
	blocklistRepo := repository.NewPgBlockListRepository(pool)
	submissionService := service.NewSubmissionService(submissionQueue)
	adminService := service.NewAdminService(messageRepo, blocklistRepo)

	h := handler.New(pool, cfg.AllowedOrigin)
	contactHandler := handler.NewContactHandler(submissionService, cfg.TrustedProxyCount)
	adminHandler := handler.NewAdminHandler(adminService)
	rateLimiter := handler.NewRateLimiter(cfg.RateLimitPerMin, cfg.TrustedProxyCount)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("POST /contact", rateLimiter.Middleware(http.HandlerFunc(contactHandler.Submit)))

	// Admin routes (auth is enforced by the fronting proxy, not here)
	mux.HandleFunc("GET /admin/messages", adminHandler.ListMessages)
	mux.HandleFunc("GET /admin/messages/{id}", adminHandler.GetMessage)
	mux.HandleFunc("GET /admin/blocklist", adminHandler.ListBlocked)
	mux.HandleFunc("POST /admin/blocklist", adminHandler.Block)
	mux.HandleFunc("DELETE /admin/blocklist/{id}", adminHandler.Unblock)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
