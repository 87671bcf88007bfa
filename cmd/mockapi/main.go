package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/wealth-desk/client/internal/config"
	"github.com/zhouzirui/wealth-desk/client/internal/handler"
	"github.com/zhouzirui/wealth-desk/client/internal/model/portfolio"
	authService "github.com/zhouzirui/wealth-desk/client/internal/service/auth"
	chatService "github.com/zhouzirui/wealth-desk/client/internal/service/chat"
	portfolioService "github.com/zhouzirui/wealth-desk/client/internal/service/portfolio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	authSvc := authService.NewService(authService.SeedUsers(), cfg.Mock.TokenTTL)
	chatSvc := chatService.NewService()
	portfolioSvc := portfolioService.NewService(portfolio.NewMemoryStore(portfolio.Seed(), portfolio.SeedHoldings()))

	router := handler.NewRouter(authSvc, chatSvc, portfolioSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("development API listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
