package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"
	"auction-marketplace/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.App.LogLevel)

	userStore, auctionStore, pool, err := buildStores(cfg)
	if err != nil {
		utils.Fatal("failed to initialize storage", map[string]any{"error": err.Error()})
	}
	if pool != nil {
		defer pool.Close()
	}

	authSvc := auth.NewAuthService(userStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	auctionSvc := auction.NewAuctionService(auctionStore)

	router := server.SetupRouter(authSvc, auctionSvc, userStore)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "env": cfg.App.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	utils.Info("server stopped", nil)
}

// buildStores selects the storage backend: Postgres when PG_DSN is set,
// the in-memory repository otherwise.
func buildStores(cfg config.Config) (repository.UserStore, repository.AuctionStore, *pgxpool.Pool, error) {
	if cfg.PG.DSN == "" {
		repo := repository.NewMemoryRepo()
		utils.Info("using in-memory store", nil)
		return repo, repo, nil, nil
	}

	if err := runMigrations(cfg.PG.DSN, cfg.PG.MigrationsDir); err != nil {
		return nil, nil, nil, err
	}

	pool, err := pgxpool.New(context.Background(), cfg.PG.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	repo := repository.NewPGRepo(pool)
	utils.Info("using postgres store", nil)
	return repo, repo, pool, nil
}

// runMigrations applies pending goose migrations before serving.
func runMigrations(dsn, dir string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Up(db, dir)
}
