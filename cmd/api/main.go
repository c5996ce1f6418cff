package main

import (
	"context"
	"log"
	"time"

	"github.com/clientdeck/portal-backend/config"
	"github.com/clientdeck/portal-backend/internal/auth/repository"
	"github.com/clientdeck/portal-backend/internal/auth/service"
	"github.com/clientdeck/portal-backend/internal/bootstrap"
	"github.com/clientdeck/portal-backend/internal/janitor"
	"github.com/clientdeck/portal-backend/internal/migrations"
	projrepo "github.com/clientdeck/portal-backend/internal/projects/repository"
	"github.com/clientdeck/portal-backend/pkg/logger"
)

const orphanGrace = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	if err := migrations.Up(ctx, cfg.Database.DSN); err != nil {
		logg.Fatal().Err(err).Msg("migrations failed")
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		logg.Fatal().Err(err).Msg("database unavailable")
	}
	defer pool.Close()

	cache, err := bootstrap.OpenRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		// The portal runs without redis; the dashboard just recomputes stats.
		logg.Warn().Err(err).Msg("redis unavailable, stats cache disabled")
		cache = nil
	}

	// Provision the admin credential before taking traffic, so the first
	// login never races a bootstrap write.
	authSvc := service.NewAuthService(
		repository.NewAdminRepository(pool),
		projrepo.NewProjectRepository(pool),
		[]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, logg,
	)
	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logg.Fatal().Err(err).Msg("admin provisioning failed")
	}

	sweeper := janitor.New(projrepo.NewFileRepository(pool), orphanGrace, logg)
	sweeper.Start()
	defer sweeper.Stop()

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portal-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		Cache:       cache,
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL:    cfg.Auth.TokenTTL,
		LoginRate:   cfg.Auth.LoginRate,
		LoginBurst:  cfg.Auth.LoginBurst,
		UploadDir:   cfg.Uploads.Dir,
		Log:         logg,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("router build failed")
	}

	logg.Info().Str("port", cfg.Server.Port).Msg("listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}
