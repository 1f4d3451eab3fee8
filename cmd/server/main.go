// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	appConfig "github.com/festy23/contribution_points/internal/config"
	contributionModel "github.com/festy23/contribution_points/internal/contribution/model"
	contributionRouter "github.com/festy23/contribution_points/internal/contribution/router"
	dbConfig "github.com/festy23/contribution_points/internal/database/config"
	"github.com/festy23/contribution_points/internal/database/database"
	"github.com/festy23/contribution_points/internal/database/migrate"
	"github.com/festy23/contribution_points/internal/database/pool"
	"github.com/festy23/contribution_points/internal/github"
	"github.com/festy23/contribution_points/internal/health"
	"github.com/festy23/contribution_points/internal/middleware"
	scoreModel "github.com/festy23/contribution_points/internal/score/model"
	scoreRepository "github.com/festy23/contribution_points/internal/score/repository"
	scoreRouter "github.com/festy23/contribution_points/internal/score/router"
	scoreService "github.com/festy23/contribution_points/internal/score/service"
	statisticsRouter "github.com/festy23/contribution_points/internal/statistics/router"
	userModel "github.com/festy23/contribution_points/internal/user/model"
	userRepository "github.com/festy23/contribution_points/internal/user/repository"
	userRouter "github.com/festy23/contribution_points/internal/user/router"
	"github.com/festy23/contribution_points/pkg/logger"
)

func main() {
	if err := appConfig.LoadDotEnv(appConfig.GetEnv("DOTENV_PATH", ".env")); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
	sugar.Info("server stopped")
}

func run(cfg appConfig.Config, sugar *zap.SugaredLogger) error {
	dbCfg := dbConfig.LoadConfigFromEnv()
	poolCfg := pool.LoadConfigFromEnv()

	db, err := database.NewWithConfig(dbCfg, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", dbConfig.SanitizeError(err, dbCfg))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Warnw("failed to close database", "error", err)
		}
	}()
	sugar.Infow("database connected", "driver", dbCfg.Driver)

	if err := migrate.Apply(db, dbCfg.Driver,
		&userModel.User{},
		&scoreModel.Score{},
		&contributionModel.Contribution{},
		&contributionModel.Pairing{},
		&contributionModel.Review{},
	); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	router, err := setupRouter(cfg, db, sugar)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func setupRouter(cfg appConfig.Config, db *gorm.DB, sugar *zap.SugaredLogger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(sugar),
		middleware.Metrics(),
		middleware.Recovery(sugar),
	)

	users, err := userRepository.NewCached(userRepository.New(db, sugar), cfg.IdentityCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity cache: %w", err)
	}

	ledger := scoreService.New(scoreRepository.New(db, sugar), sugar)

	comments, err := github.New(cfg.GitHub, sugar)
	if err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}

	userRouter.RegisterRoutes(r, users, ledger, sugar)
	scoreRouter.RegisterRoutes(r, ledger)
	contributionRouter.RegisterRoutes(r, db, users, comments, ledger, sugar)
	statisticsRouter.RegisterRoutes(r, db, sugar)

	r.GET("/health", health.New(db, sugar).Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
