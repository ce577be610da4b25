package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skillswap/skillswap-server/internal/api/http/handler"
	"github.com/skillswap/skillswap-server/internal/api/http/router"
	"github.com/skillswap/skillswap-server/internal/config"
	"github.com/skillswap/skillswap-server/internal/logger"
	"github.com/skillswap/skillswap-server/internal/repository/postgres"
	"github.com/skillswap/skillswap-server/internal/scheduler"
	"github.com/skillswap/skillswap-server/internal/service"
	"github.com/skillswap/skillswap-server/internal/session"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	classroomRepo := postgres.NewClassroomRepository(db)

	provisioner := session.NewClassroomProvisioner(classroomRepo)
	sweeper := scheduler.NewSweeper(userRepo, matchRepo, cfg.Sweep.TopMatches, logger)

	matchService := service.NewMatch(matchRepo, classroomRepo, provisioner, logger)
	reviewService := service.NewReview(reviewRepo, matchRepo, userRepo, logger)
	profileService := service.NewProfile(userRepo, sweeper, logger)

	runner := scheduler.NewRunner(sweeper, cfg.Sweep.Cron, logger)
	if err := runner.Start(); err != nil {
		logger.Fatal("failed to start sweep runner", "error", err)
	}

	r := router.New(
		handler.NewMatch(matchService, sweeper, logger),
		handler.NewReview(reviewService, logger),
		handler.NewUser(profileService, logger),
		cfg.HTTP.AllowedOrigin,
		logger,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler: r.Register(),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}
	if err := runner.Stop(shutdownCtx); err != nil {
		logger.Error("error during sweep runner shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
