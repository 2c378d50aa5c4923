package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lain-corp/lain-tv/app/api"
	"github.com/lain-corp/lain-tv/app/auth"
	"github.com/lain-corp/lain-tv/app/catalog"
	"github.com/lain-corp/lain-tv/app/cfg"
	"github.com/lain-corp/lain-tv/app/database"
	"github.com/lain-corp/lain-tv/app/fetch"
	"github.com/lain-corp/lain-tv/app/poller"
	"github.com/lain-corp/lain-tv/app/seed"
	"github.com/lain-corp/lain-tv/app/source"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Lain TV catalog", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	videoRepo := database.NewVideoRepository(db)
	configRepo := database.NewConfigRepository(db)
	guard := auth.NewGuard(appCfg.ServiceIdentity)

	var decoder source.Decoder
	switch appCfg.SourceFormat {
	case "rss":
		decoder = source.NewRSSDecoder()
	default:
		decoder = source.NewClaimDecoder()
	}

	httpClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}
	sourceClient := source.NewClient(httpClient, appCfg.SourceURL, appCfg.MaxResponseBytes, appCfg.UserAgent, decoder)
	pipeline := fetch.NewPipeline(sourceClient, videoRepo)

	cycleTimeout := time.Duration(appCfg.FetchTimeout+30) * time.Second
	pollScheduler := poller.New(pipeline, cycleTimeout)
	defer pollScheduler.Stop()

	service := catalog.NewService(videoRepo, configRepo, guard, pollScheduler)

	if err := seedCatalog(videoRepo, appCfg.SeedFile); err != nil {
		slog.Warn("Failed to seed catalog", "file", appCfg.SeedFile, "error", err)
	}

	// Re-apply the persisted poll configuration so an enabled schedule
	// survives restarts.
	pollConfig, err := configRepo.GetPollConfig()
	if err != nil {
		log.Fatalf("Failed to load poll configuration: %v", err)
	}
	pollScheduler.SetConfig(pollConfig)
	slog.Info("Poll schedule applied", "enabled", pollConfig.Enabled, "interval_seconds", pollConfig.IntervalSeconds)

	handler := api.NewHandler(service)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Poll scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

// seedCatalog applies the seed file to an empty catalog. A populated
// catalog is left untouched.
func seedCatalog(videos database.VideoRepository, seedFile string) error {
	count, err := videos.GetVideoCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return nil
	}

	for i := range seeds {
		if err := videos.UpsertVideo(&seeds[i]); err != nil {
			return fmt.Errorf("failed to seed video %q: %w", seeds[i].ID, err)
		}
	}

	slog.Info("Seeded catalog", "videos", len(seeds), "file", seedFile)
	return nil
}
