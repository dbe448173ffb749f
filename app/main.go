package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/icon-lists/app/api"
	"github.com/lysyi3m/icon-lists/app/artifact"
	"github.com/lysyi3m/icon-lists/app/cfg"
	"github.com/lysyi3m/icon-lists/app/database"
	"github.com/lysyi3m/icon-lists/app/fetch"
	"github.com/lysyi3m/icon-lists/app/iconset"
	"github.com/lysyi3m/icon-lists/app/pipeline"
	"github.com/lysyi3m/icon-lists/app/schema"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	if conf == nil {
		return 0
	}

	level := slog.LevelInfo
	if conf.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Icon Lists", "version", conf.Version, "output_dir", conf.OutputDir)

	sources, err := cfg.LoadSources(conf.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "path", conf.SourcesFile, "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runRepo *database.RunRepo
	if conf.DBPath != "" {
		db, err := database.Open(conf.DBPath)
		if err != nil {
			slog.Error("Failed to open run history", "path", conf.DBPath, "error", err)
			return 1
		}
		defer db.Close()
		runRepo = database.NewRunRepository(db)
	}

	orchestrator, outputs, err := buildOrchestrator(conf, sources)
	if err != nil {
		slog.Error("Failed to set up pipelines", "error", err)
		return 1
	}
	if runRepo != nil {
		orchestrator.WithRecorder(runRepo)
	}

	results := orchestrator.Run(ctx)
	failed := pipeline.Failed(results)
	for _, result := range failed {
		slog.Error("Icon set failed", "set", result.Set, "step", string(result.FailedAt), "error", result.Err)
	}
	slog.Info("Processing finished", "sets", len(results), "failed", len(failed))

	if conf.Serve {
		var repo database.RunRepository
		if runRepo != nil {
			repo = runRepo
		}
		if err := serve(ctx, conf, api.NewHandler(conf.OutputDir, outputs, repo)); err != nil {
			slog.Error("Server error", "error", err)
			return 1
		}
	}

	if len(failed) > 0 {
		return 1
	}
	return 0
}

// buildOrchestrator wires the enabled and selected icon sets. Material is the
// primary pipeline because Lucide and Phosphor read its artifact.
func buildOrchestrator(c *cfg.Cfg, sources *cfg.Sources) (*pipeline.Orchestrator, []string, error) {
	var compressor artifact.Compressor = artifact.NewNativeCompressor()
	if c.Compression == cfg.CompressionCommand {
		compressor = artifact.NewCommandCompressor(c.BrotliCommand)
	}
	writer := artifact.NewWriter(c.OutputDir, compressor)

	client := fetch.NewClient(nil, c.UserAgent, time.Duration(c.FetchTimeout)*time.Second)
	popularityPath := artifact.Path(c.OutputDir, iconset.OutputMaterialCombined, artifact.ViewFull, true)

	var primary *pipeline.Pipeline
	var dependents []*pipeline.Pipeline
	var outputs []string

	if sources.Material.IsEnabled() && c.Selected(cfg.SetMaterial) {
		validator, err := schema.NewValidator(c.SchemaPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load material schema: %w", err)
		}
		primary = pipeline.New(iconset.NewMaterial(sources.Material.URL, client, validator), writer)
		outputs = append(outputs, iconset.OutputMaterialCombined, iconset.OutputMaterialIcons, iconset.OutputMaterialSymbols)
	}

	if sources.Lucide.IsEnabled() && c.Selected(cfg.SetLucide) {
		lucide := iconset.NewLucide(sources.Lucide.IconsDir, sources.Lucide.CategoriesDir, popularityPath, client)
		dependents = append(dependents, pipeline.New(lucide, writer))
		outputs = append(outputs, iconset.OutputLucideIcons)
	}

	if sources.Phosphor.IsEnabled() && c.Selected(cfg.SetPhosphor) {
		phosphor := iconset.NewPhosphor(sources.Phosphor.URL, popularityPath, client)
		dependents = append(dependents, pipeline.New(phosphor, writer))
		outputs = append(outputs, iconset.OutputPhosphorIcons)
	}

	if primary == nil && len(dependents) == 0 {
		return nil, nil, errors.New("no icon sets enabled")
	}

	return pipeline.NewOrchestrator(primary, dependents...), outputs, nil
}

func serve(ctx context.Context, c *cfg.Cfg, handler *api.Handler) error {
	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
