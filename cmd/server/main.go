package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/fieldreport/internal/api"
	"github.com/dgallion1/fieldreport/internal/auth"
	"github.com/dgallion1/fieldreport/internal/config"
	"github.com/dgallion1/fieldreport/internal/convert"
	"github.com/dgallion1/fieldreport/internal/export"
	"github.com/dgallion1/fieldreport/internal/extract"
	"github.com/dgallion1/fieldreport/internal/master"
	"github.com/dgallion1/fieldreport/internal/nav"
	"github.com/dgallion1/fieldreport/internal/report"
	"github.com/dgallion1/fieldreport/internal/reports"
	"github.com/dgallion1/fieldreport/internal/review"
	"github.com/dgallion1/fieldreport/internal/wizard"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Clients.
	claude := extract.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	converter := convert.NewClient(cfg.ConvertURL, cfg.ConvertAPIKey)

	// Engines and stores.
	store := report.NewStore(report.NewDocument(""))
	navEngine := nav.NewEngine()
	reviewEngine := review.NewEngine(store, log, cfg.ReviewDelay)
	exporter := export.NewService(store, converter, log)
	catalog := master.NewCatalog()
	list := reports.NewStore()
	sessions := auth.NewSessions(cfg.SessionTTL)
	importer := wizard.NewPartsImporter(store, claude, log)
	reportWizard := wizard.NewReportWizard(catalog, list)

	if cfg.TemplatePath != "" {
		data, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			log.Warn("template preload failed", "path", cfg.TemplatePath, "error", err)
		} else {
			exporter.SetTemplate(data)
			log.Info("template preloaded", "path", cfg.TemplatePath, "bytes", len(data))
		}
	}

	// Expired sessions get swept in the background.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					log.Info("sessions swept", "removed", n)
				}
			}
		}
	}()

	srv := api.NewServer(api.Deps{
		Store:    store,
		Nav:      navEngine,
		Review:   reviewEngine,
		Exporter: exporter,
		Importer: importer,
		Wizard:   reportWizard,
		Catalog:  catalog,
		Reports:  list,
		Sessions: sessions,
		Claude:   claude,
	}, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		claude.Close()
	}()

	log.Info("starting fieldreport", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
