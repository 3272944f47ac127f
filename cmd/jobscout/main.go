package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"jobscout/internal/classify"
	"jobscout/internal/config"
	"jobscout/internal/runner"
	"jobscout/internal/scrape/indeed"
	"jobscout/internal/scrape/util"
	"jobscout/internal/store"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[jobscout] unexpected failure: %v", r)
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(filepath.Join("config", "config.yml"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Interrupt sets a cooperative stop; the runner finishes the record in
	// flight and persists what it has.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src := indeed.New(indeed.Config{
		UserAgent: cfg.App.UserAgent,
		Limiter:   util.NewHostLimiter(cfg.Pacing.RequestsPerSec, cfg.Pacing.Burst),
	})

	r := &runner.Runner{
		Cfg:         cfg,
		Source:      src,
		Internships: store.New(cfg.App.DataDir, cfg.Datasets.Internships),
		EntryLevel:  store.New(cfg.App.DataDir, cfg.Datasets.EntryLevel),
		Classifier:  classify.New(cfg.Classify.InternshipRules),
	}

	log.Printf("[jobscout] starting search pass, data dir %s", cfg.App.DataDir)
	if err := r.Run(ctx); err != nil {
		log.Fatalf("[jobscout] run failed: %v", err)
	}
	log.Printf("[jobscout] done")
}
