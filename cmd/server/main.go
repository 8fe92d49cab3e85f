package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"route_planner/internal/api"
	"route_planner/internal/catalog"
	"route_planner/internal/config"
	"route_planner/internal/game"
	"route_planner/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.New("info", "", os.Stderr).Errorf("config: %v", err)
		os.Exit(1)
	}
	lg := log.New(cfg.LogLevel, cfg.LogDir, os.Stderr)

	c, err := catalog.Load(cfg.AirportsPath, cfg.PlanesPath, cfg.SnapshotPath, lg)
	if err != nil {
		lg.Errorf("failed to load catalog: %v", err)
		os.Exit(1)
	}

	engine := game.NewEngine(c, cfg.Economics, lg)
	engine.SetSearch(game.SearchSettings{
		Depth:         cfg.StopoverDepth,
		MaxCandidates: cfg.MaxCandidates,
	})

	handler := api.New(engine, api.Options{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		Logger:    lg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lg.Infof("Server listening on port %s (%s mode)", cfg.Port, cfg.Economics.Mode)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Errorf("server: %v", err)
		os.Exit(1)
	}
}
