package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"route_planner/internal/game"
	"route_planner/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	for _, k := range []string{"PORT", "AIRPORTS_FILE", "LOG_LEVEL", "STOPOVER_DEPTH", "STOPOVER_CACHE_TTL", "ECONOMICS_FILE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "4000" || cfg.AirportsPath != "data/airports.csv" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.StopoverDepth != 1 || cfg.CacheTTL != 10*time.Minute {
		t.Errorf("unexpected search defaults %+v", cfg)
	}
	if cfg.Economics != game.DefaultProfitOptions() {
		t.Errorf("economics %+v", cfg.Economics)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("STOPOVER_DEPTH", "2")
	t.Setenv("STOPOVER_CACHE_TTL", "30s")
	t.Setenv("ECONOMICS_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.StopoverDepth != 2 || cfg.CacheTTL != 30*time.Second {
		t.Errorf("env not applied: %+v", cfg)
	}

	t.Setenv("STOPOVER_DEPTH", "two")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for non-numeric depth")
	}
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port %q, expected 9090 from .env", cfg.Port)
	}
}

func TestLoadEconomics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economics.yaml")
	yml := `mode: easy
fuel_price: 750
salaries:
  pilot: 220
  crew: 160
  engineer: 260
  tech: 230
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadEconomics(path, game.DefaultProfitOptions())
	if err != nil {
		t.Fatal(err)
	}
	if opts.Mode != models.Easy || opts.FuelPrice != 750 {
		t.Errorf("file values not applied: %+v", opts)
	}
	if opts.CO2Price != 120 || opts.Activity != 18 || opts.Reputation != 100 {
		t.Errorf("defaults lost: %+v", opts)
	}
	if opts.Salaries == nil || opts.Salaries.Pilot != 220 || opts.Salaries.Tech != 230 {
		t.Errorf("salaries %+v", opts.Salaries)
	}
}

func TestLoadEconomicsErrors(t *testing.T) {
	dir := t.TempDir()
	for name, c := range map[string]struct {
		yml  string
		want error
	}{
		"mode":       {"mode: hard\n", models.ErrUnknownGameMode},
		"reputation": {"reputation: 140\n", game.ErrInvalidReputation},
		"activity":   {"activity: 30\n", game.ErrInvalidActivity},
	} {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(c.yml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadEconomics(path, game.DefaultProfitOptions()); !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, expected %v", name, err, c.want)
		}
	}
	if _, err := LoadEconomics(filepath.Join(dir, "missing.yaml"), game.DefaultProfitOptions()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}
