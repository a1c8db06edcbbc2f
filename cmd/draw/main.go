package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/free-draw/infra/config"
	"github.com/drakos74/free-draw/internal/engine"
	"github.com/drakos74/free-draw/internal/metrics"
	"github.com/drakos74/free-draw/internal/server"
	"github.com/drakos74/free-draw/internal/storage"
	jsonstore "github.com/drakos74/free-draw/internal/storage/file/json"
)

// Config holds the service settings.
type Config struct {
	Port        int  `json:"port"`
	MetricsPort int  `json:"metrics_port"`
	Window      int  `json:"window"`
	Debug       bool `json:"debug"`
}

func defaultConfig() Config {
	return Config{
		Port:        6080,
		MetricsPort: 6021,
		Window:      400,
	}
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := defaultConfig()
	if err := config.Load("draw", &cfg); err != nil {
		log.Warn().Err(err).Msg("could not load config, using defaults")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	metrics.Serve(cfg.MetricsPort)

	scatter := engine.New("digits", cfg.Window, jsonstore.BlobShard(storage.RunDir))

	s := server.NewServer("free-draw", cfg.Port).
		Add(server.ScatterRoutes(scatter, cfg.Debug)...)
	if cfg.Debug {
		s.Debug()
	}

	if err := s.Run(); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
