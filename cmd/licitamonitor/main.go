package main

import (
	"fmt"
	"os"

	"github.com/danizd/licitamonitor/internal/auth"
	"github.com/danizd/licitamonitor/internal/config"
	"github.com/danizd/licitamonitor/internal/db"
	"github.com/danizd/licitamonitor/internal/excel"
	httphandler "github.com/danizd/licitamonitor/internal/http"
	"github.com/danizd/licitamonitor/internal/http/middleware"
	"github.com/danizd/licitamonitor/internal/logger"
	"github.com/danizd/licitamonitor/internal/pdf"
	"github.com/danizd/licitamonitor/internal/repository"
	"github.com/danizd/licitamonitor/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect warehouse")
	}

	facts := repository.NewFactRepository(database)
	intel := service.NewIntelService(facts, excel.NewGenerator(), pdf.NewGenerator(), cfg, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(intel, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.Intel.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting tender intel service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
