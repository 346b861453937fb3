package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/handler"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/server"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fleet-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	// no vehicle records yet, so deleting a user detaches nothing
	services, err := service.NewServices(storages, *cfg, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}
	if handlers.GRPC != nil {
		if err := handlers.GRPC.UpdateStatus(ctx, storages.Ping); err != nil {
			log.Warn().Err(err).Msg("storage is not reachable, health reports NOT_SERVING")
		}
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
