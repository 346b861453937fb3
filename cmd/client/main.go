package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/client"
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("fleet-keeper-client")
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	if len(args) == 1 && args[0] == "build-info" {
		printBuildInfo()
		return
	}

	authClient, err := adapter.NewHTTPAuthClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create auth client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := client.NewApp(authClient, os.Getenv(client.SessionEnv), os.Stdout, log)
	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s\n", err, client.Usage)
		stop()
		os.Exit(1)
	}
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
