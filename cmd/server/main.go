package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/handler"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/mailer"
	"github.com/MKhiriev/forkeys/internal/server"
	"github.com/MKhiriev/forkeys/internal/service"
	"github.com/MKhiriev/forkeys/internal/store"
	"github.com/MKhiriev/forkeys/models"
	"github.com/rs/zerolog"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("forkeys-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if level, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	storages, err := store.NewServerStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, mailer.NewMailer(cfg.SMTP, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	buildVersion = info.BuildVersion()

	fmt.Println(info)
}
