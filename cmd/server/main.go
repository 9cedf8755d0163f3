package main

import (
	"context"
	"fmt"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/handler"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/server"
	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/workers"
	"github.com/Z3ron7/server/models"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("exam-hub-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("exam-hub-server", cfg.App.LogLevel)
	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	images, err := adapter.NewImageStore(ctx, cfg.Adapter.S3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating image store")
	}

	mailer := adapter.NewSMTPMailer(cfg.Adapter.SMTP, log)
	dispatcher := workers.NewMailDispatcher(mailer, cfg.Workers.MailQueueSize, log)

	services, err := service.NewServices(
		storages,
		service.Integrations{Mailer: mailer, Notifier: dispatcher, Images: images},
		*cfg,
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(dispatcher), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = config.DefaultVersion
	}

	if buildDate == "" {
		buildDate = config.DefaultVersion
	}

	if buildCommit == "" {
		buildCommit = config.DefaultVersion
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
