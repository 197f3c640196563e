package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/paper-planes/pm-backend/config"
	"github.com/paper-planes/pm-backend/internal/bootstrap"
	"github.com/paper-planes/pm-backend/internal/catalog"
	"github.com/paper-planes/pm-backend/internal/codegen"
	"github.com/paper-planes/pm-backend/internal/db"
	"github.com/paper-planes/pm-backend/internal/docs"
	"github.com/paper-planes/pm-backend/internal/drive"
	"github.com/paper-planes/pm-backend/internal/logging"
	projectsrepo "github.com/paper-planes/pm-backend/internal/projects/repository"
	"github.com/paper-planes/pm-backend/internal/projects/service"
	"github.com/paper-planes/pm-backend/internal/vault"
)

const serviceName = "pm-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	catalogRepo := catalog.NewRepo(database.SQL)
	if err := catalogRepo.Seed(ctx); err != nil {
		logger.Fatal("seed methodology catalog", zap.Error(err))
	}

	claude, err := codegen.NewClaudeClient(cfg.Anthropic.APIKey, cfg.Anthropic.BaseURL, cfg.Anthropic.Model)
	if err != nil {
		logger.Fatal("anthropic client", zap.Error(err))
	}

	var remote *drive.Provisioner
	if cfg.DriveEnabled() {
		creds := drive.NewCredentialProvider(cfg.Drive.CredentialsPath, cfg.Drive.TokenPath, logger)
		remote = drive.NewProvisioner(creds, cfg.Drive.SharedDriveID, logger)
	} else {
		logger.Warn("Drive credentials not found, remote folder provisioning disabled",
			zap.String("credentials_path", cfg.Drive.CredentialsPath))
	}

	projectService := service.NewProjectService(
		projectsrepo.NewProjectRepository(database.SQL),
		codegen.NewGenerator(claude, logger),
		docs.NewGenerator(claude, logger),
		vault.New(cfg.Vault.Root, logger),
		remote,
		logger,
	)

	bootstrap.SetGinMode(cfg.App.Environment)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          database.SQL,
		Projects:    projectService,
		Catalog:     catalogRepo,
		Log:         logger,
	})

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
