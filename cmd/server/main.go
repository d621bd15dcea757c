package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/handler/http"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/server"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/internal/workers"
	"github.com/MKhiriev/go-doc-vault/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("doc-vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repositories := store.NewRepositories(db, log)

	s3Client, err := adapter.NewS3Client(ctx, cfg.Storage.Blob)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store client")
	}

	blobStore := adapter.NewS3BlobStore(s3Client, cfg.Storage.Blob.DocumentBucket, log)
	if err := blobStore.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("error ensuring document bucket")
	}

	keys := crypto.NewKeyChain(cfg.App.EncryptionSecret)

	scanCounterWorker := workers.NewScanCounterWorker(ctx, repositories.AccessObjectRepository, cfg.Workers.ScanCounterQueueSize, log)
	workers.NewWorkers(scanCounterWorker).Run()

	services := service.NewServices(service.Dependencies{
		Repositories:    repositories,
		BlobStore:       blobStore,
		URLSigner:       adapter.NewPresignIssuer(s3Client),
		Envelope:        crypto.NewStreamEnvelope(keys),
		EphemeralTokens: crypto.NewTokenMinter(cfg.App.EphemeralTokenKey),
		FieldSigner:     crypto.NewIntegrityGuard(cfg.App.IntegrityHashKey),
		ScanCounter:     scanCounterWorker,
	}, *cfg, log)

	handlers := http.NewHandler(services, validators.NewVaultValidator(), log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
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
