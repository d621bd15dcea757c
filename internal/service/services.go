package service

import (
	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
)

type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	AccessService   AccessService
	CardService     CardService
}

// Dependencies carries the cross-cutting collaborators the services are
// built from. Everything here is constructed once in cmd/server and
// shared read-only afterwards.
type Dependencies struct {
	Repositories    *store.Repositories
	BlobStore       adapter.BlobStore
	URLSigner       adapter.URLSigner
	Envelope        crypto.Envelope
	EphemeralTokens crypto.EphemeralTokens
	FieldSigner     crypto.FieldSigner
	ScanCounter     ScanCounter
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(deps.Repositories.UserRepository, deps.EphemeralTokens, cfg.App, logger),
		DocumentService: NewDocumentService(deps.Repositories.DocumentRepository, deps.BlobStore, deps.Envelope, logger),
		AccessService: NewAccessService(
			deps.Repositories.AccessObjectRepository,
			deps.Repositories.DocumentRepository,
			deps.EphemeralTokens,
			deps.URLSigner,
			deps.BlobStore,
			deps.Envelope,
			deps.ScanCounter,
			cfg.Storage.Blob.AssetBucket,
			logger,
		),
		CardService: NewCardService(deps.Repositories.CardRepository, deps.FieldSigner, cfg.App.LegacyCardPassphrase, logger),
	}
}
