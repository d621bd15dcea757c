package store

import "github.com/MKhiriev/go-doc-vault/internal/logger"

type Repositories struct {
	UserRepository         UserRepository
	DocumentRepository     DocumentRepository
	AccessObjectRepository AccessObjectRepository
	CardRepository         CardRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db, logger),
		DocumentRepository:     NewDocumentRepository(db, logger),
		AccessObjectRepository: NewAccessObjectRepository(db, logger),
		CardRepository:         NewCardRepository(db, logger),
	}
}
