package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

var panDigits = regexp.MustCompile(`\d`)

// cardService is the concrete implementation of CardService. The server
// never sees plaintext card data: sensitive fields arrive pre-encrypted
// by the client under the legacy static key, paired with HMAC signatures
// checked here before anything is persisted.
type cardService struct {
	cardRepository   store.CardRepository
	fieldSigner      crypto.FieldSigner
	legacyPassphrase string
	uuidGenerator    *utils.UUIDGenerator
	logger           *logger.Logger
}

// NewCardService wires the card path: repository for persistence, field
// signer for the integrity gate, legacy passphrase for masked PAN
// recovery on the list path.
func NewCardService(cardRepository store.CardRepository, fieldSigner crypto.FieldSigner, legacyPassphrase string, logger *logger.Logger) CardService {
	return &cardService{
		cardRepository:   cardRepository,
		fieldSigner:      fieldSigner,
		legacyPassphrase: legacyPassphrase,
		uuidGenerator:    utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

// Create persists a card after the integrity gate. Every sensitive
// ciphertext must verify against its signature; a single mismatch rejects
// the whole request with nothing persisted. Shape problems (missing
// signature) are caught earlier by the boundary validator.
func (s *cardService) Create(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	if card.UserID <= 0 || card.NumberCiphertext == "" || card.NumberHMAC == "" {
		return models.Card{}, ErrInvalidDataProvided
	}

	if !s.fieldSigner.VerifyMAC(card.NumberCiphertext, card.NumberHMAC) {
		log.Warn().Str("func", "*cardService.Create").Msg("number ciphertext signature mismatch")
		return models.Card{}, ErrIntegrityMismatch
	}

	if card.CVVCiphertext != "" {
		if card.CVVHMAC == "" {
			return models.Card{}, ErrInvalidDataProvided
		}
		if !s.fieldSigner.VerifyMAC(card.CVVCiphertext, card.CVVHMAC) {
			log.Warn().Str("func", "*cardService.Create").Msg("cvv ciphertext signature mismatch")
			return models.Card{}, ErrIntegrityMismatch
		}
	}

	card.ID = s.uuidGenerator.Generate()

	saved, err := s.cardRepository.CreateCard(ctx, card)
	if err != nil {
		log.Err(err).Str("func", "*cardService.Create").Msg("error creating card")
		return models.Card{}, fmt.Errorf("error creating card: %w", err)
	}

	saved.MaskedNumber = s.maskedNumber(ctx, saved)

	return saved, nil
}

// List returns the owner's cards with MaskedNumber populated from the
// legacy static-key ciphertext. Cards whose ciphertext no longer decrypts
// are returned without a mask rather than dropped.
func (s *cardService) List(ctx context.Context, userID int64) ([]models.Card, error) {
	cards, err := s.cardRepository.ListCards(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cards {
		cards[i].MaskedNumber = s.maskedNumber(ctx, cards[i])
	}

	return cards, nil
}

func (s *cardService) Delete(ctx context.Context, userID int64, id string) error {
	return s.cardRepository.DeleteCard(ctx, userID, id)
}

// maskedNumber recovers the PAN from the legacy ciphertext and keeps the
// last four digits. Any failure yields an empty mask, logged at debug.
func (s *cardService) maskedNumber(ctx context.Context, card models.Card) string {
	log := logger.FromContext(ctx)

	if s.legacyPassphrase == "" {
		return ""
	}

	plaintext, err := crypto.DecryptLegacyBlob(card.NumberCiphertext, s.legacyPassphrase)
	if err != nil {
		log.Debug().Err(err).Str("card_id", card.ID).Msg("legacy ciphertext did not decrypt, mask skipped")
		return ""
	}

	digits := panDigits.FindAllString(string(plaintext), -1)
	if len(digits) < 4 {
		return ""
	}

	return "**** **** **** " + strings.Join(digits[len(digits)-4:], "")
}
