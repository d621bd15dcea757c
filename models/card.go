package models

import "time"

// Card represents a payment-card record. The number and CVV arrive from
// the client already encrypted under the legacy static-key scheme; the
// server stores the ciphertexts opaquely and verifies the accompanying
// HMAC signatures before persistence.
type Card struct {
	// ID is the opaque identifier of the card record (UUID).
	ID string `json:"id"`

	// UserID is the owner of the card record.
	UserID int64 `json:"-"`

	// Title is the display name of the card.
	Title string `json:"title"`

	// NumberCiphertext is the client-encrypted card number blob.
	NumberCiphertext string `json:"number_ciphertext"`

	// NumberHMAC is the integrity signature over NumberCiphertext.
	NumberHMAC string `json:"number_hmac"`

	// CVVCiphertext is the client-encrypted CVV blob. Never returned in
	// list responses.
	CVVCiphertext string `json:"cvv_ciphertext,omitempty"`

	// CVVHMAC is the integrity signature over CVVCiphertext.
	CVVHMAC string `json:"cvv_hmac,omitempty"`

	// Holder is the cardholder name as printed.
	Holder string `json:"holder"`

	// Expiry is the expiration in MM/YY form.
	Expiry string `json:"expiry"`

	// MaskedNumber is a derived display value (last four digits) recovered
	// from NumberCiphertext via the legacy key path. Not persisted.
	MaskedNumber string `json:"masked_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Card model.
func (c *Card) TableName() string {
	return "cards"
}
