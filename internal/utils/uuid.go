package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for documents, access objects
// and request tracing. V7 is preferred because the timestamp prefix
// keeps index pages warm on insert-heavy tables.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4
// when the system clock is unusable.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
