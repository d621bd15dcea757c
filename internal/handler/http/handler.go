package http

import (
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.Validator, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validator,
		logger:    logger,
	}
}
