package service

import (
	"fmt"
	"time"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/phone"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AfaService is the AFA registration gate: one registration per normalized
// phone number, lookup-before-insert, no update or delete path.
//
// This is the one place the lenient normalizer applies; every other entry
// point uses the strict validator.
type AfaService struct {
	afaStore repository.AfaStore
}

// NewAfaService constructs an AfaService.
func NewAfaService(afaStore repository.AfaStore) *AfaService {
	return &AfaService{afaStore: afaStore}
}

// normalize applies the lenient normalizer and maps failure to ErrInvalidPhone.
func (s *AfaService) normalize(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: missing phone number", utils.ErrMissingFields)
	}
	normalized, ok := phone.LenientGhanaNumberNormalize(raw)
	if !ok {
		return "", fmt.Errorf("%w: use 05 followed by 8 digits", utils.ErrInvalidPhone)
	}
	return normalized, nil
}

// Status reports whether the phone is registered and since when. Storage is
// not touched when the phone fails validation.
func (s *AfaService) Status(rawPhone string) (*models.AfaStatusResponse, error) {
	normalized, err := s.normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	existing, err := s.afaStore.FindByPhone(normalized)
	if err != nil {
		return nil, err
	}

	resp := &models.AfaStatusResponse{Phone: normalized}
	if existing != nil {
		resp.Registered = true
		t := existing.RegisteredAt
		resp.RegisteredAt = &t
	}
	return resp, nil
}

// Register creates a registration unless one already exists for the
// normalized phone, in which case the existing record is reported and no
// duplicate is written.
func (s *AfaService) Register(rawPhone, name string) (*models.AfaRegisterResponse, error) {
	normalized, err := s.normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	existing, err := s.afaStore.FindByPhone(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &models.AfaRegisterResponse{
			Success:           true,
			AlreadyRegistered: true,
			Message:           "Already registered for MTN AFA.",
			Phone:             normalized,
			RegisteredAt:      existing.RegisteredAt,
		}, nil
	}

	reg := &models.AfaRegistration{
		Phone:        normalized,
		RegisteredAt: time.Now().UTC(),
		Name:         name,
	}
	if err := s.afaStore.Append(reg); err != nil {
		return nil, err
	}

	return &models.AfaRegisterResponse{
		Success:           true,
		AlreadyRegistered: false,
		Message:           "Successfully registered for MTN AFA.",
		Phone:             normalized,
		RegisteredAt:      reg.RegisteredAt,
	}, nil
}

// List returns all registrations.
func (s *AfaService) List() ([]models.AfaRegistration, error) {
	return s.afaStore.List()
}
