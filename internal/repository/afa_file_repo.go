package repository

import (
	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/storage"
)

// AfaFileRepository stores AFA registrations in a flat JSON array file.
type AfaFileRepository struct {
	file *storage.File
}

// NewAfaFileRepository creates an AFA store backed by the given file.
func NewAfaFileRepository(file *storage.File) *AfaFileRepository {
	return &AfaFileRepository{file: file}
}

// FindByPhone returns the registration for a normalized phone, or nil.
func (r *AfaFileRepository) FindByPhone(phone string) (*models.AfaRegistration, error) {
	regs, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].Phone == phone {
			return &regs[i], nil
		}
	}
	return nil, nil
}

// Append adds one registration record.
func (r *AfaFileRepository) Append(reg *models.AfaRegistration) error {
	return r.file.Append(reg)
}

// List returns all registrations.
func (r *AfaFileRepository) List() ([]models.AfaRegistration, error) {
	var regs []models.AfaRegistration
	if err := r.file.Load(&regs); err != nil {
		return nil, err
	}
	return regs, nil
}
