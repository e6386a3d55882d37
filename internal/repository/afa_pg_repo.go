package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/geniusdatahub/gdh_api/internal/models"
)

// AfaPGRepository stores AFA registrations in Postgres.
type AfaPGRepository struct {
	db *sqlx.DB
}

// NewAfaPGRepository creates a Postgres-backed AFA store.
func NewAfaPGRepository(db *sqlx.DB) *AfaPGRepository {
	return &AfaPGRepository{db: db}
}

// FindByPhone returns the registration for a normalized phone, or nil.
func (r *AfaPGRepository) FindByPhone(phone string) (*models.AfaRegistration, error) {
	var reg models.AfaRegistration
	err := r.db.Get(&reg, `SELECT phone, registered_at, name FROM afa_registrations WHERE phone = $1`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Append inserts one registration record.
func (r *AfaPGRepository) Append(reg *models.AfaRegistration) error {
	const q = `INSERT INTO afa_registrations (phone, registered_at, name) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(q, reg.Phone, reg.RegisteredAt, reg.Name)
	return err
}

// List returns all registrations, oldest first.
func (r *AfaPGRepository) List() ([]models.AfaRegistration, error) {
	var regs []models.AfaRegistration
	if err := r.db.Select(&regs, `SELECT phone, registered_at, name FROM afa_registrations ORDER BY registered_at`); err != nil {
		return nil, err
	}
	return regs, nil
}
