package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/geniusdatahub/gdh_api/internal/models"
)

// AgentPGRepository stores agent registrations in Postgres.
type AgentPGRepository struct {
	db *sqlx.DB
}

// NewAgentPGRepository creates a Postgres-backed agent store.
func NewAgentPGRepository(db *sqlx.DB) *AgentPGRepository {
	return &AgentPGRepository{db: db}
}

// Exists reports whether an agent with the given reference or email is
// already registered.
func (r *AgentPGRepository) Exists(reference, email string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(1) FROM agents WHERE reference = $1 OR email = $2`, reference, email)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Append inserts one agent record.
func (r *AgentPGRepository) Append(agent *models.Agent) error {
	const q = `
        INSERT INTO agents (reference, full_name, email, phone, address, paid_at, fee_amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(q,
		agent.Reference, agent.FullName, agent.Email, agent.Phone,
		agent.Address, agent.PaidAt, agent.FeeAmount)
	return err
}

// List returns all registered agents, oldest first.
func (r *AgentPGRepository) List() ([]models.Agent, error) {
	var agents []models.Agent
	if err := r.db.Select(&agents, `SELECT reference, full_name, email, phone, address, paid_at, fee_amount FROM agents ORDER BY paid_at`); err != nil {
		return nil, err
	}
	return agents, nil
}
