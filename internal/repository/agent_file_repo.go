package repository

import (
	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/storage"
)

// AgentFileRepository stores agent registrations in a flat JSON array file.
type AgentFileRepository struct {
	file *storage.File
}

// NewAgentFileRepository creates an agent store backed by the given file.
func NewAgentFileRepository(file *storage.File) *AgentFileRepository {
	return &AgentFileRepository{file: file}
}

// Exists reports whether an agent with the given reference or email is
// already registered.
func (r *AgentFileRepository) Exists(reference, email string) (bool, error) {
	agents, err := r.List()
	if err != nil {
		return false, err
	}
	for i := range agents {
		if agents[i].Reference == reference || agents[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Append adds one agent record.
func (r *AgentFileRepository) Append(agent *models.Agent) error {
	return r.file.Append(agent)
}

// List returns all registered agents.
func (r *AgentFileRepository) List() ([]models.Agent, error) {
	var agents []models.Agent
	if err := r.file.Load(&agents); err != nil {
		return nil, err
	}
	return agents, nil
}
