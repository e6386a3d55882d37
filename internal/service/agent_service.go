package service

import (
	"fmt"
	"time"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AgentService registers reseller agents, at most once per payment reference
// or email.
type AgentService struct {
	agentStore repository.AgentStore
	feeAmount  float64
}

// NewAgentService constructs an AgentService with the fixed registration fee.
func NewAgentService(agentStore repository.AgentStore, feeAmount float64) *AgentService {
	return &AgentService{agentStore: agentStore, feeAmount: feeAmount}
}

// Register records a new agent. A duplicate reference or email is reported as
// already registered without writing a second record.
func (s *AgentService) Register(req *models.RegisterAgentRequest) (alreadyRegistered bool, err error) {
	if req.Reference == "" || req.FullName == "" || req.Email == "" || req.Phone == "" {
		return false, fmt.Errorf("%w: reference, fullName, email, phone", utils.ErrMissingFields)
	}

	exists, err := s.agentStore.Exists(req.Reference, req.Email)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	agent := &models.Agent{
		Reference: req.Reference,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		PaidAt:    time.Now().UTC(),
		FeeAmount: s.feeAmount,
	}
	if err := s.agentStore.Append(agent); err != nil {
		return false, err
	}
	return false, nil
}

// List returns all registered agents.
func (s *AgentService) List() ([]models.Agent, error) {
	return s.agentStore.List()
}
