package repository

import "github.com/geniusdatahub/gdh_api/internal/models"

// The store interfaces are the abstraction boundary between the service layer
// and the backing store. Both the flat-file driver and the Postgres driver
// implement them; services never know which is wired.

// OrderStore appends and lists recorded orders. Orders are append-only.
type OrderStore interface {
	Append(order *models.Order) error
	List() ([]models.Order, error)
	FindByReference(reference string) (*models.Order, error)
}

// AfaStore looks up and appends AFA registrations.
type AfaStore interface {
	FindByPhone(phone string) (*models.AfaRegistration, error)
	Append(reg *models.AfaRegistration) error
	List() ([]models.AfaRegistration, error)
}

// AgentStore looks up and appends agent registrations.
type AgentStore interface {
	Exists(reference, email string) (bool, error)
	Append(agent *models.Agent) error
	List() ([]models.Agent, error)
}
