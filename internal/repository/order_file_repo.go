package repository

import (
	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/storage"
)

// OrderFileRepository stores orders in a flat JSON array file.
type OrderFileRepository struct {
	file *storage.File
}

// NewOrderFileRepository creates an order store backed by the given file.
func NewOrderFileRepository(file *storage.File) *OrderFileRepository {
	return &OrderFileRepository{file: file}
}

// Append adds one order record. No dedupe on reference is performed: a
// resubmitted reference creates a second record, matching the wire contract.
func (r *OrderFileRepository) Append(order *models.Order) error {
	return r.file.Append(order)
}

// List returns all recorded orders.
func (r *OrderFileRepository) List() ([]models.Order, error) {
	var orders []models.Order
	if err := r.file.Load(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByReference returns the first order with the given reference, or nil.
func (r *OrderFileRepository) FindByReference(reference string) (*models.Order, error) {
	orders, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Reference == reference {
			return &orders[i], nil
		}
	}
	return nil, nil
}
