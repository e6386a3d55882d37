package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/pkg/supplier"
)

// OrderService records completed purchases. Recording is best-effort from the
// purchaser's perspective: supplier failure downgrades the order to pending
// but exactly one record is appended regardless of fulfillment outcome.
type OrderService struct {
	orderStore repository.OrderStore
	supplier   *supplier.Client
}

// NewOrderService constructs an OrderService.
func NewOrderService(orderStore repository.OrderStore, supplierClient *supplier.Client) *OrderService {
	return &OrderService{orderStore: orderStore, supplier: supplierClient}
}

// Create validates the request, attempts fulfillment, and appends the order.
// Validation failures return ErrMissingFields before anything is touched.
func (s *OrderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if req.Reference == "" || len(req.Items) == 0 || req.Email == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: reference, items, email, phone", utils.ErrMissingFields)
	}

	recipient := req.RecipientNumber
	if recipient == "" {
		recipient = req.Phone
	}

	items := make([]supplier.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, supplier.Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Network:  it.Network,
		})
	}
	result := s.supplier.Fulfill(ctx, items, recipient)

	status := models.OrderStatusCompleted
	if !result.Success {
		status = models.OrderStatusPending
		log.Warn().
			Str("reference", req.Reference).
			Str("supplier_message", result.Message).
			Msg("Supplier fulfillment failed; order will be recorded as pending")
	}

	order := &models.Order{
		Reference:       req.Reference,
		Items:           req.Items,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		RecipientNumber: req.RecipientNumber,
		Address:         req.Address,
		City:            req.City,
		Status:          status,
		SupplierMessage: result.Message,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.orderStore.Append(order); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	message := "Order recorded and processed."
	if status == models.OrderStatusPending {
		message = "Order recorded; delivery may be pending. Our team will follow up."
	}
	return &models.CreateOrderResponse{
		Reference: req.Reference,
		Status:    status,
		Message:   message,
	}, nil
}

// List returns all recorded orders.
func (s *OrderService) List() ([]models.Order, error) {
	return s.orderStore.List()
}

// FindByReference returns the first order with the given reference, or nil.
func (s *OrderService) FindByReference(reference string) (*models.Order, error) {
	return s.orderStore.FindByReference(reference)
}
