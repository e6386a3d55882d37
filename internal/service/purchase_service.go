package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/purchase"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/pkg/paystack"
)

// PurchaseService drives the four-step purchase wizard and its handoffs to
// the payment collaborator and the order recorder.
type PurchaseService struct {
	flows      *purchase.Manager
	catalog    *CatalogService
	orders     *OrderService
	paystack   *paystack.Client // nil when payments are not configured
	storeEmail string
}

// NewPurchaseService constructs a PurchaseService. paystackClient may be nil.
func NewPurchaseService(flows *purchase.Manager, catalog *CatalogService, orders *OrderService, paystackClient *paystack.Client, storeEmail string) *PurchaseService {
	return &PurchaseService{
		flows:      flows,
		catalog:    catalog,
		orders:     orders,
		paystack:   paystackClient,
		storeEmail: storeEmail,
	}
}

// Flows exposes the session manager for the sweeper worker.
func (s *PurchaseService) Flows() *purchase.Manager { return s.flows }

// FlowState is the wire view of a purchase flow.
type FlowState struct {
	Step            string         `json:"step"`
	Bundle          *models.Bundle `json:"bundle,omitempty"`
	RecipientNumber string         `json:"recipientNumber"`
}

func snapshot(f *purchase.Flow) FlowState {
	return FlowState{
		Step:            f.Step().String(),
		Bundle:          f.Bundle(),
		RecipientNumber: f.RecipientNumber(),
	}
}

// Open starts a new session with the chosen bundle and returns its ID.
func (s *PurchaseService) Open(ctx context.Context, bundleID string) (string, FlowState, error) {
	bundle, err := s.catalog.GetBundle(ctx, bundleID)
	if err != nil {
		return "", FlowState{}, err
	}
	if bundle == nil {
		return "", FlowState{}, utils.ErrBundleNotFound
	}

	id := s.flows.NewSession()
	var state FlowState
	err = s.flows.With(id, func(f *purchase.Flow) error {
		f.Open(*bundle)
		state = snapshot(f)
		return nil
	})
	return id, state, err
}

// Get returns the current state of a session.
func (s *PurchaseService) Get(sessionID string) (FlowState, error) {
	var state FlowState
	err := s.flows.With(sessionID, func(f *purchase.Flow) error {
		state = snapshot(f)
		return nil
	})
	return state, err
}

// SetRecipient records the entered recipient number.
func (s *PurchaseService) SetRecipient(sessionID, value string) (FlowState, error) {
	return s.transition(sessionID, func(f *purchase.Flow) error {
		return f.SetRecipientNumber(value)
	})
}

// Confirm advances selection -> confirmation after strict validation.
func (s *PurchaseService) Confirm(sessionID string) (FlowState, error) {
	return s.transition(sessionID, (*purchase.Flow).Confirm)
}

// Back returns confirmation -> selection.
func (s *PurchaseService) Back(sessionID string) (FlowState, error) {
	return s.transition(sessionID, (*purchase.Flow).Back)
}

// Cancel abandons the session entirely.
func (s *PurchaseService) Cancel(sessionID string) {
	s.flows.Drop(sessionID)
}

func (s *PurchaseService) transition(sessionID string, op func(*purchase.Flow) error) (FlowState, error) {
	var state FlowState
	err := s.flows.With(sessionID, func(f *purchase.Flow) error {
		opErr := op(f)
		state = snapshot(f)
		return opErr
	})
	return state, err
}

// PaymentInit is the checkout handle returned to the storefront once the
// payment collaborator accepts the transaction.
type PaymentInit struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Amount           int    `json:"amount"` // pesewas
	Currency         string `json:"currency"`
}

// Pay advances confirmation -> payment and initializes the hosted checkout.
// When the payment collaborator is not configured the step still advances but
// ErrPaymentNotReady is returned, mirroring the "still loading" notice: the
// flow stays in payment and the user may retry.
func (s *PurchaseService) Pay(ctx context.Context, sessionID string) (FlowState, *PaymentInit, error) {
	var bundle *models.Bundle
	var recipient string
	state, err := s.transition(sessionID, func(f *purchase.Flow) error {
		if err := f.Pay(); err != nil {
			return err
		}
		bundle = f.Bundle()
		recipient = f.RecipientNumber()
		return nil
	})
	if err != nil {
		return state, nil, err
	}

	if s.paystack == nil {
		return state, nil, utils.ErrPaymentNotReady
	}

	amountPesewas := int(bundle.Price*100 + 0.5)
	reference := utils.GeneratePaymentReference()
	init, err := s.paystack.InitializeTransaction(ctx, &paystack.InitializeRequest{
		Email:     s.storeEmail,
		Amount:    amountPesewas,
		Currency:  "GHS",
		Reference: reference,
		Metadata: paystack.Metadata{
			CustomFields: []paystack.CustomField{
				{DisplayName: "Recipient Number", VariableName: "recipient_number", Value: recipient},
				{DisplayName: "Bundle ID", VariableName: "bundle_id", Value: bundle.ID},
				{DisplayName: "Bundle Name", VariableName: "bundle_name", Value: bundle.Title},
				{DisplayName: "Amount", VariableName: "amount", Value: strconv.FormatFloat(bundle.Price, 'f', -1, 64)},
				{DisplayName: "Network", VariableName: "network", Value: bundle.Network},
			},
		},
	})
	if err != nil {
		// Flow stays in payment; the storefront shows the notice and retries.
		return state, nil, fmt.Errorf("%w: %v", utils.ErrPaymentNotReady, err)
	}

	return state, &PaymentInit{
		Reference:        init.Data.Reference,
		AuthorizationURL: init.Data.AuthorizationURL,
		AccessCode:       init.Data.AccessCode,
		Amount:           amountPesewas,
		Currency:         "GHS",
	}, nil
}

// SuccessParams are the query parameters for the success view. All plain
// strings, display only.
type SuccessParams struct {
	Reference  string `json:"reference"`
	Recipient  string `json:"recipient"`
	BundleName string `json:"bundleName"`
	BundleSize string `json:"bundleSize"`
	Amount     string `json:"amount"`
}

// Complete closes the flow after the payment callback and hands the purchase
// to the order recorder. Recording is fire-and-forget: the success params are
// returned even if the write later fails, which is only logged.
func (s *PurchaseService) Complete(ctx context.Context, sessionID, reference string) (SuccessParams, error) {
	if s.paystack != nil {
		trx, err := s.paystack.VerifyTransaction(ctx, reference)
		if err != nil {
			return SuccessParams{}, fmt.Errorf("%w: %v", utils.ErrPaymentNotFound, err)
		}
		if trx.Status != "success" {
			return SuccessParams{}, fmt.Errorf("%w: status %s", utils.ErrPaymentNotPaid, trx.Status)
		}
	}

	var done purchase.Completed
	err := s.flows.With(sessionID, func(f *purchase.Flow) error {
		var opErr error
		done, opErr = f.CompletePayment(reference)
		return opErr
	})
	if err != nil {
		return SuccessParams{}, err
	}
	s.flows.Drop(sessionID)

	go s.recordOrder(done)

	return SuccessParams{
		Reference:  done.Reference,
		Recipient:  done.RecipientNumber,
		BundleName: done.Bundle.Title,
		BundleSize: FormatBundleSize(done.Bundle.SizeMB),
		Amount:     strconv.FormatFloat(done.Bundle.Price, 'f', 2, 64),
	}, nil
}

// recordOrder appends the order for a completed purchase in the background.
func (s *PurchaseService) recordOrder(done purchase.Completed) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	req := &models.CreateOrderRequest{
		Reference: done.Reference,
		Items: []models.OrderItem{{
			ID:       done.Bundle.ID,
			Name:     done.Bundle.Title,
			Price:    done.Bundle.Price,
			Quantity: 1,
			Network:  done.Bundle.Network,
		}},
		Email:           s.storeEmail,
		Phone:           done.RecipientNumber,
		RecipientNumber: done.RecipientNumber,
	}
	if _, err := s.orders.Create(ctx, req); err != nil {
		log.Error().Err(err).
			Str("reference", done.Reference).
			Msg("Best-effort order recording failed after payment")
	}
}

// FormatBundleSize renders a size in MB for display: 2048 -> "2GB",
// 500 -> "500MB", nil -> "N/A".
func FormatBundleSize(sizeMB *int) string {
	if sizeMB == nil {
		return "N/A"
	}
	if *sizeMB >= 1024 {
		gb := float64(*sizeMB) / 1024
		return strconv.FormatFloat(gb, 'f', -1, 64) + "GB"
	}
	return strconv.Itoa(*sizeMB) + "MB"
}
