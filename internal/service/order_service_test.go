package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/storage"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/pkg/supplier"
)

func newOrderStore(t *testing.T) repository.OrderStore {
	t.Helper()
	return repository.NewOrderFileRepository(storage.NewFile(filepath.Join(t.TempDir(), "orders.json")))
}

func orderRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Reference: "gdh_test_1",
		Items: []models.OrderItem{
			{ID: "mtn-2gb", Name: "MTN 2GB", Price: 12.0, Quantity: 1, Network: "MTN"},
		},
		Email: "receipt@geniusdatahub.com",
		Phone: "0591234567",
	}
}

func TestCreateWithoutSupplierRecordsCompleted(t *testing.T) {
	store := newOrderStore(t)
	svc := NewOrderService(store, supplier.NewClient("", ""))

	resp, err := svc.Create(context.Background(), orderRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Status != models.OrderStatusCompleted {
		t.Errorf("status = %s, want completed", resp.Status)
	}
	if resp.Message == "" {
		t.Error("expected a recorded message")
	}

	orders, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("recorded %d orders, want 1", len(orders))
	}
	if orders[0].Reference != "gdh_test_1" || orders[0].Status != models.OrderStatusCompleted {
		t.Errorf("unexpected order: %+v", orders[0])
	}
	if orders[0].SupplierMessage == "" {
		t.Error("informational supplier message not retained")
	}
}

func TestCreateWithFailingSupplierRecordsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "supplier down", http.StatusBadGateway)
	}))
	defer srv.Close()

	store := newOrderStore(t)
	svc := NewOrderService(store, supplier.NewClient(srv.URL, "key"))

	resp, err := svc.Create(context.Background(), orderRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", resp.Status)
	}

	orders, _ := store.List()
	if len(orders) != 1 {
		t.Fatalf("recorded %d orders, want exactly 1 despite supplier failure", len(orders))
	}
	if orders[0].SupplierMessage == "" {
		t.Error("supplier failure message not retained on order")
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	store := newOrderStore(t)
	svc := NewOrderService(store, supplier.NewClient("", ""))

	cases := []func(r *models.CreateOrderRequest){
		func(r *models.CreateOrderRequest) { r.Reference = "" },
		func(r *models.CreateOrderRequest) { r.Items = nil },
		func(r *models.CreateOrderRequest) { r.Email = "" },
		func(r *models.CreateOrderRequest) { r.Phone = "" },
	}
	for i, mutate := range cases {
		req := orderRequest()
		mutate(req)
		if _, err := svc.Create(context.Background(), req); !errors.Is(err, utils.ErrMissingFields) {
			t.Errorf("case %d: err = %v, want ErrMissingFields", i, err)
		}
	}

	if orders, _ := store.List(); len(orders) != 0 {
		t.Errorf("validation failures touched storage: %d orders", len(orders))
	}
}

func TestCreateRecipientDefaultsToPhone(t *testing.T) {
	var gotPhone string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Phone string `json:"phone"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPhone = body.Phone
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewOrderService(newOrderStore(t), supplier.NewClient(srv.URL, "key"))

	req := orderRequest()
	req.RecipientNumber = ""
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if gotPhone != req.Phone {
		t.Errorf("supplier received phone %q, want buyer phone %q", gotPhone, req.Phone)
	}
}
