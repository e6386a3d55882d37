package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geniusdatahub/gdh_api/internal/purchase"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/pkg/paystack"
	"github.com/geniusdatahub/gdh_api/pkg/supplier"
)

func newPurchaseService(t *testing.T, ps *paystack.Client) (*PurchaseService, *OrderService) {
	t.Helper()
	orders := NewOrderService(newOrderStore(t), supplier.NewClient("", ""))
	catalog := newCatalogService(t)
	flows := purchase.NewManager(30 * time.Minute)
	return NewPurchaseService(flows, catalog, orders, ps, "receipt@geniusdatahub.com"), orders
}

func TestOpenUnknownBundle(t *testing.T) {
	svc, _ := newPurchaseService(t, nil)
	if _, _, err := svc.Open(context.Background(), "no-such-bundle"); !errors.Is(err, utils.ErrBundleNotFound) {
		t.Fatalf("err = %v, want ErrBundleNotFound", err)
	}
}

func TestPayWithoutPaystackStaysInPayment(t *testing.T) {
	svc, _ := newPurchaseService(t, nil)
	ctx := context.Background()

	id, _, err := svc.Open(ctx, "mtn-2gb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetRecipient(id, "0591234567"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(id); err != nil {
		t.Fatal(err)
	}

	state, init, err := svc.Pay(ctx, id)
	if !errors.Is(err, utils.ErrPaymentNotReady) {
		t.Fatalf("err = %v, want ErrPaymentNotReady", err)
	}
	if init != nil {
		t.Error("no checkout handle expected without a payment collaborator")
	}
	if state.Step != "payment" {
		t.Errorf("step = %q, want payment (retry stays possible)", state.Step)
	}

	// A retry is not an illegal transition; it reports not-ready again.
	state, init, err = svc.Pay(ctx, id)
	if !errors.Is(err, utils.ErrPaymentNotReady) {
		t.Fatalf("retried Pay: err = %v, want ErrPaymentNotReady", err)
	}
	if init != nil {
		t.Error("retried Pay returned a checkout handle without a collaborator")
	}
	if state.Step != "payment" {
		t.Errorf("step after retried pay = %q, want payment", state.Step)
	}
}

func TestPayRetryAfterNotReadySucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status": false, "message": "Service unavailable"}`)
			return
		}
		fmt.Fprint(w, `{"status": true, "data": {
			"authorization_url": "https://checkout.paystack.com/retry",
			"access_code": "retry",
			"reference": "gdh_retry"
		}}`)
	}))
	defer srv.Close()

	svc, _ := newPurchaseService(t, paystack.NewClientWithBaseURL("sk_test", srv.URL))
	ctx := context.Background()

	id, _, err := svc.Open(ctx, "mtn-2gb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetRecipient(id, "0591234567"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(id); err != nil {
		t.Fatal(err)
	}

	state, init, err := svc.Pay(ctx, id)
	if !errors.Is(err, utils.ErrPaymentNotReady) {
		t.Fatalf("first Pay: err = %v, want ErrPaymentNotReady", err)
	}
	if state.Step != "payment" {
		t.Fatalf("step after failed init = %q, want payment", state.Step)
	}

	// The collaborator has recovered; the same session initializes a checkout.
	state, init, err = svc.Pay(ctx, id)
	if err != nil {
		t.Fatalf("retried Pay: %v", err)
	}
	if init == nil || init.AuthorizationURL != "https://checkout.paystack.com/retry" {
		t.Fatalf("retried Pay checkout handle: %+v", init)
	}
	if state.Step != "payment" {
		t.Errorf("step after retried Pay = %q, want payment", state.Step)
	}
}

func TestPayInitializesCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status": true, "message": "Authorization URL created", "data": {
			"authorization_url": "https://checkout.paystack.com/abc123",
			"access_code": "abc123",
			"reference": "gdh_123_abcd"
		}}`)
	}))
	defer srv.Close()

	svc, _ := newPurchaseService(t, paystack.NewClientWithBaseURL("sk_test", srv.URL))
	ctx := context.Background()

	id, _, err := svc.Open(ctx, "telecel-5gb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetRecipient(id, "0551234567"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(id); err != nil {
		t.Fatal(err)
	}

	state, init, err := svc.Pay(ctx, id)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if state.Step != "payment" {
		t.Errorf("step = %q, want payment", state.Step)
	}
	if init.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Errorf("authorization url = %q", init.AuthorizationURL)
	}
	if init.Amount != 2500 {
		t.Errorf("amount = %d pesewas, want 2500 for GHS 25.00", init.Amount)
	}
	if init.Currency != "GHS" {
		t.Errorf("currency = %q, want GHS", init.Currency)
	}
}

func TestCompleteVerifiesAndRecordsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/transaction/initialize":
			fmt.Fprint(w, `{"status": true, "data": {"authorization_url": "u", "access_code": "a", "reference": "gdh_ok"}}`)
		case r.URL.Path == "/transaction/verify/gdh_ok":
			fmt.Fprint(w, `{"status": true, "data": {"status": "success", "reference": "gdh_ok", "amount": 1200, "currency": "GHS"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	svc, orders := newPurchaseService(t, paystack.NewClientWithBaseURL("sk_test", srv.URL))
	ctx := context.Background()

	id, _, _ := svc.Open(ctx, "mtn-2gb")
	_, _ = svc.SetRecipient(id, "0591234567")
	_, _ = svc.Confirm(id)
	if _, _, err := svc.Pay(ctx, id); err != nil {
		t.Fatal(err)
	}

	params, err := svc.Complete(ctx, id, "gdh_ok")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if params.Reference != "gdh_ok" || params.Recipient != "0591234567" {
		t.Errorf("unexpected success params: %+v", params)
	}
	if params.BundleName != "MTN 2GB" || params.BundleSize != "2GB" {
		t.Errorf("bundle display params: %+v", params)
	}

	// Session is gone once the purchase completes.
	if _, err := svc.Get(id); !errors.Is(err, purchase.ErrSessionNotFound) {
		t.Errorf("session still live after completion: %v", err)
	}

	// Order recording is asynchronous; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := orders.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) == 1 {
			if got[0].Reference != "gdh_ok" {
				t.Errorf("recorded reference = %q", got[0].Reference)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("order was never recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCompleteRejectsUnpaidTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": true, "data": {"status": "abandoned", "reference": "gdh_bad"}}`)
	}))
	defer srv.Close()

	svc, orders := newPurchaseService(t, paystack.NewClientWithBaseURL("sk_test", srv.URL))

	if _, err := svc.Complete(context.Background(), "any-session", "gdh_bad"); !errors.Is(err, utils.ErrPaymentNotPaid) {
		t.Fatalf("err = %v, want ErrPaymentNotPaid", err)
	}
	if got, _ := orders.List(); len(got) != 0 {
		t.Errorf("unpaid transaction recorded %d orders", len(got))
	}
}

func TestFormatBundleSize(t *testing.T) {
	intp := func(v int) *int { return &v }
	cases := []struct {
		in   *int
		want string
	}{
		{nil, "N/A"},
		{intp(500), "500MB"},
		{intp(1024), "1GB"},
		{intp(2048), "2GB"},
		{intp(1536), "1.5GB"},
	}
	for _, c := range cases {
		if got := FormatBundleSize(c.in); got != c.want {
			t.Errorf("FormatBundleSize(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
