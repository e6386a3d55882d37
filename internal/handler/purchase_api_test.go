package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geniusdatahub/gdh_api/internal/purchase"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/storage"
	"github.com/geniusdatahub/gdh_api/pkg/supplier"
)

type flowEnvelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Flow *service.FlowState `json:"flow"`
	Data struct {
		SessionID string             `json:"sessionId"`
		Flow      *service.FlowState `json:"flow"`
	} `json:"data"`
}

// flowState returns the flow from wherever the response carries it: envelope
// data on success, top level on the inline 422/503 shapes.
func (e flowEnvelope) flowState(t *testing.T) *service.FlowState {
	t.Helper()
	if e.Data.Flow != nil {
		return e.Data.Flow
	}
	if e.Flow != nil {
		return e.Flow
	}
	t.Fatal("response carries no flow state")
	return nil
}

func newPurchaseRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "bundles.json")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	orderStore := repository.NewOrderFileRepository(storage.NewFile(filepath.Join(dir, "orders.json")))
	catalogSvc := service.NewCatalogService(repository.NewBundleRepository(catalogPath), nil)
	orderSvc := service.NewOrderService(orderStore, supplier.NewClient("", ""))
	purchaseSvc := service.NewPurchaseService(purchase.NewManager(30*time.Minute), catalogSvc, orderSvc, nil, "receipt@geniusdatahub.com")

	h := NewPurchaseHandler(purchaseSvc)
	router := gin.New()
	router.POST("/v1/purchase", h.Open)
	router.GET("/v1/purchase/:id", h.Get)
	router.PUT("/v1/purchase/:id/recipient", h.SetRecipient)
	router.POST("/v1/purchase/:id/confirm", h.Confirm)
	router.POST("/v1/purchase/:id/back", h.Back)
	router.POST("/v1/purchase/:id/pay", h.Pay)
	router.POST("/v1/purchase/:id/complete", h.Complete)
	router.DELETE("/v1/purchase/:id", h.Cancel)
	return router
}

func TestPurchaseWizardOverHTTP(t *testing.T) {
	router := newPurchaseRouter(t)

	// Open with the chosen bundle.
	w := doJSON(t, router, http.MethodPost, "/v1/purchase", gin.H{"bundleId": "mtn-2gb"})
	if w.Code != 200 {
		t.Fatalf("open status = %d: %s", w.Code, w.Body.String())
	}
	opened := decode[flowEnvelope](t, w)
	sessionID := opened.Data.SessionID
	if sessionID == "" {
		t.Fatal("no session ID returned")
	}
	if got := opened.flowState(t); got.Step != "selection" || got.Bundle == nil || got.Bundle.ID != "mtn-2gb" {
		t.Fatalf("opened flow: %+v", got)
	}

	// Confirm with a bad number is rejected; the flow stays in selection.
	base := "/v1/purchase/" + sessionID
	w = doJSON(t, router, http.MethodPut, base+"/recipient", gin.H{"recipientNumber": "024"})
	if w.Code != 200 {
		t.Fatalf("set recipient status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, base+"/confirm", nil)
	if w.Code != 422 {
		t.Fatalf("confirm invalid status = %d: %s", w.Code, w.Body.String())
	}
	rejected := decode[flowEnvelope](t, w)
	if rejected.Error == nil || rejected.Error.Code != "INVALID_RECIPIENT" {
		t.Fatalf("confirm error: %+v", rejected.Error)
	}
	if got := rejected.flowState(t); got.Step != "selection" || got.RecipientNumber != "024" {
		t.Errorf("flow after rejected confirm: %+v", got)
	}

	// Valid number confirms; back returns to selection keeping the number.
	w = doJSON(t, router, http.MethodPut, base+"/recipient", gin.H{"recipientNumber": "0591234567"})
	if w.Code != 200 {
		t.Fatal("set recipient failed")
	}
	w = doJSON(t, router, http.MethodPost, base+"/confirm", nil)
	if w.Code != 200 {
		t.Fatalf("confirm status = %d: %s", w.Code, w.Body.String())
	}
	if got := decode[flowEnvelope](t, w).flowState(t); got.Step != "confirmation" {
		t.Fatalf("step after confirm = %q", got.Step)
	}

	w = doJSON(t, router, http.MethodPost, base+"/back", nil)
	if got := decode[flowEnvelope](t, w).flowState(t); got.Step != "selection" || got.RecipientNumber != "0591234567" {
		t.Fatalf("flow after back: %+v", got)
	}

	// Confirm again, then pay without a payment collaborator: 503, flow parked
	// in payment awaiting retry.
	w = doJSON(t, router, http.MethodPost, base+"/confirm", nil)
	if w.Code != 200 {
		t.Fatal("re-confirm failed")
	}
	w = doJSON(t, router, http.MethodPost, base+"/pay", nil)
	if w.Code != 503 {
		t.Fatalf("pay status = %d: %s", w.Code, w.Body.String())
	}
	notReady := decode[flowEnvelope](t, w)
	if notReady.Error == nil || notReady.Error.Code != "PAYMENT_NOT_READY" {
		t.Fatalf("pay error: %+v", notReady.Error)
	}
	if got := notReady.flowState(t); got.Step != "payment" {
		t.Errorf("step after not-ready pay = %q", got.Step)
	}

	// Retrying pay is allowed from payment; it reports not-ready again
	// instead of an illegal transition.
	w = doJSON(t, router, http.MethodPost, base+"/pay", nil)
	if w.Code != 503 {
		t.Fatalf("retried pay status = %d, want 503: %s", w.Code, w.Body.String())
	}

	// Illegal transition from payment.
	w = doJSON(t, router, http.MethodPost, base+"/confirm", nil)
	if w.Code != 409 {
		t.Fatalf("confirm-in-payment status = %d", w.Code)
	}

	// Cancel drops the session.
	w = doJSON(t, router, http.MethodDelete, base, nil)
	if w.Code != 200 {
		t.Fatalf("cancel status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, base, nil)
	if w.Code != 404 {
		t.Fatalf("get after cancel status = %d", w.Code)
	}
}

func TestPurchaseOpenValidation(t *testing.T) {
	router := newPurchaseRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/purchase", gin.H{"bundleId": "nope"})
	if w.Code != 404 {
		t.Fatalf("unknown bundle status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/purchase", gin.H{})
	if w.Code != 400 {
		t.Fatalf("missing bundleId status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/purchase/not-a-session", nil)
	if w.Code != 404 {
		t.Fatalf("unknown session status = %d", w.Code)
	}
}
