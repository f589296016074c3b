package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"adforge/internal/credits"
)

func TestCreditsBalance(t *testing.T) {
	fx := newAppFixture(t)

	rec := httptest.NewRecorder()
	fx.app.CreditsBalance(rec, authed(httptest.NewRequest(http.MethodGet, "/v1/credits", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["balance"] != float64(50) {
		t.Fatalf("balance = %v, want 50", body["balance"])
	}
}

func TestCreditsPurchasePack(t *testing.T) {
	fx := newAppFixture(t)

	rec := httptest.NewRecorder()
	fx.app.CreditsPurchase(rec, authed(postJSON(t, "/v1/credits/purchase", purchaseRequest{PackID: "small"})))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	want := float64(50 + credits.Packs["small"].Credits)
	if body["balance"] != want {
		t.Fatalf("balance = %v, want %v", body["balance"], want)
	}
}

func TestCreditsPurchaseUnknownPack(t *testing.T) {
	fx := newAppFixture(t)

	rec := httptest.NewRecorder()
	fx.app.CreditsPurchase(rec, authed(postJSON(t, "/v1/credits/purchase", purchaseRequest{PackID: "mega"})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreditsHistoryReturnsEntries(t *testing.T) {
	fx := newAppFixture(t)

	rec := httptest.NewRecorder()
	fx.app.CreditsPurchase(rec, authed(postJSON(t, "/v1/credits/purchase", purchaseRequest{PlanID: "starter"})))
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	fx.app.CreditsHistory(rec, authed(httptest.NewRequest(http.MethodGet, "/v1/credits/history", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	entries, _ := body["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %v", body)
	}
	entry := entries[0].(map[string]any)
	if entry["type"] != "SUBSCRIPTION_GRANT" {
		t.Fatalf("entry type = %v", entry["type"])
	}
}
