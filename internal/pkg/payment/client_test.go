package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateIntent_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/payment_intents" {
			t.Fatalf("path = %s, want /v1/payment_intents", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("authorization header = %q", got)
		}

		var req createIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 1999 || req.Currency != "usd" {
			t.Fatalf("unexpected request: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Intent{
			ID:       "pi_123",
			Status:   "succeeded",
			Amount:   req.Amount,
			Currency: req.Currency,
		}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	intent, err := client.CreateIntent(ctx, 1999, "pm_card", "Monthly plan")
	if err != nil {
		t.Fatalf("CreateIntent error: %v", err)
	}
	if intent.ID != "pi_123" || intent.Status != "succeeded" {
		t.Fatalf("unexpected intent: %+v", intent)
	}
}

func TestCreateIntent_DeclinedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Intent{ID: "pi_456", Status: "declined"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")

	_, err := client.CreateIntent(context.Background(), 500, "pm_card", "")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("error = %v, want ErrDeclined", err)
	}
}

func TestCreateIntent_PaymentRequiredStatusCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")

	_, err := client.CreateIntent(context.Background(), 500, "pm_card", "")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("error = %v, want ErrDeclined", err)
	}
}

func TestCreateIntent_NotConfigured(t *testing.T) {
	client := NewClient("", "")

	_, err := client.CreateIntent(context.Background(), 500, "pm_card", "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestGetIntent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents/pi_789" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Intent{ID: "pi_789", Status: "succeeded", Amount: 100})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")

	intent, err := client.GetIntent(context.Background(), "pi_789")
	if err != nil {
		t.Fatalf("GetIntent error: %v", err)
	}
	if intent.ID != "pi_789" || intent.Amount != 100 {
		t.Fatalf("unexpected intent: %+v", intent)
	}
}
