package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fastfix/marketplace-api/internal/core/domain"
)

func testConfig() Config {
	return Config{AccountSID: "AC123", AuthToken: "token", FromNumber: "+15550000000"}
}

func TestTwilioGateway_Unconfigured(t *testing.T) {
	gw := NewTwilioGateway(Config{}, zerolog.Nop())

	if _, err := gw.PlaceCall(context.Background(), "acc_1", "9876543210"); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if err := gw.SendMessage(context.Background(), "acc_1", "9876543210", "hi"); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestTwilioGateway_PlaceCall(t *testing.T) {
	var gotPath, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotTo = r.PostForm.Get("To")
		if user, pass, ok := r.BasicAuth(); !ok || user != "AC123" || pass != "token" {
			t.Fatalf("missing or wrong basic auth")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"CA42"}`))
	}))
	defer srv.Close()

	gw := NewTwilioGateway(testConfig(), zerolog.Nop()).WithBaseURL(srv.URL)

	sid, err := gw.PlaceCall(context.Background(), "acc_1", "9876543210")
	if err != nil {
		t.Fatalf("place call failed: %v", err)
	}
	if sid != "CA42" {
		t.Fatalf("expected sid CA42, got %q", sid)
	}
	if gotPath != "/2010-04-01/Accounts/AC123/Calls.json" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotTo != "+919876543210" {
		t.Fatalf("expected prefixed number, got %q", gotTo)
	}
}

func TestTwilioGateway_SendMessage_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := NewTwilioGateway(testConfig(), zerolog.Nop()).WithBaseURL(srv.URL)

	if err := gw.SendMessage(context.Background(), "acc_1", "9876543210", "hello"); err == nil {
		t.Fatalf("expected error on provider failure")
	}
}
