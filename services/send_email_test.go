package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendSenderSuccess(t *testing.T) {
	var got ResendEmailRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(ResendEmailResponse{ID: "email-123"})
	}))
	defer srv.Close()

	sender, err := NewResendSender(map[string]string{
		"RESEND_API_KEY":    "re_test_key",
		"RESEND_FROM_EMAIL": "Site <noreply@example.com>",
		"RESEND_BASE_URL":   srv.URL,
	})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	if err := sender.SendEmail("Hello", "<p>hi</p>", []string{"owner@example.com"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if got.Subject != "Hello" || got.Html != "<p>hi</p>" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if len(got.To) != 1 || got.To[0] != "owner@example.com" {
		t.Fatalf("unexpected recipients: %v", got.To)
	}
	if got.From != "Site <noreply@example.com>" {
		t.Fatalf("unexpected sender: %q", got.From)
	}
}

func TestResendSenderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ResendErrorResponse{Message: "invalid from address"})
	}))
	defer srv.Close()

	sender, err := NewResendSender(map[string]string{
		"RESEND_API_KEY":    "re_test_key",
		"RESEND_FROM_EMAIL": "bogus",
		"RESEND_BASE_URL":   srv.URL,
	})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	if err := sender.SendEmail("Hello", "body", []string{"owner@example.com"}); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestResendSenderRequiresRecipients(t *testing.T) {
	sender := &ResendSender{apiKey: "k", fromEmail: "f", baseURL: "http://unused"}
	if err := sender.SendEmail("Hello", "body", nil); err == nil {
		t.Fatalf("expected error without recipients")
	}
}

func TestResendSenderRequiresConfig(t *testing.T) {
	if _, err := NewResendSender(nil); err == nil {
		t.Fatalf("expected error without api key")
	}
	if _, err := NewResendSender(map[string]string{"RESEND_API_KEY": "k"}); err == nil {
		t.Fatalf("expected error without from address")
	}
}
