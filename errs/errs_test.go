package errs

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestDatabaseErrorKinds(t *testing.T) {
	err := NewDatabaseError("find", "project", gorm.ErrRecordNotFound)
	if err.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", err.StatusCode)
	}
	if err.Kind != KindNotFound {
		t.Fatalf("kind = %q, want not-found", err.Kind)
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound should report true")
	}

	err = NewDatabaseError("create", "skill", errors.New("UNIQUE constraint failed: skills.id"))
	if err.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", err.StatusCode)
	}

	err = NewDatabaseError("find", "project", errors.New("disk I/O error"))
	if err.Kind != KindDatabase || err.StatusCode != http.StatusInternalServerError {
		t.Fatalf("generic failure: kind=%q status=%d", err.Kind, err.StatusCode)
	}
}

func TestFromResponse(t *testing.T) {
	err := FromResponse(http.StatusNotFound, KindNotFound, "project not found", "", "")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found kind")
	}

	// A body with no kind still yields something to branch on.
	err = FromResponse(http.StatusBadGateway, "", "", "", "")
	if err.Kind != KindHTTPStatus {
		t.Fatalf("kind = %q, want http-status", err.Kind)
	}
	if err.Error() != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(NewTransportError(errors.New("refused"))) != KindTransport {
		t.Fatalf("expected transport kind")
	}
	if KindOf(errors.New("plain")) != KindTransport {
		t.Fatalf("unknown errors default to transport")
	}
}

func TestApiErrCauseChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("email relay", cause)
	if !IsUpstream(err) {
		t.Fatalf("expected upstream kind")
	}
	full := err.GetFullError()
	if full == "" || full == err.Error() {
		t.Fatalf("full error should include the cause, got %q", full)
	}
}
