package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adarsh14103/portfolio-backend/database"
	"github.com/adarsh14103/portfolio-backend/errs"
	"github.com/adarsh14103/portfolio-backend/models"
)

type fakeSender struct {
	subjects []string
	fail     bool
}

func (f *fakeSender) SendEmail(subject, body string, recipients []string) error {
	if f.fail {
		return errs.ErrUpstream
	}
	f.subjects = append(f.subjects, subject)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sender := &fakeSender{}
	handler := NewHandler(database.New(db), sender, map[string]string{"ACCEPTED_ORIGINS": "*"})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, sender
}

func doJSON(t *testing.T, method, url string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func TestCreateProjectThenList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/projects", map[string]any{
		"name":        "Portfolio",
		"description": "Personal site",
		"image":       "https://img.example.com/p.png",
		"github":      "https://github.com/adarsh14103/portfolio",
		"techStacks":  []string{"Go", "chi"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}

	var created models.Project
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected store-set timestamps")
	}

	resp, body = doJSON(t, "GET", srv.URL+"/api/projects", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}

	var collection ProjectCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(collection.Projects) != 1 {
		t.Fatalf("expected one project, got %d", len(collection.Projects))
	}
	got := collection.Projects[0]
	if got.ID != created.ID || got.Name != "Portfolio" || len(got.TechStacks) != 2 {
		t.Fatalf("listed project does not match created: %+v", got)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"missing name", map[string]any{"description": "x"}, "name"},
		{"blank name", map[string]any{"name": "   "}, "name"},
		{"bad image url", map[string]any{"name": "x", "image": "not-a-url"}, "image"},
		{"bad github url", map[string]any{"name": "x", "github": "ftp://example.com/x"}, "github"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, "POST", srv.URL+"/api/projects", tt.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}

			var errResp ErrorResponse
			if err := json.Unmarshal(body, &errResp); err != nil {
				t.Fatalf("unmarshal error body: %v", err)
			}
			if errResp.Kind != string(errs.KindValidation) {
				t.Fatalf("kind = %q, want validation", errResp.Kind)
			}
			if errResp.Field != tt.field {
				t.Fatalf("field = %q, want %q", errResp.Field, tt.field)
			}
		})
	}
}

func TestUpdateProjectUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, "PUT", srv.URL+"/api/projects", map[string]any{
		"id":   uuid.NewString(),
		"name": "ghost",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if errResp.Kind != string(errs.KindNotFound) {
		t.Fatalf("kind = %q, want not-found", errResp.Kind)
	}
}

func TestDeleteSkillRemovesFromList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/skills", map[string]any{
		"name":  "Go",
		"image": "https://x/go.png",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}

	var created models.Skill
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.ID == uuid.Nil || created.Name != "Go" {
		t.Fatalf("unexpected created skill: %+v", created)
	}

	resp, _ = doJSON(t, "DELETE", srv.URL+"/api/skills", map[string]any{"id": created.ID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, body = doJSON(t, "GET", srv.URL+"/api/skills", nil)
	var collection SkillCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(collection.Skills) != 0 {
		t.Fatalf("expected empty skill list, got %d", len(collection.Skills))
	}

	// Deleting an id that no longer exists is an error, not a no-op.
	resp, body = doJSON(t, "DELETE", srv.URL+"/api/skills", map[string]any{"id": created.ID})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, body %s", resp.StatusCode, body)
	}
}

func TestProfileUpsert(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, "GET", srv.URL+"/api/adarsh", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	if string(bytes.TrimSpace(body)) != "null" {
		t.Fatalf("expected null before first write, got %s", body)
	}

	first := map[string]any{
		"tagline": "Full-stack developer",
		"bio":     "I build things.",
		"email":   "adarsh14103@gmail.com",
	}
	resp, body = doJSON(t, "PUT", srv.URL+"/api/adarsh", first)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first upsert status = %d, body %s", resp.StatusCode, body)
	}

	// PATCH behaves identically to PUT and overwrites every field.
	second := map[string]any{
		"tagline":  "Backend engineer",
		"bio":      "I build other things.",
		"email":    "adarsh14103@gmail.com",
		"github":   "https://github.com/adarsh14103",
		"linkedin": "https://linkedin.com/in/adarsh14103",
	}
	resp, body = doJSON(t, "PATCH", srv.URL+"/api/adarsh", second)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second upsert status = %d, body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, "GET", srv.URL+"/api/adarsh", nil)
	var profile models.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if profile.ID != models.ProfileID {
		t.Fatalf("profile id = %s, want the fixed id", profile.ID)
	}
	if profile.Tagline != "Backend engineer" || profile.Github != second["github"] {
		t.Fatalf("second write not reflected: %+v", profile)
	}
}

func TestContactForm(t *testing.T) {
	srv, sender := newTestServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/contact", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if len(sender.subjects) != 1 {
		t.Fatalf("expected one email sent, got %d", len(sender.subjects))
	}
	if sender.subjects[0] != "Contact Form Submission from Visitor" {
		t.Fatalf("unexpected subject %q", sender.subjects[0])
	}
}

func TestContactFormRejectsBeforeSending(t *testing.T) {
	srv, sender := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing name", map[string]any{"email": "v@example.com", "message": "hi"}},
		{"missing message", map[string]any{"name": "v", "email": "v@example.com"}},
		{"missing email", map[string]any{"name": "v", "message": "hi"}},
		{"invalid email", map[string]any{"name": "v", "email": "not-an-address", "message": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, "POST", srv.URL+"/api/contact", tt.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
		})
	}

	if len(sender.subjects) != 0 {
		t.Fatalf("no email should be sent for rejected submissions, got %d", len(sender.subjects))
	}
}

func TestContactFormUpstreamFailure(t *testing.T) {
	srv, sender := newTestServer(t)
	sender.fail = true

	resp, body := doJSON(t, "POST", srv.URL+"/api/contact", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello!",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if errResp.Kind != string(errs.KindUpstream) {
		t.Fatalf("kind = %q, want upstream-service", errResp.Kind)
	}
}
