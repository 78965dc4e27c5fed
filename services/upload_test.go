package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCloudinaryUploadSuccess(t *testing.T) {
	var gotPreset, gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo-cloud/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFilename = header.Filename
		}

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo-cloud/image/upload/logo.png",
		})
	}))
	defer srv.Close()

	uploader, err := NewCloudinaryUploader(map[string]string{
		"CLOUDINARY_CLOUD_NAME":    "demo-cloud",
		"CLOUDINARY_UPLOAD_PRESET": "portfolio-preset",
		"CLOUDINARY_BASE_URL":      srv.URL,
	})
	if err != nil {
		t.Fatalf("new uploader: %v", err)
	}

	var pcts []int
	url, err := uploader.UploadImage(context.Background(), "logo.png", strings.NewReader("png-bytes"), func(p int) {
		pcts = append(pcts, p)
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://res.cloudinary.com/demo-cloud/image/upload/logo.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if gotPreset != "portfolio-preset" {
		t.Fatalf("upload_preset = %q", gotPreset)
	}
	if gotFilename != "logo.png" {
		t.Fatalf("filename = %q", gotFilename)
	}
	if len(pcts) == 0 || pcts[len(pcts)-1] != 100 {
		t.Fatalf("expected progress reaching 100, got %v", pcts)
	}
}

func TestCloudinaryUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Upload preset not found"},
		})
	}))
	defer srv.Close()

	uploader, err := NewCloudinaryUploader(map[string]string{
		"CLOUDINARY_CLOUD_NAME":    "demo-cloud",
		"CLOUDINARY_UPLOAD_PRESET": "bad-preset",
		"CLOUDINARY_BASE_URL":      srv.URL,
	})
	if err != nil {
		t.Fatalf("new uploader: %v", err)
	}

	_, err = uploader.UploadImage(context.Background(), "logo.png", strings.NewReader("png-bytes"), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Upload preset not found") {
		t.Fatalf("error should carry the host's message, got %v", err)
	}
}

func TestCloudinaryUploaderRequiresConfig(t *testing.T) {
	if _, err := NewCloudinaryUploader(nil); err == nil {
		t.Fatalf("expected error without cloud name")
	}
	if _, err := NewCloudinaryUploader(map[string]string{"CLOUDINARY_CLOUD_NAME": "x"}); err == nil {
		t.Fatalf("expected error without upload preset")
	}
}

func TestProgressReaderMonotonic(t *testing.T) {
	payload := strings.Repeat("x", 1000)
	var pcts []int
	r := newProgressReader(strings.NewReader(payload), int64(len(payload)), func(p int) {
		pcts = append(pcts, p)
	})

	buf := make([]byte, 100)
	for {
		if _, err := r.Read(buf); err != nil {
			break
		}
	}

	if len(pcts) == 0 {
		t.Fatalf("expected progress callbacks")
	}
	last := -1
	for _, p := range pcts {
		if p < last {
			t.Fatalf("progress went backwards: %v", pcts)
		}
		last = p
	}
	if last != 100 {
		t.Fatalf("expected final progress of 100, got %d", last)
	}
}
