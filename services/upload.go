package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adarsh14103/portfolio-backend/config"
)

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// ImageUploader pushes an image to the external host and returns the
// URL under which it is served. The returned URL is what gets stored in
// an entity's image field.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, content io.Reader, progress ProgressFunc) (string, error)
}

// CloudinaryUploader uploads through Cloudinary's unsigned upload
// endpoint: a multipart form carrying the file and a fixed
// upload_preset, answered with a secure_url.
//
// Requires environment variables:
//   - CLOUDINARY_CLOUD_NAME
//   - CLOUDINARY_UPLOAD_PRESET
type CloudinaryUploader struct {
	cloudName    string
	uploadPreset string
	baseURL      string
	client       *http.Client
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewCloudinaryUploader builds an uploader from the config map.
// CLOUDINARY_BASE_URL overrides the API host; tests point it at a fake.
func NewCloudinaryUploader(cfg map[string]string) (*CloudinaryUploader, error) {
	cloudName := config.GetString(cfg, "CLOUDINARY_CLOUD_NAME", "")
	if cloudName == "" {
		return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME environment variable is required")
	}

	uploadPreset := config.GetString(cfg, "CLOUDINARY_UPLOAD_PRESET", "")
	if uploadPreset == "" {
		return nil, fmt.Errorf("CLOUDINARY_UPLOAD_PRESET environment variable is required")
	}

	return &CloudinaryUploader{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		baseURL:      config.GetString(cfg, "CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),
		client:       &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// UploadImage sends the file and reports progress as the request body
// drains. On success the secure URL is returned; on any failure the
// caller's buffer is expected to stay untouched.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, filename string, content io.Reader, progress ProgressFunc) (string, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read image content: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", u.baseURL, u.cloudName)
	body := newProgressReader(&form, int64(form.Len()), progress)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = body.total

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach image host: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image host response: %w", err)
	}

	var parsed cloudinaryResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("unexpected image host response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("image host error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("image host error (status %d)", resp.StatusCode)
	}

	if parsed.SecureURL == "" {
		return "", fmt.Errorf("image host response missing secure_url")
	}

	log.Info().Str("filename", filename).Str("url", parsed.SecureURL).Msg("Image uploaded")
	return parsed.SecureURL, nil
}

// progressReader reports the percentage of its payload consumed so far.
type progressReader struct {
	inner    io.Reader
	total    int64
	read     int64
	lastPct  int
	progress ProgressFunc
}

func newProgressReader(inner io.Reader, total int64, progress ProgressFunc) *progressReader {
	return &progressReader{inner: inner, total: total, lastPct: -1, progress: progress}
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	r.read += int64(n)

	if r.progress != nil && r.total > 0 {
		pct := int(r.read * 100 / r.total)
		if pct > 100 {
			pct = 100
		}
		if pct != r.lastPct {
			r.lastPct = pct
			r.progress(pct)
		}
	}

	return n, err
}
