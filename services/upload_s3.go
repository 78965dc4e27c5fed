package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/adarsh14103/portfolio-backend/config"
)

// s3Client is the subset of the S3 API the uploader needs.
type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader is the self-hosted alternative to Cloudinary: objects land
// in a public bucket and the stored image reference points straight at
// them. Selected with UPLOAD_BACKEND=s3.
type S3Uploader struct {
	client  s3Client
	bucket  string
	baseURL string
}

// NewS3Uploader builds an uploader using the ambient AWS credential
// chain. S3_PUBLIC_BASE_URL overrides the URL prefix written into
// entities (CDN fronting, or a fake during tests).
func NewS3Uploader(ctx context.Context, cfg map[string]string) (*S3Uploader, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}

	region := config.GetString(cfg, "AWS_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	baseURL := config.GetString(cfg, "S3_PUBLIC_BASE_URL", "")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadImage stores the file under a fresh key and returns its public URL.
func (u *S3Uploader) UploadImage(ctx context.Context, filename string, content io.Reader, progress ProgressFunc) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read image content: %w", err)
	}

	key := fmt.Sprintf("images/%s/%s", time.Now().UTC().Format("2006/01"), uuid.NewString()+filepath.Ext(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body := newProgressReader(bytes.NewReader(data), int64(len(data)), progress)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &u.bucket,
		Key:           &key,
		Body:          body,
		ContentType:   &contentType,
		ContentLength: &body.total,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

// NewImageUploader picks the backend named by UPLOAD_BACKEND
// ("cloudinary", the default, or "s3").
func NewImageUploader(ctx context.Context, cfg map[string]string) (ImageUploader, error) {
	switch backend := config.GetString(cfg, "UPLOAD_BACKEND", "cloudinary"); backend {
	case "cloudinary":
		return NewCloudinaryUploader(cfg)
	case "s3":
		return NewS3Uploader(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_BACKEND %q", backend)
	}
}
