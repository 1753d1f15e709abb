package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"portfolio_backend/internal/config"
)

var ErrInvalidKey = errors.New("storage: cannot derive object key")

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file under the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns a durable public URL for the file
	GetURL(ctx context.Context, key string) (string, error)

	// KeyFromURL derives the object key from a URL returned by GetURL
	KeyFromURL(rawURL string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// ConfigFrom переносит настройки хранилища из конфигурации приложения
func ConfigFrom(cfg config.Storage) Config {
	return Config{
		Type:      cfg.Type,
		BasePath:  cfg.BasePath,
		BaseURL:   cfg.BaseURL,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
	}
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// keyFromURL срезает baseURL, а если URL к нему не относится -
// берет путь URL (и убирает bucket для path-style адресов).
func keyFromURL(rawURL, baseURL, bucket string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrInvalidKey
	}

	base := strings.TrimRight(baseURL, "/")
	if base != "" && strings.HasPrefix(rawURL, base+"/") {
		return cleanKey(strings.TrimPrefix(rawURL, base+"/"))
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if bucket != "" {
		key = strings.TrimPrefix(key, bucket+"/")
	}
	return cleanKey(key)
}

func cleanKey(key string) (string, error) {
	key = strings.Trim(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
