package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage is a client for the hosted object storage REST API. Buckets are
// laid out by convention: application images at the bucket root, demo
// previews under previews/, reference logos under logos/, banners under
// banners/, music files under music/ and covers under covers/.
type Storage struct {
	BaseURL string
	APIKey  string
	Enabled bool

	client *http.Client
}

var storageInstance *Storage

// GetStorage returns the singleton storage client.
func GetStorage() *Storage {
	if storageInstance == nil {
		baseURL := strings.TrimSuffix(os.Getenv("STORAGE_URL"), "/")
		apiKey := os.Getenv("STORAGE_KEY")

		enabled := baseURL != "" && apiKey != ""
		if !enabled {
			log.Println("⚠️ Storage disabled: Missing STORAGE_URL / STORAGE_KEY environment variables.")
		}

		storageInstance = &Storage{
			BaseURL: baseURL,
			APIKey:  apiKey,
			Enabled: enabled,
			client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return storageInstance
}

// RandomObjectName builds a randomized object name keeping the original
// file extension.
func RandomObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

// Upload streams an object into a bucket and returns its path within the
// bucket. The path, not the full URL, is what catalog rows store.
func (s *Storage) Upload(bucket, path string, body io.Reader, contentType string) (string, error) {
	if !s.Enabled {
		return "", fmt.Errorf("object storage is not configured")
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, bucket, path)
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return path, nil
}

// Delete removes an object. Callers treat failures as best-effort: a failed
// object delete never blocks the owning row's deletion.
func (s *Storage) Delete(bucket, path string) error {
	if !s.Enabled {
		return fmt.Errorf("object storage is not configured")
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, bucket, path)
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storage delete failed: status %d", resp.StatusCode)
	}
	return nil
}

// PublicURL returns the public address of an object, for templates and rows
// that embed full URLs.
func (s *Storage) PublicURL(bucket, path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.BaseURL, bucket, path)
}
