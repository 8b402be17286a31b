package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(baseURL string) *Storage {
	return &Storage{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Enabled: true,
		client:  http.DefaultClient,
	}
}

func TestStorageUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/storage/v1/object/applications/abc.png", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "fake image bytes", string(body))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := newTestStorage(server.URL)

	path, err := s.Upload("applications", "abc.png", strings.NewReader("fake image bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "abc.png", path)
}

func TestStorageUploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("bucket not found"))
	}))
	defer server.Close()

	s := newTestStorage(server.URL)

	_, err := s.Upload("applications", "abc.png", strings.NewReader("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestStorageDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/storage/v1/object/music/music/track.mp3", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := newTestStorage(server.URL)

	assert.NoError(t, s.Delete("music", "music/track.mp3"))
}

func TestStoragePublicURL(t *testing.T) {
	s := newTestStorage("https://storage.vulpax.example")

	assert.Equal(t,
		"https://storage.vulpax.example/storage/v1/object/public/references/logos/x.png",
		s.PublicURL("references", "logos/x.png"))
	assert.Equal(t, "", s.PublicURL("references", ""))
}

func TestStorageDisabled(t *testing.T) {
	s := &Storage{Enabled: false}

	_, err := s.Upload("applications", "a.png", strings.NewReader("x"), "image/png")
	assert.Error(t, err)
	assert.Error(t, s.Delete("applications", "a.png"))
}

func TestRandomObjectNameKeepsExtension(t *testing.T) {
	name := RandomObjectName("Screen Shot 2025.PNG")

	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, RandomObjectName("a.png"), RandomObjectName("a.png"))
}
