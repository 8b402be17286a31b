package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailService(baseURL string) *MailService {
	return &MailService{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		From:      "Vulpax <noreply@vulpax.example>",
		ContactTo: "hello@vulpax.example",
		Enabled:   true,
		client:    http.DefaultClient,
	}
}

func TestSendContactEmail(t *testing.T) {
	var received sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(sendResponse{ID: "msg_123"})
	}))
	defer server.Close()

	s := newTestMailService(server.URL)

	id, err := s.SendContactEmail("Ada", "ada@example.com", "555-0100", "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)

	// Goes to the fixed contact address, reply-to is the submitter
	assert.Equal(t, []string{"hello@vulpax.example"}, received.To)
	assert.Equal(t, "ada@example.com", received.ReplyTo)
	assert.Contains(t, received.HTML, "Ada")
	assert.Contains(t, received.HTML, "555-0100")
	assert.Contains(t, received.HTML, "Hello there")
}

func TestSendContactEmailProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(sendResponse{Message: "invalid from address"})
	}))
	defer server.Close()

	s := newTestMailService(server.URL)

	_, err := s.SendContactEmail("Ada", "ada@example.com", "555-0100", "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestSendContactEmailDisabled(t *testing.T) {
	s := &MailService{Enabled: false}

	_, err := s.SendContactEmail("Ada", "ada@example.com", "555-0100", "Hello")
	assert.Error(t, err)
}

func TestSendContactEmailStripsMarkup(t *testing.T) {
	var received sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(sendResponse{ID: "msg_1"})
	}))
	defer server.Close()

	s := newTestMailService(server.URL)

	_, err := s.SendContactEmail(
		"Ada <img src=x onerror=alert(1)>",
		"ada@example.com",
		"555-0100",
		"Hello <script>alert(1)</script> there",
	)
	require.NoError(t, err)

	assert.NotContains(t, received.HTML, "<script>")
	assert.NotContains(t, received.HTML, "onerror")
	assert.Contains(t, received.HTML, "Ada")
	assert.Contains(t, received.HTML, "Hello")
	assert.Contains(t, received.HTML, "there")
}
