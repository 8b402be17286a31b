package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactRouter(t *testing.T, providerURL string) *gin.Engine {
	t.Setenv("RESEND_BASE_URL", providerURL)
	t.Setenv("RESEND_API_KEY", "test-key")
	t.Setenv("RESEND_FROM", "Vulpax <noreply@vulpax.example>")
	t.Setenv("CONTACT_EMAIL", "hello@vulpax.example")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/contact", NewContactHandler().Submit)
	return r
}

func postContact(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestContactSubmitSuccess(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "msg_42"})
	}))
	defer provider.Close()

	r := newContactRouter(t, provider.URL)

	w := postContact(r, `{"name":"A","email":"a@b.com","phone":"1","message":"hi"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "msg_42", resp["messageId"])
}

func TestContactSubmitMissingFields(t *testing.T) {
	r := newContactRouter(t, "http://127.0.0.1:0")

	cases := []string{
		`{"email":"a@b.com","phone":"1","message":"hi"}`,
		`{"name":"A","phone":"1","message":"hi"}`,
		`{"name":"A","email":"a@b.com","message":"hi"}`,
		`{"name":"A","email":"a@b.com","phone":"1"}`,
		`{"name":"  ","email":"a@b.com","phone":"1","message":"hi"}`,
	}

	for _, body := range cases {
		w := postContact(r, body)

		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	}
}

func TestContactSubmitProviderError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "provider down"})
	}))
	defer provider.Close()

	r := newContactRouter(t, provider.URL)

	w := postContact(r, `{"name":"A","email":"a@b.com","phone":"1","message":"hi"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
	assert.Contains(t, resp["details"], "provider down")
}
