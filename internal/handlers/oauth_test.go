package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"vulpax/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newCallbackRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/auth/callback", NewAuthHandler().GoogleCallback)
	return r
}

func TestGoogleCallbackWithoutCode(t *testing.T) {
	r := newCallbackRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/callback", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGoogleCallbackExchangeFailure(t *testing.T) {
	// Token endpoint rejects every exchange
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer provider.Close()

	googleOauthConfig = &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.URL + "/auth",
			TokenURL: provider.URL + "/token",
		},
	}

	r := newCallbackRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/callback?code=bad-code", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?error=auth_failed", w.Header().Get("Location"))
}

// newGoogleStub serves both the token exchange and the userinfo lookup.
func newGoogleStub(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"test-token","token_type":"bearer"}`))
		case "/userinfo":
			assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"g-123","email":"ada@example.com","verified_email":true,"given_name":"Ada"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func stubOauthConfig(providerURL string) {
	googleOauthConfig = &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  providerURL + "/auth",
			TokenURL: providerURL + "/token",
		},
	}
}

func TestGoogleCallbackSuccess(t *testing.T) {
	provider := newGoogleStub(t)
	defer provider.Close()

	stubOauthConfig(provider.URL)

	origInfoURL, origProvision := userInfoURL, provisionGoogleUser
	defer func() { userInfoURL, provisionGoogleUser = origInfoURL, origProvision }()

	userInfoURL = provider.URL + "/userinfo"
	var provisioned *GoogleUserInfo
	provisionGoogleUser = func(h *AuthHandler, info *GoogleUserInfo) (*models.User, error) {
		provisioned = info
		return &models.User{ID: 7, Email: info.Email}, nil
	}

	r := newCallbackRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/callback?code=good-code", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?login=success", w.Header().Get("Location"))

	require.NotNil(t, provisioned)
	assert.Equal(t, "g-123", provisioned.ID)
	assert.Equal(t, "ada@example.com", provisioned.Email)

	// Session cookie is set so the next request is authenticated
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestGoogleCallbackUserInfoFailure(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"test-token","token_type":"bearer"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer provider.Close()

	stubOauthConfig(provider.URL)

	origInfoURL := userInfoURL
	defer func() { userInfoURL = origInfoURL }()
	userInfoURL = provider.URL + "/userinfo"

	r := newCallbackRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/callback?code=good-code", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?error=unexpected", w.Header().Get("Location"))
}
