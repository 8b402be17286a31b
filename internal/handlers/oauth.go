package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"vulpax/internal/db"
	"vulpax/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	googleOauthConfig *oauth2.Config
	// userInfoURL is a var so tests can point it at a stub server
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	// provisionGoogleUser maps a verified Google identity onto a local
	// account; a var for the same reason
	provisionGoogleUser = (*AuthHandler).upsertGoogleUser
)

// InitGoogleOAuth configures the Google OAuth client from the environment.
func InitGoogleOAuth() {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	googleOauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  siteURL + "/auth/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleUserInfo is the provider's userinfo payload
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GoogleLogin starts the OAuth flow
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate state token")
		return
	}

	// Keep the state in the session to verify the callback
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	url := googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the OAuth flow. Without a code it just goes home;
// an exchange failure reports auth_failed, anything after that unexpected.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	session := sessions.Default(c)
	if savedState := session.Get("oauth_state"); savedState != nil {
		defer func() {
			session.Delete("oauth_state")
			session.Save()
		}()
		if c.Query("state") != savedState.(string) {
			c.Redirect(http.StatusFound, "/?error=unexpected")
			return
		}
	}

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=auth_failed")
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=unexpected")
		return
	}

	if !userInfo.VerifiedEmail {
		c.Redirect(http.StatusFound, "/?error=unexpected")
		return
	}

	user, err := provisionGoogleUser(h, userInfo)
	if err != nil {
		c.Redirect(http.StatusFound, "/?error=unexpected")
		return
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/?login=success")
}

// upsertGoogleUser looks the identity up by GoogleID or email and provisions
// an account on first visit.
func (h *AuthHandler) upsertGoogleUser(userInfo *GoogleUserInfo) (*models.User, error) {
	var user models.User
	err := db.DB.Where("google_id = ?", userInfo.ID).Or("email = ?", userInfo.Email).First(&user).Error

	if err != nil {
		username := userInfo.GivenName
		if username == "" {
			username = strings.Split(userInfo.Email, "@")[0]
		}

		// The GoogleID doubles as the initial password; users can change it
		// later in settings
		newUser, err := h.createUser(username, userInfo.Email, userInfo.ID)
		if err != nil {
			return nil, err
		}

		newUser.GoogleID = userInfo.ID
		newUser.GoogleEmail = userInfo.Email
		newUser.IsActivated = true // provider already verified the address
		db.DB.Save(newUser)

		return newUser, nil
	}

	if user.GoogleID == "" {
		user.GoogleID = userInfo.ID
		user.GoogleEmail = userInfo.Email
		db.DB.Save(&user)
	}
	return &user, nil
}

func (h *AuthHandler) getGoogleUserInfo(accessToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get(userInfoURL + "?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}
