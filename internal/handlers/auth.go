package handlers

import (
	"net/http"
	"strings"
	"vulpax/internal/db"
	"vulpax/internal/models"
	"vulpax/internal/services"
	"vulpax/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	mailService    *services.MailService
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		mailService:    services.NewMailService(),
		captchaService: services.NewCaptchaService(),
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Captcha": question})
}

// createUser provisions a user row, shared by signup and the OAuth callback
func (h *AuthHandler) createUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Avatar:   utils.GetRandomEmoji(),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	captchaInput := c.PostForm("captcha")

	// Validate Captcha
	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expectedAnswer {
		question, answer := h.captchaService.GenerateMathProblem()
		session.Set("captcha_answer", answer)
		session.Save()
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Captcha answer is wrong", "Captcha": question})
		return
	}
	// Clear captcha after use
	session.Delete("captcha_answer")
	session.Save()

	// Extract username from email
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		question, answer := h.captchaService.GenerateMathProblem()
		session.Set("captcha_answer", answer)
		session.Save()
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Email address is not valid", "Captcha": question})
		return
	}
	username := parts[0]

	if len(password) < 6 {
		question, answer := h.captchaService.GenerateMathProblem()
		session.Set("captcha_answer", answer)
		session.Save()
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Password must be at least 6 characters", "Captcha": question})
		return
	}

	user, err := h.createUser(username, email, password)
	if err != nil {
		question, answer := h.captchaService.GenerateMathProblem()
		session.Set("captcha_answer", answer)
		session.Save()
		Render(c, http.StatusConflict, "auth/register.html", gin.H{"Error": "Email is already registered", "Captcha": question})
		return
	}

	// Send Activation Email
	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(user)
	h.mailService.SendWelcomeEmail(email, code)

	Render(c, http.StatusOK, "auth/login.html", gin.H{"Success": "Account created. An activation code was sent to your email."})
}

func (h *AuthHandler) ShowActivate(c *gin.Context) {
	Render(c, http.StatusOK, "auth/activate.html", nil)
}

func (h *AuthHandler) Activate(c *gin.Context) {
	email := c.PostForm("email")
	code := c.PostForm("code")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Render(c, http.StatusBadRequest, "auth/activate.html", gin.H{"Error": "Account not found"})
		return
	}

	if user.IsActivated {
		Render(c, http.StatusOK, "auth/login.html", gin.H{"Success": "Account already activated, please log in"})
		return
	}

	if user.VerifyCode != code {
		Render(c, http.StatusBadRequest, "auth/activate.html", gin.H{"Error": "Activation code is wrong"})
		return
	}

	user.IsActivated = true
	user.VerifyCode = ""
	db.DB.Save(&user)

	// Log in right after activation
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	if !user.IsActivated {
		Render(c, http.StatusUnauthorized, "auth/activate.html", gin.H{"Error": "Account is not activated yet, enter your code", "Email": email})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session immediately; the UI reflects the logout without
// waiting for anything else.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("reset_captcha_answer", answer)
	session.Save()
	Render(c, http.StatusOK, "auth/forgot_password.html", gin.H{"Captcha": question})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email := c.PostForm("email")
	captchaInput := c.PostForm("captcha")

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("reset_captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expectedAnswer {
		question, answer := h.captchaService.GenerateMathProblem()
		session.Set("reset_captcha_answer", answer)
		session.Save()
		Render(c, http.StatusBadRequest, "auth/forgot_password.html", gin.H{"Error": "Captcha answer is wrong", "Captcha": question})
		return
	}
	session.Delete("reset_captcha_answer")
	session.Save()

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		// Don't reveal whether the account exists
		Render(c, http.StatusOK, "auth/reset_password.html", gin.H{"Success": "If the address exists, a reset code was sent.", "Email": email})
		return
	}

	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(&user)
	h.mailService.SendPasswordResetEmail(email, code)

	Render(c, http.StatusOK, "auth/reset_password.html", gin.H{"Email": email})
}

func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	email := c.Query("email")
	Render(c, http.StatusOK, "auth/reset_password.html", gin.H{"Email": email})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	email := c.PostForm("email")
	code := c.PostForm("code")
	newPassword := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Render(c, http.StatusBadRequest, "auth/reset_password.html", gin.H{"Error": "Account not found", "Email": email})
		return
	}

	if user.VerifyCode == "" || user.VerifyCode != code {
		Render(c, http.StatusBadRequest, "auth/reset_password.html", gin.H{"Error": "Reset code is wrong or expired", "Email": email})
		return
	}

	hash, _ := utils.HashPassword(newPassword)
	user.Password = hash
	user.VerifyCode = ""
	db.DB.Save(&user)

	Render(c, http.StatusOK, "auth/login.html", gin.H{"Success": "Password reset, please log in"})
}

// RefreshCaptcha refreshes the captcha (AJAX)
func (h *AuthHandler) RefreshCaptcha(c *gin.Context) {
	captchaType := c.Query("type") // "register" or "reset"
	question, answer := h.captchaService.GenerateMathProblem()

	session := sessions.Default(c)
	if captchaType == "reset" {
		session.Set("reset_captcha_answer", answer)
	} else {
		session.Set("captcha_answer", answer)
	}
	session.Save()

	c.JSON(http.StatusOK, gin.H{"captcha": question})
}
