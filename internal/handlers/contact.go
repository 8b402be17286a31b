package handlers

import (
	"net/http"
	"strings"
	"vulpax/internal/services"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves the JSON contact endpoint.
type ContactHandler struct {
	mailService *services.MailService
}

func NewContactHandler() *ContactHandler {
	return &ContactHandler{
		mailService: services.NewMailService(),
	}
}

type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact. All four fields are required; on success
// the provider message id is returned to the caller.
func (h *ContactHandler) Submit(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Message = strings.TrimSpace(form.Message)

	if form.Name == "" || form.Email == "" || form.Phone == "" || form.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	messageID, err := h.mailService.SendContactEmail(form.Name, form.Email, form.Phone, form.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
	})
}
