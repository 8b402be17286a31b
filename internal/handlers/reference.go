package handlers

import (
	"net/http"
	"vulpax/internal/db"
	"vulpax/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// List shows the active client references with their banner images
func (h *ReferenceHandler) List(c *gin.Context) {
	var references []models.Reference
	db.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).
		Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&references)

	Render(c, http.StatusOK, "reference/list.html", gin.H{
		"Title":      "References",
		"References": references,
	})
}
