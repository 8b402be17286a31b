package handlers

import (
	"net/http"
	"vulpax/internal/db"
	"vulpax/internal/models"

	"github.com/gin-gonic/gin"
)

type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

// List shows the active demos
func (h *DemoHandler) List(c *gin.Context) {
	var demos []models.Demo
	db.DB.Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&demos)

	Render(c, http.StatusOK, "demo/list.html", gin.H{
		"Title": "Demos",
		"Demos": demos,
	})
}
