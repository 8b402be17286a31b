package handlers

import (
	"net/http"
	"time"
	"vulpax/internal/db"
	"vulpax/internal/models"
	"vulpax/internal/utils"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves the static-ish marketing pages.
type SiteHandler struct{}

func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

const homeCacheKey = "site:home"

func (h *SiteHandler) Home(c *gin.Context) {
	if cachedData := utils.GetCache().Get(homeCacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "site/home.html", hData)
			return
		}
	}

	var apps []models.Application
	db.DB.Preload("Category").
		Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Limit(6).
		Find(&apps)

	var demos []models.Demo
	db.DB.Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Limit(3).
		Find(&demos)

	var references []models.Reference
	db.DB.Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&references)

	renderData := gin.H{
		"Title":      "Vulpax Software",
		"Apps":       apps,
		"Demos":      demos,
		"References": references,
	}

	utils.GetCache().Set(homeCacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "site/home.html", renderData)
}

func (h *SiteHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "site/about.html", gin.H{
		"Title": "About",
	})
}

func (h *SiteHandler) Pricing(c *gin.Context) {
	Render(c, http.StatusOK, "site/pricing.html", gin.H{
		"Title": "Pricing",
	})
}

func (h *SiteHandler) Contact(c *gin.Context) {
	Render(c, http.StatusOK, "site/contact.html", gin.H{
		"Title": "Contact",
	})
}
