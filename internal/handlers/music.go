package handlers

import (
	"net/http"
	"vulpax/internal/db"
	"vulpax/internal/models"

	"github.com/gin-gonic/gin"
)

type MusicHandler struct{}

func NewMusicHandler() *MusicHandler {
	return &MusicHandler{}
}

// List shows the music library player page
func (h *MusicHandler) List(c *gin.Context) {
	var tracks []models.Track
	db.DB.Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&tracks)

	Render(c, http.StatusOK, "music/list.html", gin.H{
		"Title":  "Music",
		"Tracks": tracks,
	})
}
