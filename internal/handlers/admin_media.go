package handlers

import (
	"log"
	"net/http"
	"vulpax/internal/db"
	"vulpax/internal/models"
	"vulpax/internal/services"
	"vulpax/internal/utils"

	"github.com/gin-gonic/gin"
)

// Admin CRUD for the media-heavy catalog types: demos, references with their
// banner images, and the music library.

// ---- Demos ----

func (h *AdminHandler) ListDemos(c *gin.Context) {
	var demos []models.Demo
	db.DB.Order("display_order ASC, created_at DESC").Find(&demos)

	Render(c, http.StatusOK, "admin/demos.html", gin.H{
		"Title": "Demos",
		"Demos": demos,
	})
}

func (h *AdminHandler) CreateDemo(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		RenderError(c, http.StatusBadRequest, "Title is required")
		return
	}

	previewPath, err := uploadFormFile(c, "preview", "demos", "previews/", "image/", 10*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Preview upload failed: "+err.Error())
		return
	}

	demo := models.Demo{
		Title:        title,
		Summary:      c.PostForm("summary"),
		PreviewPath:  previewPath,
		DemoURL:      c.PostForm("demo_url"),
		IsActive:     c.PostForm("is_active") == "on",
		DisplayOrder: utils.StringToInt(c.PostForm("display_order")),
	}

	if err := db.DB.Create(&demo).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to create demo")
		return
	}

	utils.GetCache().Delete(homeCacheKey)
	c.Redirect(http.StatusFound, "/admin/demos")
}

func (h *AdminHandler) UpdateDemo(c *gin.Context) {
	var demo models.Demo
	if err := db.DB.First(&demo, c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Demo not found")
		return
	}

	previewPath, err := uploadFormFile(c, "preview", "demos", "previews/", "image/", 10*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Preview upload failed: "+err.Error())
		return
	}
	if previewPath != "" {
		deleteObject("demos", demo.PreviewPath)
		demo.PreviewPath = previewPath
	}

	demo.Title = c.PostForm("title")
	demo.Summary = c.PostForm("summary")
	demo.DemoURL = c.PostForm("demo_url")
	demo.IsActive = c.PostForm("is_active") == "on"
	demo.DisplayOrder = utils.StringToInt(c.PostForm("display_order"))

	if err := db.DB.Save(&demo).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to update demo")
		return
	}

	utils.GetCache().Delete(homeCacheKey)
	c.Redirect(http.StatusFound, "/admin/demos")
}

func (h *AdminHandler) DeleteDemo(c *gin.Context) {
	var demo models.Demo
	if err := db.DB.First(&demo, c.Param("id")).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&demo).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	deleteObject("demos", demo.PreviewPath)
	utils.GetCache().Delete(homeCacheKey)
	c.Status(http.StatusOK)
}

// ---- References ----

const maxReferenceBanners = 5

func (h *AdminHandler) ListReferences(c *gin.Context) {
	var references []models.Reference
	db.DB.Preload("Images").Order("display_order ASC, created_at DESC").Find(&references)

	Render(c, http.StatusOK, "admin/references.html", gin.H{
		"Title":      "References",
		"References": references,
	})
}

// uploadBanners uploads up to five banner images independently. One banner
// failing is skipped, the remaining uploads still go through.
func uploadBanners(c *gin.Context, referenceID uint) {
	form, err := c.MultipartForm()
	if err != nil {
		return
	}

	files := form.File["banners"]
	if len(files) > maxReferenceBanners {
		files = files[:maxReferenceBanners]
	}

	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			log.Printf("Failed to open banner %s: %v", header.Filename, err)
			continue
		}

		path := "banners/" + services.RandomObjectName(header.Filename)
		contentType := header.Header.Get("Content-Type")
		if _, err := services.GetStorage().Upload("references", path, file, contentType); err != nil {
			log.Printf("Failed to upload banner %s: %v", header.Filename, err)
			file.Close()
			continue
		}
		file.Close()

		image := models.ReferenceImage{
			ReferenceID:  referenceID,
			BannerPath:   path,
			DisplayOrder: i,
		}
		if err := db.DB.Create(&image).Error; err != nil {
			log.Printf("Failed to save banner row for %s: %v", header.Filename, err)
		}
	}
}

func (h *AdminHandler) CreateReference(c *gin.Context) {
	company := c.PostForm("company")
	if company == "" {
		RenderError(c, http.StatusBadRequest, "Company is required")
		return
	}

	logoPath, err := uploadFormFile(c, "logo", "references", "logos/", "image/", 5*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Logo upload failed: "+err.Error())
		return
	}

	reference := models.Reference{
		Company:      company,
		Website:      c.PostForm("website"),
		LogoPath:     logoPath,
		Description:  c.PostForm("description"),
		IsActive:     c.PostForm("is_active") == "on",
		DisplayOrder: utils.StringToInt(c.PostForm("display_order")),
	}

	if err := db.DB.Create(&reference).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to create reference")
		return
	}

	uploadBanners(c, reference.ID)

	utils.GetCache().Delete(homeCacheKey)
	c.Redirect(http.StatusFound, "/admin/references")
}

func (h *AdminHandler) UpdateReference(c *gin.Context) {
	var reference models.Reference
	if err := db.DB.First(&reference, c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Reference not found")
		return
	}

	logoPath, err := uploadFormFile(c, "logo", "references", "logos/", "image/", 5*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Logo upload failed: "+err.Error())
		return
	}
	if logoPath != "" {
		deleteObject("references", reference.LogoPath)
		reference.LogoPath = logoPath
	}

	reference.Company = c.PostForm("company")
	reference.Website = c.PostForm("website")
	reference.Description = c.PostForm("description")
	reference.IsActive = c.PostForm("is_active") == "on"
	reference.DisplayOrder = utils.StringToInt(c.PostForm("display_order"))

	if err := db.DB.Save(&reference).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to update reference")
		return
	}

	uploadBanners(c, reference.ID)

	utils.GetCache().Delete(homeCacheKey)
	c.Redirect(http.StatusFound, "/admin/references")
}

func (h *AdminHandler) DeleteReference(c *gin.Context) {
	var reference models.Reference
	if err := db.DB.Preload("Images").First(&reference, c.Param("id")).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Select("Images").Delete(&reference).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	deleteObject("references", reference.LogoPath)
	for _, image := range reference.Images {
		deleteObject("references", image.BannerPath)
	}

	utils.GetCache().Delete(homeCacheKey)
	c.Status(http.StatusOK)
}

func (h *AdminHandler) DeleteReferenceImage(c *gin.Context) {
	var image models.ReferenceImage
	if err := db.DB.First(&image, c.Param("id")).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&image).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	deleteObject("references", image.BannerPath)
	c.Status(http.StatusOK)
}

// ---- Music ----

func (h *AdminHandler) ListTracks(c *gin.Context) {
	var tracks []models.Track
	db.DB.Order("display_order ASC, created_at DESC").Find(&tracks)

	Render(c, http.StatusOK, "admin/tracks.html", gin.H{
		"Title":  "Music",
		"Tracks": tracks,
	})
}

func (h *AdminHandler) CreateTrack(c *gin.Context) {
	title := c.PostForm("title")
	artist := c.PostForm("artist")
	if title == "" || artist == "" {
		RenderError(c, http.StatusBadRequest, "Title and artist are required")
		return
	}

	audioPath, err := uploadFormFile(c, "audio", "music", "music/", "audio/", 50*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Audio upload failed: "+err.Error())
		return
	}
	if audioPath == "" {
		RenderError(c, http.StatusBadRequest, "An audio file is required")
		return
	}

	coverPath, err := uploadFormFile(c, "cover", "music", "covers/", "image/", 5*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Cover upload failed: "+err.Error())
		return
	}

	track := models.Track{
		Title:        title,
		Artist:       artist,
		CoverPath:    coverPath,
		AudioPath:    audioPath,
		Duration:     utils.StringToInt(c.PostForm("duration")),
		IsActive:     c.PostForm("is_active") == "on",
		DisplayOrder: utils.StringToInt(c.PostForm("display_order")),
	}

	if err := db.DB.Create(&track).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to create track")
		return
	}

	c.Redirect(http.StatusFound, "/admin/music")
}

func (h *AdminHandler) UpdateTrack(c *gin.Context) {
	var track models.Track
	if err := db.DB.First(&track, c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Track not found")
		return
	}

	audioPath, err := uploadFormFile(c, "audio", "music", "music/", "audio/", 50*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Audio upload failed: "+err.Error())
		return
	}
	if audioPath != "" {
		deleteObject("music", track.AudioPath)
		track.AudioPath = audioPath
	}

	coverPath, err := uploadFormFile(c, "cover", "music", "covers/", "image/", 5*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Cover upload failed: "+err.Error())
		return
	}
	if coverPath != "" {
		deleteObject("music", track.CoverPath)
		track.CoverPath = coverPath
	}

	track.Title = c.PostForm("title")
	track.Artist = c.PostForm("artist")
	track.Duration = utils.StringToInt(c.PostForm("duration"))
	track.IsActive = c.PostForm("is_active") == "on"
	track.DisplayOrder = utils.StringToInt(c.PostForm("display_order"))

	if err := db.DB.Save(&track).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to update track")
		return
	}

	c.Redirect(http.StatusFound, "/admin/music")
}

func (h *AdminHandler) DeleteTrack(c *gin.Context) {
	var track models.Track
	if err := db.DB.First(&track, c.Param("id")).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&track).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	deleteObject("music", track.AudioPath)
	deleteObject("music", track.CoverPath)
	c.Status(http.StatusOK)
}
