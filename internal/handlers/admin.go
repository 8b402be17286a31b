package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"vulpax/internal/db"
	"vulpax/internal/models"
	"vulpax/internal/services"
	"vulpax/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler owns the content management pages. Access control happens in
// middleware.AdminRequired; the handlers only do the CRUD work.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// uploadFormFile validates and uploads one multipart file, returning the
// resulting object path. An absent file is not an error: the empty path tells
// callers to keep the existing value.
func uploadFormFile(c *gin.Context, field, bucket, prefix, typePrefix string, maxSize int64) (string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", nil // no file submitted
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if typePrefix != "" && !strings.HasPrefix(contentType, typePrefix) {
		return "", fmt.Errorf("only %s* files are allowed", typePrefix)
	}
	if header.Size > maxSize {
		return "", fmt.Errorf("file exceeds the %dMB limit", maxSize/(1024*1024))
	}

	path := prefix + services.RandomObjectName(header.Filename)
	return services.GetStorage().Upload(bucket, path, file, contentType)
}

// deleteObject is the best-effort storage cleanup used by row deletes. A
// failure is logged and otherwise ignored, the row goes away regardless.
func deleteObject(bucket, path string) {
	if path == "" {
		return
	}
	if err := services.GetStorage().Delete(bucket, path); err != nil {
		log.Printf("Failed to delete storage object %s/%s: %v", bucket, path, err)
	}
}

func invalidateAppCaches(aid string) {
	utils.GetCache().Delete(homeCacheKey)
	if aid != "" {
		utils.GetCache().Delete(detailCacheKey(aid))
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	var appCount, demoCount, referenceCount, trackCount, commentCount int64
	db.DB.Model(&models.Application{}).Count(&appCount)
	db.DB.Model(&models.Demo{}).Count(&demoCount)
	db.DB.Model(&models.Reference{}).Count(&referenceCount)
	db.DB.Model(&models.Track{}).Count(&trackCount)
	db.DB.Model(&models.Comment{}).Count(&commentCount)

	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":          "Admin",
		"AppCount":       appCount,
		"DemoCount":      demoCount,
		"ReferenceCount": referenceCount,
		"TrackCount":     trackCount,
		"CommentCount":   commentCount,
	})
}

// ---- Applications ----

// ListApplications shows every application row, inactive ones included; the
// list is re-queried after each mutation rather than patched in place.
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var apps []models.Application
	db.DB.Preload("Category").Order("display_order ASC, created_at DESC").Find(&apps)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	Render(c, http.StatusOK, "admin/applications.html", gin.H{
		"Title":      "Applications",
		"Apps":       apps,
		"Categories": categories,
	})
}

func (h *AdminHandler) CreateApplication(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		RenderError(c, http.StatusBadRequest, "Title is required")
		return
	}

	// Application images live at the bucket root with randomized names
	imagePath, err := uploadFormFile(c, "image", "applications", "", "image/", 10*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Image upload failed: "+err.Error())
		return
	}

	categoryID := uint(utils.StringToInt(c.PostForm("category_id")))
	if categoryID == 0 {
		categoryID = 1
	}

	app := models.Application{
		Aid:          utils.RandStringBytesMaskImpr(8),
		CategoryID:   categoryID,
		Title:        title,
		Summary:      c.PostForm("summary"),
		Description:  c.PostForm("description"),
		ImagePath:    imagePath,
		DownloadURL:  c.PostForm("download_url"),
		Version:      c.PostForm("version"),
		IsActive:     c.PostForm("is_active") == "on",
		DisplayOrder: utils.StringToInt(c.PostForm("display_order")),
	}

	if err := db.DB.Create(&app).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to create application")
		return
	}

	invalidateAppCaches(app.Aid)
	c.Redirect(http.StatusFound, "/admin/applications")
}

func (h *AdminHandler) UpdateApplication(c *gin.Context) {
	var app models.Application
	if err := db.DB.Where("aid = ?", c.Param("aid")).First(&app).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Application not found")
		return
	}

	imagePath, err := uploadFormFile(c, "image", "applications", "", "image/", 10*1024*1024)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Image upload failed: "+err.Error())
		return
	}
	if imagePath != "" {
		deleteObject("applications", app.ImagePath)
		app.ImagePath = imagePath
	}

	if categoryID := uint(utils.StringToInt(c.PostForm("category_id"))); categoryID > 0 {
		app.CategoryID = categoryID
	}
	app.Title = c.PostForm("title")
	app.Summary = c.PostForm("summary")
	app.Description = c.PostForm("description")
	app.DownloadURL = c.PostForm("download_url")
	app.Version = c.PostForm("version")
	app.IsActive = c.PostForm("is_active") == "on"
	app.DisplayOrder = utils.StringToInt(c.PostForm("display_order"))

	if err := db.DB.Save(&app).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to update application")
		return
	}

	invalidateAppCaches(app.Aid)
	c.Redirect(http.StatusFound, "/admin/applications")
}

func (h *AdminHandler) DeleteApplication(c *gin.Context) {
	var app models.Application
	if err := db.DB.Where("aid = ?", c.Param("aid")).First(&app).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&app).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	// Storage cleanup never blocks the row delete
	deleteObject("applications", app.ImagePath)

	invalidateAppCaches(app.Aid)
	c.Status(http.StatusOK)
}

// ---- Categories ----

func (h *AdminHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	Render(c, http.StatusOK, "admin/categories.html", gin.H{
		"Title":      "Categories",
		"Categories": categories,
	})
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	slug := c.PostForm("slug")
	if name == "" || slug == "" {
		RenderError(c, http.StatusBadRequest, "Name and slug are required")
		return
	}

	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: c.PostForm("description"),
	}
	if err := db.DB.Create(&category).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := db.DB.First(&category, c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Category not found")
		return
	}

	category.Name = c.PostForm("name")
	category.Slug = c.PostForm("slug")
	category.Description = c.PostForm("description")

	if err := db.DB.Save(&category).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	// Applications reference categories with RESTRICT, the database refuses
	// to orphan them
	if err := db.DB.Delete(&models.Category{}, c.Param("id")).Error; err != nil {
		c.Status(http.StatusConflict)
		return
	}
	c.Status(http.StatusOK)
}
