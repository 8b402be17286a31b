package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"
	"vulpax/internal/db"
	"vulpax/internal/middleware"
	"vulpax/internal/models"
	"vulpax/internal/services"
	"vulpax/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationHandler struct {
	mailService *services.MailService
}

func NewApplicationHandler() *ApplicationHandler {
	return &ApplicationHandler{
		mailService: services.NewMailService(),
	}
}

// fillCommentCounts batch-fills the comment totals of a list of applications
func fillCommentCounts(apps []models.Application) {
	if len(apps) == 0 {
		return
	}

	appIDs := make([]uint, len(apps))
	for i, a := range apps {
		appIDs[i] = a.ID
	}

	type CountResult struct {
		ApplicationID uint
		Count         int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("application_id, COUNT(*) as count").
		Where("application_id IN ?", appIDs).
		Group("application_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ApplicationID] = r.Count
	}

	for i := range apps {
		apps[i].CommentCount = countMap[apps[i].ID]
	}
}

// List shows the free applications catalog, optionally narrowed to one
// category via ?category=slug.
func (h *ApplicationHandler) List(c *gin.Context) {
	categorySlug := c.Query("category")

	query := db.DB.Preload("Category").
		Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC")

	var activeCategory models.Category
	if categorySlug != "" {
		if err := db.DB.Where("slug = ?", categorySlug).First(&activeCategory).Error; err != nil {
			RenderError(c, http.StatusNotFound, "Category not found")
			return
		}
		query = query.Where("category_id = ?", activeCategory.ID)
	}

	var apps []models.Application
	query.Find(&apps)

	fillCommentCounts(apps)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	Render(c, http.StatusOK, "application/list.html", gin.H{
		"Title":          "Free Applications",
		"Apps":           apps,
		"Categories":     categories,
		"ActiveCategory": activeCategory,
	})
}

func detailCacheKey(aid string) string {
	return fmt.Sprintf("application:detail:shared:%s", aid)
}

// perRequestData copies the shared cached page data so per-user keys never
// land on the map concurrent requests read.
func perRequestData(shared gin.H) gin.H {
	out := make(gin.H, len(shared)+1)
	for k, v := range shared {
		out[k] = v
	}
	return out
}

// Detail shows one application with its comment tree, total comment count and
// average rating. The shared part of the page is cached; the per-user
// download state is queried live on every request.
func (h *ApplicationHandler) Detail(c *gin.Context) {
	aid := c.Param("aid")

	userID := uint(0)
	if user, exists := c.Get(middleware.CheckUserKey); exists && user != nil {
		userID = user.(*models.User).ID
	}

	if cachedData := utils.GetCache().Get(detailCacheKey(aid)); cachedData != nil {
		if shared, ok := cachedData.(gin.H); ok {
			hData := perRequestData(shared)
			hData["HasDownloaded"] = h.hasDownloaded(userID, hData)
			Render(c, http.StatusOK, "application/detail.html", hData)
			return
		}
	}

	var app models.Application
	if err := db.DB.Preload("Category").Where("aid = ? AND is_active = ?", aid, true).First(&app).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Application not found")
		return
	}

	// Load the flat comment rows oldest-first; the tree builder relies on
	// this order for sibling ordering
	var comments []models.Comment
	db.DB.Where("application_id = ?", app.ID).Order("created_at ASC").Find(&comments)

	tree := services.BuildCommentTree(comments)
	totalComments := services.CountComments(tree)
	averageRating := services.AverageRating(tree)

	descriptionHTML := utils.RenderMarkdown(app.Description)

	renderData := gin.H{
		"Title":          app.Title,
		"App":            app,
		"Description":    descriptionHTML,
		"Comments":       tree,
		"TotalComments":  totalComments,
		"AverageRating":  averageRating,
		"HasRating":      averageRating > 0,
		"MaxReplyDepth":  services.MaxReplyDepth,
		"ImageURL":       services.GetStorage().PublicURL("applications", app.ImagePath),
	}

	utils.GetCache().Set(detailCacheKey(aid), renderData, 5*time.Minute)

	hData := perRequestData(renderData)
	hData["HasDownloaded"] = h.hasDownloaded(userID, hData)

	Render(c, http.StatusOK, "application/detail.html", hData)
}

// hasDownloaded reports whether the visitor already fetched this application,
// which only flips the button wording to "re-download".
func (h *ApplicationHandler) hasDownloaded(userID uint, hData gin.H) bool {
	if userID == 0 {
		return false
	}
	app, ok := hData["App"].(models.Application)
	if !ok {
		return false
	}
	var download models.Download
	return db.DB.Where("user_id = ? AND application_id = ?", userID, app.ID).First(&download).Error == nil
}

// CreateComment posts a comment or reply. The author's name, email and
// avatar are copied onto the row so the comment keeps showing who posted it
// even if the profile changes later.
func (h *ApplicationHandler) CreateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var app models.Application
	if err := db.DB.Where("aid = ?", aid).First(&app).Error; err != nil {
		c.Redirect(http.StatusFound, "/apps")
		return
	}

	content := c.PostForm("content")
	parentIDStr := c.PostForm("parent_id")
	ratingStr := c.PostForm("rating")

	if content == "" {
		c.Redirect(http.StatusFound, "/apps/"+aid)
		return
	}

	var parentID *uint
	if parentIDStr != "" {
		pID := utils.StringToInt(parentIDStr)
		if pID > 0 {
			uPID := uint(pID)
			parentID = &uPID
		}
	}

	// Only root comments carry a rating; replies never do
	var rating *int
	if parentID == nil && ratingStr != "" {
		if r := utils.StringToInt(ratingStr); r >= 1 && r <= 5 {
			rating = &r
		}
	}

	comment := models.Comment{
		ApplicationID: app.ID,
		UserID:        user.ID,
		UserName:      user.Username,
		UserEmail:     user.Email,
		UserAvatar:    user.Avatar,
		Content:       content,
		Rating:        rating,
		ParentID:      parentID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	// Invalidate the shared detail cache
	utils.GetCache().Delete(detailCacheKey(app.Aid))

	// Notify the parent comment's author, unless replying to yourself
	if comment.ParentID != nil {
		go func() {
			var parentComment models.Comment
			if err := db.DB.First(&parentComment, *comment.ParentID).Error; err != nil {
				return
			}
			if parentComment.UserID == user.ID {
				return
			}
			appLink := fmt.Sprintf("%s/apps/%s#comment-%d", os.Getenv("SITE_URL"), app.Aid, comment.ID)
			h.mailService.SendCommentReplyNotification(
				parentComment.UserEmail,
				user.Username,
				app.Title,
				content,
				parentComment.Content,
				appLink,
			)
		}()
	}

	c.Redirect(http.StatusFound, "/apps/"+aid)
}

// Download bumps the server-side counter, records that this user fetched the
// application and hands back the download URL.
func (h *ApplicationHandler) Download(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var app models.Application
	if err := db.DB.Where("aid = ? AND is_active = ?", aid, true).First(&app).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	redownload := false
	var existing models.Download
	if err := db.DB.Where("user_id = ? AND application_id = ?", user.ID, app.ID).First(&existing).Error; err == nil {
		redownload = true
	} else {
		download := models.Download{UserID: user.ID, ApplicationID: app.ID}
		db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&download)
	}

	// Counter increment happens in the database, not read-modify-write
	db.DB.Model(&models.Application{}).Where("id = ?", app.ID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))

	utils.GetCache().Delete(detailCacheKey(app.Aid))

	c.JSON(http.StatusOK, gin.H{
		"url":        app.DownloadURL,
		"redownload": redownload,
	})
}
