package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"
	"vulpax/internal/db"
	"vulpax/internal/handlers"
	"vulpax/internal/middleware"
	"vulpax/internal/router"
	"vulpax/internal/services"
	"vulpax/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Configure Google OAuth from env
	handlers.InitGoogleOAuth()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("vulpax_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Vulpax server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"gt": func(a, b int) bool {
			return a > b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"markdown": utils.RenderMarkdown,
		"storageURL": func(bucket, path string) string {
			return services.GetStorage().PublicURL(bucket, path)
		},
		"rating": func(avg float64) string {
			return fmt.Sprintf("%.1f", avg)
		},
	}

	// Site
	r.AddFromFilesFuncs("site/home.html", funcMap, assemble(templatesDir+"/views/site/home.html")...)
	r.AddFromFilesFuncs("site/about.html", funcMap, assemble(templatesDir+"/views/site/about.html")...)
	r.AddFromFilesFuncs("site/pricing.html", funcMap, assemble(templatesDir+"/views/site/pricing.html")...)
	r.AddFromFilesFuncs("site/contact.html", funcMap, assemble(templatesDir+"/views/site/contact.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)
	r.AddFromFilesFuncs("auth/activate.html", funcMap, assemble(templatesDir+"/views/auth/activate.html")...)
	r.AddFromFilesFuncs("auth/forgot_password.html", funcMap, assemble(templatesDir+"/views/auth/forgot_password.html")...)
	r.AddFromFilesFuncs("auth/reset_password.html", funcMap, assemble(templatesDir+"/views/auth/reset_password.html")...)

	// Catalog
	r.AddFromFilesFuncs("application/list.html", funcMap, assemble(templatesDir+"/views/application/list.html")...)
	r.AddFromFilesFuncs("application/detail.html", funcMap, assemble(templatesDir+"/views/application/detail.html")...)
	r.AddFromFilesFuncs("demo/list.html", funcMap, assemble(templatesDir+"/views/demo/list.html")...)
	r.AddFromFilesFuncs("reference/list.html", funcMap, assemble(templatesDir+"/views/reference/list.html")...)
	r.AddFromFilesFuncs("music/list.html", funcMap, assemble(templatesDir+"/views/music/list.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/dashboard.html", funcMap, assemble(templatesDir+"/views/admin/dashboard.html")...)
	r.AddFromFilesFuncs("admin/applications.html", funcMap, assemble(templatesDir+"/views/admin/applications.html")...)
	r.AddFromFilesFuncs("admin/categories.html", funcMap, assemble(templatesDir+"/views/admin/categories.html")...)
	r.AddFromFilesFuncs("admin/demos.html", funcMap, assemble(templatesDir+"/views/admin/demos.html")...)
	r.AddFromFilesFuncs("admin/references.html", funcMap, assemble(templatesDir+"/views/admin/references.html")...)
	r.AddFromFilesFuncs("admin/tracks.html", funcMap, assemble(templatesDir+"/views/admin/tracks.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
