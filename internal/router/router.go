package router

import (
	"vulpax/internal/handlers"
	"vulpax/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	siteHandler := handlers.NewSiteHandler()
	authHandler := handlers.NewAuthHandler()
	contactHandler := handlers.NewContactHandler()
	appHandler := handlers.NewApplicationHandler()
	demoHandler := handlers.NewDemoHandler()
	referenceHandler := handlers.NewReferenceHandler()
	musicHandler := handlers.NewMusicHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public Routes
	r.GET("/", siteHandler.Home)
	r.GET("/about", siteHandler.About)
	r.GET("/pricing", siteHandler.Pricing)
	r.GET("/contact", siteHandler.Contact)
	r.POST("/api/contact", contactHandler.Submit)

	r.GET("/apps", appHandler.List)
	r.GET("/apps/:aid", appHandler.Detail)
	r.GET("/demos", demoHandler.List)
	r.GET("/references", referenceHandler.List)
	r.GET("/music", musicHandler.List)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/activate", authHandler.ShowActivate)
	r.POST("/activate", authHandler.Activate)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/forgot-password", authHandler.ShowForgotPassword)
	r.POST("/forgot-password", authHandler.ForgotPassword)
	r.GET("/reset-password", authHandler.ShowResetPassword)
	r.POST("/reset-password", authHandler.ResetPassword)
	r.GET("/captcha/refresh", authHandler.RefreshCaptcha)

	r.GET("/auth/google", authHandler.GoogleLogin)
	r.GET("/auth/callback", authHandler.GoogleCallback)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/apps/:aid/comments", appHandler.CreateComment)
		authorized.POST("/apps/:aid/download", appHandler.Download)
	}

	// Admin Routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Dashboard)

		admin.GET("/applications", adminHandler.ListApplications)
		admin.POST("/applications", adminHandler.CreateApplication)
		admin.POST("/applications/:aid", adminHandler.UpdateApplication)
		admin.DELETE("/applications/:aid", adminHandler.DeleteApplication)

		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.POST("/categories/:id", adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		admin.GET("/demos", adminHandler.ListDemos)
		admin.POST("/demos", adminHandler.CreateDemo)
		admin.POST("/demos/:id", adminHandler.UpdateDemo)
		admin.DELETE("/demos/:id", adminHandler.DeleteDemo)

		admin.GET("/references", adminHandler.ListReferences)
		admin.POST("/references", adminHandler.CreateReference)
		admin.POST("/references/:id", adminHandler.UpdateReference)
		admin.DELETE("/references/:id", adminHandler.DeleteReference)
		admin.DELETE("/references/images/:id", adminHandler.DeleteReferenceImage)

		admin.GET("/music", adminHandler.ListTracks)
		admin.POST("/music", adminHandler.CreateTrack)
		admin.POST("/music/:id", adminHandler.UpdateTrack)
		admin.DELETE("/music/:id", adminHandler.DeleteTrack)
	}
}
