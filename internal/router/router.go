package router

import (
	"time"

	"turbo/config"
	"turbo/internal/handler"
	"turbo/internal/middleware"
	"turbo/internal/repository"
	"turbo/internal/service"
	"turbo/internal/settings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	subRepo := repository.NewSubscriberRepository(db)
	newsRepo := repository.NewNewsletterRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// The settings store owns every integration config row.
	store := settings.NewStore(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	emailSvc := service.NewEmailService(store)
	mediaSvc := service.NewMediaService(store)
	paymentSvc := service.NewPaymentService(store)
	newsletterSvc := service.NewNewsletterService(&cfg.Site, subRepo, newsRepo, emailSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, auditRepo)
	meHandler := handler.NewMeHandler(userRepo, mediaSvc)
	blogHandler := handler.NewBlogHandler(postRepo, taxonomyRepo)
	newsletterHandler := handler.NewNewsletterHandler(newsletterSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, userRepo)
	paymentWebhookHandler := handler.NewPaymentWebhookHandler(paymentSvc, auditRepo)
	adminHandler := handler.NewAdminHandler(authSvc, newsletterSvc, userRepo, postRepo, subRepo, newsRepo, auditRepo)
	adminBlogHandler := handler.NewAdminBlogHandler(postRepo, taxonomyRepo, mediaSvc)
	settingsHandler := handler.NewSettingsHandler(store, emailSvc, auditRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.POST("/avatar", meHandler.UploadAvatar)
		}

		blog := api.Group("/blog")
		{
			blog.GET("/posts", blogHandler.ListPosts)
			blog.GET("/posts/:slug", blogHandler.GetPost)
			blog.GET("/categories", blogHandler.ListCategories)
			blog.GET("/tags", blogHandler.ListTags)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", newsletterHandler.Subscribe)
			newsletter.GET("/confirm", newsletterHandler.Confirm)
			newsletter.GET("/unsubscribe", newsletterHandler.Unsubscribe)
		}

		payments := api.Group("/payments")
		{
			payments.GET("/config", paymentHandler.GetConfig)
			payments.POST("/intent", authMw, paymentHandler.CreateIntent)
		}

		api.POST("/webhooks/stripe", paymentWebhookHandler.Handle)

		admin := api.Group("/admin")
		admin.POST("/login", adminHandler.AdminLogin)
		admin.Use(authMw, adminMw)
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)

			admin.GET("/posts", adminBlogHandler.ListPosts)
			admin.POST("/posts", adminBlogHandler.CreatePost)
			admin.GET("/posts/:id", adminBlogHandler.GetPost)
			admin.PATCH("/posts/:id", adminBlogHandler.UpdatePost)
			admin.DELETE("/posts/:id", adminBlogHandler.DeletePost)
			admin.POST("/posts/:id/featured-image", adminBlogHandler.UploadFeaturedImage)

			admin.POST("/categories", adminBlogHandler.CreateCategory)
			admin.PATCH("/categories/:id", adminBlogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminBlogHandler.DeleteCategory)
			admin.POST("/tags", adminBlogHandler.CreateTag)
			admin.DELETE("/tags/:id", adminBlogHandler.DeleteTag)

			admin.GET("/subscribers", adminHandler.ListSubscribers)
			admin.GET("/newsletters", adminHandler.ListNewsletters)
			admin.POST("/newsletters", adminHandler.CreateNewsletter)
			admin.PATCH("/newsletters/:id", adminHandler.UpdateNewsletter)
			admin.DELETE("/newsletters/:id", adminHandler.DeleteNewsletter)
			admin.POST("/newsletters/:id/send", adminHandler.SendNewsletter)

			admin.GET("/settings/stripe", settingsHandler.GetStripe)
			admin.PUT("/settings/stripe", settingsHandler.UpdateStripe)
			admin.GET("/settings/resend", settingsHandler.GetResend)
			admin.PUT("/settings/resend", settingsHandler.UpdateResend)
			admin.POST("/settings/resend/test", settingsHandler.SendTestEmail)
			admin.GET("/settings/editor", settingsHandler.GetEditor)
			admin.PUT("/settings/editor", settingsHandler.UpdateEditor)
			admin.GET("/settings/editor/setup", settingsHandler.GetEditorSetup)
			admin.GET("/settings/cloudinary", settingsHandler.GetCloudinary)
			admin.PUT("/settings/cloudinary", settingsHandler.UpdateCloudinary)

			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
