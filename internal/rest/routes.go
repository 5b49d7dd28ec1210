package rest

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router exposes.
type Handlers struct {
	Submission *SubmissionHandler
	Image      *ImageHandler
	Like       *LikeHandler
	OTP        *OTPHandler
	Admin      *AdminHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the public API, the admin API behind adminAuth, and /health.
func RegisterRoutes(r gin.IRouter, h Handlers, adminAuth gin.HandlerFunc) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.POST("/upload", h.Submission.Upload)

	api.GET("/images", h.Image.Fetch)
	api.GET("/images/:id", h.Image.GetByID)

	api.POST("/likes", h.Like.Like)
	api.DELETE("/likes", h.Like.Unlike)

	api.POST("/otp/send-otp", h.OTP.Send)
	api.POST("/otp/verify-otp", h.OTP.Verify)

	admin := api.Group("/admin")
	admin.POST("/register", h.Admin.Register)
	admin.POST("/login", h.Admin.Login)
	admin.POST("/logout", h.Admin.Logout)

	authorized := admin.Group("/uploads")
	authorized.Use(adminAuth)
	{
		authorized.GET("", h.Admin.ListUploads)
		authorized.PATCH("/:id/approve", h.Admin.Approve)
		authorized.DELETE("/:id", h.Admin.Delete)
	}
}
