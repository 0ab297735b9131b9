package route

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mengblog/controller"
)

// Register wires the full API surface under /api.
func Register(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/health", controller.Health)

	api.GET("/blogs", controller.GetAllBlogs)
	api.GET("/blogs/search", controller.SearchBlogs)
	api.GET("/blogs/slug/:slug", controller.GetBlogBySlug)
	api.GET("/blogs/:id", controller.GetBlogByID)
	api.POST("/blogs", controller.CreateBlog)
	api.PUT("/blogs/:id", controller.UpdateBlog)
	api.DELETE("/blogs/:id", controller.DeleteBlog)

	api.GET("/categories", controller.GetAllCategories)
	api.GET("/categories/slug/:slug", controller.GetCategoryBySlug)
	api.GET("/categories/:id", controller.GetCategoryByID)
	api.POST("/categories", controller.CreateCategory)
	api.PUT("/categories/:id", controller.UpdateCategory)
	api.DELETE("/categories/:id", controller.DeleteCategory)

	api.GET("/tags", controller.GetAllTags)

	api.GET("/photos", controller.GetAllPhotos)
	api.GET("/photos/retouched", controller.GetRetouchedPhotos)
	api.GET("/photos/:id", controller.GetPhotoByID)
	api.PUT("/photos/:id", controller.UpdatePhoto)
	api.PUT("/photos/:id/retouch", controller.MarkPhotoRetouched)
	api.DELETE("/photos/:id", controller.DeletePhoto)
	api.DELETE("/photos", controller.DeletePhotos)
	api.POST("/photos/upload", controller.UploadPhotos)

	api.GET("/shoot-sessions/overview", controller.GetShootSessionsOverview)
	api.GET("/shoot-sessions", controller.GetAllShootSessions)
	api.GET("/shoot-sessions/:id", controller.GetShootSessionByID)
	api.POST("/shoot-sessions", controller.CreateShootSession)
	api.PUT("/shoot-sessions/:id", controller.UpdateShootSession)
	api.DELETE("/shoot-sessions/:id", controller.DeleteShootSession)
	api.GET("/shoot-sessions/:id/photos", controller.GetSessionPhotos)
	api.POST("/shoot-sessions/:id/photos", controller.GetSessionPhotos)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API端点不存在",
		})
	})
}
