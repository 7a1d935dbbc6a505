package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/controllers"
	"github.com/mercato-dev/mercato/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			// User management
			admin.GET("/users", controllers.GetUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.GET("/categories", controllers.GetCategories)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)
			admin.PATCH("/categories/:id/block", controllers.ToggleCategoryBlock)

			// Product management
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)

			// Product images
			admin.POST("/products/:id/images", controllers.UploadProductImages)
			admin.DELETE("/products/:id/images/:imageId", controllers.DeleteProductImage)

			// Promotion reports
			admin.GET("/promotions/report/excel", controllers.DownloadPromotionReportExcel)
			admin.GET("/promotions/report/pdf", controllers.DownloadPromotionReportPDF)
		}
	}
}
