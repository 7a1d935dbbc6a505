package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/controllers"
	"github.com/mercato-dev/mercato/middleware"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public auth routes
	router.POST("/register", controllers.RegisterUser)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/login", controllers.LoginUser)
	router.POST("/logout", controllers.LogoutUser)

	// Public catalog routes
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/top-rated", controllers.GetProductsByRating)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/products/:id/reviews", controllers.GetProductReviews)
	router.GET("/products/:id/reviews/:reviewId", controllers.GetReview)
	router.GET("/products/:id/images", controllers.GetProductImages)
	router.GET("/products/:id/images/:sequence", controllers.GetProductImage)
	router.GET("/categories", controllers.GetCategories)
	router.GET("/categories/:id/products", controllers.GetProductsByCategory)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Profile
		protected.GET("/profile", controllers.GetUserProfile)
		protected.PUT("/profile", controllers.UpdateUserProfile)
		protected.PUT("/profile/password", controllers.ChangePassword)
		protected.POST("/profile/image", controllers.UploadProfileImage)

		// Reviews
		protected.POST("/products/:id/review", controllers.AddReview)

		// Interests
		protected.PUT("/interests", controllers.SetInterests)
		protected.GET("/interests", controllers.GetInterests)
	}
}
