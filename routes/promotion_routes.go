package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/controllers"
	"github.com/mercato-dev/mercato/middleware"
)

// initPromotionRoutes wires the promotion API. Reading promotions is public;
// creating and deleting them requires an authenticated admin user.
func initPromotionRoutes(router *gin.Engine) {
	promotions := router.Group("/api/promotions")
	{
		promotions.GET("/product/:id", controllers.GetProductPromotions)
		promotions.GET("/product/:id/active", controllers.GetActivePromotion)

		protected := promotions.Group("")
		protected.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			protected.POST("/", controllers.CreatePromotion)
			protected.DELETE("/:id", controllers.DeletePromotion)
		}
	}
}
