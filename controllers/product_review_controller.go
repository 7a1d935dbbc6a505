package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// AddReviewRequest represents the review creation body
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func formatReview(review *models.Review) gin.H {
	return gin.H{
		"id":         review.ID,
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"username":   review.User.Username,
		"avatar":     review.User.ProfileImage,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// AddReview records a review for a product. One review per user per product.
func AddReview(c *gin.Context) {
	utils.LogInfo("AddReview called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid review request: %v", err)
		utils.BadRequest(c, "Invalid request", "Rating is required")
		return
	}

	if err := utils.ValidateRating(req.Rating); err != nil {
		utils.BadRequest(c, "Invalid rating", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found for review: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Review
	if err := config.DB.Where("product_id = ? AND user_id = ?", product.ID, userModel.ID).
		First(&existing).Error; err == nil {
		utils.LogError("Duplicate review for product %d by user %d", product.ID, userModel.ID)
		utils.Conflict(c, "You have already reviewed this product", nil)
		return
	}

	review := models.Review{
		ProductID: product.ID,
		UserID:    userModel.ID,
		Rating:    req.Rating,
		Comment:   utils.SanitizeString(req.Comment),
	}
	if err := utils.CreateReview(&review); err != nil {
		utils.LogError("Failed to create review: %v", err)
		utils.InternalServerError(c, "Failed to create review", nil)
		return
	}
	review.User = userModel

	utils.LogInfo("Review %d created for product %d by user %d", review.ID, product.ID, userModel.ID)
	utils.Created(c, "Review added successfully", formatReview(&review))
}

// GetProductReviews lists reviews for a product, newest first
func GetProductReviews(c *gin.Context) {
	utils.LogInfo("GetProductReviews called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("User").
		Where("product_id = ?", product.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to fetch reviews", nil)
		return
	}

	avgRating, err := utils.GetProductAverageRating(product.ID)
	if err != nil {
		utils.LogError("Failed to compute average rating for product %d: %v", product.ID, err)
	}

	formatted := make([]gin.H, 0, len(reviews))
	for i := range reviews {
		formatted = append(formatted, formatReview(&reviews[i]))
	}

	utils.Success(c, "Reviews retrieved successfully", gin.H{
		"product_id":     product.ID,
		"average_rating": avgRating,
		"reviews":        formatted,
	})
}

// GetReview returns a single review by id
func GetReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid review ID", "Please provide a valid review ID")
		return
	}

	var review models.Review
	if err := config.DB.Preload("User").First(&review, reviewID).Error; err != nil {
		utils.NotFound(c, "Review not found")
		return
	}

	utils.Success(c, "Review retrieved successfully", formatReview(&review))
}
