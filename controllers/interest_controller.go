package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
	"gorm.io/gorm"
)

// SetInterestsRequest represents the interest selection body. The submitted
// list replaces whatever was stored before; an empty list clears it.
type SetInterestsRequest struct {
	CategoryIDs []uint `json:"category_ids"`
}

// SetInterests replaces the user's category interests with the submitted
// set. The wipe and rewrite run in one transaction so a failed save never
// leaves the user with half a list.
func SetInterests(c *gin.Context) {
	utils.LogInfo("SetInterests called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	var req SetInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid interests request: %v", err)
		utils.BadRequest(c, "Invalid request", "Please provide category_ids")
		return
	}

	// Dedupe while keeping submission order
	seen := make(map[uint]bool, len(req.CategoryIDs))
	categoryIDs := make([]uint, 0, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if !seen[id] {
			seen[id] = true
			categoryIDs = append(categoryIDs, id)
		}
	}

	if len(categoryIDs) > 0 {
		var count int64
		if err := config.DB.Model(&models.Category{}).
			Where("id IN ? AND blocked = ?", categoryIDs, false).
			Count(&count).Error; err != nil {
			utils.LogError("Failed to verify categories: %v", err)
			utils.InternalServerError(c, "Failed to save interests", nil)
			return
		}
		if count != int64(len(categoryIDs)) {
			utils.BadRequest(c, "Unknown category", "One or more category IDs do not exist")
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userModel.ID).
			Delete(&models.Interest{}).Error; err != nil {
			return err
		}

		for _, categoryID := range categoryIDs {
			interest := models.Interest{
				UserID:     userModel.ID,
				CategoryID: categoryID,
			}
			if err := tx.Create(&interest).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		utils.LogError("Failed to save interests for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to save interests", nil)
		return
	}

	utils.LogInfo("User %d set %d interests", userModel.ID, len(categoryIDs))
	utils.Success(c, "Interests saved successfully", gin.H{
		"category_ids": categoryIDs,
	})
}

// GetInterests lists the user's selected categories
func GetInterests(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	var interests []models.Interest
	if err := config.DB.Where("user_id = ?", userModel.ID).Find(&interests).Error; err != nil {
		utils.LogError("Failed to fetch interests for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to fetch interests", nil)
		return
	}

	categoryIDs := make([]uint, 0, len(interests))
	for _, interest := range interests {
		categoryIDs = append(categoryIDs, interest.CategoryID)
	}

	var categories []models.Category
	if len(categoryIDs) > 0 {
		if err := config.DB.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			utils.LogError("Failed to fetch interest categories for user %d: %v", userModel.ID, err)
			utils.InternalServerError(c, "Failed to fetch interests", nil)
			return
		}
	}

	formatted := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		formatted = append(formatted, gin.H{
			"id":   category.ID,
			"name": category.Name,
		})
	}

	utils.Success(c, "Interests retrieved successfully", gin.H{
		"interests": formatted,
	})
}
