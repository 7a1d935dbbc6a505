package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// GetUsers lists registered users for the back office with pagination and an
// optional search over username and email
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")

	pagination := utils.NewPagination(c)
	search := utils.SanitizeString(c.Query("search"))

	query := config.DB.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}
	utils.LogDebug("Fetched %d users (page %d)", len(users), pagination.Page)

	formatted := make([]gin.H, 0, len(users))
	for _, user := range users {
		formatted = append(formatted, gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"is_blocked":  user.IsBlocked,
			"is_verified": user.IsVerified,
			"created_at":  user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", formatted, total, pagination.Page, pagination.Limit)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid user ID: %v", err)
		utils.BadRequest(c, "Invalid user ID", "Please provide a valid user ID")
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.LogError("User not found: %v", err)
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.LogError("Failed to update block state for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("User %d %s", user.ID, action)
	utils.Success(c, "User "+action+" successfully", gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"is_blocked": blocked,
	})
}

// BlockUser blocks a user account, cutting off authenticated access
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser restores access to a blocked account
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}
