package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// GetUserProfile returns the authenticated user's profile
func GetUserProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	utils.LogDebug("Profile requested for user %d", userModel.ID)
	utils.Success(c, "Profile retrieved successfully", gin.H{
		"id":            userModel.ID,
		"username":      userModel.Username,
		"email":         userModel.Email,
		"first_name":    userModel.FirstName,
		"last_name":     userModel.LastName,
		"phone":         userModel.Phone,
		"profile_image": userModel.ProfileImage,
		"created_at":    userModel.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// UpdateProfileRequest represents the profile update body
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UpdateUserProfile updates editable profile fields
func UpdateUserProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Profile update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.FirstName != "" {
		if valid, msg := utils.ValidateName(req.FirstName); !valid {
			utils.BadRequest(c, "Invalid first name", msg)
			return
		}
		userModel.FirstName = utils.SanitizeString(req.FirstName)
	}

	if req.LastName != "" {
		if valid, msg := utils.ValidateName(req.LastName); !valid {
			utils.BadRequest(c, "Invalid last name", msg)
			return
		}
		userModel.LastName = utils.SanitizeString(req.LastName)
	}

	if req.Phone != "" {
		valid, formattedPhone := utils.ValidatePhone(req.Phone)
		if !valid {
			utils.BadRequest(c, "Invalid phone", formattedPhone)
			return
		}
		userModel.Phone = formattedPhone
	}

	if err := utils.UpdateUser(&userModel); err != nil {
		utils.LogError("Failed to update profile for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	utils.LogInfo("Profile updated for user %d", userModel.ID)
	utils.Success(c, "Profile updated successfully", gin.H{
		"id":         userModel.ID,
		"username":   userModel.Username,
		"email":      userModel.Email,
		"first_name": userModel.FirstName,
		"last_name":  userModel.LastName,
		"phone":      userModel.Phone,
	})
}

// ChangePassword updates the user's password after verifying the current one
func ChangePassword(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Password change failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, userModel.Password) {
		utils.LogError("Password change failed - Wrong current password for user %d", userModel.ID)
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}

	if valid, msg := utils.ValidatePassword(req.NewPassword); !valid {
		utils.BadRequest(c, "Invalid new password", msg)
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		utils.BadRequest(c, "Passwords do not match", "New password and confirm password must be the same")
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Failed to hash new password for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to change password", nil)
		return
	}

	userModel.Password = hashedPassword
	if err := utils.UpdateUser(&userModel); err != nil {
		utils.LogError("Failed to save new password for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to change password", nil)
		return
	}

	utils.LogInfo("Password changed for user %d", userModel.ID)
	utils.Success(c, "Password changed successfully", nil)
}

// UploadProfileImage stores a profile picture for the authenticated user
func UploadProfileImage(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	userModel := user.(models.User)

	file, err := c.FormFile("image")
	if err != nil {
		utils.LogError("Profile image upload failed - No file: %v", err)
		utils.BadRequest(c, "No image provided", "Please attach an image file")
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/profiles")
	if err != nil {
		utils.LogError("Profile image upload failed for user %d: %v", userModel.ID, err)
		utils.BadRequest(c, "Failed to save image", err.Error())
		return
	}

	userModel.ProfileImage = path
	if err := utils.UpdateUser(&userModel); err != nil {
		utils.LogError("Failed to save profile image path for user %d: %v", userModel.ID, err)
		utils.InternalServerError(c, "Failed to update profile image", nil)
		return
	}

	utils.LogInfo("Profile image updated for user %d", userModel.ID)
	utils.Success(c, "Profile image uploaded successfully", gin.H{
		"profile_image": path,
	})
}
