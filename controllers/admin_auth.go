package controllers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// AdminLoginRequest represents the admin login request body
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles back-office login and issues an admin JWT
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Admin login failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please provide email and password")
		return
	}

	utils.LogInfo("Admin login attempt for email: %s", req.Email)

	admin, err := utils.GetAdminByEmail(req.Email)
	if err != nil {
		utils.LogError("Admin login failed - Admin not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed - Wrong password for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.LogError("Admin login failed - Inactive account: %s", req.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token, err := utils.GenerateAdminToken(admin)
	if err != nil {
		utils.LogError("Failed to generate admin token for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	admin.LastLogin = time.Now()
	if err := config.DB.Model(admin).Update("last_login", admin.LastLogin).Error; err != nil {
		utils.LogError("Failed to record admin last login for %s: %v", req.Email, err)
	}

	utils.LogInfo("Admin logged in successfully: %s", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// AdminLogout clears the admin session
func AdminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear admin session on logout: %v", err)
		utils.InternalServerError(c, "Failed to logout", nil)
		return
	}

	utils.LogInfo("Admin logged out")
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin seeds a default back-office account at boot when none
// exists. Credentials come from the environment in production deployments.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword("Admin@123")
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     "admin@mercato.com",
		Password:  hashedPassword,
		FirstName: "Mercato",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := utils.CreateAdmin(&admin); err != nil {
		return err
	}

	utils.LogInfo("Sample admin created: %s", admin.Email)
	return nil
}
