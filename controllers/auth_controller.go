package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// GoogleLogin redirects the browser to Google's consent page. The random
// state lives in the session and is checked in the callback.
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save oauth state: %v", err)
		utils.InternalServerError(c, "Failed to start Google login", nil)
		return
	}

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	utils.LogInfo("Redirecting to Google OAuth")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback handles the OAuth redirect from Google, exchanging the code
// for a token and signing the user in (creating the account on first visit)
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	expectedState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear oauth state: %v", err)
	}

	if expectedState == "" || c.Query("state") != expectedState {
		utils.LogError("Google callback failed - State mismatch")
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.LogError("Google callback failed - Missing code")
		utils.BadRequest(c, "Authorization code missing", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		utils.LogError("Google callback failed - Token exchange: %v", err)
		utils.InternalServerError(c, "Failed to exchange authorization code", nil)
		return
	}

	client := config.GoogleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.LogError("Google callback failed - Userinfo fetch: %v", err)
		utils.InternalServerError(c, "Failed to fetch user info", nil)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.LogError("Google callback failed - Userinfo decode: %v", err)
		utils.InternalServerError(c, "Failed to decode user info", nil)
		return
	}

	utils.LogInfo("Google login for email: %s", info.Email)

	var user models.User
	err = config.DB.Where("google_id = ? OR email = ?", info.ID, info.Email).First(&user).Error
	if err != nil {
		// First Google sign-in: provision the account, already verified
		user = models.User{
			Username:   utils.SanitizeString(info.Email),
			Email:      info.Email,
			FirstName:  info.GivenName,
			LastName:   info.FamilyName,
			GoogleID:   info.ID,
			IsVerified: true,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user %s: %v", info.Email, err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		utils.LogInfo("Created account via Google for %s", info.Email)
	} else if user.GoogleID == "" {
		user.GoogleID = info.ID
		if err := config.DB.Model(&user).Update("google_id", info.ID).Error; err != nil {
			utils.LogError("Failed to link Google account for %s: %v", info.Email, err)
		}
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted Google login: %s", info.Email)
		utils.Forbidden(c, "Your account has been blocked")
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for Google user %s: %v", info.Email, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Success(c, "Google login successful", gin.H{
		"token": jwtToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
