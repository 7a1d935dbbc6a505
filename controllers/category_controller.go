package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// CategoryRequest represents the category create/update body
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory handles creation of a new category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, "Invalid request", "Category name is required")
		return
	}

	req.Name = strings.TrimSpace(utils.SanitizeString(req.Name))
	req.Description = utils.SanitizeString(req.Description)

	if err := utils.ValidateStringLength(req.Name, 2, 50); err != nil {
		utils.BadRequest(c, "Invalid category name", err.Error())
		return
	}

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", req.Name).First(&existing).Error; err == nil {
		utils.LogError("Category already exists: %s", req.Name)
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := utils.CreateCategory(&category); err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.LogInfo("Created category %d: %s", category.ID, category.Name)
	utils.Created(c, "Category created successfully", gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
	})
}

// GetCategories lists categories. The public listing hides blocked
// categories; admins see everything.
func GetCategories(c *gin.Context) {
	utils.LogInfo("GetCategories called")

	query := config.DB.Model(&models.Category{})
	if _, isAdmin := c.Get("admin"); !isAdmin {
		query = query.Where("blocked = ?", false)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	formatted := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		formatted = append(formatted, gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
			"blocked":     category.Blocked,
		})
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": formatted})
}

// UpdateCategory handles updates to an existing category
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", "Please provide a valid category ID")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", "Category name is required")
		return
	}

	req.Name = strings.TrimSpace(utils.SanitizeString(req.Name))
	if err := utils.ValidateStringLength(req.Name, 2, 50); err != nil {
		utils.BadRequest(c, "Invalid category name", err.Error())
		return
	}

	var duplicate models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?) AND id != ?", req.Name, category.ID).
		First(&duplicate).Error; err == nil {
		utils.Conflict(c, "Another category already uses this name", nil)
		return
	}

	category.Name = req.Name
	category.Description = utils.SanitizeString(req.Description)
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.LogInfo("Updated category %d", category.ID)
	utils.Success(c, "Category updated successfully", gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
	})
}

// DeleteCategory soft deletes a category. Categories still referenced by
// products cannot be removed.
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", "Please provide a valid category ID")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Count(&productCount).Error; err != nil {
		utils.LogError("Failed to count products for category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}
	if productCount > 0 {
		utils.LogError("Category %d still has %d products", category.ID, productCount)
		utils.Conflict(c, "Category has products and cannot be deleted", nil)
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	utils.LogInfo("Deleted category %d", category.ID)
	utils.Success(c, "Category deleted successfully", nil)
}

// ToggleCategoryBlock flips a category's blocked flag, hiding or restoring
// it on the storefront
func ToggleCategoryBlock(c *gin.Context) {
	utils.LogInfo("ToggleCategoryBlock called")

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", "Please provide a valid category ID")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Blocked = !category.Blocked
	if err := config.DB.Model(&category).Update("blocked", category.Blocked).Error; err != nil {
		utils.LogError("Failed to toggle block for category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.LogInfo("Category %d blocked=%t", category.ID, category.Blocked)
	utils.Success(c, "Category updated successfully", gin.H{
		"id":      category.ID,
		"blocked": category.Blocked,
	})
}
