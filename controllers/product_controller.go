package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
	"gorm.io/gorm"
)

// ProductRequest represents the product create/update body
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
}

// formatProductCard renders the listing shape shared by every product list
// endpoint, with promotion pricing applied when one is running
func formatProductCard(product *models.Product) gin.H {
	card := gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"brand":       product.Brand,
		"price":       product.Price,
		"category_id": product.CategoryID,
		"image_url":   product.ImageURL,
		"views":       product.Views,
	}

	promo, err := utils.GetActivePromotionForProduct(product.ID)
	if err != nil {
		utils.LogError("Failed to resolve promotion for product %d: %v", product.ID, err)
		return card
	}
	if promo != nil {
		card["discounted_price"] = utils.ApplyPromotionToPrice(product.Price, promo)
		card["discount"] = promo.Discount
	}

	return card
}

// CreateProduct handles creation of a new product
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product request: %v", err)
		utils.BadRequest(c, "Invalid request", "Name, price and category are required")
		return
	}

	req.Name = strings.TrimSpace(utils.SanitizeString(req.Name))
	if err := utils.ValidateStringLength(req.Name, 2, 100); err != nil {
		utils.BadRequest(c, "Invalid product name", err.Error())
		return
	}

	if err := utils.ValidatePrice(req.Price); err != nil {
		utils.BadRequest(c, "Invalid price", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category not found for product: %d", req.CategoryID)
		utils.BadRequest(c, "Category not found", "Please provide an existing category ID")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: utils.SanitizeString(req.Description),
		Brand:       utils.SanitizeString(req.Brand),
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}
	if err := utils.CreateProduct(&product); err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.LogInfo("Created product %d: %s", product.ID, product.Name)
	utils.Created(c, "Product created successfully", formatProductCard(&product))
}

// UpdateProduct handles updates to an existing product
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", "Name, price and category are required")
		return
	}

	req.Name = strings.TrimSpace(utils.SanitizeString(req.Name))
	if err := utils.ValidateStringLength(req.Name, 2, 100); err != nil {
		utils.BadRequest(c, "Invalid product name", err.Error())
		return
	}

	if err := utils.ValidatePrice(req.Price); err != nil {
		utils.BadRequest(c, "Invalid price", err.Error())
		return
	}

	if req.CategoryID != product.CategoryID {
		var category models.Category
		if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
			utils.BadRequest(c, "Category not found", "Please provide an existing category ID")
			return
		}
	}

	product.Name = req.Name
	product.Description = utils.SanitizeString(req.Description)
	product.Brand = utils.SanitizeString(req.Brand)
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.LogInfo("Updated product %d", product.ID)
	utils.Success(c, "Product updated successfully", formatProductCard(&product))
}

// DeleteProduct soft deletes a product from the catalog
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	utils.LogInfo("Deleted product %d", product.ID)
	utils.Success(c, "Product deleted successfully", nil)
}

// GetProducts lists storefront products with pagination and an optional
// multi-term search. Each whitespace-separated term must match the name,
// description or brand.
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(utils.SanitizeString(c.Query("search")))

	query := config.DB.Model(&models.Product{}).Where("blocked = ?", false)
	for _, term := range strings.Fields(search) {
		pattern := "%" + term + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR brand ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	utils.LogDebug("Fetched %d products (page %d)", len(products), pagination.Page)

	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		formatted = append(formatted, formatProductCard(&products[i]))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", formatted, total, pagination.Page, pagination.Limit)
}

// GetProductsByCategory lists products in a category, addressed either by
// numeric id or by category name
func GetProductsByCategory(c *gin.Context) {
	utils.LogInfo("GetProductsByCategory called")

	param := c.Param("id")
	var category models.Category

	if categoryID, err := strconv.ParseUint(param, 10, 32); err == nil {
		err = config.DB.First(&category, categoryID).Error
		if err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
	} else {
		name := strings.TrimSpace(utils.SanitizeString(param))
		if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
	}

	if category.Blocked {
		utils.NotFound(c, "Category not found")
		return
	}

	var products []models.Product
	if err := config.DB.Where("category_id = ? AND blocked = ?", category.ID, false).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		formatted = append(formatted, formatProductCard(&products[i]))
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"category": gin.H{
			"id":   category.ID,
			"name": category.Name,
		},
		"products": formatted,
	})
}

// GetProductsByRating lists products ordered by their average review rating,
// best first. Products without reviews sort last.
func GetProductsByRating(c *gin.Context) {
	utils.LogInfo("GetProductsByRating called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Product{}).
		Where("blocked = ?", false).
		Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := config.DB.
		Where("blocked = ?", false).
		Joins("LEFT JOIN reviews ON reviews.product_id = products.id AND reviews.deleted_at IS NULL").
		Group("products.id").
		Order("COALESCE(AVG(reviews.rating), 0) DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products by rating: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		card := formatProductCard(&products[i])
		if avg, err := utils.GetProductAverageRating(products[i].ID); err == nil {
			card["average_rating"] = avg
		}
		formatted = append(formatted, card)
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", formatted, total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns the full product page payload: category, images,
// average rating, view count and promotion pricing. Every visit bumps the
// view counter.
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.
		Preload("Category").
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	if product.Blocked {
		utils.NotFound(c, "Product not found")
		return
	}

	// Count the visit; a failed bump should not break the page
	if err := config.DB.Model(&product).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		utils.LogError("Failed to bump view count for product %d: %v", product.ID, err)
	} else {
		product.Views++
	}

	avgRating, err := utils.GetProductAverageRating(product.ID)
	if err != nil {
		utils.LogError("Failed to compute average rating for product %d: %v", product.ID, err)
	}

	var reviewCount int64
	if err := config.DB.Model(&models.Review{}).
		Where("product_id = ?", product.ID).
		Count(&reviewCount).Error; err != nil {
		utils.LogError("Failed to count reviews for product %d: %v", product.ID, err)
	}

	images := make([]gin.H, 0, len(product.ProductImages))
	for _, image := range product.ProductImages {
		images = append(images, gin.H{
			"id":       image.ID,
			"url":      image.URL,
			"sequence": image.Sequence,
		})
	}

	details := gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"brand":       product.Brand,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"views":       product.Views,
		"category": gin.H{
			"id":   product.Category.ID,
			"name": product.Category.Name,
		},
		"images":         images,
		"average_rating": avgRating,
		"review_count":   reviewCount,
	}

	promo, err := utils.GetActivePromotionForProduct(product.ID)
	if err != nil {
		utils.LogError("Failed to resolve promotion for product %d: %v", product.ID, err)
	} else if promo != nil {
		details["promotion"] = formatPromotion(promo)
		details["discounted_price"] = utils.ApplyPromotionToPrice(product.Price, promo)
	}

	utils.Success(c, "Product retrieved successfully", details)
}
