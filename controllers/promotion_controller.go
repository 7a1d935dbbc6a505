package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
)

// CreatePromotionRequest represents the promotion creation body. Dates come
// in as raw strings and pass through the temporal normalizer; the discount is
// an absolute amount off the product's price.
type CreatePromotionRequest struct {
	ProductID uint    `json:"productid"`
	Discount  float64 `json:"discount"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

func formatPromotion(promo *models.Promotion) gin.H {
	return gin.H{
		"id":         promo.ID,
		"productid":  promo.ProductID,
		"discount":   promo.Discount,
		"start_date": utils.FormatPromoTime(promo.StartDate),
		"end_date":   utils.FormatPromoTime(promo.EndDate),
	}
}

// promoErrorResponse maps a promotion failure onto the wire contract:
// validation and overlap failures answer 422 with a stable error code,
// anything else is a storage fault answering 500 with no detail.
func promoErrorResponse(c *gin.Context, err error) {
	var perr *models.PromoError
	if errors.As(err, &perr) {
		utils.LogError("Promotion rejected: %v", perr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": perr.Code})
		return
	}
	utils.LogError("Promotion storage failure: %v", err)
	utils.InternalServerError(c, "Failed to process promotion", nil)
}

// CreatePromotion handles creation of a new promotional period. The request
// runs through validation, then the overlap check and insert execute as one
// atomic unit inside the store.
func CreatePromotion(c *gin.Context) {
	utils.LogInfo("CreatePromotion called")

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.ProductID == 0 {
		utils.LogError("Product ID missing from promotion request")
		utils.BadRequest(c, "Product ID is required", nil)
		return
	}
	utils.LogDebug("Promotion candidate for product %d: discount=%.2f start=%q end=%q",
		req.ProductID, req.Discount, req.StartDate, req.EndDate)

	candidate := utils.PromotionCandidate{
		ProductID: req.ProductID,
		Discount:  req.Discount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	start, end, err := utils.ValidatePromotion(candidate, time.Now())
	if err != nil {
		promoErrorResponse(c, err)
		return
	}

	promo, err := utils.CreatePromotion(req.ProductID, req.Discount, start, end)
	if err != nil {
		promoErrorResponse(c, err)
		return
	}

	utils.LogInfo("Created promotion %d for product %d", promo.ID, promo.ProductID)
	c.JSON(http.StatusCreated, formatPromotion(promo))
}

// GetProductPromotions lists every promotional period recorded for a
// product. A product with no promotions answers 404 so storefront pages can
// skip promo rendering without inspecting an empty array.
func GetProductPromotions(c *gin.Context) {
	utils.LogInfo("GetProductPromotions called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid product ID: %v", err)
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	promos, err := utils.GetPromotionsForProduct(uint(productID))
	if err != nil {
		utils.LogError("Failed to fetch promotions: %v", err)
		utils.InternalServerError(c, "Failed to fetch promotions", nil)
		return
	}
	utils.LogDebug("Found %d promotions for product %d", len(promos), productID)

	if len(promos) == 0 {
		utils.NotFound(c, "No promotions found for this product")
		return
	}

	formatted := make([]gin.H, 0, len(promos))
	for i := range promos {
		formatted = append(formatted, formatPromotion(&promos[i]))
	}

	c.JSON(http.StatusOK, formatted)
}

// DeletePromotion removes a promotion by id. Deleting an id that does not
// exist is not an error; the endpoint answers 204 either way.
func DeletePromotion(c *gin.Context) {
	utils.LogInfo("DeletePromotion called")

	promoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid promotion ID: %v", err)
		utils.BadRequest(c, "Invalid promotion ID", "Please provide a valid promotion ID")
		return
	}

	if err := utils.DeletePromotion(uint(promoID)); err != nil {
		utils.LogError("Failed to delete promotion: %v", err)
		utils.InternalServerError(c, "Failed to delete promotion", nil)
		return
	}

	utils.LogInfo("Deleted promotion %d", promoID)
	c.Status(http.StatusNoContent)
}

// GetActivePromotion reports the currently running promotion for a product
// together with the discounted price, for product cards and detail pages
func GetActivePromotion(c *gin.Context) {
	utils.LogInfo("GetActivePromotion called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid product ID: %v", err)
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	promo, err := utils.GetActivePromotionForProduct(uint(productID))
	if err != nil {
		utils.LogError("Failed to resolve active promotion: %v", err)
		utils.InternalServerError(c, "Failed to resolve active promotion", nil)
		return
	}

	if promo == nil {
		utils.Success(c, "No active promotion", gin.H{
			"promotion": nil,
			"price":     product.Price,
		})
		return
	}

	utils.Success(c, "Active promotion retrieved successfully", gin.H{
		"promotion":        formatPromotion(promo),
		"price":            product.Price,
		"discounted_price": utils.ApplyPromotionToPrice(product.Price, promo),
	})
}
