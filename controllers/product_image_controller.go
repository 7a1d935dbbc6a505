package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"github.com/mercato-dev/mercato/utils"
	"gorm.io/gorm"
)

// UploadProductImages stores uploaded images for a product. Sequence numbers
// continue from the highest already recorded, assigned inside one
// transaction so concurrent uploads cannot collide.
func UploadProductImages(c *gin.Context) {
	utils.LogInfo("UploadProductImages called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.LogError("Product not found for image upload: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.LogError("Image upload failed - Invalid form: %v", err)
		utils.BadRequest(c, "Invalid form data", "Please attach image files under 'images'")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequest(c, "No images provided", "Please attach at least one image")
		return
	}

	var saved []models.ProductImage
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count+int64(len(files)) > utils.MaxProductImages {
			return fmt.Errorf("a product can have at most %d images", utils.MaxProductImages)
		}

		var maxSequence int
		row := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Select("COALESCE(MAX(sequence), 0)").
			Row()
		if err := row.Scan(&maxSequence); err != nil {
			return err
		}

		for i, file := range files {
			path, err := utils.SaveUploadedFile(file, "uploads/products")
			if err != nil {
				return err
			}

			image := models.ProductImage{
				ProductID: product.ID,
				URL:       path,
				Sequence:  maxSequence + i + 1,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			saved = append(saved, image)
		}

		return nil
	})
	if err != nil {
		utils.LogError("Failed to upload images for product %d: %v", product.ID, err)
		utils.BadRequest(c, "Failed to upload images", err.Error())
		return
	}

	formatted := make([]gin.H, 0, len(saved))
	for _, image := range saved {
		formatted = append(formatted, gin.H{
			"id":       image.ID,
			"url":      image.URL,
			"sequence": image.Sequence,
		})
	}

	utils.LogInfo("Uploaded %d images for product %d", len(saved), product.ID)
	utils.Created(c, "Images uploaded successfully", gin.H{
		"product_id": product.ID,
		"images":     formatted,
	})
}

// GetProductImages lists a product's images in sequence order
func GetProductImages(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	var images []models.ProductImage
	if err := config.DB.Where("product_id = ?", productID).
		Order("sequence ASC").
		Find(&images).Error; err != nil {
		utils.LogError("Failed to fetch images for product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to fetch images", nil)
		return
	}

	formatted := make([]gin.H, 0, len(images))
	for _, image := range images {
		formatted = append(formatted, gin.H{
			"id":       image.ID,
			"url":      image.URL,
			"sequence": image.Sequence,
		})
	}

	utils.Success(c, "Images retrieved successfully", gin.H{
		"product_id": productID,
		"count":      len(images),
		"images":     formatted,
	})
}

// GetProductImage fetches a single image of a product by its sequence number
func GetProductImage(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	sequence, err := strconv.Atoi(c.Param("sequence"))
	if err != nil || sequence < 1 {
		utils.BadRequest(c, "Invalid sequence number", "Please provide a valid sequence number")
		return
	}

	var image models.ProductImage
	if err := config.DB.Where("product_id = ? AND sequence = ?", productID, sequence).
		First(&image).Error; err != nil {
		utils.NotFound(c, "Image not found")
		return
	}

	utils.Success(c, "Image retrieved successfully", gin.H{
		"id":       image.ID,
		"url":      image.URL,
		"sequence": image.Sequence,
	})
}

// DeleteProductImage removes an image and closes the sequence gap it leaves
func DeleteProductImage(c *gin.Context) {
	utils.LogInfo("DeleteProductImage called")

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", "Please provide a valid product ID")
		return
	}

	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid image ID", "Please provide a valid image ID")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var image models.ProductImage
		if err := tx.Where("id = ? AND product_id = ?", imageID, productID).
			First(&image).Error; err != nil {
			return err
		}

		if err := tx.Delete(&image).Error; err != nil {
			return err
		}

		return tx.Model(&models.ProductImage{}).
			Where("product_id = ? AND sequence > ?", productID, image.Sequence).
			UpdateColumn("sequence", gorm.Expr("sequence - 1")).Error
	})
	if err != nil {
		utils.LogError("Failed to delete image %d for product %d: %v", imageID, productID, err)
		utils.NotFound(c, "Image not found")
		return
	}

	utils.LogInfo("Deleted image %d for product %d", imageID, productID)
	utils.Success(c, "Image deleted successfully", nil)
}
