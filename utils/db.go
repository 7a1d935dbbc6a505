package utils

import (
	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
)

// CreateUser creates a new user
func CreateUser(user *models.User) error {
	return config.DB.Create(user).Error
}

// GetUserByID retrieves a user by ID
func GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user
func UpdateUser(user *models.User) error {
	return config.DB.Save(user).Error
}

// CreateAdmin creates a new admin
func CreateAdmin(admin *models.Admin) error {
	return config.DB.Create(admin).Error
}

// GetAdminByEmail retrieves an admin by email
func GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := config.DB.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateCategory creates a new category
func CreateCategory(category *models.Category) error {
	return config.DB.Create(category).Error
}

// CreateProduct creates a new product
func CreateProduct(product *models.Product) error {
	return config.DB.Create(product).Error
}

// GetProductByID retrieves a product by ID
func GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	err := config.DB.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateReview creates a new review
func CreateReview(review *models.Review) error {
	return config.DB.Create(review).Error
}

// GetProductAverageRating computes the average rating for a product. A
// product with no reviews reports zero.
func GetProductAverageRating(productID uint) (float64, error) {
	var avg *float64
	err := config.DB.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
