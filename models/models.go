package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	OTP          string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`

	Interests []Interest `json:"interests,omitempty" gorm:"foreignKey:UserID"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents a product in the catalog
type Product struct {
	gorm.Model
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Brand         string         `json:"brand"`
	Price         float64        `json:"price"`
	CategoryID    uint           `json:"category_id"`
	Category      Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL      string         `json:"image_url"`
	ProductImages []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
	Views         int            `json:"views" gorm:"default:0"`
	Reviews       []Review       `json:"reviews,omitempty"`
	Blocked       bool           `json:"blocked" gorm:"default:false"`
}

// Review represents a product review
type Review struct {
	gorm.Model
	ProductID uint   `json:"product_id"`
	UserID    uint   `json:"user_id"`
	User      User   `json:"user"`
	Rating    int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment"`
}

// ProductImage stores one uploaded image for a product. Sequence numbers
// start at 1 and increase per product.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `json:"url"`
	Sequence  int    `json:"sequence"`
}

// Interest links a user to a category they want surfaced on their feed
type Interest struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"index:idx_user_category,unique" json:"user_id"`
	CategoryID uint `gorm:"index:idx_user_category,unique" json:"category_id"`
}

// UserOTP represents a one-time password for user verification
type UserOTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Code      string    `json:"code" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
