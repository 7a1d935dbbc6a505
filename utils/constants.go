package utils

// Application constants
const (
	// Application name
	AppName = "Mercato"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// OTP expiration (10 minutes)
	OTPExpiration = "10m"

	// Maximum file size for uploads (5MB)
	MaxFileSize = 5 * 1024 * 1024

	// Maximum images per product
	MaxProductImages = 5

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum rating
	MinRating = 1

	// Maximum rating
	MaxRating = 5
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Unauthorized access"
	ErrForbidden          = "Access forbidden"

	ErrInvalidEmail    = "Invalid email format"
	ErrInvalidRating   = "Rating must be between 1 and 5"
	ErrInvalidFileType = "Invalid file type. Allowed types: jpg, jpeg, png, gif"
	ErrFileTooLarge    = "File size exceeds 5MB limit"

	ErrRecordNotFound = "Record not found"
	ErrInternalServer = "Internal server error"
)
