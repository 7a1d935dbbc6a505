package models

import (
	"time"
)

// Promotion is a time-boxed fixed-amount discount on a single product.
// Promotions are immutable once created; admins may only create and delete
// them. Intervals for the same product must never intersect, boundary
// touches included.
type Promotion struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"not null;index"`
	Discount  float64   `gorm:"not null"` // absolute amount off the list price
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Promotion error codes as they appear on the wire.
const (
	PromoCodeInvalidDiscount = "INVALID_DISCOUNT_VALUE"
	PromoCodeInvalidDateTime = "INVALID_DATETIME"
	PromoCodeOverlap         = "PROMO_OVERLAP"
)

// PromoError is a validation or conflict failure for a candidate promotion.
// Code is the stable wire identifier; Field names the offending input where
// one can be singled out.
type PromoError struct {
	Code  string
	Field string
}

func (e *PromoError) Error() string {
	if e.Field != "" {
		return e.Code + " (" + e.Field + ")"
	}
	return e.Code
}

// Predefined promotion failures. Handlers compare with errors.Is/As rather
// than matching message strings.
var (
	ErrInvalidDiscountValue = &PromoError{Code: PromoCodeInvalidDiscount, Field: "discount"}
	ErrInvalidStartDate     = &PromoError{Code: PromoCodeInvalidDateTime, Field: "start_date"}
	ErrInvalidEndDate       = &PromoError{Code: PromoCodeInvalidDateTime, Field: "end_date"}
	ErrInvalidPeriod        = &PromoError{Code: PromoCodeInvalidDateTime}
	ErrPromoOverlap         = &PromoError{Code: PromoCodeOverlap}
)
