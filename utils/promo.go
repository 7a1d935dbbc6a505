package utils

import (
	"strings"
	"time"

	"github.com/mercato-dev/mercato/config"
	"github.com/mercato-dev/mercato/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromoTimeFormat is the fixed datetime format promotions use on the wire
const PromoTimeFormat = "2006-01-02 15:04:05"

// Accepted client layouts. All are read as UTC; the stored representation
// carries no zone.
var promoTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParsePromoTime converts a client-supplied datetime string into a UTC
// timestamp with second precision. Malformed input fails with an
// INVALID_DATETIME promotion error.
func ParsePromoTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, models.ErrInvalidPeriod
	}
	for _, layout := range promoTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, models.ErrInvalidPeriod
}

// FormatPromoTime renders a timestamp in the fixed wire format
func FormatPromoTime(t time.Time) string {
	return t.UTC().Format(PromoTimeFormat)
}

// PromotionCandidate is a not-yet-persisted promotion awaiting validation
type PromotionCandidate struct {
	ProductID uint
	Discount  float64
	StartDate string
	EndDate   string
}

// ValidatePromotion enforces the business rules on a candidate promotion
// before anything touches storage. Checks run in a fixed order and the first
// failure wins: the discount is checked before either date, so a request
// with a bad discount and a bad date reports the discount error. A
// promotion whose end lies at or before now cannot be created.
func ValidatePromotion(candidate PromotionCandidate, now time.Time) (start, end time.Time, err error) {
	if candidate.Discount <= 0 {
		return start, end, models.ErrInvalidDiscountValue
	}

	start, perr := ParsePromoTime(candidate.StartDate)
	if perr != nil {
		return start, end, models.ErrInvalidStartDate
	}

	end, perr = ParsePromoTime(candidate.EndDate)
	if perr != nil {
		return start, end, models.ErrInvalidEndDate
	}

	// The interval must run forward
	if !start.Before(end) {
		return start, end, models.ErrInvalidPeriod
	}

	// Already-expired promotions are rejected outright
	if !now.Before(end) {
		return start, end, models.ErrInvalidEndDate
	}

	return start, end, nil
}

// timeWithin reports whether t falls inside [from, to], boundaries included
func timeWithin(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// PromotionsOverlap tests a candidate range against every existing promotion
// for the product. The test is conservative: boundaries count, so a
// promotion ending exactly when another starts is treated as overlapping.
func PromotionsOverlap(existing []models.Promotion, start, end time.Time) bool {
	for _, promo := range existing {
		if timeWithin(promo.StartDate, start, end) ||
			timeWithin(promo.EndDate, start, end) ||
			timeWithin(start, promo.StartDate, promo.EndDate) {
			return true
		}
	}
	return false
}

// SelectActivePromotion returns the first promotion whose interval contains
// now, or nil when none does. Non-overlapping intervals guarantee at most
// one match, so iteration order cannot change the result.
func SelectActivePromotion(promos []models.Promotion, now time.Time) *models.Promotion {
	for i := range promos {
		if timeWithin(now, promos[i].StartDate, promos[i].EndDate) {
			return &promos[i]
		}
	}
	return nil
}

// ApplyPromotionToPrice returns the price after subtracting the promotion's
// discount, floored at zero
func ApplyPromotionToPrice(price float64, promo *models.Promotion) float64 {
	if promo == nil {
		return price
	}
	discounted := price - promo.Discount
	if discounted < 0 {
		return 0
	}
	return discounted
}

// CreatePromotion persists a validated candidate. The overlap check and the
// insert run inside one transaction that locks the product's promotion rows
// FOR UPDATE, so two concurrent creations for the same product cannot both
// observe an empty window and both insert.
func CreatePromotion(productID uint, discount float64, start, end time.Time) (*models.Promotion, error) {
	promo := &models.Promotion{
		ProductID: productID,
		Discount:  discount,
		StartDate: start,
		EndDate:   end,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.Promotion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			Find(&existing).Error; err != nil {
			return err
		}

		if PromotionsOverlap(existing, start, end) {
			return models.ErrPromoOverlap
		}

		return tx.Create(promo).Error
	})
	if err != nil {
		return nil, err
	}

	return promo, nil
}

// GetPromotionsForProduct returns every promotion recorded for a product,
// past and future included. An empty slice is a legitimate result, not an
// error.
func GetPromotionsForProduct(productID uint) ([]models.Promotion, error) {
	var promos []models.Promotion
	if err := config.DB.Where("product_id = ?", productID).Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// DeletePromotion removes a promotion by id. Deleting an unknown id is a
// no-op, so the operation is idempotent.
func DeletePromotion(promoID uint) error {
	return config.DB.Delete(&models.Promotion{}, promoID).Error
}

// GetActivePromotionForProduct loads a product's promotions and picks the
// ongoing one, if any. Invoked on every product detail read.
func GetActivePromotionForProduct(productID uint) (*models.Promotion, error) {
	promos, err := GetPromotionsForProduct(productID)
	if err != nil {
		return nil, err
	}
	return SelectActivePromotion(promos, time.Now()), nil
}
