package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/mercato-dev/mercato/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoCode(t *testing.T, err error) string {
	t.Helper()
	var perr *models.PromoError
	require.True(t, errors.As(err, &perr), "expected a promotion error, got %v", err)
	return perr.Code
}

func TestParsePromoTime(t *testing.T) {
	parsed, err := ParsePromoTime("2025-01-01T00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParsePromoTime("2025-06-15 13:45:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 13, 45, 30, 0, time.UTC), parsed)

	// Bare dates read as midnight UTC
	parsed, err = ParsePromoTime("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	// Surrounding whitespace is trimmed before parsing
	_, err = ParsePromoTime("  2025-01-01T00:00  ")
	assert.NoError(t, err)

	for _, raw := range []string{"", "not-a-date", "2025-13-40T00:00", "01/02/2025"} {
		_, err := ParsePromoTime(raw)
		assert.Error(t, err, "input %q should not parse", raw)
	}
}

func TestValidatePromotionOrdering(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	// A bad discount wins over a bad date
	_, _, err := ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  -5,
		StartDate: "garbage",
		EndDate:   "garbage",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDiscount, promoCode(t, err))

	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  0,
		StartDate: "2025-01-01T00:00",
		EndDate:   "2025-01-10T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDiscount, promoCode(t, err))
}

func TestValidatePromotionDates(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	// Scenario: valid candidate passes and returns parsed bounds
	start, end, err := ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "2025-01-01T00:00",
		EndDate:   "2025-01-10T00:00",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), end)

	// Inverted interval
	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "2025-01-10T00:00",
		EndDate:   "2025-01-01T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDateTime, promoCode(t, err))

	// Zero-length interval counts as inverted
	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "2025-01-01T00:00",
		EndDate:   "2025-01-01T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDateTime, promoCode(t, err))

	// Unparsable start
	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "whenever",
		EndDate:   "2025-01-10T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDateTime, promoCode(t, err))

	// Already expired relative to now
	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "2024-01-01T00:00",
		EndDate:   "2024-06-01T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDateTime, promoCode(t, err))

	// Ending exactly at now is already expired
	_, _, err = ValidatePromotion(PromotionCandidate{
		ProductID: 5,
		Discount:  10,
		StartDate: "2024-11-01T00:00",
		EndDate:   "2024-12-01T00:00",
	}, now)
	assert.Equal(t, models.PromoCodeInvalidDateTime, promoCode(t, err))
}

func promoWindow(id uint, start, end string) models.Promotion {
	s, _ := ParsePromoTime(start)
	e, _ := ParsePromoTime(end)
	return models.Promotion{ID: id, ProductID: 5, Discount: 10, StartDate: s, EndDate: e}
}

func TestPromotionsOverlap(t *testing.T) {
	existing := []models.Promotion{
		promoWindow(1, "2025-01-01T00:00", "2025-01-10T00:00"),
	}

	cases := []struct {
		name    string
		start   string
		end     string
		overlap bool
	}{
		{"candidate start inside existing", "2025-01-05T00:00", "2025-01-15T00:00", true},
		{"candidate end inside existing", "2024-12-20T00:00", "2025-01-05T00:00", true},
		{"candidate swallows existing", "2024-12-01T00:00", "2025-02-01T00:00", true},
		{"candidate inside existing", "2025-01-03T00:00", "2025-01-07T00:00", true},
		{"identical interval", "2025-01-01T00:00", "2025-01-10T00:00", true},
		{"touching at existing end", "2025-01-10T00:00", "2025-01-20T00:00", true},
		{"touching at existing start", "2024-12-20T00:00", "2025-01-01T00:00", true},
		{"clear before", "2024-12-01T00:00", "2024-12-31T23:59:59", false},
		{"clear after", "2025-01-10T00:00:01", "2025-01-20T00:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := ParsePromoTime(tc.start)
			require.NoError(t, err)
			end, err := ParsePromoTime(tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.overlap, PromotionsOverlap(existing, start, end))
		})
	}

	// No existing promotions never conflicts
	start, _ := ParsePromoTime("2025-01-01T00:00")
	end, _ := ParsePromoTime("2025-01-10T00:00")
	assert.False(t, PromotionsOverlap(nil, start, end))
}

func TestSelectActivePromotion(t *testing.T) {
	promos := []models.Promotion{
		promoWindow(1, "2025-01-01T00:00", "2025-01-10T00:00"),
		promoWindow(2, "2025-02-01T00:00", "2025-02-10T00:00"),
	}

	// now inside the first window
	now, _ := ParsePromoTime("2025-01-05T12:00")
	active := SelectActivePromotion(promos, now)
	require.NotNil(t, active)
	assert.Equal(t, uint(1), active.ID)

	// now after the first window ends, before the second begins
	now, _ = ParsePromoTime("2025-01-20T00:00")
	assert.Nil(t, SelectActivePromotion(promos, now))

	// inclusive boundaries: active at exact start and exact end
	now, _ = ParsePromoTime("2025-02-01T00:00")
	active = SelectActivePromotion(promos, now)
	require.NotNil(t, active)
	assert.Equal(t, uint(2), active.ID)

	now, _ = ParsePromoTime("2025-02-10T00:00")
	active = SelectActivePromotion(promos, now)
	require.NotNil(t, active)
	assert.Equal(t, uint(2), active.ID)

	assert.Nil(t, SelectActivePromotion(nil, now))
}

func TestSelectActivePromotionDeterministic(t *testing.T) {
	promos := []models.Promotion{
		promoWindow(1, "2025-01-01T00:00", "2025-01-10T00:00"),
		promoWindow(2, "2025-02-01T00:00", "2025-02-10T00:00"),
		promoWindow(3, "2025-03-01T00:00", "2025-03-10T00:00"),
	}
	now, _ := ParsePromoTime("2025-02-05T00:00")

	first := SelectActivePromotion(promos, now)
	require.NotNil(t, first)
	for i := 0; i < 50; i++ {
		again := SelectActivePromotion(promos, now)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestApplyPromotionToPrice(t *testing.T) {
	promo := promoWindow(1, "2025-01-01T00:00", "2025-01-10T00:00")

	assert.Equal(t, 90.0, ApplyPromotionToPrice(100, &promo))
	assert.Equal(t, 100.0, ApplyPromotionToPrice(100, nil))

	// Discount larger than the price floors at zero
	assert.Equal(t, 0.0, ApplyPromotionToPrice(5, &promo))
}

func TestFormatPromoTime(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-01-02 03:04:05", FormatPromoTime(ts))

	// Non-UTC inputs render in UTC
	loc := time.FixedZone("UTC+8", 8*3600)
	assert.Equal(t, "2025-01-02 03:04:05", FormatPromoTime(ts.In(loc)))
}
