package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mercato-dev/mercato/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/promotions/", CreatePromotion)
	router.GET("/api/promotions/product/:id", GetProductPromotions)
	router.DELETE("/api/promotions/:id", DeletePromotion)
	return router
}

func postPromotion(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/promotions/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreatePromotionRejectsNonPositiveDiscount(t *testing.T) {
	router := promoTestRouter()

	for _, discount := range []float64{0, -5} {
		w := postPromotion(t, router, gin.H{
			"productid":  1,
			"discount":   discount,
			"start_date": "2030-01-01 00:00:00",
			"end_date":   "2030-02-01 00:00:00",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, models.PromoCodeInvalidDiscount, decodeErrorCode(t, w))
	}
}

func TestCreatePromotionDiscountCheckedBeforeDates(t *testing.T) {
	router := promoTestRouter()

	// Both the discount and the dates are broken; the discount error wins
	w := postPromotion(t, router, gin.H{
		"productid":  1,
		"discount":   -1,
		"start_date": "not a date",
		"end_date":   "also not a date",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, models.PromoCodeInvalidDiscount, decodeErrorCode(t, w))
}

func TestCreatePromotionRejectsBadDates(t *testing.T) {
	router := promoTestRouter()

	cases := []gin.H{
		{"productid": 1, "discount": 10.0, "start_date": "garbage", "end_date": "2030-02-01 00:00:00"},
		{"productid": 1, "discount": 10.0, "start_date": "2030-01-01 00:00:00", "end_date": "garbage"},
		// Inverted interval
		{"productid": 1, "discount": 10.0, "start_date": "2030-02-01 00:00:00", "end_date": "2030-01-01 00:00:00"},
		// Already expired
		{"productid": 1, "discount": 10.0, "start_date": "2020-01-01 00:00:00", "end_date": "2020-02-01 00:00:00"},
	}
	for _, body := range cases {
		w := postPromotion(t, router, body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, models.PromoCodeInvalidDateTime, decodeErrorCode(t, w))
	}
}

func TestCreatePromotionRequiresProductID(t *testing.T) {
	router := promoTestRouter()

	w := postPromotion(t, router, gin.H{
		"discount":   10.0,
		"start_date": "2030-01-01 00:00:00",
		"end_date":   "2030-02-01 00:00:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePromotionRejectsMalformedJSON(t *testing.T) {
	router := promoTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/promotions/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductPromotionsRejectsBadID(t *testing.T) {
	router := promoTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/promotions/product/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePromotionRejectsBadID(t *testing.T) {
	router := promoTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/promotions/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
