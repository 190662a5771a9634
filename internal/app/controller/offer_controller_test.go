package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/app/service"
	"github.com/skillora/skillora-backend/internal/db"
)

func setupOfferControllerTest(t *testing.T) (*OfferController, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	offerRepo := repository.NewOfferRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)
	offerService := service.NewOfferService(offerRepo, profileRepo, testDB)
	offerController := NewOfferController(offerService)

	gin.SetMode(gin.TestMode)

	return offerController, testDB
}

// createTestOffer seeds an offer with three tiers priced as given.
// Delivery times run 3, 5, 10 days from basic to premium.
func createTestOffer(t *testing.T, testDB *gorm.DB, creatorID uint, title string, prices [3]float64) *model.Offer {
	t.Helper()

	offer := &model.Offer{
		CreatorID:   creatorID,
		Title:       title,
		Description: "Test offer",
	}
	require.NoError(t, testDB.Create(offer).Error)

	types := [3]model.OfferType{model.OfferTypeBasic, model.OfferTypeStandard, model.OfferTypePremium}
	deliveries := [3]int{3, 5, 10}
	for i := 0; i < 3; i++ {
		detail := &model.OfferDetail{
			OfferID:            offer.ID,
			Title:              fmt.Sprintf("%s %s", title, types[i]),
			Revisions:          2,
			DeliveryTimeInDays: deliveries[i],
			Price:              prices[i],
			Features:           pq.StringArray{"Feature A", "Feature B"},
			OfferType:          types[i],
		}
		require.NoError(t, testDB.Create(detail).Error)
	}

	return offer
}

func offerCreateBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"image":       "",
		"description": "Something useful",
		"details": []map[string]interface{}{
			{
				"title": "Basic", "revisions": 2, "delivery_time_in_days": 5,
				"price": 100, "features": []string{"Logo"}, "offer_type": "basic",
			},
			{
				"title": "Standard", "revisions": 5, "delivery_time_in_days": 7,
				"price": 200, "features": []string{"Logo", "Flyer"}, "offer_type": "standard",
			},
			{
				"title": "Premium", "revisions": -1, "delivery_time_in_days": 10,
				"price": 500, "features": []string{"Logo", "Flyer", "Website"}, "offer_type": "premium",
			},
		},
	}
}

func TestOfferController_GetAllOffers_Pagination(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	for i := 0; i < 7; i++ {
		createTestOffer(t, testDB, business.ID, fmt.Sprintf("Offer %d", i), [3]float64{10, 20, 30})
	}

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	// First page fills up to the default page size
	req := httptest.NewRequest(http.MethodGet, "/api/offers/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(7), response["count"])
	assert.Equal(t, "http://example.com/api/offers/?page=2", response["next"])
	assert.Nil(t, response["previous"])
	assert.Len(t, response["results"], 6)

	// Second page carries the remainder and links back without the
	// page parameter
	req = httptest.NewRequest(http.MethodGet, "/api/offers/?page=2", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response["next"])
	assert.Equal(t, "http://example.com/api/offers/", response["previous"])
	assert.Len(t, response["results"], 1)
}

func TestOfferController_GetAllOffers_PageSize(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	for i := 0; i < 5; i++ {
		createTestOffer(t, testDB, business.ID, fmt.Sprintf("Offer %d", i), [3]float64{10, 20, 30})
	}

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/?page_size=2&page=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(5), response["count"])
	assert.Len(t, response["results"], 2)

	// Malformed page_size falls back to the default instead of failing
	req = httptest.NewRequest(http.MethodGet, "/api/offers/?page_size=abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["results"], 5)
}

func TestOfferController_GetAllOffers_InvalidPage(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	createTestOffer(t, testDB, business.ID, "Only Offer", [3]float64{10, 20, 30})

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	tests := []struct {
		name string
		url  string
	}{
		{"Out of range", "/api/offers/?page=2"},
		{"Not a number", "/api/offers/?page=abc"},
		{"Zero", "/api/offers/?page=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Invalid page.", response["message"])
		})
	}
}

func TestOfferController_GetAllOffers_EmptyFirstPage(t *testing.T) {
	controller, _ := setupOfferControllerTest(t)

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// No offers still serves one valid empty page
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["count"])
	assert.Nil(t, response["next"])
	assert.Nil(t, response["previous"])
	assert.Len(t, response["results"], 0)
}

func TestOfferController_GetAllOffers_Filters(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	kevin := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	lisa := createTestAccount(t, testDB, "lisa", model.TypeBusiness)
	createTestOffer(t, testDB, kevin.ID, "Logo Design", [3]float64{50, 100, 150})
	createTestOffer(t, testDB, lisa.ID, "Web Development", [3]float64{500, 1000, 1500})

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	fetch := func(url string) map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "GET %s", url)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response
	}

	// creator_id keeps only that business's offers
	response := fetch(fmt.Sprintf("/api/offers/?creator_id=%d", kevin.ID))
	require.Len(t, response["results"], 1)
	first := response["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Logo Design", first["title"])

	// min_price matches offers with at least one tier at or above it
	response = fetch("/api/offers/?min_price=400")
	require.Len(t, response["results"], 1)
	first = response["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Web Development", first["title"])

	// search spans titles and descriptions
	response = fetch("/api/offers/?search=logo")
	require.Len(t, response["results"], 1)

	// max_delivery_time: both seeded offers have a 3-day tier
	response = fetch("/api/offers/?max_delivery_time=3")
	assert.Len(t, response["results"], 2)
}

func TestOfferController_GetAllOffers_MalformedFilters(t *testing.T) {
	controller, _ := setupOfferControllerTest(t)

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"creator_id", "/api/offers/?creator_id=abc", "creator_id must be a number."},
		{"min_price", "/api/offers/?min_price=abc", "min_price must be a number."},
		{"max_delivery_time", "/api/offers/?max_delivery_time=abc", "max_delivery_time must be a number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response["message"])
		})
	}
}

func TestOfferController_GetAllOffers_OrderingByMinPrice(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	createTestOffer(t, testDB, business.ID, "Expensive", [3]float64{300, 400, 500})
	createTestOffer(t, testDB, business.ID, "Cheap", [3]float64{10, 20, 30})
	createTestOffer(t, testDB, business.ID, "Middle", [3]float64{100, 200, 300})

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/?ordering=min_price", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	results := response["results"].([]interface{})
	require.Len(t, results, 3)

	titles := make([]string, 0, 3)
	for _, r := range results {
		titles = append(titles, r.(map[string]interface{})["title"].(string))
	}
	assert.Equal(t, []string{"Cheap", "Middle", "Expensive"}, titles)

	// Descending variant
	req = httptest.NewRequest(http.MethodGet, "/api/offers/?ordering=-min_price", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	results = response["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Expensive", first["title"])
}

func TestOfferController_GetAllOffers_ListShape(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	createTestOffer(t, testDB, business.ID, "Logo Design", [3]float64{100, 200, 500})

	router := gin.New()
	router.GET("/api/offers/", controller.GetAllOffers)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	results := response["results"].([]interface{})
	require.Len(t, results, 1)

	entry := results[0].(map[string]interface{})
	assert.Equal(t, float64(business.ID), entry["user"])
	assert.Equal(t, float64(100), entry["min_price"])
	assert.Equal(t, float64(3), entry["min_delivery_time"])

	// Tiers appear as id/url link pairs
	details := entry["details"].([]interface{})
	require.Len(t, details, 3)
	link := details[0].(map[string]interface{})
	assert.Equal(t, "http://example.com/api/offerdetails/1/", link["url"])

	// The listing carries the creator's name fields
	userDetails := entry["user_details"].(map[string]interface{})
	assert.Equal(t, "kevin", userDetails["username"])
}

func TestOfferController_GetOfferByID_Success(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	offer := createTestOffer(t, testDB, business.ID, "Logo Design", [3]float64{100, 200, 500})

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.GET("/api/offers/:id/", controller.GetOfferByID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/offers/%d/", offer.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Logo Design", response["title"])
	assert.Equal(t, float64(100), response["min_price"])

	// The single-offer shape has no user_details block
	_, hasUserDetails := response["user_details"]
	assert.False(t, hasUserDetails)
}

func TestOfferController_GetOfferByID_NotFound(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.GET("/api/offers/:id/", controller.GetOfferByID)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/9999/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Offer not found.", response["message"])
}

func TestOfferController_GetOfferByID_NoTiers(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	offer := &model.Offer{CreatorID: business.ID, Title: "Bare Offer"}
	require.NoError(t, testDB.Create(offer).Error)

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.GET("/api/offers/:id/", controller.GetOfferByID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/offers/%d/", offer.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// An offer without tiers serves null aggregates instead of failing
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response["min_price"])
	assert.Nil(t, response["min_delivery_time"])
	assert.Len(t, response["details"], 0)
}

func TestOfferController_CreateOffer_Success(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.POST("/api/offers/", controller.CreateOffer)

	body, _ := json.Marshal(offerCreateBody("Grafikdesign-Paket"))
	req := httptest.NewRequest(http.MethodPost, "/api/offers/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Grafikdesign-Paket", response["title"])

	details := response["details"].([]interface{})
	require.Len(t, details, 3)
	firstTier := details[0].(map[string]interface{})
	assert.NotZero(t, firstTier["id"])
	assert.Equal(t, float64(100), firstTier["price"])

	var count int64
	require.NoError(t, testDB.Model(&model.OfferDetail{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestOfferController_CreateOffer_CustomerForbidden(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	customer := createTestAccount(t, testDB, "anna", model.TypeCustomer)

	router := gin.New()
	router.Use(fakeAuth(customer, model.TypeCustomer))
	router.POST("/api/offers/", controller.CreateOffer)

	body, _ := json.Marshal(offerCreateBody("Nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/offers/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Only users with type 'business' may create offers.", response["message"])
}

func TestOfferController_CreateOffer_NoProfile(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)

	// An account without a profile row
	user := &model.User{Username: "ghost", Email: "ghost@example.com", PasswordHash: "x"}
	require.NoError(t, testDB.Create(user).Error)

	router := gin.New()
	router.Use(fakeAuth(user, model.TypeBusiness))
	router.POST("/api/offers/", controller.CreateOffer)

	body, _ := json.Marshal(offerCreateBody("Nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/offers/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "UserProfile not found.", response["message"])
}

func TestOfferController_CreateOffer_InvalidTiers(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.POST("/api/offers/", controller.CreateOffer)

	twoTiers := offerCreateBody("Two Tiers")
	twoTiers["details"] = twoTiers["details"].([]map[string]interface{})[:2]

	missingType := offerCreateBody("Missing Type")
	missingType["details"].([]map[string]interface{})[1]["offer_type"] = ""

	duplicateType := offerCreateBody("Duplicate Type")
	duplicateType["details"].([]map[string]interface{})[1]["offer_type"] = "basic"

	tests := []struct {
		name    string
		reqBody map[string]interface{}
		message string
	}{
		{"Two tiers only", twoTiers, "An offer must have exactly 3 details."},
		{"Missing offer_type", missingType, "Each detail must include offer_type."},
		{"Duplicate tier type", duplicateType, "Details must include offer_type: basic, standard, premium."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/offers/", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response["message"])
		})
	}
}

func TestOfferController_UpdateOffer_TitleAndTier(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	offer := createTestOffer(t, testDB, business.ID, "Old Title", [3]float64{100, 200, 500})

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.PATCH("/api/offers/:id/", controller.UpdateOffer)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "New Title",
		"details": []map[string]interface{}{
			{"offer_type": "basic", "price": 50},
		},
	})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/offers/%d/", offer.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "New Title", response["title"])

	// The basic tier was patched in place; the others are untouched
	var basic model.OfferDetail
	require.NoError(t, testDB.Where("offer_id = ? AND offer_type = ?", offer.ID, model.OfferTypeBasic).First(&basic).Error)
	assert.Equal(t, float64(50), basic.Price)

	var standard model.OfferDetail
	require.NoError(t, testDB.Where("offer_id = ? AND offer_type = ?", offer.ID, model.OfferTypeStandard).First(&standard).Error)
	assert.Equal(t, float64(200), standard.Price)
}

func TestOfferController_UpdateOffer_NotCreator(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	kevin := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	lisa := createTestAccount(t, testDB, "lisa", model.TypeBusiness)
	offer := createTestOffer(t, testDB, kevin.ID, "Kevin's Offer", [3]float64{100, 200, 500})

	router := gin.New()
	router.Use(fakeAuth(lisa, model.TypeBusiness))
	router.PATCH("/api/offers/:id/", controller.UpdateOffer)

	body, _ := json.Marshal(map[string]interface{}{"title": "Taken Over"})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/offers/%d/", offer.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Forbidden", response["message"])
}

func TestOfferController_UpdateOffer_MissingTierType(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	offer := createTestOffer(t, testDB, business.ID, "Offer", [3]float64{100, 200, 500})

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.PATCH("/api/offers/:id/", controller.UpdateOffer)

	body, _ := json.Marshal(map[string]interface{}{
		"details": []map[string]interface{}{{"price": 50}},
	})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/offers/%d/", offer.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Each detail must include offer_type.", response["message"])
}

func TestOfferController_DeleteOffer(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	kevin := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	lisa := createTestAccount(t, testDB, "lisa", model.TypeBusiness)
	offer := createTestOffer(t, testDB, kevin.ID, "Doomed", [3]float64{10, 20, 30})

	gin.SetMode(gin.TestMode)

	// Someone else cannot delete it
	router := gin.New()
	router.Use(fakeAuth(lisa, model.TypeBusiness))
	router.DELETE("/api/offers/:id/", controller.DeleteOffer)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/offers/%d/", offer.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The creator can
	router = gin.New()
	router.Use(fakeAuth(kevin, model.TypeBusiness))
	router.DELETE("/api/offers/:id/", controller.DeleteOffer)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/offers/%d/", offer.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var offerCount, detailCount int64
	require.NoError(t, testDB.Model(&model.Offer{}).Count(&offerCount).Error)
	require.NoError(t, testDB.Model(&model.OfferDetail{}).Count(&detailCount).Error)
	assert.Equal(t, int64(0), offerCount)
	assert.Equal(t, int64(0), detailCount)
}

func TestOfferController_GetOfferDetailByID(t *testing.T) {
	controller, testDB := setupOfferControllerTest(t)
	business := createTestAccount(t, testDB, "kevin", model.TypeBusiness)
	createTestOffer(t, testDB, business.ID, "Offer", [3]float64{100, 200, 500})

	router := gin.New()
	router.Use(fakeAuth(business, model.TypeBusiness))
	router.GET("/api/offerdetails/:id/", controller.GetOfferDetailByID)

	req := httptest.NewRequest(http.MethodGet, "/api/offerdetails/1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "basic", response["offer_type"])
	assert.Equal(t, float64(100), response["price"])
	assert.Equal(t, []interface{}{"Feature A", "Feature B"}, response["features"])

	// Unknown tier
	req = httptest.NewRequest(http.MethodGet, "/api/offerdetails/9999/", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "OfferDetail not found.", response["message"])
}
