package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/app/service"
	"github.com/skillora/skillora-backend/internal/db"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, testDB, "test-secret", time.Hour)
	authController := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/registration/", authController.Register)
	router.POST("/api/login/", authController.Login)

	return router, testDB
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	router, testDB := setupAuthControllerTest(t)

	w := postJSON(t, router, "/api/registration/", map[string]interface{}{
		"username":          "anna",
		"email":             "anna@example.com",
		"password":          "secret123",
		"repeated_password": "secret123",
		"type":              "customer",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.NotEmpty(t, response["token"])
	assert.Equal(t, "anna", response["username"])
	assert.Equal(t, "anna@example.com", response["email"])
	assert.Equal(t, float64(1), response["user_id"])

	// Registration writes the account and its profile together
	var profile model.Profile
	require.NoError(t, testDB.Where("user_id = ?", 1).First(&profile).Error)
	assert.Equal(t, model.TypeCustomer, profile.Type)
}

func TestAuthController_Register_PasswordMismatch(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/api/registration/", map[string]interface{}{
		"username":          "anna",
		"email":             "anna@example.com",
		"password":          "secret123",
		"repeated_password": "different",
		"type":              "customer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Passwords do not match.", response["message"])
}

func TestAuthController_Register_UsernameTaken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	body := map[string]interface{}{
		"username":          "anna",
		"email":             "anna@example.com",
		"password":          "secret123",
		"repeated_password": "secret123",
		"type":              "customer",
	}
	w := postJSON(t, router, "/api/registration/", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/registration/", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "A user with that username already exists.", response["message"])
}

func TestAuthController_Register_InvalidRequest(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		reqBody map[string]interface{}
	}{
		{
			name: "Missing username",
			reqBody: map[string]interface{}{
				"email": "a@example.com", "password": "x", "repeated_password": "x", "type": "customer",
			},
		},
		{
			name: "Invalid email",
			reqBody: map[string]interface{}{
				"username": "anna", "email": "not-an-email", "password": "x", "repeated_password": "x", "type": "customer",
			},
		},
		{
			name: "Unknown profile type",
			reqBody: map[string]interface{}{
				"username": "anna", "email": "a@example.com", "password": "x", "repeated_password": "x", "type": "admin",
			},
		},
		{
			name: "Missing password",
			reqBody: map[string]interface{}{
				"username": "anna", "email": "a@example.com", "repeated_password": "x", "type": "customer",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/registration/", tt.reqBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Please check your input and try again.", response["message"])
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/api/registration/", map[string]interface{}{
		"username":          "kevin",
		"email":             "kevin@example.com",
		"password":          "secret123",
		"repeated_password": "secret123",
		"type":              "business",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/login/", map[string]interface{}{
		"username": "kevin",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	assert.Equal(t, "kevin", response["username"])
	assert.Equal(t, "kevin@example.com", response["email"])
	assert.Equal(t, float64(1), response["user_id"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/api/registration/", map[string]interface{}{
		"username":          "kevin",
		"email":             "kevin@example.com",
		"password":          "secret123",
		"repeated_password": "secret123",
		"type":              "business",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/api/login/", map[string]interface{}{
		"username": "kevin",
		"password": "wrong",
	})

	// Bad credentials answer 400, not 401
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", response["error"])
	assert.Equal(t, "Invalid credentials", response["message"])
}

func TestAuthController_Login_UnknownUser(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(t, router, "/api/login/", map[string]interface{}{
		"username": "nobody",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid credentials", response["message"])
}
