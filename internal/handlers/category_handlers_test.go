package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(id uuid.UUID) (*models.Category, string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Category), args.String(1), args.Error(2)
}

func (m *MockCategoryService) ListCategories(page, limit int) ([]models.Category, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) GetTree() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryService) AncestorPath(id uuid.UUID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockCategoryService) SelectableTree(selectedID *uuid.UUID) ([]models.SelectOption, error) {
	args := m.Called(selectedID)
	return args.Get(0).([]models.SelectOption), args.Error(1)
}

func (m *MockCategoryService) CanDelete(id uuid.UUID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func setupCategoryRouter(svc services.CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCategoryHandler(svc, 50, 200)
	r.POST("/categories", h.CreateCategory)
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:id", h.GetCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)
	return r
}

func TestCreateCategoryHandler(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	category := &models.Category{ID: uuid.New(), Name: "Hardware"}
	svc.On("CreateCategory", mock.Anything).Return(category, nil)

	body, _ := json.Marshal(models.CreateCategoryRequest{Name: "Hardware"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	svc.AssertExpectations(t)
}

func TestCreateCategoryHandlerValidationError(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	verr := &services.ValidationError{Fields: []models.FieldError{
		{Field: "name", Message: "Category name must be at least 3 characters long"},
	}}
	svc.On("CreateCategory", mock.Anything).Return(nil, verr)

	body, _ := json.Marshal(models.CreateCategoryRequest{Name: "ab"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	assert.Len(t, errObj["fields"], 1)
}

func TestListCategoriesClampsLimitToConfig(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	// A limit beyond the configured maximum falls back to the default
	svc.On("ListCategories", 1, 50).Return([]models.Category{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/categories?limit=9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetCategoryHandlerNotFound(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("GetCategory", mock.Anything).Return(nil, "", repository.ErrCategoryNotFound)

	req := httptest.NewRequest(http.MethodGet, "/categories/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestGetCategoryHandlerInvalidID(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/categories/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetCategory")
}

func TestDeleteCategoryHandlerReferentialIntegrity(t *testing.T) {
	svc := new(MockCategoryService)
	router := setupCategoryRouter(svc)

	svc.On("DeleteCategory", mock.Anything).Return(repository.ErrForeignKeyViolation)

	req := httptest.NewRequest(http.MethodDelete, "/categories/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "REFERENTIAL_INTEGRITY", errObj["code"])
}

func TestConflictResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		handleServiceError(c, &services.VersionConflictError{
			Message:        "the product was modified by another user after you got the original values",
			CurrentVersion: 4,
			Conflicts: []models.FieldConflict{
				{Field: "name", CurrentValue: "Current value: Hex Bolt Grade 8"},
			},
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "VERSION_CONFLICT", errObj["code"])
	assert.Equal(t, float64(4), errObj["newRowVersion"])
	assert.Len(t, errObj["conflicts"], 1)
}
