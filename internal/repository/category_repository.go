package repository

import (
	"backoffice-service/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Cache TTL constants
const (
	CategoryCacheTTL     = 30 * time.Minute // Categories rarely change
	CategoryListCacheTTL = 15 * time.Minute // Category lists
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCategoryRepository(db *gorm.DB, redis *redis.Client) *CategoryRepository {
	return &CategoryRepository{
		db:    db,
		redis: redis,
	}
}

// invalidateCategoryCaches invalidates all caches related to categories
func (r *CategoryRepository) invalidateCategoryCaches(ctx context.Context, categoryID *string) {
	if r.redis == nil {
		return
	}

	if categoryID != nil {
		r.redis.Del(ctx, fmt.Sprintf("backoffice:categories:category:%s", *categoryID))
	}
	pattern := "backoffice:categories:list:*"
	keys, _ := r.redis.Keys(ctx, pattern).Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background(), nil)
	}
	return err
}

// GetByID retrieves a category by ID with caching
func (r *CategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("backoffice:categories:category:%s", id)

	// Try to get from cache first
	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var category models.Category
			if err := json.Unmarshal([]byte(val), &category); err == nil {
				return &category, nil
			}
		}
	}

	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		data, err := json.Marshal(category)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return &category, nil
}

// GetAll retrieves categories with pagination and caching
func (r *CategoryRepository) GetAll(limit, offset int) ([]models.Category, int64, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("backoffice:categories:list:%d:%d", limit, offset)

	type categoriesResult struct {
		Categories []models.Category `json:"categories"`
		Total      int64             `json:"total"`
	}

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var result categoriesResult
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Categories, result.Total, nil
			}
		}
	}

	var categories []models.Category
	var total int64
	r.db.Model(&models.Category{}).Count(&total)
	err := r.db.Order("name").Limit(limit).Offset(offset).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		result := categoriesResult{Categories: categories, Total: total}
		data, err := json.Marshal(result)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryListCacheTTL)
		}
	}

	return categories, total, nil
}

// GetRoots retrieves all categories with no parent, ordered by name
func (r *CategoryRepository) GetRoots() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("parent_id IS NULL").Order("name").Find(&categories).Error
	return categories, err
}

// GetChildren retrieves the direct children of a category, ordered by name
func (r *CategoryRepository) GetChildren(parentID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("parent_id = ?", parentID).Order("name").Find(&categories).Error
	return categories, err
}

// CountChildren counts the direct children of a category
func (r *CategoryRepository) CountChildren(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// CountProducts counts products referencing a category
func (r *CategoryRepository) CountProducts(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// Update updates a category
func (r *CategoryRepository) Update(category *models.Category) error {
	var existing models.Category
	err := r.db.Where("id = ?", category.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	err = r.db.Save(category).Error
	if err == nil {
		categoryID := category.ID.String()
		r.invalidateCategoryCaches(context.Background(), &categoryID)
	}
	return err
}

// Delete deletes a category. The storage layer's foreign key constraint
// rejects the delete while products still reference the category; that
// case surfaces as ErrForeignKeyViolation, not a silent failure.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrForeignKeyViolation
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	categoryID := id.String()
	r.invalidateCategoryCaches(context.Background(), &categoryID)
	return nil
}
