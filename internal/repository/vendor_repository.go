package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const VendorCacheTTL = 30 * time.Minute

var ErrVendorNotFound = errors.New("vendor not found")

type VendorRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewVendorRepository(db *gorm.DB, redis *redis.Client) *VendorRepository {
	return &VendorRepository{db: db, redis: redis}
}

func (r *VendorRepository) invalidateVendorCaches(ctx context.Context, vendorID *string) {
	if r.redis == nil {
		return
	}
	if vendorID != nil {
		r.redis.Del(ctx, fmt.Sprintf("backoffice:vendors:vendor:%s", *vendorID))
	}
	keys, _ := r.redis.Keys(ctx, "backoffice:vendors:list:*").Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// Create creates a new vendor
func (r *VendorRepository) Create(vendor *models.Vendor) error {
	err := r.db.Create(vendor).Error
	if err == nil {
		r.invalidateVendorCaches(context.Background(), nil)
	}
	return err
}

// GetByID retrieves a vendor by ID with caching
func (r *VendorRepository) GetByID(id uuid.UUID) (*models.Vendor, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("backoffice:vendors:vendor:%s", id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var vendor models.Vendor
			if err := json.Unmarshal([]byte(val), &vendor); err == nil {
				return &vendor, nil
			}
		}
	}

	var vendor models.Vendor
	err := r.db.Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(vendor)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, VendorCacheTTL)
		}
	}

	return &vendor, nil
}

// List retrieves vendors by archive state, ordered by name
func (r *VendorRepository) List(archived bool) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Where("is_archived = ?", archived).Order("name").Find(&vendors).Error
	return vendors, err
}

// UpdateConditional applies a vendor edit as a single conditioned write
// keyed on the row version the client last observed
func (r *VendorRepository) UpdateConditional(id uuid.UUID, observedVersion int64, updates map[string]interface{}) error {
	updates["row_version"] = gorm.Expr("row_version + 1")
	result := r.db.Model(&models.Vendor{}).
		Where("id = ? AND row_version = ?", id, observedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Vendor{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return ErrVendorNotFound
		}
		return ErrVersionConflict
	}
	vendorID := id.String()
	r.invalidateVendorCaches(context.Background(), &vendorID)
	return nil
}

// Archive marks a vendor archived; the row is never removed
func (r *VendorRepository) Archive(id uuid.UUID) error {
	result := r.db.Model(&models.Vendor{}).Where("id = ?", id).Update("is_archived", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	vendorID := id.String()
	r.invalidateVendorCaches(context.Background(), &vendorID)
	return nil
}
