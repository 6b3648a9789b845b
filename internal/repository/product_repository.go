package repository

import (
	"errors"
	"fmt"
	"strings"

	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return err
	}
	return nil
}

// GetByID retrieves a product with its category, vendor and variant graph.
// Archived products remain retrievable by id.
func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Vendor").
		Preload("Variants.Options").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List retrieves active products with filtering, sorting and pagination
func (r *ProductRepository) List(filters models.ProductFilters) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("is_active = ?", true)

	if filters.Search != "" {
		query = query.Where("UPPER(name) LIKE ?", "%"+strings.ToUpper(filters.Search)+"%")
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.VendorID != nil {
		query = query.Where("vendor_id = ?", *filters.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name"
	if filters.SortDesc {
		order = "name DESC"
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Preload("Vendor").
		Order(order).
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListArchived retrieves soft-deleted products
func (r *ProductRepository) ListArchived() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Where("is_active = ?", false).
		Order("name").
		Find(&products).Error
	return products, err
}

// ListByVendor retrieves all products of a vendor with their variants
func (r *ProductRepository) ListByVendor(vendorID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Preload("Variants").
		Where("vendor_id = ?", vendorID).
		Order("name").
		Find(&products).Error
	return products, err
}

// UpdateConditional applies updates to a product as a single conditioned
// write keyed on the row version the client last observed. Zero affected
// rows means a concurrent writer got there first (or removed the row).
func (r *ProductRepository) UpdateConditional(id uuid.UUID, observedVersion int64, updates map[string]interface{}) error {
	updates["row_version"] = gorm.Expr("row_version + 1")
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND row_version = ?", id, observedVersion).
		Updates(updates)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrForeignKeyViolation
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Product{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// Archive soft-deletes a product; the row stays retrievable by id
func (r *ProductRepository) Archive(id uuid.UUID) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateVariant creates a variant together with its option pairs
func (r *ProductRepository) CreateVariant(variant *models.ProductVariant) error {
	if err := r.db.Create(variant).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return err
	}
	return nil
}

// GetVariantByID retrieves a variant with its options and product
func (r *ProductRepository) GetVariantByID(id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.
		Preload("Options").
		Preload("Product").
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// ListVariantsByProduct retrieves all variants of a product with options
func (r *ProductRepository) ListVariantsByProduct(productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.
		Preload("Options").
		Where("product_id = ?", productID).
		Order("created_at").
		Find(&variants).Error
	return variants, err
}

// UpdateVariantConditional applies a variant edit as a conditioned write
// and replaces the options collection wholesale (delete-all, re-insert)
// in the same transaction. Options are never diffed.
func (r *ProductRepository) UpdateVariantConditional(id uuid.UUID, observedVersion int64, updates map[string]interface{}, options []models.VariantOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates["row_version"] = gorm.Expr("row_version + 1")
		result := tx.Model(&models.ProductVariant{}).
			Where("id = ? AND row_version = ?", id, observedVersion).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			tx.Model(&models.ProductVariant{}).Where("id = ?", id).Count(&count)
			if count == 0 {
				return ErrVariantNotFound
			}
			return ErrVersionConflict
		}

		if err := tx.Where("product_variant_id = ?", id).Delete(&models.VariantOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ProductVariantID = id
			if options[i].ID == uuid.Nil {
				options[i].ID = uuid.New()
			}
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteVariantConditional deletes a variant keyed on the observed row
// version. A zero-row-affected delete reports a conflict without a field
// diff; there is nothing to diff when the intent is removal.
func (r *ProductRepository) DeleteVariantConditional(id uuid.UUID, observedVersion int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND row_version = ?", id, observedVersion).
			Delete(&models.ProductVariant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			tx.Model(&models.ProductVariant{}).Where("id = ?", id).Count(&count)
			if count == 0 {
				return ErrVariantNotFound
			}
			return ErrVersionConflict
		}
		if err := tx.Where("product_variant_id = ?", id).Delete(&models.VariantOption{}).Error; err != nil {
			return err
		}
		return nil
	})
}

// HandleExists checks whether a product handle is already taken
func (r *ProductRepository) HandleExists(handle string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Model(&models.Product{}).Where("handle = ?", handle)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// NameForCategory resolves a category display name for conflict reports
func (r *ProductRepository) NameForCategory(id uuid.UUID) string {
	var category models.Category
	if err := r.db.Select("name").Where("id = ?", id).First(&category).Error; err != nil {
		return fmt.Sprintf("unknown category (%s)", id)
	}
	return category.Name
}

// NameForVendor resolves a vendor display name for conflict reports
func (r *ProductRepository) NameForVendor(id uuid.UUID) string {
	var vendor models.Vendor
	if err := r.db.Select("name").Where("id = ?", id).First(&vendor).Error; err != nil {
		return fmt.Sprintf("unknown vendor (%s)", id)
	}
	return vendor.Name
}
