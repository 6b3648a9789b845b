package services

import (
	"fmt"
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with foreign key
// enforcement on, migrated for the full model set.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Vendor{},
		&models.Product{},
		&models.ProductVariant{},
		&models.VariantOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderShipping{},
	))

	return db
}

func newCategoryService(t *testing.T, db *gorm.DB) CategoryService {
	t.Helper()
	return NewCategoryService(repository.NewCategoryRepository(db, nil), nil)
}

func newProductService(t *testing.T, db *gorm.DB) ProductService {
	t.Helper()
	return NewProductService(repository.NewProductRepository(db), nil)
}

func newVendorService(t *testing.T, db *gorm.DB) VendorService {
	t.Helper()
	return NewVendorService(repository.NewVendorRepository(db, nil), nil)
}

func newOrderService(t *testing.T, db *gorm.DB) OrderService {
	t.Helper()
	return NewOrderService(repository.NewOrderRepository(db), repository.NewProductRepository(db), nil)
}

// seedCatalog creates a category, vendor, product and variant ready for
// cart scenarios. The variant costs $25.00 with 10 in stock, DENY policy.
func seedCatalog(t *testing.T, db *gorm.DB) (*models.Product, *models.ProductVariant) {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: "Fasteners"}
	require.NoError(t, db.Create(category).Error)

	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme Industrial", RowVersion: 1}
	require.NoError(t, db.Create(vendor).Error)

	product := &models.Product{
		ID:         uuid.New(),
		Name:       "Hex Bolt",
		Handle:     "hex-bolt",
		IsActive:   true,
		CategoryID: category.ID,
		VendorID:   vendor.ID,
		RowVersion: 1,
	}
	require.NoError(t, db.Create(product).Error)

	variant := &models.ProductVariant{
		ID:              uuid.New(),
		ProductID:       product.ID,
		SKU:             "HB-100",
		UnitPrice:       25.00,
		StockQuantity:   10,
		InventoryPolicy: models.InventoryPolicyDeny,
		Status:          models.VariantStatusActive,
		RowVersion:      1,
		Options: []models.VariantOption{
			{ID: uuid.New(), Name: "Size", Value: "3/8 in"},
		},
	}
	require.NoError(t, db.Create(variant).Error)

	return product, variant
}
