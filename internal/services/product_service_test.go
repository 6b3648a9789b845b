package services

import (
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createProduct(t *testing.T, svc ProductService, db *gorm.DB, name string) *models.Product {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: "Fixtures"}
	require.NoError(t, db.Create(category).Error)
	vendor := &models.Vendor{ID: uuid.New(), Name: "Fixture Vendor", RowVersion: 1}
	require.NoError(t, db.Create(vendor).Error)

	product, err := svc.CreateProduct(&models.CreateProductRequest{
		Name:       name,
		CategoryID: category.ID,
		VendorID:   vendor.ID,
	})
	require.NoError(t, err)
	return product
}

func TestCreateProductGeneratesHandle(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt, Grade 8")
	assert.Equal(t, "hex-bolt-grade-8", product.Handle)
	assert.Equal(t, int64(1), product.RowVersion)
	assert.True(t, product.IsActive)
}

func TestCreateProductDuplicateHandle(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	first := createProduct(t, svc, db, "Hex Bolt")

	_, err := svc.CreateProduct(&models.CreateProductRequest{
		Name:       "Hex Bolt",
		CategoryID: first.CategoryID,
		VendorID:   first.VendorID,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "handle", verr.Fields[0].Field)
}

func TestArchiveProductStaysRetrievable(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt")
	require.NoError(t, svc.ArchiveProduct(product.ID))

	// Gone from the active listing
	listed, _, err := svc.ListProducts(models.ProductFilters{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Still retrievable by id and through the archived listing
	got, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	archived, err := svc.ListArchivedProducts()
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, product.ID, archived[0].ID)
}

func TestUpdateProductVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt")

	// First writer wins
	updated, err := svc.UpdateProduct(product.ID, &models.UpdateProductRequest{
		Name:       "Hex Bolt Grade 8",
		CategoryID: product.CategoryID,
		VendorID:   product.VendorID,
		RowVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.RowVersion)

	// Second writer, still holding version 1, conflicts with a field diff
	_, err = svc.UpdateProduct(product.ID, &models.UpdateProductRequest{
		Name:       "Hex Bolt Grade 5",
		CategoryID: product.CategoryID,
		VendorID:   product.VendorID,
		RowVersion: 1,
	})
	var cerr *VersionConflictError
	require.ErrorAs(t, err, &cerr)
	assert.False(t, cerr.Deleted)
	assert.Equal(t, int64(2), cerr.CurrentVersion)

	foundName := false
	for _, conflict := range cerr.Conflicts {
		if conflict.Field == "name" {
			foundName = true
			assert.Equal(t, "Current value: Hex Bolt Grade 8", conflict.CurrentValue)
		}
	}
	assert.True(t, foundName, "the diverged name must appear in the diff")

	// Retrying with the refreshed version succeeds
	_, err = svc.UpdateProduct(product.ID, &models.UpdateProductRequest{
		Name:       "Hex Bolt Grade 5",
		CategoryID: product.CategoryID,
		VendorID:   product.VendorID,
		RowVersion: cerr.CurrentVersion,
	})
	assert.NoError(t, err)
}

func TestAddVariantValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt")

	_, err := svc.AddVariant(product.ID, &models.CreateVariantRequest{
		UnitPrice: 0,
		Options:   []models.VariantOptionInput{{Name: "Size", Value: "Large"}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unitPrice", verr.Fields[0].Field)

	_, err = svc.AddVariant(product.ID, &models.CreateVariantRequest{
		UnitPrice: 9.99,
		Options:   nil,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "options", verr.Fields[0].Field)

	_, err = svc.AddVariant(product.ID, &models.CreateVariantRequest{
		UnitPrice: 9.99,
		Options:   []models.VariantOptionInput{{Name: "SZ", Value: "XL"}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2, "short option name and value are both reported")
}

func TestUpdateVariantReplacesOptions(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt")
	variant, err := svc.AddVariant(product.ID, &models.CreateVariantRequest{
		SKU:       "HB-1",
		UnitPrice: 9.99,
		Options: []models.VariantOptionInput{
			{Name: "Size", Value: "Small"},
			{Name: "Finish", Value: "Zinc"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateVariant(variant.ID, &models.UpdateVariantRequest{
		SKU:        "HB-1",
		UnitPrice:  10.99,
		Options:    []models.VariantOptionInput{{Name: "Size", Value: "Large"}},
		RowVersion: 1,
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 1)
	assert.Equal(t, "Large", updated.Options[0].Value)

	// No orphaned option rows survive the replacement
	var count int64
	require.NoError(t, db.Model(&models.VariantOption{}).Where("product_variant_id = ?", variant.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteVariantVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	product := createProduct(t, svc, db, "Hex Bolt")
	variant, err := svc.AddVariant(product.ID, &models.CreateVariantRequest{
		UnitPrice: 9.99,
		Options:   []models.VariantOptionInput{{Name: "Size", Value: "Large"}},
	})
	require.NoError(t, err)

	// Bump the version behind the deleter's back
	_, err = svc.UpdateVariant(variant.ID, &models.UpdateVariantRequest{
		UnitPrice:  11.99,
		Options:    []models.VariantOptionInput{{Name: "Size", Value: "Large"}},
		RowVersion: 1,
	})
	require.NoError(t, err)

	err = svc.DeleteVariant(variant.ID, 1)
	var cerr *VersionConflictError
	require.ErrorAs(t, err, &cerr)

	// Fresh version deletes cleanly, options included
	require.NoError(t, svc.DeleteVariant(variant.ID, 2))
	_, err = svc.GetVariant(variant.ID)
	assert.ErrorIs(t, err, repository.ErrVariantNotFound)

	var count int64
	require.NoError(t, db.Model(&models.VariantOption{}).Where("product_variant_id = ?", variant.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListProductsSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(t, db)

	createProduct(t, svc, db, "Hex Bolt")
	createProduct(t, svc, db, "Deck Screw")

	found, total, err := svc.ListProducts(models.ProductFilters{Search: "bolt", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Hex Bolt", found[0].Name)
}
